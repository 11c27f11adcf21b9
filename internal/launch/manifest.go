package launch

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/clusterside/sparklaunch/internal/utils"
)

// ManifestName is the record written at the run root.
const ManifestName = "run.yaml"

// Manifest records what a run was generated with, so a later invocation can
// shut it down or a human can see what ran. It lives next to launch.sh.
type Manifest struct {
	Version   string    `yaml:"version"`
	CreatedAt time.Time `yaml:"created_at"`
	User      string    `yaml:"user"`
	Backend   string    `yaml:"backend"`
	JobPrefix string    `yaml:"job_prefix"`

	SparkHome string `yaml:"spark_home"`
	RunDir    string `yaml:"run_dir"`

	LaunchScript   string `yaml:"launch_script"`
	ShutdownScript string `yaml:"shutdown_script"`
	MasterURLFile  string `yaml:"master_url_file"`

	Workers        int   `yaml:"workers"`
	MinWorkers     int   `yaml:"min_workers"`
	WorkerSlots    int   `yaml:"worker_slots"`
	DriverSlots    int   `yaml:"driver_slots"`
	RuntimeSeconds int64 `yaml:"runtime_seconds"`
}

// WriteManifest writes m as YAML to path.
func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, utils.PermFile); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	return &m, nil
}
