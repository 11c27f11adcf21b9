package launch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/clusterside/sparklaunch/internal/utils"
)

const (
	runStampLayout      = "20060102_150405"
	collisionRetryDelay = time.Second
)

// RunInfo holds every path of one run directory. All fields are derived
// from the run directory and the stamp, so two RunInfos for the same
// directory are identical.
type RunInfo struct {
	Stamp         string
	RunDir        string
	ConfDir       string
	LogsDir       string
	ScriptsDir    string
	LaunchScript  string
	MasterURLFile string
	ManifestFile  string
	JobPrefix     string
}

func newRunInfo(runDir, stamp, user string) *RunInfo {
	return &RunInfo{
		Stamp:         stamp,
		RunDir:        runDir,
		ConfDir:       filepath.Join(runDir, "conf"),
		LogsDir:       filepath.Join(runDir, "logs"),
		ScriptsDir:    filepath.Join(runDir, "scripts"),
		LaunchScript:  filepath.Join(runDir, "launch.sh"),
		MasterURLFile: filepath.Join(runDir, "master-url.txt"),
		ManifestFile:  filepath.Join(runDir, ManifestName),
		JobPrefix:     fmt.Sprintf("spark_%s_%s", user, stamp),
	}
}

// RunDirManager creates timestamped run directories. The clock and the
// sleep between attempts are fields so tests can force a collision.
type RunDirManager struct {
	now   func() time.Time
	sleep func(time.Duration)
}

// NewRunDirManager returns a manager on the wall clock.
func NewRunDirManager() *RunDirManager {
	return &RunDirManager{now: time.Now, sleep: time.Sleep}
}

// Create makes a second-stamped run directory under parent with its conf,
// logs and scripts subdirectories. When the name is already taken it waits
// one interval, takes a fresh stamp and tries once more; a second collision
// is an error.
func (m *RunDirManager) Create(parent, user string) (*RunInfo, error) {
	if err := utils.EnsureDir(parent); err != nil {
		return nil, NewConfigurationError("runs-dir", parent, err.Error())
	}

	stamp := m.now().Format(runStampLayout)
	runDir := filepath.Join(parent, stamp)
	if err := os.Mkdir(runDir, utils.PermDir); err != nil {
		if !os.IsExist(err) {
			return nil, err
		}
		m.sleep(collisionRetryDelay)
		stamp = m.now().Format(runStampLayout)
		runDir = filepath.Join(parent, stamp)
		if err := os.Mkdir(runDir, utils.PermDir); err != nil {
			if os.IsExist(err) {
				return nil, NewDirectoryCollisionError(runDir)
			}
			return nil, err
		}
	}

	info := newRunInfo(runDir, stamp, user)
	for _, dir := range []string{info.ConfDir, info.LogsDir, info.ScriptsDir} {
		if err := os.Mkdir(dir, utils.PermDir); err != nil {
			return nil, err
		}
	}
	return info, nil
}
