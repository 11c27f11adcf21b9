package launch

import (
	"path/filepath"
	"strconv"

	"github.com/clusterside/sparklaunch/internal/template"
	"github.com/clusterside/sparklaunch/internal/utils"
)

// Numbered lifecycle scripts common to every backend. The numbers give the
// run's scripts directory a stable reading order.
const (
	MasterScript    = "01-launch-master.sh"
	MasterURLScript = "02-save-master-url.sh"
	WorkerScript    = "03-launch-worker.sh"
	DriverScript    = "04-launch-driver.sh"
)

// Workers and the driver poll for the master URL file for five minutes
// before giving up.
const (
	urlWaitTries   = 60
	urlWaitSeconds = 5
)

// workerCleanupOpts makes workers expire finished application dirs on their
// own; used when work dirs are on scratch and nothing merges them later.
const workerCleanupOpts = `export SPARK_WORKER_OPTS="-Dspark.worker.cleanup.enabled=true -Dspark.worker.cleanup.interval=1800 -Dspark.worker.cleanup.appDataTtl=86400"`

// EffectiveWorkerDir resolves where worker daemons keep work dirs and logs:
// the derived directory, or a shared directory under the run's logs when
// consolidating.
func EffectiveWorkerDir(params *RunParameters, run *RunInfo) string {
	if params.WorkerDir != "" {
		return params.WorkerDir
	}
	return filepath.Join(run.LogsDir, "worker")
}

// GenerateCommon renders the conf directory and the numbered lifecycle
// scripts shared by every backend. Scripts are marked executable, conf
// files are not.
func GenerateCommon(params *RunParameters, run *RunInfo) error {
	bindings := template.Bindings{
		"JAVA_HOME":           params.JavaHome,
		"SPARK_HOME":          params.SparkHome,
		"CONF_DIR":            run.ConfDir,
		"SCRIPTS_DIR":         run.ScriptsDir,
		"MASTER_PORT":         strconv.Itoa(params.MasterPort),
		"MASTER_URL_FILE":     run.MasterURLFile,
		"LOG_LEVEL":           params.LogLevel,
		"WORKER_SLOTS":        strconv.Itoa(params.WorkerSlots),
		"WORKER_MEMORY_GB":    strconv.Itoa(params.WorkerMemoryGB()),
		"DRIVER_MEMORY_GB":    strconv.Itoa(params.DriverMemoryGB()),
		"WORKER_DIR":          EffectiveWorkerDir(params, run),
		"LOCAL_DIRS":          params.LocalDirs,
		"URL_WAIT_TRIES":      strconv.Itoa(urlWaitTries),
		"URL_WAIT_SECONDS":    strconv.Itoa(urlWaitSeconds),
		"WORKER_CLEANUP_OPTS": "",
	}
	if !params.ConsolidateLogs {
		bindings["WORKER_CLEANUP_OPTS"] = workerCleanupOpts
	}

	for _, conf := range []string{"log4j.properties", "spark-defaults.conf", "spark-env.sh"} {
		if err := template.Render(conf, filepath.Join(run.ConfDir, conf), bindings); err != nil {
			return err
		}
	}

	scripts := []struct {
		name   string
		output string
	}{
		{"launch-master.sh", MasterScript},
		{"save-master-url.sh", MasterURLScript},
		{"launch-worker.sh", WorkerScript},
		{"launch-driver.sh", DriverScript},
	}
	for _, s := range scripts {
		out := filepath.Join(run.ScriptsDir, s.output)
		if err := template.Render(s.name, out, bindings); err != nil {
			return err
		}
		if err := utils.MarkExecutable(out); err != nil {
			return err
		}
	}
	return nil
}
