package launch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/clusterside/sparklaunch/internal/utils"
)

func testRunParams() *RunParameters {
	scratch := "/scratch/alice/spark-$LSB_JOBID-$LSB_JOBINDEX"
	return &RunParameters{
		User:           "alice",
		SparkHome:      "/opt/spark-versions/spark-3.5.0",
		JavaHome:       "/usr/lib/jvm/default-java",
		Workers:        8,
		MinWorkers:     2,
		WorkerSlots:    32,
		DriverSlots:    32,
		GBPerSlot:      15,
		RuntimeRaw:     "8:00",
		RuntimeSeconds: 28800,
		MasterPort:     7077,
		LogLevel:       "WARN",
		ParallelEnv:    "smp",
		ScratchRoot:    "/scratch",
		WorkerDir:      scratch,
		LocalDirs:      scratch,
	}
}

func testRunInfo(t *testing.T) *RunInfo {
	t.Helper()
	m, _ := fixedClockManager(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	info, err := m.Create(t.TempDir(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	return info
}

func TestGenerateCommonFiles(t *testing.T) {
	params := testRunParams()
	run := testRunInfo(t)

	if err := GenerateCommon(params, run); err != nil {
		t.Fatalf("GenerateCommon() error = %v", err)
	}

	for _, conf := range []string{"log4j.properties", "spark-defaults.conf", "spark-env.sh"} {
		path := filepath.Join(run.ConfDir, conf)
		if !utils.FileExists(path) {
			t.Errorf("missing conf file %s", path)
			continue
		}
		if utils.IsExecutableFile(path) {
			t.Errorf("conf file %s should not be executable", path)
		}
	}

	for _, script := range []string{MasterScript, MasterURLScript, WorkerScript, DriverScript} {
		path := filepath.Join(run.ScriptsDir, script)
		if !utils.IsExecutableFile(path) {
			t.Errorf("script %s is missing or not executable", path)
		}
	}

	defaults := readOutput(t, filepath.Join(run.ConfDir, "spark-defaults.conf"))
	if !strings.Contains(defaults, "479g") {
		t.Errorf("spark-defaults.conf lacks the 479g driver memory")
	}
	if !strings.Contains(defaults, "480g") {
		t.Errorf("spark-defaults.conf lacks the 480g executor memory")
	}

	env := readOutput(t, filepath.Join(run.ConfDir, "spark-env.sh"))
	for _, want := range []string{
		"SPARK_WORKER_MEMORY=480g",
		"SPARK_WORKER_CORES=32",
		`SPARK_WORKER_DIR="/scratch/alice/spark-$LSB_JOBID-$LSB_JOBINDEX"`,
		"spark.worker.cleanup.enabled=true",
	} {
		if !strings.Contains(env, want) {
			t.Errorf("spark-env.sh missing %q", want)
		}
	}

	log4j := readOutput(t, filepath.Join(run.ConfDir, "log4j.properties"))
	if !strings.Contains(log4j, "log4j.rootCategory=WARN, console") {
		t.Errorf("log4j.properties does not set the WARN root level")
	}
}

func TestGenerateCommonConsolidated(t *testing.T) {
	params := testRunParams()
	params.ConsolidateLogs = true
	params.WorkerDir = ""
	run := testRunInfo(t)

	if err := GenerateCommon(params, run); err != nil {
		t.Fatalf("GenerateCommon() error = %v", err)
	}

	env := readOutput(t, filepath.Join(run.ConfDir, "spark-env.sh"))
	shared := filepath.Join(run.LogsDir, "worker")
	if !strings.Contains(env, `SPARK_WORKER_DIR="`+shared+`"`) {
		t.Errorf("spark-env.sh does not point the worker dir at %s", shared)
	}
	if strings.Contains(env, "spark.worker.cleanup") {
		t.Errorf("consolidated run must not enable worker self-cleanup")
	}
	if !strings.Contains(env, `SPARK_LOCAL_DIRS="/scratch/alice/`) {
		t.Errorf("shuffle dirs left the node-local scratch")
	}
}

func TestGenerateCommonScriptOrder(t *testing.T) {
	params := testRunParams()
	run := testRunInfo(t)

	if err := GenerateCommon(params, run); err != nil {
		t.Fatalf("GenerateCommon() error = %v", err)
	}

	master := readOutput(t, filepath.Join(run.ScriptsDir, MasterScript))
	save := strings.Index(master, MasterURLScript)
	daemon := strings.Index(master, "org.apache.spark.deploy.master.Master")
	if save < 0 || daemon < 0 || save > daemon {
		t.Errorf("master script must publish the URL before starting the daemon")
	}

	worker := readOutput(t, filepath.Join(run.ScriptsDir, WorkerScript))
	for _, want := range []string{"seq 1 60", "sleep 5", run.MasterURLFile} {
		if !strings.Contains(worker, want) {
			t.Errorf("worker script missing %q", want)
		}
	}

	saveScript := readOutput(t, filepath.Join(run.ScriptsDir, MasterURLScript))
	if !strings.Contains(saveScript, `spark://$(hostname):7077`) {
		t.Errorf("save script does not build the master URL from the hostname")
	}
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
