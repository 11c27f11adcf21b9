package config

import (
	"path/filepath"
)

const VERSION = "1.1.2"

// Config holds global application settings
type Config struct {
	Debug   bool
	Quiet   bool
	Version string

	RunsDir          string // parent directory for generated run directories
	SparkVersionsDir string // shared tree of spark-<version> installations
	SparkVersion     string // pinned Spark version ("" = newest installed)
	JavaHome         string // fallback JAVA_HOME when flag and environment are empty
	ScratchRoot      string // root of node-local scratch storage
	MasterPort       int    // port the standalone master listens on
	SparkLogLevel    string // root log level written into the run's log config

	Backend        string // pinned backend type ("" = auto-detect)
	SubmitBin      string // explicit submit binary path ("" = PATH lookup)
	Project        string // default billing project/account for submissions
	SgeParallelEnv string // parallel environment used for SGE slot requests

	WorkerSlots int
	DriverSlots int
	GBPerSlot   int
	MinWorkers  int
	Runtime     string // default runtime ceiling (H:MM or minutes)
}

// Global holds the singleton configuration instance
var Global Config

func LoadDefaults(home string) {
	Global = Config{
		Debug:   false,
		Quiet:   false,
		Version: VERSION,

		RunsDir:          filepath.Join(home, ".sparklaunch", "runs"),
		SparkVersionsDir: "/usr/local/spark-versions",
		SparkVersion:     "",
		JavaHome:         "/usr/lib/jvm/default-java",
		ScratchRoot:      "/scratch",
		MasterPort:       7077,
		SparkLogLevel:    "WARN",

		Backend:        "",
		SubmitBin:      "",
		Project:        "",
		SgeParallelEnv: "smp",

		WorkerSlots: 32,
		DriverSlots: 32,
		GBPerSlot:   15,
		MinWorkers:  1,
		Runtime:     "8:00",
	}
}
