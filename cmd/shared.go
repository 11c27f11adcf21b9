package cmd

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/clusterside/sparklaunch/internal/config"
	"github.com/clusterside/sparklaunch/internal/launch"
	"github.com/clusterside/sparklaunch/internal/scheduler"
	"github.com/clusterside/sparklaunch/internal/utils"
)

// RunFlags holds the flags shared by prepare and launch, so a prepared run
// and a launched run are described identically.
type RunFlags struct {
	SparkVersion string
	SparkHome    string
	JavaHome     string
	RunsDir      string

	Workers     int
	MinWorkers  int
	WorkerSlots int
	DriverSlots int
	GBPerSlot   int

	Runtime string

	Project   string
	ExtraArgs string

	MasterPort  int
	LogLevel    string
	ParallelEnv string
	ScratchRoot string

	ConsolidateLogs bool
	WorkerDir       string
	LocalDirs       string
}

// RegisterRunFlags registers the shared run flags on a flag set. Zero
// values mean "not given"; buildOptions fills those from the loaded config.
func RegisterRunFlags(fs *pflag.FlagSet, flags *RunFlags) {
	fs.IntVarP(&flags.Workers, "workers", "n", 0, "number of worker jobs to submit")
	fs.IntVar(&flags.MinWorkers, "min-workers", 0, "workers that must be running before the driver starts")
	fs.IntVar(&flags.WorkerSlots, "worker-slots", 0, "slots per worker job")
	fs.IntVar(&flags.DriverSlots, "driver-slots", 0, "slots for the driver job")
	fs.IntVar(&flags.GBPerSlot, "gb-per-slot", 0, "memory per slot in GB")
	fs.StringVarP(&flags.Runtime, "runtime", "W", "", "runtime ceiling, H:MM or minutes")

	fs.StringVar(&flags.SparkVersion, "spark-version", "", "Spark version to run (default: newest installed)")
	fs.StringVar(&flags.SparkHome, "spark-home", "", "Spark installation directory (overrides --spark-version)")
	fs.StringVar(&flags.JavaHome, "java-home", "", "Java installation directory")
	fs.StringVar(&flags.RunsDir, "runs-dir", "", "parent directory for run directories")

	fs.StringVarP(&flags.Project, "project", "P", "", "billing project or account")
	fs.StringVar(&flags.ExtraArgs, "submit-args", "", "extra submission arguments, passed through verbatim")

	fs.IntVar(&flags.MasterPort, "master-port", 0, "port the standalone master listens on")
	fs.StringVar(&flags.LogLevel, "log-level", "", "log4j root level for the cluster daemons")
	fs.StringVar(&flags.ParallelEnv, "parallel-env", "", "Grid Engine parallel environment")
	fs.StringVar(&flags.ScratchRoot, "scratch-root", "", "node-local scratch root")

	fs.BoolVar(&flags.ConsolidateLogs, "consolidate-logs", false, "keep worker work dirs under the run's logs directory")
	fs.StringVar(&flags.WorkerDir, "worker-dir", "", "worker work directory (overrides the default placement)")
	fs.StringVar(&flags.LocalDirs, "local-dirs", "", "shuffle directories (default: node-local scratch)")
}

func orString(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

func orInt(flag, fallback int) int {
	if flag != 0 {
		return flag
	}
	return fallback
}

// buildOptions merges flag values over the loaded configuration. Flags win;
// unset flags fall back to the config file, environment and defaults.
func buildOptions(flags *RunFlags) launch.Options {
	g := config.Global
	return launch.Options{
		SparkVersion: orString(flags.SparkVersion, g.SparkVersion),
		SparkHome:    flags.SparkHome,
		JavaHome:     orString(flags.JavaHome, g.JavaHome),
		RunsDir:      orString(flags.RunsDir, g.RunsDir),

		Workers:     flags.Workers,
		MinWorkers:  orInt(flags.MinWorkers, g.MinWorkers),
		WorkerSlots: orInt(flags.WorkerSlots, g.WorkerSlots),
		DriverSlots: orInt(flags.DriverSlots, g.DriverSlots),
		GBPerSlot:   orInt(flags.GBPerSlot, g.GBPerSlot),

		Runtime: orString(flags.Runtime, g.Runtime),

		Project:         orString(flags.Project, g.Project),
		ExtraSubmitArgs: flags.ExtraArgs,

		MasterPort:  orInt(flags.MasterPort, g.MasterPort),
		LogLevel:    orString(flags.LogLevel, g.SparkLogLevel),
		ParallelEnv: orString(flags.ParallelEnv, g.SgeParallelEnv),
		ScratchRoot: orString(flags.ScratchRoot, g.ScratchRoot),

		ConsolidateLogs: flags.ConsolidateLogs,
		WorkerDir:       flags.WorkerDir,
		LocalDirs:       flags.LocalDirs,
	}
}

// activeBackendOrExit returns the backend selected by the config pipeline.
func activeBackendOrExit() scheduler.Backend {
	backend := scheduler.ActiveBackend()
	if backend == nil {
		utils.PrintError("No batch backend selected.")
		utils.PrintHint("Install bsub (LSF) or qsub (Grid Engine), or set one explicitly:\n  sparklaunch config set backend lsf\n  sparklaunch config set submit_bin /path/to/bsub")
		os.Exit(ExitCodeError)
	}
	return backend
}

// prepareRun derives parameters and generates a complete run directory,
// reporting every created path.
func prepareRun(flags *RunFlags) *launch.Result {
	id, err := launch.CurrentIdentity()
	if err != nil {
		ExitWithError("%v", err)
	}
	backend := activeBackendOrExit()

	result, err := launch.Prepare(buildOptions(flags), id, backend)
	if err != nil {
		ExitWithError("%v", err)
	}

	run := result.Run
	utils.PrintSuccess("Prepared run %s", utils.StylePath(run.RunDir))
	utils.PrintMessage("  conf:     %s", utils.StylePath(run.ConfDir))
	utils.PrintMessage("  logs:     %s", utils.StylePath(run.LogsDir))
	utils.PrintMessage("  scripts:  %s", utils.StylePath(run.ScriptsDir))
	utils.PrintMessage("  manifest: %s", utils.StylePath(run.ManifestFile))
	utils.PrintMessage("  launch:   %s", utils.StylePath(run.LaunchScript))
	utils.PrintMessage("  shutdown: %s", utils.StylePath(result.Set.Shutdown))
	utils.PrintMessage("Master URL will appear in %s", utils.StylePath(run.MasterURLFile))
	return result
}

// Exit codes used by the commands.
const (
	ExitCodeError = 1
)

// ExitWithError prints an error and exits with ExitCodeError.
func ExitWithError(format string, a ...interface{}) {
	utils.PrintError(format, a...)
	os.Exit(ExitCodeError)
}
