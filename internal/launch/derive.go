package launch

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/clusterside/sparklaunch/internal/config"
	"github.com/clusterside/sparklaunch/internal/scheduler"
	"github.com/clusterside/sparklaunch/internal/utils"
)

// ValidateInstallDir checks that dir holds the executable that makes it a
// usable installation, e.g. bin/spark-class under a Spark home. The option
// name is carried into the error so the message points at the knob to fix.
func ValidateInstallDir(option, dir, relExe string) error {
	if dir == "" {
		return NewConfigurationError(option, "", "no directory configured")
	}
	if !utils.DirExists(dir) {
		return NewConfigurationError(option, dir, "directory does not exist")
	}
	if exe := filepath.Join(dir, relExe); !utils.IsExecutableFile(exe) {
		return NewConfigurationError(option, dir, relExe+" is missing or not executable")
	}
	return nil
}

var logLevels = map[string]bool{
	"ALL": true, "TRACE": true, "DEBUG": true, "INFO": true,
	"WARN": true, "ERROR": true, "FATAL": true, "OFF": true,
}

// Derive validates opts and resolves every run parameter. It reads only its
// arguments, the environment and the installation search paths, so deriving
// twice from the same inputs yields the same parameters.
func Derive(opts Options, id Identity, backend scheduler.Backend) (*RunParameters, error) {
	p := &RunParameters{
		User:            id.User,
		Workers:         opts.Workers,
		MinWorkers:      opts.MinWorkers,
		WorkerSlots:     opts.WorkerSlots,
		DriverSlots:     opts.DriverSlots,
		GBPerSlot:       opts.GBPerSlot,
		Project:         opts.Project,
		ExtraSubmitArgs: opts.ExtraSubmitArgs,
		MasterPort:      opts.MasterPort,
		ParallelEnv:     opts.ParallelEnv,
		ScratchRoot:     opts.ScratchRoot,
		ConsolidateLogs: opts.ConsolidateLogs,
		WorkerDir:       opts.WorkerDir,
		LocalDirs:       opts.LocalDirs,
	}

	counts := []struct {
		option string
		value  int
	}{
		{"workers", p.Workers},
		{"min-workers", p.MinWorkers},
		{"worker-slots", p.WorkerSlots},
		{"driver-slots", p.DriverSlots},
		{"gb-per-slot", p.GBPerSlot},
	}
	for _, c := range counts {
		if c.value < 1 {
			return nil, NewConfigurationError(c.option, strconv.Itoa(c.value), "must be at least 1")
		}
	}
	if p.MinWorkers > p.Workers {
		return nil, NewConfigurationError("min-workers", strconv.Itoa(p.MinWorkers),
			fmt.Sprintf("cannot exceed the %d requested workers", p.Workers))
	}
	if p.MasterPort < 1 || p.MasterPort > 65535 {
		return nil, NewConfigurationError("master-port", strconv.Itoa(p.MasterPort), "must be between 1 and 65535")
	}

	p.LogLevel = strings.ToUpper(strings.TrimSpace(opts.LogLevel))
	if p.LogLevel == "" {
		p.LogLevel = "WARN"
	}
	if !logLevels[p.LogLevel] {
		return nil, NewConfigurationError("log-level", opts.LogLevel, "not a log4j level")
	}

	runtime := opts.Runtime
	if runtime == "" {
		runtime = "8:00"
	}
	seconds, err := utils.CeilingSeconds(runtime)
	if err != nil {
		return nil, NewConfigurationError("runtime", runtime, "want H:MM or minutes")
	}
	if seconds == 0 {
		return nil, NewConfigurationError("runtime", runtime, "must be positive")
	}
	p.RuntimeRaw = runtime
	p.RuntimeSeconds = seconds

	sparkHome, err := resolveSparkHome(opts)
	if err != nil {
		return nil, err
	}
	if err := ValidateInstallDir("spark-home", sparkHome, filepath.Join("bin", "spark-class")); err != nil {
		return nil, err
	}
	p.SparkHome = sparkHome

	javaHome := opts.JavaHome
	if javaHome == "" {
		javaHome = os.Getenv("JAVA_HOME")
	}
	if err := ValidateInstallDir("java-home", javaHome, filepath.Join("bin", "java")); err != nil {
		return nil, err
	}
	p.JavaHome = javaHome

	p.RunsDir = opts.RunsDir
	if p.RunsDir == "" {
		p.RunsDir = filepath.Join(id.Home, ".sparklaunch", "runs")
	}
	if p.ScratchRoot == "" {
		p.ScratchRoot = "/scratch"
	}
	if p.ParallelEnv == "" {
		p.ParallelEnv = "smp"
	}

	// Worker work dirs and shuffle dirs live on node-local scratch unless
	// overridden. A consolidated run keeps the work dir unset here so the
	// generator can place it under the run's logs directory instead.
	scratch := backend.ScratchDir(p.ScratchRoot, id.User)
	if p.LocalDirs == "" {
		p.LocalDirs = scratch
	}
	if p.WorkerDir == "" && !p.ConsolidateLogs {
		p.WorkerDir = scratch
	}

	p.SubmitOpts = backend.SubmitArgs(p.Project, p.ExtraSubmitArgs)
	return p, nil
}

func resolveSparkHome(opts Options) (string, error) {
	if opts.SparkHome != "" {
		return opts.SparkHome, nil
	}
	if env := os.Getenv("SPARK_HOME"); env != "" {
		return env, nil
	}
	if opts.SparkVersion != "" {
		home, err := config.FindSparkHome(opts.SparkVersion)
		if err != nil {
			return "", NewConfigurationError("spark-version", opts.SparkVersion, err.Error())
		}
		return home, nil
	}
	newest, err := config.NewestSparkHome()
	if err != nil {
		return "", NewConfigurationError("spark-version", "", err.Error())
	}
	return newest.Home, nil
}
