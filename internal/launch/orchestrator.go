package launch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/clusterside/sparklaunch/internal/config"
	"github.com/clusterside/sparklaunch/internal/scheduler"
	"github.com/clusterside/sparklaunch/internal/utils"
)

// Result is everything Prepare produced for one run.
type Result struct {
	Params *RunParameters
	Run    *RunInfo
	Set    *scheduler.ScriptSet
}

// Prepare derives parameters, creates the run directory tree and renders
// every file the run needs. It never talks to the batch system, so a
// prepared run can be inspected or edited before anything is submitted.
func Prepare(opts Options, id Identity, backend scheduler.Backend) (*Result, error) {
	params, err := Derive(opts, id, backend)
	if err != nil {
		return nil, err
	}

	run, err := NewRunDirManager().Create(params.RunsDir, id.User)
	if err != nil {
		return nil, err
	}

	if err := GenerateCommon(params, run); err != nil {
		return nil, err
	}

	set, err := backend.GenerateScripts(launchSpec(params, run, backend))
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		Version:        config.VERSION,
		CreatedAt:      time.Now(),
		User:           params.User,
		Backend:        string(backend.Type()),
		JobPrefix:      run.JobPrefix,
		SparkHome:      params.SparkHome,
		RunDir:         run.RunDir,
		LaunchScript:   run.LaunchScript,
		ShutdownScript: set.Shutdown,
		MasterURLFile:  run.MasterURLFile,
		Workers:        params.Workers,
		MinWorkers:     params.MinWorkers,
		WorkerSlots:    params.WorkerSlots,
		DriverSlots:    params.DriverSlots,
		RuntimeSeconds: params.RuntimeSeconds,
	}
	if err := WriteManifest(run.ManifestFile, m); err != nil {
		return nil, err
	}

	return &Result{Params: params, Run: run, Set: set}, nil
}

func launchSpec(params *RunParameters, run *RunInfo, backend scheduler.Backend) *scheduler.LaunchSpec {
	return &scheduler.LaunchSpec{
		RunDir:          run.RunDir,
		ConfDir:         run.ConfDir,
		LogsDir:         run.LogsDir,
		ScriptsDir:      run.ScriptsDir,
		LaunchScript:    run.LaunchScript,
		MasterURLFile:   run.MasterURLFile,
		JobPrefix:       run.JobPrefix,
		SubmitOpts:      params.SubmitOpts,
		MaxWorkers:      params.Workers,
		MinWorkers:      params.MinWorkers,
		WorkerSlots:     params.WorkerSlots,
		DriverSlots:     params.DriverSlots,
		RuntimeLimit:    backend.FormatRuntimeLimit(params.RuntimeRaw, params.RuntimeSeconds),
		ParallelEnv:     params.ParallelEnv,
		ConsolidateLogs: params.ConsolidateLogs,
	}
}

// Launch runs a prepared run's launch script with the given application
// arguments. The script returns once the batch system has accepted the
// submissions; the cluster keeps running without this process.
func Launch(run *RunInfo, appArgs []string) error {
	cmd := exec.Command(run.LaunchScript, appArgs...)
	cmd.Dir = run.RunDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", run.LaunchScript, err)
	}
	return nil
}

// Stop runs the shutdown script recorded in runDir's manifest.
func Stop(runDir string) error {
	m, err := ReadManifest(filepath.Join(runDir, ManifestName))
	if err != nil {
		return err
	}
	if !utils.IsExecutableFile(m.ShutdownScript) {
		return NewConfigurationError("run-dir", runDir,
			fmt.Sprintf("shutdown script %s is missing or not executable", m.ShutdownScript))
	}
	cmd := exec.Command(m.ShutdownScript)
	cmd.Dir = runDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", m.ShutdownScript, err)
	}
	return nil
}
