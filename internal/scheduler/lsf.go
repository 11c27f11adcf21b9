package scheduler

import (
	"path/filepath"
	"strconv"

	"github.com/clusterside/sparklaunch/internal/template"
)

// LsfShutdownScript is the numbered shutdown script of an LSF run.
const LsfShutdownScript = "05-shutdown-lsf-jobs.sh"

// LsfBackend targets IBM Spectrum LSF. LSF releases dependent jobs on job
// start (started/numrun conditions), so the worker array and the driver are
// gated directly in the submission script and no extra readiness job exists.
type LsfBackend struct {
	submitBin string
	killBin   string
}

// NewLsfBackend creates an LSF backend. An empty submitBin falls back to
// bsub from PATH or the bare name.
func NewLsfBackend(submitBin string) *LsfBackend {
	bin := resolveBinary(submitBin, "bsub")
	return &LsfBackend{
		submitBin: bin,
		killBin:   siblingBinary(bin, "bkill"),
	}
}

func (l *LsfBackend) Type() BackendType { return BackendLSF }

func (l *LsfBackend) Name() string { return "IBM Spectrum LSF" }

func (l *LsfBackend) SubmitBin() string { return l.submitBin }

func (l *LsfBackend) Available() bool { return binaryAvailable(l.submitBin) }

// JobIDVar names the variable LSF sets to the job id on execution nodes.
func (l *LsfBackend) JobIDVar() string { return "LSB_JOBID" }

// TaskIDVar names the variable LSF sets to the array task index.
func (l *LsfBackend) TaskIDVar() string { return "LSB_JOBINDEX" }

// ScratchDir returns the node-local scratch template for one run's jobs.
// The job and task variables expand when the batch job executes.
func (l *LsfBackend) ScratchDir(scratchRoot, user string) string {
	return filepath.Join(scratchRoot, user, "spark-$LSB_JOBID-$LSB_JOBINDEX")
}

// SubmitArgs prepends the -P billing flag to the verbatim extra arguments.
func (l *LsfBackend) SubmitArgs(project, extra string) string {
	return prependFlag("-P", project, extra)
}

// FormatRuntimeLimit passes the ceiling through unchanged: bsub -W accepts
// both the H:MM form and bare minutes.
func (l *LsfBackend) FormatRuntimeLimit(raw string, seconds int64) string {
	return raw
}

// GenerateScripts renders the LSF submission script and the shutdown script.
func (l *LsfBackend) GenerateScripts(spec *LaunchSpec) (*ScriptSet, error) {
	launchBindings := template.Bindings{
		"RUN_DIR":         spec.RunDir,
		"LOGS_DIR":        spec.LogsDir,
		"SCRIPTS_DIR":     spec.ScriptsDir,
		"MASTER_URL_FILE": spec.MasterURLFile,
		"JOB_PREFIX":      spec.JobPrefix,
		"SUBMIT_BIN":      l.submitBin,
		"SUBMIT_OPTS":     leadingSpace(spec.SubmitOpts),
		"RUNTIME_LIMIT":   spec.RuntimeLimit,
		"MAX_WORKERS":     strconv.Itoa(spec.MaxWorkers),
		"MIN_WORKERS":     strconv.Itoa(spec.MinWorkers),
		"WORKER_SLOTS":    strconv.Itoa(spec.WorkerSlots),
		"DRIVER_SLOTS":    strconv.Itoa(spec.DriverSlots),
	}
	if err := renderScript("lsf-launch.sh", spec.LaunchScript, launchBindings); err != nil {
		return nil, NewScriptError(BackendLSF, spec.LaunchScript, err)
	}

	shutdown := filepath.Join(spec.ScriptsDir, LsfShutdownScript)
	shutdownBindings := template.Bindings{
		"KILL_BIN":             l.killBin,
		"JOB_PREFIX":           spec.JobPrefix,
		"SHUTDOWN_LOG_CLEANUP": shutdownLogCleanup(spec),
	}
	if err := renderScript("lsf-shutdown.sh", shutdown, shutdownBindings); err != nil {
		return nil, NewScriptError(BackendLSF, shutdown, err)
	}

	return &ScriptSet{
		Backend:      BackendLSF,
		LaunchScript: spec.LaunchScript,
		Scripts:      []string{shutdown},
		Shutdown:     shutdown,
	}, nil
}
