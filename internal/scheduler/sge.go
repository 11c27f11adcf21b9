package scheduler

import (
	"path/filepath"
	"strconv"

	"github.com/clusterside/sparklaunch/internal/template"
)

// Numbered scripts of a Grid Engine run.
const (
	SgeVerifyScript   = "05-verify-sge-workers.sh"
	SgeShutdownScript = "06-shutdown-sge-jobs.sh"
)

// Readiness poll bounds for the verify job.
const (
	sgeVerifyTries    = 60
	sgeVerifyInterval = 10 // seconds
)

// SgeBackend targets Sun/Univa Grid Engine. Grid Engine job dependencies
// release on COMPLETION rather than start, so the driver cannot be held on
// the worker array directly; a verify job polls for running worker tasks
// and the driver is held on that.
type SgeBackend struct {
	submitBin string
	killBin   string
	queryBin  string
}

// NewSgeBackend creates a Grid Engine backend. An empty submitBin falls
// back to qsub from PATH or the bare name.
func NewSgeBackend(submitBin string) *SgeBackend {
	bin := resolveBinary(submitBin, "qsub")
	return &SgeBackend{
		submitBin: bin,
		killBin:   siblingBinary(bin, "qdel"),
		queryBin:  siblingBinary(bin, "qstat"),
	}
}

func (s *SgeBackend) Type() BackendType { return BackendSGE }

func (s *SgeBackend) Name() string { return "Grid Engine" }

func (s *SgeBackend) SubmitBin() string { return s.submitBin }

func (s *SgeBackend) Available() bool { return binaryAvailable(s.submitBin) }

// JobIDVar names the variable Grid Engine sets to the job id on execution nodes.
func (s *SgeBackend) JobIDVar() string { return "JOB_ID" }

// TaskIDVar names the variable Grid Engine sets to the array task index.
func (s *SgeBackend) TaskIDVar() string { return "SGE_TASK_ID" }

// ScratchDir returns the node-local scratch template for one run's jobs.
// The job and task variables expand when the batch job executes.
func (s *SgeBackend) ScratchDir(scratchRoot, user string) string {
	return filepath.Join(scratchRoot, user, "spark-$JOB_ID-$SGE_TASK_ID")
}

// SubmitArgs prepends the -A billing flag to the verbatim extra arguments.
func (s *SgeBackend) SubmitArgs(project, extra string) string {
	return prependFlag("-A", project, extra)
}

// FormatRuntimeLimit renders the ceiling as absolute seconds for -l h_rt.
func (s *SgeBackend) FormatRuntimeLimit(raw string, seconds int64) string {
	return strconv.FormatInt(seconds, 10)
}

// GenerateScripts renders the Grid Engine submission script, the worker
// readiness barrier, and the shutdown script.
func (s *SgeBackend) GenerateScripts(spec *LaunchSpec) (*ScriptSet, error) {
	launchBindings := template.Bindings{
		"RUN_DIR":         spec.RunDir,
		"LOGS_DIR":        spec.LogsDir,
		"SCRIPTS_DIR":     spec.ScriptsDir,
		"MASTER_URL_FILE": spec.MasterURLFile,
		"JOB_PREFIX":      spec.JobPrefix,
		"SUBMIT_BIN":      s.submitBin,
		"SUBMIT_OPTS":     leadingSpace(spec.SubmitOpts),
		"RUNTIME_LIMIT":   spec.RuntimeLimit,
		"MAX_WORKERS":     strconv.Itoa(spec.MaxWorkers),
		"WORKER_SLOTS":    strconv.Itoa(spec.WorkerSlots),
		"DRIVER_SLOTS":    strconv.Itoa(spec.DriverSlots),
		"PARALLEL_ENV":    spec.ParallelEnv,
	}
	if err := renderScript("sge-launch.sh", spec.LaunchScript, launchBindings); err != nil {
		return nil, NewScriptError(BackendSGE, spec.LaunchScript, err)
	}

	verify := filepath.Join(spec.ScriptsDir, SgeVerifyScript)
	verifyBindings := template.Bindings{
		"QUERY_BIN":      s.queryBin,
		"MIN_WORKERS":    strconv.Itoa(spec.MinWorkers),
		"VERIFY_TRIES":   strconv.Itoa(sgeVerifyTries),
		"VERIFY_SECONDS": strconv.Itoa(sgeVerifyInterval),
	}
	if err := renderScript("sge-verify-workers.sh", verify, verifyBindings); err != nil {
		return nil, NewScriptError(BackendSGE, verify, err)
	}

	shutdown := filepath.Join(spec.ScriptsDir, SgeShutdownScript)
	shutdownBindings := template.Bindings{
		"KILL_BIN":             s.killBin,
		"JOB_PREFIX":           spec.JobPrefix,
		"SHUTDOWN_LOG_CLEANUP": shutdownLogCleanup(spec),
	}
	if err := renderScript("sge-shutdown.sh", shutdown, shutdownBindings); err != nil {
		return nil, NewScriptError(BackendSGE, shutdown, err)
	}

	return &ScriptSet{
		Backend:      BackendSGE,
		LaunchScript: spec.LaunchScript,
		Scripts:      []string{verify, shutdown},
		Shutdown:     shutdown,
	}, nil
}
