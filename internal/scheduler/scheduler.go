// Package scheduler abstracts the batch backends a cluster run can target
// and generates the backend-specific part of a run's script set.
package scheduler

import (
	"os"
	"os/exec"
	"strings"
)

// BackendType identifies a batch scheduler backend
type BackendType string

const (
	BackendUnknown BackendType = ""
	BackendLSF     BackendType = "lsf"
	BackendSGE     BackendType = "sge"
)

// Types returns the supported backends in detection order.
func Types() []BackendType {
	return []BackendType{BackendLSF, BackendSGE}
}

// ParseType normalizes a backend name from config or flags.
func ParseType(s string) (BackendType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lsf":
		return BackendLSF, nil
	case "sge", "gridengine", "grid-engine":
		return BackendSGE, nil
	default:
		return BackendUnknown, NewUnknownBackendError(s)
	}
}

// DetectType returns the backend whose submit binary is on PATH.
// qsub alone is not enough for Grid Engine since PBS ships a qsub too;
// SGE_ROOT marks a real Grid Engine client environment.
func DetectType() BackendType {
	if _, err := exec.LookPath("bsub"); err == nil {
		return BackendLSF
	}
	if _, err := exec.LookPath("qsub"); err == nil {
		if _, ok := os.LookupEnv("SGE_ROOT"); ok {
			return BackendSGE
		}
	}
	return BackendUnknown
}

// LaunchSpec carries the fully-derived inputs a backend needs to render its
// script set for one run. All paths are absolute and already created.
type LaunchSpec struct {
	RunDir        string
	ConfDir       string
	LogsDir       string
	ScriptsDir    string
	LaunchScript  string // top-level submission script path
	MasterURLFile string

	JobPrefix  string
	SubmitOpts string // billing flag plus verbatim extra args, possibly empty

	MaxWorkers   int
	MinWorkers   int
	WorkerSlots  int
	DriverSlots  int
	RuntimeLimit string // ceiling already formatted for this backend

	ParallelEnv     string // Grid Engine parallel environment for slot requests
	ConsolidateLogs bool
}

// ScriptSet lists what a backend generated for one run.
type ScriptSet struct {
	Backend      BackendType
	LaunchScript string   // the single top-level submission script
	Scripts      []string // backend-specific numbered scripts, in order
	Shutdown     string   // the single script that kills this run's jobs
}

// Backend is one batch scheduler variant. Implementations are stateless
// beyond their binary paths; selection happens once per invocation.
type Backend interface {
	// Type returns the backend identifier.
	Type() BackendType

	// Name returns the human-readable scheduler name.
	Name() string

	// SubmitBin returns the submit binary path or bare name.
	SubmitBin() string

	// Available reports whether the submit binary can be found. Script
	// generation works without it; launching does not.
	Available() bool

	// JobIDVar names the environment variable holding the job id on
	// execution nodes.
	JobIDVar() string

	// TaskIDVar names the environment variable holding the array task
	// index on execution nodes.
	TaskIDVar() string

	// ScratchDir returns the backend-native node-local scratch template
	// for a user. The job/task variables expand at execution time, not
	// at generation time.
	ScratchDir(scratchRoot, user string) string

	// SubmitArgs prepends the backend's billing flag for project to the
	// verbatim extra submission arguments.
	SubmitArgs(project, extra string) string

	// FormatRuntimeLimit renders the runtime ceiling the way this
	// backend spells it, given both the raw H:MM/minutes form and the
	// normalized seconds.
	FormatRuntimeLimit(raw string, seconds int64) string

	// GenerateScripts renders the backend-specific launch, readiness,
	// and shutdown scripts for one run.
	GenerateScripts(spec *LaunchSpec) (*ScriptSet, error)
}

// ForType returns the backend implementation for t. submitBin may be empty,
// in which case the backend resolves its binary from PATH or falls back to
// the bare name.
func ForType(t BackendType, submitBin string) (Backend, error) {
	switch t {
	case BackendLSF:
		return NewLsfBackend(submitBin), nil
	case BackendSGE:
		return NewSgeBackend(submitBin), nil
	default:
		return nil, NewUnknownBackendError(string(t))
	}
}

