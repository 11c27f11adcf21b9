package scheduler

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/clusterside/sparklaunch/internal/utils"
)

func TestLsfSubmitArgs(t *testing.T) {
	l := NewLsfBackend("/opt/lsf/bin/bsub")

	tests := []struct {
		name    string
		project string
		extra   string
		want    string
	}{
		{"project only", "sciops", "", "-P sciops"},
		{"project before extra", "sciops", "-q short", "-P sciops -q short"},
		{"extra only", "", "-q short", "-q short"},
		{"neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.SubmitArgs(tt.project, tt.extra)
			if got != tt.want {
				t.Errorf("SubmitArgs(%q, %q) = %q; want %q", tt.project, tt.extra, got, tt.want)
			}
			if second := l.SubmitArgs(tt.project, tt.extra); second != got {
				t.Errorf("repeated SubmitArgs() = %q; first call gave %q", second, got)
			}
		})
	}
}

func TestLsfFormatRuntimeLimit(t *testing.T) {
	l := NewLsfBackend("")

	tests := []struct {
		raw     string
		seconds int64
		want    string
	}{
		{"8:00", 28800, "8:00"},
		{"90", 5400, "90"},
	}

	for _, tt := range tests {
		if got := l.FormatRuntimeLimit(tt.raw, tt.seconds); got != tt.want {
			t.Errorf("FormatRuntimeLimit(%q, %d) = %q; want %q", tt.raw, tt.seconds, got, tt.want)
		}
	}
}

func TestLsfJobEnvironment(t *testing.T) {
	l := NewLsfBackend("")

	if got := l.JobIDVar(); got != "LSB_JOBID" {
		t.Errorf("JobIDVar() = %q; want LSB_JOBID", got)
	}
	if got := l.TaskIDVar(); got != "LSB_JOBINDEX" {
		t.Errorf("TaskIDVar() = %q; want LSB_JOBINDEX", got)
	}
	want := "/scratch/alice/spark-$LSB_JOBID-$LSB_JOBINDEX"
	if got := l.ScratchDir("/scratch", "alice"); got != want {
		t.Errorf("ScratchDir() = %q; want %q", got, want)
	}
}

func TestLsfGenerateScripts(t *testing.T) {
	spec := newLaunchSpec(t)
	l := NewLsfBackend("/opt/lsf/bin/bsub")

	set, err := l.GenerateScripts(spec)
	if err != nil {
		t.Fatalf("GenerateScripts() error = %v", err)
	}

	if set.Backend != BackendLSF {
		t.Errorf("Backend = %q; want %q", set.Backend, BackendLSF)
	}
	wantShutdown := filepath.Join(spec.ScriptsDir, LsfShutdownScript)
	if set.Shutdown != wantShutdown {
		t.Errorf("Shutdown = %q; want %q", set.Shutdown, wantShutdown)
	}
	if len(set.Scripts) != 1 || set.Scripts[0] != wantShutdown {
		t.Errorf("Scripts = %v; want [%s]", set.Scripts, wantShutdown)
	}

	for _, script := range []string{set.LaunchScript, set.Shutdown} {
		if !utils.IsExecutableFile(script) {
			t.Errorf("%s is not an executable file", script)
		}
	}

	launch := readScript(t, set.LaunchScript)
	for _, want := range []string{
		`"/opt/lsf/bin/bsub" -P sciops \`,
		"-W 8:00",
		"-n 32",
		`[1-8]`,
		`started(\"$MASTER_JOB\")`,
		`numrun(\"$WORKER_JOB\", >= 2)`,
		spec.MasterURLFile,
	} {
		if !strings.Contains(launch, want) {
			t.Errorf("launch script missing %q", want)
		}
	}

	shutdown := readScript(t, set.Shutdown)
	for _, want := range []string{
		`"/opt/lsf/bin/bkill" -J "spark_alice_20240101_120000*" 0`,
		"workers.log",
	} {
		if !strings.Contains(shutdown, want) {
			t.Errorf("shutdown script missing %q", want)
		}
	}
}

func TestLsfShutdownSkipsMergeWhenConsolidated(t *testing.T) {
	spec := newLaunchSpec(t)
	spec.ConsolidateLogs = true

	set, err := NewLsfBackend("/opt/lsf/bin/bsub").GenerateScripts(spec)
	if err != nil {
		t.Fatalf("GenerateScripts() error = %v", err)
	}

	if shutdown := readScript(t, set.Shutdown); strings.Contains(shutdown, "workers.log") {
		t.Errorf("shutdown script merges worker logs despite consolidated logging")
	}
}
