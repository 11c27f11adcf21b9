package launch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clusterside/sparklaunch/internal/scheduler"
)

// fakeInstall creates a directory holding one executable at relExe, enough
// to pass installation validation.
func fakeInstall(t *testing.T, relExe string) string {
	t.Helper()
	dir := t.TempDir()
	exe := filepath.Join(dir, relExe)
	if err := os.MkdirAll(filepath.Dir(exe), 0775); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		SparkHome:   fakeInstall(t, filepath.Join("bin", "spark-class")),
		JavaHome:    fakeInstall(t, filepath.Join("bin", "java")),
		RunsDir:     t.TempDir(),
		Workers:     8,
		MinWorkers:  2,
		WorkerSlots: 32,
		DriverSlots: 32,
		GBPerSlot:   15,
		Runtime:     "8:00",
		MasterPort:  7077,
		LogLevel:    "WARN",
	}
}

func testIdentity(t *testing.T) Identity {
	t.Helper()
	return Identity{User: "alice", Home: t.TempDir()}
}

func TestDeriveMemorySizing(t *testing.T) {
	params, err := Derive(testOptions(t), testIdentity(t), scheduler.NewLsfBackend("/opt/lsf/bin/bsub"))
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	if got := params.DriverMemoryGB(); got != 479 {
		t.Errorf("DriverMemoryGB() = %d; want 479", got)
	}
	if got := params.WorkerMemoryGB(); got != 480 {
		t.Errorf("WorkerMemoryGB() = %d; want 480", got)
	}
}

func TestDeriveRuntime(t *testing.T) {
	tests := []struct {
		runtime     string
		wantSeconds int64
	}{
		{"8:00", 28800},
		{"90", 5400},
		{"0:30", 1800},
	}

	for _, tt := range tests {
		opts := testOptions(t)
		opts.Runtime = tt.runtime

		params, err := Derive(opts, testIdentity(t), scheduler.NewLsfBackend(""))
		if err != nil {
			t.Fatalf("Derive(runtime=%q) error = %v", tt.runtime, err)
		}
		if params.RuntimeRaw != tt.runtime {
			t.Errorf("RuntimeRaw = %q; want %q", params.RuntimeRaw, tt.runtime)
		}
		if params.RuntimeSeconds != tt.wantSeconds {
			t.Errorf("RuntimeSeconds(%q) = %d; want %d", tt.runtime, params.RuntimeSeconds, tt.wantSeconds)
		}
	}
}

func TestDeriveSubmitOpts(t *testing.T) {
	opts := testOptions(t)
	opts.Project = "sciops"
	opts.ExtraSubmitArgs = "-q short"
	id := testIdentity(t)
	backend := scheduler.NewLsfBackend("/opt/lsf/bin/bsub")

	first, err := Derive(opts, id, backend)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if first.SubmitOpts != "-P sciops -q short" {
		t.Errorf("SubmitOpts = %q; want %q", first.SubmitOpts, "-P sciops -q short")
	}

	second, err := Derive(opts, id, backend)
	if err != nil {
		t.Fatalf("second Derive() error = %v", err)
	}
	if second.SubmitOpts != first.SubmitOpts {
		t.Errorf("repeated Derive() SubmitOpts = %q; first gave %q", second.SubmitOpts, first.SubmitOpts)
	}
}

func TestDeriveScratchDefaults(t *testing.T) {
	opts := testOptions(t)
	opts.ScratchRoot = "/fastscratch"
	id := testIdentity(t)
	backend := scheduler.NewLsfBackend("")

	params, err := Derive(opts, id, backend)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	scratch := "/fastscratch/alice/spark-$LSB_JOBID-$LSB_JOBINDEX"
	if params.WorkerDir != scratch {
		t.Errorf("WorkerDir = %q; want %q", params.WorkerDir, scratch)
	}
	if params.LocalDirs != scratch {
		t.Errorf("LocalDirs = %q; want %q", params.LocalDirs, scratch)
	}

	opts.ConsolidateLogs = true
	params, err = Derive(opts, id, backend)
	if err != nil {
		t.Fatalf("Derive(consolidated) error = %v", err)
	}
	if params.WorkerDir != "" {
		t.Errorf("consolidated WorkerDir = %q; want empty until the run dir is known", params.WorkerDir)
	}
	if params.LocalDirs != scratch {
		t.Errorf("consolidated LocalDirs = %q; shuffle space must stay on scratch", params.LocalDirs)
	}
}

func TestDeriveRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero workers", func(o *Options) { o.Workers = 0 }},
		{"min above max", func(o *Options) { o.MinWorkers = 9 }},
		{"bad runtime", func(o *Options) { o.Runtime = "forever" }},
		{"bad port", func(o *Options) { o.MasterPort = 0 }},
		{"bad log level", func(o *Options) { o.LogLevel = "LOUD" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t)
			tt.mutate(&opts)

			_, err := Derive(opts, testIdentity(t), scheduler.NewLsfBackend(""))
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("Derive() error = %v; want a configuration error", err)
			}
		})
	}
}

func TestDeriveNamesBadInstallDir(t *testing.T) {
	opts := testOptions(t)
	opts.SparkHome = t.TempDir() // exists but has no bin/spark-class

	_, err := Derive(opts, testIdentity(t), scheduler.NewLsfBackend(""))
	if !IsConfigurationError(err) {
		t.Fatalf("Derive() error = %v; want ConfigurationError", err)
	}
	if !strings.Contains(err.Error(), opts.SparkHome) {
		t.Errorf("error %q does not name the offending directory %s", err, opts.SparkHome)
	}
}

func TestValidateInstallDir(t *testing.T) {
	dir := fakeInstall(t, filepath.Join("bin", "java"))
	if err := ValidateInstallDir("java-home", dir, filepath.Join("bin", "java")); err != nil {
		t.Errorf("ValidateInstallDir(valid) error = %v", err)
	}

	if err := ValidateInstallDir("java-home", "", filepath.Join("bin", "java")); !errors.Is(err, ErrConfiguration) {
		t.Errorf("ValidateInstallDir(empty) error = %v; want a configuration error", err)
	}

	noExec := t.TempDir()
	if err := os.MkdirAll(filepath.Join(noExec, "bin"), 0775); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(noExec, "bin", "java"), []byte{}, 0644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateInstallDir("java-home", noExec, filepath.Join("bin", "java")); !errors.Is(err, ErrConfiguration) {
		t.Errorf("ValidateInstallDir(non-executable) error = %v; want a configuration error", err)
	}
}
