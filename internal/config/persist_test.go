package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadFromViperOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	setDefaults()
	LoadDefaults("/home/alice")

	viper.Set("backend", "sge")
	viper.Set("project", "dataproc")
	viper.Set("worker_slots", 48)
	viper.Set("gb_per_slot", 20)
	viper.Set("runtime", "12:00")
	viper.Set("scratch_root", "/fastscratch")

	LoadFromViper()

	if Global.Backend != "sge" {
		t.Errorf("Backend = %q; want %q", Global.Backend, "sge")
	}
	if Global.Project != "dataproc" {
		t.Errorf("Project = %q; want %q", Global.Project, "dataproc")
	}
	if Global.WorkerSlots != 48 {
		t.Errorf("WorkerSlots = %d; want 48", Global.WorkerSlots)
	}
	if Global.GBPerSlot != 20 {
		t.Errorf("GBPerSlot = %d; want 20", Global.GBPerSlot)
	}
	if Global.Runtime != "12:00" {
		t.Errorf("Runtime = %q; want %q", Global.Runtime, "12:00")
	}
	if Global.ScratchRoot != "/fastscratch" {
		t.Errorf("ScratchRoot = %q; want %q", Global.ScratchRoot, "/fastscratch")
	}

	// Keys left alone must keep the LoadDefaults values
	if Global.DriverSlots != 32 {
		t.Errorf("DriverSlots = %d; want 32", Global.DriverSlots)
	}
	want := filepath.Join("/home/alice", ".sparklaunch", "runs")
	if Global.RunsDir != want {
		t.Errorf("RunsDir = %q; want %q", Global.RunsDir, want)
	}
}

func TestLoadFromViperRejectsInvalidValues(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	setDefaults()
	LoadDefaults("/home/bob")

	viper.Set("worker_slots", -4)
	viper.Set("master_port", 0)
	viper.Set("runtime", "forever")

	LoadFromViper()

	if Global.WorkerSlots != 32 {
		t.Errorf("WorkerSlots = %d; want default 32 for invalid override", Global.WorkerSlots)
	}
	if Global.MasterPort != 7077 {
		t.Errorf("MasterPort = %d; want default 7077 for invalid override", Global.MasterPort)
	}
	if Global.Runtime != "8:00" {
		t.Errorf("Runtime = %q; want default %q for unparseable override", Global.Runtime, "8:00")
	}
}

func TestValidateBinary(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "bsub")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if ValidateBinary(bin) {
		t.Errorf("ValidateBinary accepted a non-executable file")
	}
	if err := os.Chmod(bin, 0755); err != nil {
		t.Fatal(err)
	}
	if !ValidateBinary(bin) {
		t.Errorf("ValidateBinary rejected an executable file")
	}

	if ValidateBinary("") {
		t.Errorf("ValidateBinary accepted empty path")
	}
	if ValidateBinary(filepath.Join(dir, "missing")) {
		t.Errorf("ValidateBinary accepted missing file")
	}
}

func TestGetUserConfigPath(t *testing.T) {
	confHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", confHome)

	got, err := GetUserConfigPath()
	if err != nil {
		t.Fatalf("GetUserConfigPath() error = %v", err)
	}
	want := filepath.Join(confHome, "sparklaunch", "config.yaml")
	if got != want {
		t.Errorf("GetUserConfigPath() = %q; want %q", got, want)
	}
}
