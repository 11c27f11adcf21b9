package launch

import (
	"path/filepath"
	"testing"
	"time"
)

func TestManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	in := &Manifest{
		Version:        "1.1.2",
		CreatedAt:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		User:           "alice",
		Backend:        "lsf",
		JobPrefix:      "spark_alice_20240101_120000",
		SparkHome:      "/opt/spark-versions/spark-3.5.0",
		RunDir:         "/home/alice/.sparklaunch/runs/20240101_120000",
		LaunchScript:   "/home/alice/.sparklaunch/runs/20240101_120000/launch.sh",
		ShutdownScript: "/home/alice/.sparklaunch/runs/20240101_120000/scripts/05-shutdown-lsf-jobs.sh",
		MasterURLFile:  "/home/alice/.sparklaunch/runs/20240101_120000/master-url.txt",
		Workers:        8,
		MinWorkers:     2,
		WorkerSlots:    32,
		DriverSlots:    32,
		RuntimeSeconds: 28800,
	}

	if err := WriteManifest(path, in); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	out, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}

	if !out.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("CreatedAt = %v; want %v", out.CreatedAt, in.CreatedAt)
	}
	out.CreatedAt = in.CreatedAt
	if *out != *in {
		t.Errorf("round trip changed the manifest:\n got %+v\nwant %+v", out, in)
	}
}

func TestReadManifestMissing(t *testing.T) {
	if _, err := ReadManifest(filepath.Join(t.TempDir(), ManifestName)); err == nil {
		t.Errorf("ReadManifest(missing) returned nil error")
	}
}
