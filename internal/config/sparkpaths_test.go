package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestGetExtraSparkDirs(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	t.Setenv("SPARKLAUNCH_EXTRA_SPARK_DIRS", "/a: /b :")
	got := GetExtraSparkDirs()
	want := []string{"/a", "/b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetExtraSparkDirs() = %v; want %v", got, want)
	}

	// Environment unset falls back to viper
	t.Setenv("SPARKLAUNCH_EXTRA_SPARK_DIRS", "")
	viper.Set("extra_spark_dirs", []string{"/c"})
	got = GetExtraSparkDirs()
	want = []string{"/c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetExtraSparkDirs() = %v; want %v", got, want)
	}
}

func TestListInstalledSparks(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	t.Setenv("SPARKLAUNCH_EXTRA_SPARK_DIRS", "")

	dir := t.TempDir()
	for _, name := range []string{"spark-3.0.1", "spark-3.5.0", "spark-tmp", "notspark"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0755); err != nil {
			t.Fatal(err)
		}
	}
	// A regular file must not be picked up even with a version-shaped name
	if err := os.WriteFile(filepath.Join(dir, "spark-9.9.9"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	LoadDefaults("/home/test")
	Global.SparkVersionsDir = dir

	installed := ListInstalledSparks()

	idx := func(version string) int {
		for i, s := range installed {
			if s.Version == version && strings.HasPrefix(s.Home, dir) {
				return i
			}
		}
		return -1
	}

	i301, i350 := idx("3.0.1"), idx("3.5.0")
	if i301 < 0 || i350 < 0 {
		t.Fatalf("ListInstalledSparks() = %v; want 3.0.1 and 3.5.0 present", installed)
	}
	if i350 > i301 {
		t.Errorf("version 3.5.0 listed after 3.0.1: %v", installed)
	}
	for _, s := range installed {
		if !strings.HasPrefix(s.Home, dir) {
			continue
		}
		if s.Version != "3.0.1" && s.Version != "3.5.0" {
			t.Errorf("unexpected installation %+v", s)
		}
	}
}

func TestFindSparkHome(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	t.Setenv("SPARKLAUNCH_EXTRA_SPARK_DIRS", "")

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "spark-3.0.1"), 0755); err != nil {
		t.Fatal(err)
	}

	LoadDefaults("/home/test")
	Global.SparkVersionsDir = dir

	home, err := FindSparkHome("3.0.1")
	if err != nil {
		t.Fatalf("FindSparkHome(3.0.1) error = %v", err)
	}
	if want := filepath.Join(dir, "spark-3.0.1"); home != want {
		t.Errorf("FindSparkHome(3.0.1) = %q; want %q", home, want)
	}

	if _, err := FindSparkHome("2.4.7"); err == nil {
		t.Errorf("FindSparkHome(2.4.7) succeeded for a version not installed")
	}
}

func TestNewestSparkHomePrefersExtraDirs(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	extra := t.TempDir()
	if err := os.Mkdir(filepath.Join(extra, "spark-99.0.0"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SPARKLAUNCH_EXTRA_SPARK_DIRS", extra)

	LoadDefaults("/home/test")
	Global.SparkVersionsDir = t.TempDir()

	newest, err := NewestSparkHome()
	if err != nil {
		t.Fatalf("NewestSparkHome() error = %v", err)
	}
	if newest.Version != "99.0.0" {
		t.Errorf("NewestSparkHome().Version = %q; want %q", newest.Version, "99.0.0")
	}
	if want := filepath.Join(extra, "spark-99.0.0"); newest.Home != want {
		t.Errorf("NewestSparkHome().Home = %q; want %q", newest.Home, want)
	}
}

func TestGetWritableSparkDir(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	extra := t.TempDir()
	t.Setenv("SPARKLAUNCH_EXTRA_SPARK_DIRS", extra)
	LoadDefaults("/home/test")

	got, err := GetWritableSparkDir()
	if err != nil {
		t.Fatalf("GetWritableSparkDir() error = %v", err)
	}
	if got != extra {
		t.Errorf("GetWritableSparkDir() = %q; want %q", got, extra)
	}
}
