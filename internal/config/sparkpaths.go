package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/mod/semver"
)

// SparkDirPrefix is the directory name prefix for Spark installations.
// An installation of version 3.5.0 lives in <search path>/spark-3.5.0.
const SparkDirPrefix = "spark-"

// GetExtraSparkDirs returns extra Spark search directories from config or environment.
// Environment variable SPARKLAUNCH_EXTRA_SPARK_DIRS uses colon-separated paths (Unix convention).
// Config file uses YAML array format.
func GetExtraSparkDirs() []string {
	// Check environment variable first (colon-separated, like PATH)
	if envDirs := os.Getenv("SPARKLAUNCH_EXTRA_SPARK_DIRS"); envDirs != "" {
		var dirs []string
		for _, dir := range strings.Split(envDirs, ":") {
			dir = strings.TrimSpace(dir)
			if dir != "" {
				dirs = append(dirs, dir)
			}
		}
		if len(dirs) > 0 {
			return dirs
		}
	}

	// Fall back to viper config
	return viper.GetStringSlice("extra_spark_dirs")
}

// SparkSearchPaths returns the directories scanned for spark-<version> installations.
// Priority: extra_spark_dirs → configured versions dir → standard fallbacks
// (first match wins for lookups).
func SparkSearchPaths() []string {
	var paths []string
	seen := make(map[string]bool)

	addPath := func(dir string) {
		if dir == "" {
			return
		}
		// Expand environment variables
		dir = os.ExpandEnv(dir)
		absDir, err := filepath.Abs(dir)
		if err != nil {
			absDir = dir
		}
		if !seen[absDir] {
			seen[absDir] = true
			paths = append(paths, absDir)
		}
	}

	// 0. Extra directories (highest priority)
	for _, dir := range GetExtraSparkDirs() {
		addPath(dir)
	}

	// 1. Configured versions directory
	addPath(Global.SparkVersionsDir)

	// 2. Standard fallbacks
	addPath("/opt/spark-versions")
	addPath("/usr/local/spark-versions")

	return paths
}

// InstalledSpark describes one Spark installation found on disk.
type InstalledSpark struct {
	Version string // version suffix of the directory name, e.g. "3.5.0"
	Home    string // full path usable as the installation directory
}

// ListInstalledSparks returns every Spark installation found in the search
// paths, newest version first. Installations in higher-priority directories
// shadow same-version installations in lower-priority ones.
func ListInstalledSparks() []InstalledSpark {
	seen := make(map[string]bool)
	var results []InstalledSpark

	for _, dir := range SparkSearchPaths() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, e := range entries {
			if !e.IsDir() {
				continue
			}

			name := e.Name()
			if !strings.HasPrefix(name, SparkDirPrefix) {
				continue
			}

			// Only accept directories whose suffix parses as a version,
			// so spark-tmp or half-unpacked trees are ignored
			version := strings.TrimPrefix(name, SparkDirPrefix)
			if !semver.IsValid("v" + version) {
				continue
			}

			if seen[version] {
				continue // Already found in higher-priority dir
			}
			seen[version] = true

			results = append(results, InstalledSpark{
				Version: version,
				Home:    filepath.Join(dir, name),
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return semver.Compare("v"+results[i].Version, "v"+results[j].Version) > 0
	})

	return results
}

// FindSparkHome returns the installation directory for an exact Spark version.
func FindSparkHome(version string) (string, error) {
	for _, dir := range SparkSearchPaths() {
		candidate := filepath.Join(dir, SparkDirPrefix+version)
		if stat, err := os.Stat(candidate); err == nil && stat.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("spark %s not found (searched: %v)", version, SparkSearchPaths())
}

// NewestSparkHome returns the highest-version installation in the search paths.
func NewestSparkHome() (InstalledSpark, error) {
	installed := ListInstalledSparks()
	if len(installed) == 0 {
		return InstalledSpark{}, fmt.Errorf("no spark installations found (searched: %v)", SparkSearchPaths())
	}
	return installed[0], nil
}

// GetWritableSparkDir returns the first writable search path.
// Creates the directory if it doesn't exist.
func GetWritableSparkDir() (string, error) {
	for _, dir := range SparkSearchPaths() {
		// Try to create directory if it doesn't exist
		if err := os.MkdirAll(dir, 0775); err != nil {
			continue
		}

		// Test write permission
		testFile := filepath.Join(dir, ".write-test")
		f, err := os.Create(testFile)
		if err != nil {
			continue
		}
		f.Close()
		os.Remove(testFile)
		return dir, nil
	}

	return "", fmt.Errorf("no writable spark directory found (searched: %v)", SparkSearchPaths())
}
