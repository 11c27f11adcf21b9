package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/clusterside/sparklaunch/internal/utils"
	"github.com/spf13/viper"
)

// ConfigFilename is the name of the config file
const ConfigFilename = "config"

// ConfigType is the type of config file (yaml, json, toml)
const ConfigType = "yaml"

// InitViper initializes Viper with proper search paths and defaults
// Priority (highest to lowest):
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (SPARKLAUNCH_*)
// 3. User config file (~/.config/sparklaunch/config.yaml)
// 4. System config file (/etc/sparklaunch/config.yaml)
// 5. Defaults
func InitViper() error {
	viper.SetConfigName(ConfigFilename)
	viper.SetConfigType(ConfigType)

	// Set config search paths (order matters)
	// User config (highest priority)
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(userConfigDir, "sparklaunch"))
	}

	// Home directory fallback
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".sparklaunch"))
	}

	// System-wide config (lower priority)
	viper.AddConfigPath("/etc/sparklaunch")

	// Current directory (for development)
	viper.AddConfigPath(".")

	// Environment variables
	viper.SetEnvPrefix("SPARKLAUNCH")
	viper.AutomaticEnv()

	// Set defaults (lowest priority)
	setDefaults()

	// Read config file (non-fatal if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; will use defaults and auto-detect
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// setDefaults sets default values for all config keys
func setDefaults() {
	viper.SetDefault("backend", "")
	viper.SetDefault("submit_bin", "")
	viper.SetDefault("project", "")

	// runs_dir default is home-relative and set by LoadDefaults
	viper.SetDefault("runs_dir", "")
	viper.SetDefault("spark_versions_dir", "/usr/local/spark-versions")
	viper.SetDefault("spark_version", "")
	viper.SetDefault("java_home", "/usr/lib/jvm/default-java")
	viper.SetDefault("scratch_root", "/scratch")
	viper.SetDefault("master_port", 7077)
	viper.SetDefault("log_level", "WARN")
	viper.SetDefault("sge_parallel_env", "smp")
	viper.SetDefault("extra_spark_dirs", []string{})

	// Sizing defaults
	viper.SetDefault("worker_slots", 32)
	viper.SetDefault("driver_slots", 32)
	viper.SetDefault("gb_per_slot", 15)
	viper.SetDefault("min_workers", 1)
	viper.SetDefault("runtime", "8:00")
}

// GetUserConfigPath returns the path to the user config file
func GetUserConfigPath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".sparklaunch", ConfigFilename+"."+ConfigType), nil
	}

	return filepath.Join(userConfigDir, "sparklaunch", ConfigFilename+"."+ConfigType), nil
}

// SaveConfig saves current Viper config to user config file
func SaveConfig() error {
	configPath, err := GetUserConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Create directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write config file
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ValidateBinary checks if a binary exists and is executable
func ValidateBinary(binPath string) bool {
	if binPath == "" {
		return false
	}

	// If it's a full path, check directly
	if filepath.IsAbs(binPath) {
		info, err := os.Stat(binPath)
		if err != nil {
			return false
		}
		// Check if it's executable (unix-style check)
		return info.Mode()&0111 != 0
	}

	// Otherwise, try to find it in PATH
	_, err := exec.LookPath(binPath)
	return err == nil
}

// DetectSubmitBin attempts to find a batch submit binary
// Returns (binary_path, backend_type) if found
func DetectSubmitBin() (string, string) {
	// Try LSF first
	if path, err := exec.LookPath("bsub"); err == nil {
		return path, "lsf"
	}

	// qsub is shared between Grid Engine and PBS; SGE_ROOT marks a real
	// Grid Engine client environment
	if path, err := exec.LookPath("qsub"); err == nil {
		if _, exists := os.LookupEnv("SGE_ROOT"); exists {
			return path, "sge"
		}
	}

	return "", ""
}

// AutoDetectAndSave auto-detects the submit binary and saves to config if needed
// Returns true if config was updated
func AutoDetectAndSave() (bool, error) {
	updated := false

	// Check and detect submit binary
	submitBin := viper.GetString("submit_bin")
	if !ValidateBinary(submitBin) {
		detectedBin, detectedType := DetectSubmitBin()
		if detectedBin != "" {
			viper.Set("submit_bin", detectedBin)
			viper.Set("backend", detectedType)
			updated = true
		}
	}

	// Save if anything was updated
	if updated {
		if err := SaveConfig(); err != nil {
			return false, err
		}
	}

	return updated, nil
}

// ForceDetectAndSave always re-detects the submit binary from the current
// environment and saves
// This is useful for config init to capture the exact paths from current PATH
// Returns true if config was updated
func ForceDetectAndSave() (bool, error) {
	updated := false

	// Always re-detect submit binary
	detectedBin, detectedType := DetectSubmitBin()
	if detectedBin != "" {
		currentBin := viper.GetString("submit_bin")
		currentType := viper.GetString("backend")
		if currentBin != detectedBin || currentType != detectedType {
			viper.Set("submit_bin", detectedBin)
			viper.Set("backend", detectedType)
			updated = true
		}
	}

	// Always save (even if nothing changed, to create the file)
	if err := SaveConfig(); err != nil {
		return false, err
	}

	return updated, nil
}

// LoadFromViper loads config from Viper into Global struct
func LoadFromViper() {
	if bin := viper.GetString("submit_bin"); bin != "" && ValidateBinary(bin) {
		Global.SubmitBin = bin
	}

	if backend := viper.GetString("backend"); backend != "" {
		Global.Backend = backend
	}

	if project := viper.GetString("project"); project != "" {
		Global.Project = project
	}

	if dir := viper.GetString("runs_dir"); dir != "" {
		Global.RunsDir = dir
	}

	if dir := viper.GetString("spark_versions_dir"); dir != "" {
		Global.SparkVersionsDir = dir
	}

	if version := viper.GetString("spark_version"); version != "" {
		Global.SparkVersion = version
	}

	if dir := viper.GetString("java_home"); dir != "" {
		Global.JavaHome = dir
	}

	if dir := viper.GetString("scratch_root"); dir != "" {
		Global.ScratchRoot = dir
	}

	if port := viper.GetInt("master_port"); port > 0 && port <= 65535 {
		Global.MasterPort = port
	}

	if level := viper.GetString("log_level"); level != "" {
		Global.SparkLogLevel = level
	}

	if pe := viper.GetString("sge_parallel_env"); pe != "" {
		Global.SgeParallelEnv = pe
	}

	if slots := viper.GetInt("worker_slots"); slots > 0 {
		Global.WorkerSlots = slots
	}

	if slots := viper.GetInt("driver_slots"); slots > 0 {
		Global.DriverSlots = slots
	}

	if gb := viper.GetInt("gb_per_slot"); gb > 0 {
		Global.GBPerSlot = gb
	}

	if minWorkers := viper.GetInt("min_workers"); minWorkers > 0 {
		Global.MinWorkers = minWorkers
	}

	if runtime := viper.GetString("runtime"); runtime != "" {
		// Only accept values the ceiling parser understands (H:MM or minutes)
		if _, err := utils.ParseCeiling(runtime); err == nil {
			Global.Runtime = runtime
		}
	}
}
