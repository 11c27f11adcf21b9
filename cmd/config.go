package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clusterside/sparklaunch/internal/config"
	"github.com/clusterside/sparklaunch/internal/scheduler"
	"github.com/clusterside/sparklaunch/internal/utils"
)

var showPath bool

// configKeys is the list of known configuration keys for shell completion
var configKeys = []string{
	"backend",
	"submit_bin",
	"project",
	"runs_dir",
	"spark_versions_dir",
	"spark_version",
	"java_home",
	"scratch_root",
	"master_port",
	"log_level",
	"sge_parallel_env",
	"extra_spark_dirs",
	"worker_slots",
	"driver_slots",
	"gb_per_slot",
	"min_workers",
	"runtime",
}

// configKeysCompletion returns config keys for shell completion
func configKeysCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return configKeys, cobra.ShellCompDirectiveNoFileComp
	}
	if len(args) == 1 {
		return configValueCompletion(args[0]), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// configValueCompletion returns suggested values for a config key
func configValueCompletion(key string) []string {
	switch key {
	case "backend":
		return []string{"lsf", "sge"}
	case "log_level":
		return []string{"DEBUG", "INFO", "WARN", "ERROR"}
	case "worker_slots", "driver_slots":
		return []string{"8", "16", "32", "64"}
	case "gb_per_slot":
		return []string{"4", "8", "15", "16"}
	case "runtime":
		return []string{"1:00", "4:00", "8:00", "24:00"}
	default:
		return nil
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sparklaunch configuration",
	Long: `Manage sparklaunch configuration settings.

Configuration priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (SPARKLAUNCH_*)
  3. User config file (~/.config/sparklaunch/config.yaml)
  4. Legacy config file (~/.sparklaunch/config.yaml)
  5. System config file (/etc/sparklaunch/config.yaml)
  6. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display current configuration values and their sources.

Shows the config file in use, the Spark installation search paths with
their installed versions, all settings, and environment overrides.`,
	Run: func(cmd *cobra.Command, args []string) {
		if showPath {
			configPath, err := config.GetUserConfigPath()
			if err != nil {
				ExitWithError("Failed to get config path: %v", err)
			}
			fmt.Println(configPath)
			return
		}

		fmt.Println(utils.StyleTitle("Config File:"))
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Printf("  %s %s\n", used, utils.StyleSuccess("← in use"))
		} else if configPath, err := config.GetUserConfigPath(); err == nil {
			fmt.Printf("  %s (use 'sparklaunch config init' to create %s)\n",
				utils.StyleWarning("No config file found"), configPath)
		}
		fmt.Println()

		fmt.Println(utils.StyleTitle("Spark Installation Search Paths:"))
		installed := config.ListInstalledSparks()
		byDir := make(map[string][]string)
		for _, s := range installed {
			dir := filepath.Dir(s.Home)
			byDir[dir] = append(byDir[dir], s.Version)
		}
		for i, dir := range config.SparkSearchPaths() {
			status := ""
			if versions := byDir[dir]; len(versions) > 0 {
				status = " " + utils.StyleSuccess(fmt.Sprintf("(%d installed)", len(versions)))
			} else if utils.DirExists(dir) {
				status = " " + utils.StyleInfo("(empty)")
			}
			fmt.Printf("  %d. %s%s\n", i+1, dir, status)
		}
		fmt.Println()

		fmt.Println(utils.StyleTitle("Current Configuration:"))
		fmt.Println()

		fmt.Println(utils.StyleTitle("Backend:"))
		backend := viper.GetString("backend")
		if backend == "" {
			backend = "(auto-detect)"
		}
		fmt.Printf("  backend:            %s\n", backend)
		fmt.Printf("  submit_bin:         %s\n", viper.GetString("submit_bin"))
		fmt.Printf("  project:            %s\n", viper.GetString("project"))
		fmt.Printf("  sge_parallel_env:   %s\n", viper.GetString("sge_parallel_env"))
		fmt.Println()

		fmt.Println(utils.StyleTitle("Directories:"))
		runsDir := viper.GetString("runs_dir")
		if runsDir == "" {
			runsDir = config.Global.RunsDir + " (default)"
		}
		fmt.Printf("  runs_dir:           %s\n", runsDir)
		fmt.Printf("  spark_versions_dir: %s\n", config.Global.SparkVersionsDir)
		fmt.Printf("  java_home:          %s\n", config.Global.JavaHome)
		fmt.Printf("  scratch_root:       %s\n", config.Global.ScratchRoot)
		fmt.Println()

		fmt.Println(utils.StyleTitle("Run Defaults:"))
		fmt.Printf("  worker_slots:       %d\n", viper.GetInt("worker_slots"))
		fmt.Printf("  driver_slots:       %d\n", viper.GetInt("driver_slots"))
		fmt.Printf("  gb_per_slot:        %d\n", viper.GetInt("gb_per_slot"))
		fmt.Printf("  min_workers:        %d\n", viper.GetInt("min_workers"))
		fmt.Printf("  runtime:            %s\n", viper.GetString("runtime"))
		fmt.Printf("  master_port:        %d\n", viper.GetInt("master_port"))
		fmt.Printf("  log_level:          %s\n", viper.GetString("log_level"))
		fmt.Println()

		fmt.Println(utils.StyleTitle("Environment Variable Overrides:"))
		envVars := []string{
			"SPARKLAUNCH_BACKEND",
			"SPARKLAUNCH_SUBMIT_BIN",
			"SPARKLAUNCH_PROJECT",
			"SPARKLAUNCH_RUNS_DIR",
			"SPARKLAUNCH_SPARK_VERSIONS_DIR",
			"SPARKLAUNCH_EXTRA_SPARK_DIRS",
			"SPARKLAUNCH_JAVA_HOME",
			"SPARKLAUNCH_SCRATCH_ROOT",
			"SPARK_HOME",
			"JAVA_HOME",
		}
		hasEnvOverrides := false
		for _, envVar := range envVars {
			if val := os.Getenv(envVar); val != "" {
				fmt.Printf("  %s=%s\n", envVar, val)
				hasEnvOverrides = true
			}
		}
		if !hasEnvOverrides {
			fmt.Printf("  %s\n", utils.StyleInfo("none"))
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Example: `  sparklaunch config get backend
  sparklaunch config get runtime`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: configKeysCompletion,
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		value := viper.Get(key)
		if value == nil {
			ExitWithError("Unknown config key: %s", key)
		}
		fmt.Println(value)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it to the user config file.

Examples:
  sparklaunch config set backend lsf
  sparklaunch config set project sciops
  sparklaunch config set worker_slots 16
  sparklaunch config set runtime 12:00`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: configKeysCompletion,
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		value := args[1]

		knownKeys := make(map[string]bool, len(configKeys))
		for _, k := range configKeys {
			knownKeys[k] = true
		}

		// Array keys are edited in the file or via environment variable.
		if key == "extra_spark_dirs" {
			utils.PrintError("'%s' is an array setting. Edit the config file or use the environment variable.", key)
			utils.PrintHint("Config file (YAML array):\n  extra_spark_dirs:\n    - /path/to/dir1\n    - /path/to/dir2\n\nEnvironment variable (colon-separated):\n  export SPARKLAUNCH_EXTRA_SPARK_DIRS=/path/to/dir1:/path/to/dir2")
			os.Exit(ExitCodeError)
		}

		if !knownKeys[key] {
			utils.PrintWarning("Warning: '%s' is not a standard config key", key)
		}

		switch key {
		case "backend":
			if _, err := scheduler.ParseType(value); err != nil {
				ExitWithError("%v", err)
			}
		case "runtime":
			if _, err := utils.ParseCeiling(value); err != nil {
				utils.PrintError("Invalid runtime ceiling: %s", value)
				utils.PrintHint("Use H:MM (e.g. 8:00) or minutes (e.g. 90)")
				os.Exit(ExitCodeError)
			}
		case "master_port", "worker_slots", "driver_slots", "gb_per_slot", "min_workers":
			if n, err := strconv.Atoi(value); err != nil || n < 1 {
				ExitWithError("Value for %s must be a positive integer, got %q", key, value)
			}
		}

		viper.Set(key, value)

		if err := config.SaveConfig(); err != nil {
			ExitWithError("Failed to save config: %v", err)
		}

		configPath, _ := config.GetUserConfigPath()
		utils.PrintSuccess("Set %s = %s", utils.StyleInfo(key), utils.StyleInfo(value))
		utils.PrintNote("Config saved to: %s", configPath)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file with defaults",
	Long: `Create the user configuration file with default values and the detected
submit binary. Existing values are kept; detection runs again.`,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := config.ForceDetectAndSave(); err != nil {
			ExitWithError("Failed to write config: %v", err)
		}

		configPath, err := config.GetUserConfigPath()
		if err != nil {
			ExitWithError("Failed to get config path: %v", err)
		}
		utils.PrintSuccess("Config written to %s", utils.StylePath(configPath))
		if bin := viper.GetString("submit_bin"); bin != "" {
			utils.PrintMessage("Submit binary: %s (%s)", bin, viper.GetString("backend"))
		} else {
			utils.PrintWarning("No submit binary found; set one with 'sparklaunch config set submit_bin /path/to/bsub'")
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)

	configShowCmd.Flags().BoolVar(&showPath, "path", false, "print only the user config file path")
}
