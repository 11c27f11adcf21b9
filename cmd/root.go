package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clusterside/sparklaunch/internal/config"
	"github.com/clusterside/sparklaunch/internal/scheduler"
	"github.com/clusterside/sparklaunch/internal/utils"
)

var (
	debugMode   bool
	quietMode   bool
	backendFlag string
)

var rootCmd = &cobra.Command{
	Use:           "sparklaunch",
	Short:         "SparkLaunch: run standalone Apache Spark clusters as LSF or Grid Engine batch jobs.",
	Version:       config.VERSION,
	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		home, err := os.UserHomeDir()
		if err != nil {
			utils.PrintError("Failed to determine home directory: %v", err)
			os.Exit(1)
		}

		// Step 1: Load defaults (directories, resource shape, etc.)
		config.LoadDefaults(home)

		// Step 2: Initialize Viper (read config file, env vars)
		if err := config.InitViper(); err != nil {
			utils.PrintDebug("Error reading config file: %v", err)
		}

		// Step 3: Auto-detect the submit binary if needed and save it
		updated, err := config.AutoDetectAndSave()
		if err != nil {
			utils.PrintDebug("Failed to save config: %v", err)
		} else if updated {
			if configPath, err := config.GetUserConfigPath(); err == nil {
				utils.PrintDebug("Detected submit binary saved to: %s", configPath)
			}
		}

		// Step 4: Load values from Viper into the Global config
		config.LoadFromViper()

		// Step 5: Apply command-line flags (highest priority)
		if debugMode {
			utils.DebugMode = true
			config.Global.Debug = true
			utils.PrintDebug("Debug mode enabled")
			utils.PrintDebug("SparkLaunch Version: %s", utils.StyleInfo(config.VERSION))
			utils.PrintDebug("Runs Directory: %s", config.Global.RunsDir)
			utils.PrintDebug("Spark Versions Directory: %s", config.Global.SparkVersionsDir)
			if config.Global.SubmitBin != "" {
				utils.PrintDebug("Submit Binary: %s", config.Global.SubmitBin)
			}
		}
		if quietMode {
			utils.QuietMode = true
			config.Global.Quiet = true
		}

		// Step 6: Select the batch backend for this invocation
		initBackend()
	},
}

// initBackend resolves the backend: the --backend flag wins, then the
// configured pin, then detection by installed binaries. Ending up with no
// backend is fine here; commands that submit check the registry themselves.
func initBackend() {
	name := backendFlag
	if name == "" {
		name = config.Global.Backend
	}

	var bt scheduler.BackendType
	if name != "" {
		parsed, err := scheduler.ParseType(name)
		if err != nil {
			utils.PrintError("%v", err)
			os.Exit(1)
		}
		bt = parsed
	} else {
		bt = scheduler.DetectType()
		if bt == scheduler.BackendUnknown {
			utils.PrintDebug("No batch backend detected")
			return
		}
	}

	backend, err := scheduler.ForType(bt, config.Global.SubmitBin)
	if err != nil {
		utils.PrintError("%v", err)
		os.Exit(1)
	}
	scheduler.SetActiveBackend(backend)
	utils.PrintDebug("Batch backend: %s (%s)", backend.Name(), backend.SubmitBin())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Subcommands are attached to rootCmd in their respective init() functions
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode with verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Suppress progress messages")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Batch backend to use: lsf or sge (default: auto-detect)")
}
