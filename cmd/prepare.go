package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clusterside/sparklaunch/internal/utils"
)

var prepareFlags RunFlags

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Generate a run directory without submitting anything",
	Long: `Generate a complete run directory: the Spark conf files, the numbered
lifecycle scripts, the backend's launch and shutdown scripts, and the
run.yaml manifest. Nothing is submitted to the batch system.

The generated launch script can be inspected, edited and executed later:

  <run-dir>/launch.sh [application arg...]`,
	Example: `  sparklaunch prepare -n 16
  sparklaunch prepare -n 16 -P sciops -W 12:00
  sparklaunch prepare -n 4 --spark-version 3.5.0 --consolidate-logs`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		result := prepareRun(&prepareFlags)
		utils.PrintHint("Launch with: %s [application arg...]", utils.StyleCommand(result.Run.LaunchScript))
	},
}

func init() {
	rootCmd.AddCommand(prepareCmd)
	RegisterRunFlags(prepareCmd.Flags(), &prepareFlags)
	prepareCmd.MarkFlagRequired("workers")
}
