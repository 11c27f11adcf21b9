package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clusterside/sparklaunch/internal/launch"
	"github.com/clusterside/sparklaunch/internal/utils"
)

var stopCmd = &cobra.Command{
	Use:   "stop <run-dir>",
	Short: "Shut down a launched cluster",
	Long: `Run the shutdown script recorded in a run directory's run.yaml. The
script removes every batch job carrying the run's job prefix and, for
runs without consolidated logs, merges the per-task worker logs.`,
	Example: `  sparklaunch stop ~/.sparklaunch/runs/20240101_120000`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDir := args[0]
		if err := launch.Stop(runDir); err != nil {
			ExitWithError("%v", err)
		}
		utils.PrintSuccess("Shutdown script finished for %s", utils.StylePath(runDir))
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
