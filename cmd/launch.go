package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clusterside/sparklaunch/internal/launch"
	"github.com/clusterside/sparklaunch/internal/utils"
)

var launchFlags RunFlags

var launchCmd = &cobra.Command{
	Use:   "launch [-- application arg...]",
	Short: "Generate a run directory and submit the cluster",
	Long: `Generate a complete run directory, then execute its launch script. The
script submits the master job, the worker array and, when an application
is given, the driver job. The command returns once the batch system has
accepted the submissions; the cluster keeps running on its own.

Without an application the cluster comes up idle; connect to it with the
URL from master-url.txt, or submit work later with the run's
04-launch-driver.sh.`,
	Example: `  sparklaunch launch -n 16
  sparklaunch launch -n 16 -P sciops -- my-app.jar --input data/
  sparklaunch launch -n 8 -W 4:00 -- analysis.py`,
	Run: func(cmd *cobra.Command, args []string) {
		backend := activeBackendOrExit()
		if !backend.Available() {
			ExitWithError("%s submit binary %s is not available on this host",
				backend.Name(), backend.SubmitBin())
		}

		result := prepareRun(&launchFlags)

		utils.PrintMessage("Submitting via %s ...", utils.StyleName(backend.Name()))
		if err := launch.Launch(result.Run, args); err != nil {
			ExitWithError("%v", err)
		}
		utils.PrintSuccess("Cluster submitted with job prefix %s", utils.StyleName(result.Run.JobPrefix))
		utils.PrintHint("Shut down with: %s", utils.StyleCommand(result.Set.Shutdown))
	},
}

func init() {
	rootCmd.AddCommand(launchCmd)
	RegisterRunFlags(launchCmd.Flags(), &launchFlags)
	launchCmd.MarkFlagRequired("workers")

	// Everything after the first positional argument belongs to the
	// application, not to this command.
	launchCmd.Flags().SetInterspersed(false)
}
