package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clusterside/sparklaunch/internal/scheduler"
	"github.com/clusterside/sparklaunch/internal/utils"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "Show batch backend detection and availability",
	Long: `Show the supported batch backends, the submit binary each one resolves
to on this host, and which backend the other commands would use.`,
	Example: `  sparklaunch backends`,
	Args:    cobra.NoArgs,
	Run:     runBackends,
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

func runBackends(cmd *cobra.Command, args []string) {
	active := scheduler.ActiveBackend()

	// Structured output, no [SPL] prefix.
	fmt.Println("Batch Backends:")
	for _, bt := range scheduler.Types() {
		backend, err := scheduler.ForType(bt, "")
		if err != nil {
			continue
		}
		selected := active != nil && active.Type() == bt
		if selected {
			backend = active
		}

		marker := " "
		if selected {
			marker = utils.StyleSuccess("*")
		}
		fmt.Printf("%s %s (%s)\n", marker, utils.StyleName(string(bt)), backend.Name())
		fmt.Printf("    Submit binary: %s\n", utils.StylePath(backend.SubmitBin()))
		if backend.Available() {
			fmt.Printf("    Status:        %s\n", utils.StyleSuccess("Available"))
		} else {
			fmt.Printf("    Status:        %s\n", utils.StyleError("Not found"))
		}
	}

	fmt.Println()
	if active != nil {
		fmt.Printf("Selected: %s\n", utils.StyleName(string(active.Type())))
	} else {
		fmt.Println("No backend selected. Install bsub (LSF) or qsub (Grid Engine),")
		fmt.Println("or pin one with: sparklaunch config set backend <lsf|sge>")
	}
}
