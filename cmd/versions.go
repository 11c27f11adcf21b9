package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clusterside/sparklaunch/internal/config"
	"github.com/clusterside/sparklaunch/internal/utils"
)

var versionsCmd = &cobra.Command{
	Use:     "versions",
	Aliases: []string{"vs"},
	Short:   "List installed Spark versions",
	Long: `List every Spark installation found in the search paths, newest first.

A run without --spark-version uses the newest entry; the pinned spark_version
from the config file is marked when present.`,
	Example: `  sparklaunch versions
  sparklaunch versions --debug   # Also show the searched directories`,
	Args:         cobra.NoArgs,
	SilenceUsage: true, // Runtime errors should not show usage
	RunE:         runVersions,
}

func init() {
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	for _, dir := range config.SparkSearchPaths() {
		utils.PrintDebug("Searching %s", dir)
	}

	installed := config.ListInstalledSparks()
	if len(installed) == 0 {
		utils.PrintWarning("No Spark installations found.")
		utils.PrintHint("Install one with %s", utils.StyleCommand("sparklaunch install <version>"))
		os.Exit(1)
	}

	width := 0
	for _, s := range installed {
		if len(s.Version) > width {
			width = len(s.Version)
		}
	}

	fmt.Println("Installed Spark versions:")
	for i, s := range installed {
		var notes []string
		if i == 0 {
			notes = append(notes, utils.StyleSuccess("newest"))
		}
		if s.Version == config.Global.SparkVersion {
			notes = append(notes, utils.StyleHint("pinned"))
		}

		versionField := fmt.Sprintf("%-*s", width, s.Version)
		line := fmt.Sprintf(" %s  %s", utils.StyleName(versionField), s.Home)
		if len(notes) > 0 {
			line = fmt.Sprintf("%s (%s)", line, strings.Join(notes, ", "))
		}
		fmt.Println(line)
	}

	return nil
}
