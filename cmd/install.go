package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/spf13/cobra"

	"github.com/clusterside/sparklaunch/internal/config"
	"github.com/clusterside/sparklaunch/internal/launch"
	"github.com/clusterside/sparklaunch/internal/utils"
)

var (
	installForce  bool
	installHadoop string
)

var installCmd = &cobra.Command{
	Use:   "install [version]",
	Short: "Download and unpack an Apache Spark distribution",
	Long: `Download a prebuilt Apache Spark release tarball and unpack it into the
first writable Spark versions directory.

The installation lands in <versions dir>/spark-<version>, where later runs
find it via --spark-version or the spark_version config key. Without an
argument the pinned spark_version from the config file is installed.`,
	Example: `  sparklaunch install 3.5.1     # Install Spark 3.5.1
  sparklaunch install           # Install the pinned spark_version
  sparklaunch install 3.5.1 -f  # Reinstall even if already present`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true, // Runtime errors should not show usage
	RunE:         runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Reinstall even if the version is already present")
	installCmd.Flags().StringVar(&installHadoop, "hadoop", "hadoop3", "Hadoop profile of the prebuilt tarball")
}

// sparkArchiveName returns the file name of a prebuilt Spark release tarball.
func sparkArchiveName(version, hadoop string) string {
	return fmt.Sprintf("spark-%s-bin-%s.tgz", version, hadoop)
}

// sparkDownloadURLs returns the candidate download URLs for a Spark release,
// preferred mirror first. The CDN only carries current releases; the archive
// keeps everything ever published.
func sparkDownloadURLs(version, hadoop string) []string {
	name := sparkArchiveName(version, hadoop)
	return []string{
		fmt.Sprintf("https://dlcdn.apache.org/spark/spark-%s/%s", version, name),
		fmt.Sprintf("https://archive.apache.org/dist/spark/spark-%s/%s", version, name),
	}
}

func runInstall(cmd *cobra.Command, args []string) error {
	version := config.Global.SparkVersion
	if len(args) > 0 {
		version = strings.TrimPrefix(strings.TrimSpace(args[0]), "v")
	}
	if version == "" {
		return fmt.Errorf("no version given and no spark_version pinned in the config file")
	}
	if !semver.IsValid("v" + version) {
		return fmt.Errorf("invalid spark version %q", version)
	}

	if home, err := config.FindSparkHome(version); err == nil && !installForce {
		utils.PrintSuccess("Spark %s is already installed at %s", utils.StyleNumber(version), utils.StylePath(home))
		utils.PrintHint("Run with --force to reinstall.")
		return nil
	}

	destDir, err := config.GetWritableSparkDir()
	if err != nil {
		return err
	}

	var url string
	for _, candidate := range sparkDownloadURLs(version, installHadoop) {
		if utils.URLExists(candidate) {
			url = candidate
			break
		}
		utils.PrintDebug("Not available: %s", candidate)
	}
	if url == "" {
		return fmt.Errorf("no download found for spark %s (%s); see https://archive.apache.org/dist/spark/ for published releases", version, installHadoop)
	}

	archivePath := filepath.Join(destDir, sparkArchiveName(version, installHadoop))
	if err := utils.DownloadFile(url, archivePath); err != nil {
		return err
	}
	defer os.Remove(archivePath)

	utils.PrintMessage("Unpacking %s...", utils.StylePath(archivePath))
	tar := exec.Command("tar", "-xzf", archivePath, "-C", destDir)
	tar.Stderr = os.Stderr
	if err := tar.Run(); err != nil {
		return fmt.Errorf("failed to unpack %s: %w", archivePath, err)
	}

	unpacked := filepath.Join(destDir, strings.TrimSuffix(sparkArchiveName(version, installHadoop), ".tgz"))
	target := filepath.Join(destDir, config.SparkDirPrefix+version)

	if utils.DirExists(target) {
		if !installForce {
			os.RemoveAll(unpacked)
			return fmt.Errorf("%s already exists; run with --force to replace it", target)
		}
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("failed to remove old installation: %w", err)
		}
	}
	if err := os.Rename(unpacked, target); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", unpacked, err)
	}

	if err := launch.ValidateInstallDir("spark-home", target, "bin/spark-class"); err != nil {
		return fmt.Errorf("unpacked tree at %s is not a usable installation: %w", target, err)
	}

	utils.PrintSuccess("Installed Spark %s at %s", utils.StyleNumber(version), utils.StylePath(target))
	utils.PrintHint("Pin it with %s", utils.StyleCommand("sparklaunch config set spark_version "+version))
	return nil
}
