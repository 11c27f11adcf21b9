package scheduler

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/clusterside/sparklaunch/internal/template"
	"github.com/clusterside/sparklaunch/internal/utils"
)

// resolveBinary returns explicit when given, otherwise name from PATH,
// otherwise the bare name for the rendered scripts to resolve at execution
// time.
func resolveBinary(explicit, name string) string {
	if explicit != "" {
		if strings.ContainsRune(explicit, filepath.Separator) {
			if abs, err := filepath.Abs(explicit); err == nil {
				return abs
			}
		}
		return explicit
	}
	if path, err := exec.LookPath(name); err == nil {
		return path
	}
	return name
}

// siblingBinary returns name from the same directory as bin when bin carries
// one, otherwise name from PATH, otherwise the bare name.
func siblingBinary(bin, name string) string {
	if dir := filepath.Dir(bin); dir != "." {
		return filepath.Join(dir, name)
	}
	if path, err := exec.LookPath(name); err == nil {
		return path
	}
	return name
}

// binaryAvailable reports whether bin resolves to an executable.
func binaryAvailable(bin string) bool {
	if bin == "" {
		return false
	}
	if filepath.Dir(bin) != "." {
		return utils.IsExecutableFile(bin)
	}
	_, err := exec.LookPath(bin)
	return err == nil
}

// prependFlag places "flag value" before extra with a single separating
// space. The extra arguments pass through verbatim and are never reordered.
func prependFlag(flag, value, extra string) string {
	if value == "" {
		return extra
	}
	if extra == "" {
		return flag + " " + value
	}
	return flag + " " + value + " " + extra
}

// leadingSpace prefixes a single space to non-empty option strings. The
// launch templates place the options flush against the submit binary, so an
// empty value must render to nothing.
func leadingSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}

// renderScript renders a template to outputPath and marks it executable.
func renderScript(name, outputPath string, bindings template.Bindings) error {
	if err := template.Render(name, outputPath, bindings); err != nil {
		return err
	}
	return utils.MarkExecutable(outputPath)
}

// shutdownLogCleanup builds the post-kill block of a shutdown script. When
// worker logs were not consolidated live, the per-task log files are merged
// into a single workers.log once the jobs are gone.
func shutdownLogCleanup(spec *LaunchSpec) string {
	if spec.ConsolidateLogs {
		return ""
	}
	merged := filepath.Join(spec.LogsDir, "workers.log")
	return fmt.Sprintf(`if ls %q/worker-*.log >/dev/null 2>&1; then
    cat %q/worker-*.log >> %q
    rm -f %q/worker-*.log
fi`, spec.LogsDir, spec.LogsDir, merged, spec.LogsDir)
}
