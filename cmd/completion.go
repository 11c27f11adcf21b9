package cmd

import (
	"bytes"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// detectShell auto-detects the current shell from environment
func detectShell() string {
	shell := strings.ToLower(os.Getenv("SHELL"))

	if strings.Contains(shell, "fish") {
		return "fish"
	}
	if strings.Contains(shell, "zsh") {
		return "zsh"
	}
	if strings.Contains(shell, "pwsh") || strings.Contains(shell, "powershell") {
		return "powershell"
	}

	// Default to bash
	return "bash"
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: func() string {
		detected := detectShell()
		return `Generate shell completion script for sparklaunch.

If no shell is specified, ` + detected + ` will be used (auto-detected from $SHELL).

To load completions:

Bash:
  $ source <(sparklaunch completion bash)

  # To load completions for each session, execute once:
  $ sparklaunch completion bash > /etc/bash_completion.d/sparklaunch

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ sparklaunch completion zsh > "${fpath[1]}/_sparklaunch"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ sparklaunch completion fish | source

  # To load completions for each session, execute once:
  $ sparklaunch completion fish > ~/.config/fish/completions/sparklaunch.fish

PowerShell:
  PS> sparklaunch completion powershell | Out-String | Invoke-Expression
`
	}(),
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		shell := detectShell()
		if len(args) > 0 {
			shell = args[0]
		}

		switch shell {
		case "bash":
			// Generate to buffer so we can post-process
			var buf bytes.Buffer
			if err := cmd.Root().GenBashCompletionV2(&buf, true); err != nil {
				_ = cmd.Root().GenBashCompletion(&buf)
			}
			// Post-process so "launch -- <app args>" completes file names
			script := postProcessBashCompletion(buf.String())
			os.Stdout.WriteString(script)
		case "zsh":
			cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// postProcessBashCompletion modifies the generated bash completion script
// to handle -- properly (use file completion after --)
func postProcessBashCompletion(script string) string {
	// Inject a check for -- in the words array; everything after it is an
	// application argument, so default file completion applies.
	oldCode := `args=("${words[@]:1}")
    requestComp="${words[0]} __complete ${args[*]}"`

	newCode := `args=("${words[@]:1}")
    # Check if -- is in the command line; if so, use default file completion
    for word in "${words[@]}"; do
        if [[ "$word" == "--" ]]; then
            return
        fi
    done
    requestComp="${words[0]} __complete ${args[*]}"`

	return strings.Replace(script, oldCode, newCode, 1)
}
