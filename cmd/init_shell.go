package cmd

import (
	"fmt"
	"os"

	"github.com/chris-regnier/calnotes/internal/shell"
	"github.com/spf13/cobra"
)

var initShellCmd = &cobra.Command{
	Use:   "init <shell>",
	Short: "Output shell integration script",
	Long: `Output shell integration script for eval.

Generates shell-specific initialization code that sets up:
- Prompt hook for calendar status env vars
- calnotes_prompt_info helper function

Supported shells: bash, zsh, fish`,
	Example: `  # Add to ~/.bashrc
  eval "$(calnotes init bash)"

  # Add to ~/.zshrc
  eval "$(calnotes init zsh)"

  # Add to ~/.config/fish/config.fish
  calnotes init fish | source`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !shell.WriteInit(cmd.OutOrStdout(), args[0]) {
			fmt.Fprintf(os.Stderr, "Error: unsupported shell %q (supported: bash, zsh, fish)\n", args[0])
			os.Exit(exitInvalid)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initShellCmd)
}
