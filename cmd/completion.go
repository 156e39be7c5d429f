// ExitBox - Multi-Agent Container Sandbox
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloud-exit/exitbox-redact/internal/ui"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell autocompletion",
	Long: `Generate autocompletion for your shell.

If no shell is specified, the current shell is detected automatically.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish"},
	RunE: func(cmd *cobra.Command, args []string) error {
		shell := ""
		if len(args) > 0 {
			shell = args[0]
		} else {
			shell = detectShell()
		}

		out := cmd.OutOrStdout()
		switch shell {
		case "bash":
			if err := rootCmd.GenBashCompletionV2(out, true); err != nil {
				return fmt.Errorf("generate bash completion: %w", err)
			}
			showHints(
				"",
				"# To enable autocompletion, add this to your ~/.bashrc:",
				"#",
				"#   eval \"$(exitbox-redact completion bash)\"",
			)
		case "zsh":
			if err := rootCmd.GenZshCompletion(out); err != nil {
				return fmt.Errorf("generate zsh completion: %w", err)
			}
			showHints(
				"",
				"# To enable autocompletion, add this to your ~/.zshrc:",
				"#",
				"#   eval \"$(exitbox-redact completion zsh)\"",
			)
		case "fish":
			if err := rootCmd.GenFishCompletion(out, true); err != nil {
				return fmt.Errorf("generate fish completion: %w", err)
			}
			showHints(
				"",
				"# To enable autocompletion, run:",
				"#",
				"#   exitbox-redact completion fish > ~/.config/fish/completions/exitbox-redact.fish",
			)
		default:
			return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// detectShell returns the name of the user's current shell.
func detectShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		base := filepath.Base(sh)
		switch base {
		case "bash", "zsh", "fish":
			return base
		}
	}

	// Parent process name on Linux.
	ppidComm := fmt.Sprintf("/proc/%d/comm", os.Getppid())
	if data, err := os.ReadFile(ppidComm); err == nil {
		name := strings.TrimSpace(string(data))
		switch name {
		case "bash", "zsh", "fish":
			return name
		}
	}

	return "bash"
}

// showHints prints to stderr only when stdout is a terminal, so piping the
// script into eval stays clean.
func showHints(lines ...string) {
	if !ui.StdoutIsTerminal() {
		return
	}
	for _, line := range lines {
		fmt.Fprintln(os.Stderr, line)
	}
}
