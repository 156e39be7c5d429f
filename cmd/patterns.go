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
	"io"

	"github.com/cloud-exit/exitbox-redact/internal/config"
	"github.com/cloud-exit/exitbox-redact/internal/patterns"
	"github.com/cloud-exit/exitbox-redact/internal/ui"
	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the patterns and environment name globs in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		if c == nil {
			c = config.DefaultConfig()
		}
		printPatterns(cmd.OutOrStdout(), c)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}

func printPatterns(w io.Writer, c *config.Config) {
	if !c.DisableBuiltins {
		fmt.Fprintln(w, ui.TitleStyle.Render("Built-in patterns"))
		for _, p := range patterns.Builtins() {
			fmt.Fprintf(w, "  %s %s\n", ui.NameStyle.Render(p.Name), ui.DimStyle.Render(p.Regexp.String()))
		}
		fmt.Fprintln(w)
	}

	if len(c.Patterns) > 0 {
		fmt.Fprintln(w, ui.TitleStyle.Render("Custom patterns"))
		for _, p := range c.Patterns {
			fmt.Fprintf(w, "  %s %s\n", ui.NameStyle.Render(p.Name), ui.DimStyle.Render(p.Regex))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, ui.TitleStyle.Render("Secret environment variable names"))
	for _, m := range patterns.DefaultEnvKeyMatchers() {
		fmt.Fprintf(w, "  %s\n", m.String())
	}
	for _, k := range c.Environment.KeyPatterns {
		fmt.Fprintf(w, "  %s %s\n", k, ui.DimStyle.Render("(config)"))
	}
	if !c.Environment.Scan {
		fmt.Fprintln(w, ui.DimStyle.Render("  (environment scanning is off; enable with --scan-env)"))
	}
}
