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
	"strings"

	"github.com/cloud-exit/exitbox-redact/internal/config"
	"github.com/cloud-exit/exitbox-redact/internal/redactor"
	"github.com/cloud-exit/exitbox-redact/internal/ui"
	"github.com/spf13/cobra"
)

// addEngineFlags registers the flags that shape the redactor. They are
// persistent so every subcommand shares them.
func addEngineFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.Bool("no-builtins", false, "Do not use the built-in pattern catalogue")
	f.StringArrayP("pattern", "p", nil, "Extra pattern as NAME=REGEX (repeatable)")
	f.BoolP("scan-env", "E", false, "Redact values of secret-looking environment variables")
	f.StringSlice("env-key", nil, "Extra environment variable name globs, e.g. '*_DSN'")
	f.Int("min-env-length", 0, "Shortest environment value to redact (default 8)")
	f.String("replacement", "", "Replacement token (default [REDACTED])")
	f.BoolP("label", "l", false, "Label replacements with the pattern or variable name")
}

// applyEngineFlags overlays explicitly set flags on c.
func applyEngineFlags(cmd *cobra.Command, c *config.Config) error {
	f := cmd.Flags()
	if f.Changed("no-builtins") {
		c.DisableBuiltins, _ = f.GetBool("no-builtins")
	}
	if f.Changed("pattern") {
		values, _ := f.GetStringArray("pattern")
		for _, val := range values {
			p, err := parsePatternFlag(val)
			if err != nil {
				return err
			}
			c.Patterns = append(c.Patterns, p)
		}
	}
	if f.Changed("scan-env") {
		c.Environment.Scan, _ = f.GetBool("scan-env")
	}
	if f.Changed("env-key") {
		keys, _ := f.GetStringSlice("env-key")
		c.Environment.KeyPatterns = append(c.Environment.KeyPatterns, keys...)
	}
	if f.Changed("min-env-length") {
		c.Environment.MinValueLength, _ = f.GetInt("min-env-length")
	}
	if f.Changed("replacement") {
		c.Output.Replacement, _ = f.GetString("replacement")
	}
	if f.Changed("label") {
		c.Output.Labels, _ = f.GetBool("label")
	}
	return c.Validate()
}

// parsePatternFlag splits NAME=REGEX. The regex itself may contain '='.
func parsePatternFlag(val string) (config.PatternConfig, error) {
	name, expr, ok := strings.Cut(val, "=")
	if !ok || name == "" || expr == "" {
		return config.PatternConfig{}, fmt.Errorf("invalid --pattern %q: want NAME=REGEX", val)
	}
	return config.PatternConfig{Name: name, Regex: expr}, nil
}

// effectiveConfig returns a copy of the loaded config with command-line
// flags applied.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	merged := *config.DefaultConfig()
	if cfg != nil {
		merged = *cfg
		merged.Patterns = append([]config.PatternConfig{}, cfg.Patterns...)
		merged.Environment.KeyPatterns = append([]string{}, cfg.Environment.KeyPatterns...)
	}
	if err := applyEngineFlags(cmd, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// buildRedactor constructs the redactor from the effective config.
func buildRedactor(cmd *cobra.Command) (*redactor.Redactor, error) {
	merged, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}

	if names := merged.PatternNames(); len(names) < len(merged.Patterns) {
		ui.Warnf("Custom pattern names repeat (%d patterns, %d names); labels will be ambiguous", len(merged.Patterns), len(names))
	}

	r, err := redactor.New(merged.Options()...)
	if err != nil {
		return nil, err
	}
	if len(r.Patterns()) == 0 && len(r.EnvNames()) == 0 {
		ui.Warn("No patterns or environment values configured; input passes through unchanged")
	}
	ui.Debugf("Redactor ready: %d patterns, %d environment values", len(r.Patterns()), len(r.EnvNames()))
	if names := r.EnvNames(); len(names) > 0 {
		ui.Debugf("Environment variables redacted: %s", strings.Join(names, ", "))
	}
	return r, nil
}
