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

// Package config loads and saves the exitbox-redact configuration file.
package config

// Config is the on-disk configuration (config.yaml).
type Config struct {
	Version         int               `yaml:"version"`
	DisableBuiltins bool              `yaml:"disable_builtins"`
	Patterns        []PatternConfig   `yaml:"patterns,omitempty"`
	Environment     EnvironmentConfig `yaml:"environment"`
	Output          OutputConfig      `yaml:"output"`
}

// PatternConfig is a user-supplied named regular expression.
type PatternConfig struct {
	Name  string `yaml:"name"`
	Regex string `yaml:"regex"`
}

// EnvironmentConfig controls redaction of environment variable values.
type EnvironmentConfig struct {
	Scan           bool     `yaml:"scan"`
	KeyPatterns    []string `yaml:"key_patterns,omitempty"` // globs, e.g. "*_DSN"
	MinValueLength int      `yaml:"min_value_length,omitempty"`
}

// OutputConfig controls what replaces a detected secret.
type OutputConfig struct {
	Replacement string `yaml:"replacement,omitempty"`
	Labels      bool   `yaml:"labels"`
}

// PatternNames returns the names of the user patterns, deduplicated, in order.
func (c *Config) PatternNames() []string {
	seen := make(map[string]struct{})
	var result []string
	for _, p := range c.Patterns {
		if _, ok := seen[p.Name]; !ok {
			seen[p.Name] = struct{}{}
			result = append(result, p.Name)
		}
	}
	return result
}
