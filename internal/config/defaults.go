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

package config

import (
	"errors"
	"fmt"

	"github.com/cloud-exit/exitbox-redact/internal/redactor"
)

func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Environment: EnvironmentConfig{
			Scan:           false,
			MinValueLength: redactor.DefaultMinEnvValueLength,
		},
		Output: OutputConfig{
			Replacement: redactor.DefaultReplacement,
		},
	}
}

var errMissingField = errors.New("missing field")

// Validate checks the fields that cannot be checked by the redactor itself.
// Regular expressions are compiled later by redactor.New.
func (c *Config) Validate() error {
	for i, p := range c.Patterns {
		if p.Name == "" {
			return fmt.Errorf("patterns[%d]: name: %w", i, errMissingField)
		}
		if p.Regex == "" {
			return fmt.Errorf("patterns[%d] (%s): regex: %w", i, p.Name, errMissingField)
		}
	}
	if c.Environment.MinValueLength < 0 {
		return fmt.Errorf("environment.min_value_length must not be negative")
	}
	return nil
}

// Options converts the file configuration into redactor options. Zero values
// fall back to the redactor defaults.
func (c *Config) Options() []redactor.Option {
	var opts []redactor.Option
	if c.DisableBuiltins {
		opts = append(opts, redactor.WithoutBuiltins())
	}
	for _, p := range c.Patterns {
		opts = append(opts, redactor.WithPattern(p.Name, p.Regex))
	}
	if c.Environment.Scan {
		opts = append(opts, redactor.WithEnvScan())
	}
	if len(c.Environment.KeyPatterns) > 0 {
		opts = append(opts, redactor.WithEnvKeyMatchers(c.Environment.KeyPatterns...))
	}
	if c.Environment.MinValueLength > 0 {
		opts = append(opts, redactor.WithMinEnvValueLength(c.Environment.MinValueLength))
	}
	if c.Output.Replacement != "" {
		opts = append(opts, redactor.WithReplacement(c.Output.Replacement))
	}
	if c.Output.Labels {
		opts = append(opts, redactor.WithLabels())
	}
	return opts
}
