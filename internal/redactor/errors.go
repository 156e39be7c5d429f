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

package redactor

import "fmt"

// ConfigurationError is returned by New when an option cannot be applied.
type ConfigurationError struct {
	Source string // "pattern", "env_key_pattern" or "min_env_value_length"
	Name   string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid %s %q: %v", e.Source, e.Name, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
