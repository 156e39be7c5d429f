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

package patterns

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// EnvKeyMatcher tests environment variable names (never values) to decide
// whether a variable's value should be treated as a literal secret.
// Matching is case-insensitive.
type EnvKeyMatcher struct {
	pattern string
	g       glob.Glob
}

// CompileEnvKeyMatcher compiles a glob such as "*_TOKEN" or "AUTH*".
func CompileEnvKeyMatcher(pattern string) (EnvKeyMatcher, error) {
	p := strings.ToUpper(strings.TrimSpace(pattern))
	if p == "" {
		return EnvKeyMatcher{}, fmt.Errorf("empty env key pattern")
	}
	g, err := glob.Compile(p)
	if err != nil {
		return EnvKeyMatcher{}, fmt.Errorf("compile env key pattern %q: %w", pattern, err)
	}
	return EnvKeyMatcher{pattern: p, g: g}, nil
}

// MustCompileEnvKeyMatcher is like CompileEnvKeyMatcher but panics on error.
func MustCompileEnvKeyMatcher(pattern string) EnvKeyMatcher {
	m, err := CompileEnvKeyMatcher(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether the variable name matches.
func (m EnvKeyMatcher) Match(name string) bool {
	if m.g == nil {
		return false
	}
	return m.g.Match(strings.ToUpper(name))
}

func (m EnvKeyMatcher) String() string {
	return m.pattern
}

var defaultEnvKeyMatchers = []EnvKeyMatcher{
	MustCompileEnvKeyMatcher("*_KEY"),
	MustCompileEnvKeyMatcher("*_TOKEN"),
	MustCompileEnvKeyMatcher("*_SECRET"),
	MustCompileEnvKeyMatcher("*_PASSWORD"),
	MustCompileEnvKeyMatcher("*_CREDENTIAL"),
	MustCompileEnvKeyMatcher("*_CREDENTIALS"),
	MustCompileEnvKeyMatcher("*_API_KEY"),
	MustCompileEnvKeyMatcher("AUTH*"),
}

// DefaultEnvKeyMatchers returns a copy of the default name matchers.
func DefaultEnvKeyMatchers() []EnvKeyMatcher {
	out := make([]EnvKeyMatcher, len(defaultEnvKeyMatchers))
	copy(out, defaultEnvKeyMatchers)
	return out
}

// IsSensitiveKey reports whether any matcher accepts the variable name.
func IsSensitiveKey(name string, matchers []EnvKeyMatcher) bool {
	for _, m := range matchers {
		if m.Match(name) {
			return true
		}
	}
	return false
}
