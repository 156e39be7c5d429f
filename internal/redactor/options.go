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

import (
	"errors"
	"regexp"

	"github.com/cloud-exit/exitbox-redact/internal/patterns"
)

// Option configures a Redactor at construction time.
type Option func(*options)

type options struct {
	builtins       bool
	custom         []patterns.Pattern
	scanProcessEnv bool
	env            []string
	keyMatchers    []patterns.EnvKeyMatcher
	minEnvLen      int
	replacement    string
	labels         bool

	// err is the first configuration error; later options are still applied
	// but New reports this one.
	err error
}

func (o *options) fail(err error) {
	if o.err == nil {
		o.err = err
	}
}

// WithoutBuiltins drops the built-in pattern catalogue.
func WithoutBuiltins() Option {
	return func(o *options) {
		o.builtins = false
	}
}

// WithPattern compiles expr and appends it after the built-ins.
func WithPattern(name, expr string) Option {
	return func(o *options) {
		re, err := regexp.Compile(expr)
		if err != nil {
			o.fail(&ConfigurationError{Source: "pattern", Name: name, Err: err})
			return
		}
		o.custom = append(o.custom, patterns.Pattern{Name: name, Regexp: re})
	}
}

// WithPatterns appends already compiled patterns after the built-ins.
func WithPatterns(ps ...patterns.Pattern) Option {
	return func(o *options) {
		for _, p := range ps {
			if p.Regexp == nil {
				o.fail(&ConfigurationError{Source: "pattern", Name: p.Name, Err: errNilRegexp})
				continue
			}
			o.custom = append(o.custom, p)
		}
	}
}

// WithEnvScan snapshots the process environment when New runs.
func WithEnvScan() Option {
	return func(o *options) {
		o.scanProcessEnv = true
	}
}

// WithEnvironment uses env (KEY=VALUE pairs) instead of the process
// environment.
func WithEnvironment(env []string) Option {
	return func(o *options) {
		o.scanProcessEnv = false
		o.env = append([]string{}, env...)
	}
}

// WithEnvKeyMatchers adds name globs to the default sensitive-name set.
func WithEnvKeyMatchers(globs ...string) Option {
	return func(o *options) {
		for _, g := range globs {
			m, err := patterns.CompileEnvKeyMatcher(g)
			if err != nil {
				o.fail(&ConfigurationError{Source: "env_key_pattern", Name: g, Err: err})
				continue
			}
			o.keyMatchers = append(o.keyMatchers, m)
		}
	}
}

// WithMinEnvValueLength sets the shortest env value eligible for redaction.
func WithMinEnvValueLength(n int) Option {
	return func(o *options) {
		o.minEnvLen = n
	}
}

// WithReplacement sets the plain replacement token.
func WithReplacement(token string) Option {
	return func(o *options) {
		o.replacement = token
	}
}

// WithLabels substitutes [REDACTED:<label>] instead of the plain token.
func WithLabels() Option {
	return func(o *options) {
		o.labels = true
	}
}

var (
	errNilRegexp    = errors.New("nil regexp")
	errMinEnvLength = errors.New("must be at least 1")
)
