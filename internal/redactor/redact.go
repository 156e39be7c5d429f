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

// Package redactor replaces credential-shaped substrings in text before it is
// handed to an agent. A Redactor applies its pattern catalogue first and then
// the literal values of secret-bearing environment variables captured at
// construction time.
package redactor

import (
	"os"
	"sort"
	"strings"

	"github.com/cloud-exit/exitbox-redact/internal/patterns"
)

const (
	// DefaultReplacement is substituted for every secret unless labels are on.
	DefaultReplacement = "[REDACTED]"
	// DefaultMinEnvValueLength is the shortest env value treated as a secret.
	DefaultMinEnvValueLength = 8
)

// Result is the outcome of a single Redact call.
type Result struct {
	Text    string   `json:"text"`
	Count   int      `json:"count"`
	Matched []string `json:"matched"`
}

// envLiteral is one secret value and the variable it came from.
type envLiteral struct {
	value string
	name  string
}

// Redactor holds a frozen configuration. It is safe for concurrent use.
type Redactor struct {
	patterns    []patterns.Pattern
	literals    []envLiteral // longest value first
	replacement string
	labels      bool
}

// New builds a Redactor. The environment, if requested, is read once here.
func New(opts ...Option) (*Redactor, error) {
	o := options{
		builtins:    true,
		minEnvLen:   DefaultMinEnvValueLength,
		replacement: DefaultReplacement,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.minEnvLen < 1 {
		return nil, &ConfigurationError{
			Source: "min_env_value_length",
			Err:    errMinEnvLength,
		}
	}

	r := &Redactor{
		replacement: o.replacement,
		labels:      o.labels,
	}
	if o.builtins {
		r.patterns = patterns.Builtins()
	}
	r.patterns = append(r.patterns, o.custom...)

	env := o.env
	if o.scanProcessEnv {
		env = os.Environ()
	}
	if env != nil {
		matchers := append(patterns.DefaultEnvKeyMatchers(), o.keyMatchers...)
		r.literals = collectLiterals(env, matchers, o.minEnvLen)
	}
	return r, nil
}

// collectLiterals builds the value -> name table from KEY=VALUE pairs. When
// two variables share a value the last one wins.
func collectLiterals(env []string, matchers []patterns.EnvKeyMatcher, minLen int) []envLiteral {
	byValue := make(map[string]string)
	for _, kv := range env {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || key == "" || len(val) < minLen {
			continue
		}
		if !patterns.IsSensitiveKey(key, matchers) {
			continue
		}
		byValue[val] = key
	}

	lits := make([]envLiteral, 0, len(byValue))
	for v, k := range byValue {
		lits = append(lits, envLiteral{value: v, name: k})
	}
	sort.Slice(lits, func(i, j int) bool {
		if len(lits[i].value) != len(lits[j].value) {
			return len(lits[i].value) > len(lits[j].value)
		}
		return lits[i].value < lits[j].value
	})
	return lits
}

// Redact replaces every detected secret in input. The pattern layer runs
// first; the environment layer only sees what the pattern layer left.
func (r *Redactor) Redact(input string) Result {
	res := Result{Text: input, Matched: []string{}}
	seen := make(map[string]bool)
	record := func(label string, n int) {
		res.Count += n
		if !seen[label] {
			seen[label] = true
			res.Matched = append(res.Matched, label)
		}
	}

	for _, p := range r.patterns {
		token := r.token(p.Name)
		n := 0
		res.Text = p.Regexp.ReplaceAllStringFunc(res.Text, func(m string) string {
			if m == "" {
				return m
			}
			n++
			return token
		})
		if n > 0 {
			record(p.Name, n)
		}
	}

	for _, lit := range r.literals {
		n := strings.Count(res.Text, lit.value)
		if n == 0 {
			continue
		}
		label := "env:" + lit.name
		res.Text = strings.ReplaceAll(res.Text, lit.value, r.token(label))
		record(label, n)
	}

	return res
}

// Clean returns only the redacted text.
func (r *Redactor) Clean(input string) string {
	return r.Redact(input).Text
}

// HasSecrets reports whether Redact would replace anything. It runs a full
// redaction pass.
func (r *Redactor) HasSecrets(input string) bool {
	return r.Redact(input).Count > 0
}

// Patterns returns the configured pattern names in application order.
func (r *Redactor) Patterns() []string {
	return patterns.Names(r.patterns)
}

// EnvNames returns the sorted names of variables whose values are redacted.
func (r *Redactor) EnvNames() []string {
	names := make([]string, 0, len(r.literals))
	for _, lit := range r.literals {
		names = append(names, lit.name)
	}
	sort.Strings(names)
	return names
}

func (r *Redactor) token(label string) string {
	if r.labels {
		return "[REDACTED:" + label + "]"
	}
	return r.replacement
}
