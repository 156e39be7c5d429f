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

// Package patterns holds the built-in catalogue of credential shapes and the
// default matchers used to decide which environment variables carry secrets.
//
// All expressions use Go's RE2 engine, so matching time is linear in the
// input regardless of the expression.
package patterns

import "regexp"

// Pattern is a named matcher for one credential shape.
type Pattern struct {
	Name   string
	Regexp *regexp.Regexp
}

// builtins is ordered: more specific shapes come before the generic ones
// that would otherwise claim the same span.
var builtins = []Pattern{
	{"anthropic-api-key", regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`)},
	{"openai-project-key", regexp.MustCompile(`sk-proj-[A-Za-z0-9_-]{20,}`)},
	{"openai-api-key", regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`)},
	{"aws-access-key-id", regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`)},
	{"aws-secret-access-key", regexp.MustCompile(`(?i)aws_?secret_?access_?key\s*[:=]\s*["']?[A-Za-z0-9/+=]{40}["']?`)},
	{"github-fine-grained-pat", regexp.MustCompile(`github_pat_[A-Za-z0-9_]{22,255}`)},
	{"github-token", regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36,255}`)},
	{"gitlab-pat", regexp.MustCompile(`glpat-[A-Za-z0-9_-]{20,}`)},
	{"slack-token", regexp.MustCompile(`xox[baprs]-[0-9A-Za-z-]{10,72}`)},
	{"slack-webhook", regexp.MustCompile(`https://hooks\.slack\.com/services/[A-Za-z0-9/_-]{20,}`)},
	{"stripe-key", regexp.MustCompile(`(?:sk|rk)_(?:live|test)_[0-9A-Za-z]{24,}`)},
	{"google-api-key", regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`)},
	{"sendgrid-api-key", regexp.MustCompile(`SG\.[A-Za-z0-9_-]{22}\.[A-Za-z0-9_-]{43}`)},
	{"npm-token", regexp.MustCompile(`npm_[A-Za-z0-9]{36}`)},
	{"pypi-token", regexp.MustCompile(`pypi-AgEIcHlwaS5vcmc[A-Za-z0-9_-]{50,}`)},
	{"jwt", regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`)},
	{"private-key", regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH |ENCRYPTED |PGP )?PRIVATE KEY(?: BLOCK)?-----`)},
	{"bearer-token", regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._~+/-]{20,}=*`)},
	// The context patterns below run last and must not start a value at '[',
	// or they would claim a replacement token inserted by an earlier pattern.
	{"url-credentials", regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]{1,20}://[^\s:/@]{1,128}:[^\s@/\[][^\s@/]{0,255}@`)},
	{"secret-assignment", regexp.MustCompile(`(?i)\b(?:password|passwd|secret|token|api_?key)\s*[:=]\s*["'][^"'\s\[][^"'\s]{7,}["']`)},
}

// Builtins returns a copy of the built-in catalogue in application order.
func Builtins() []Pattern {
	out := make([]Pattern, len(builtins))
	copy(out, builtins)
	return out
}

// Names returns the names of the given patterns in order.
func Names(ps []Pattern) []string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.Name)
	}
	return names
}
