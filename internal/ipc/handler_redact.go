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

package ipc

import (
	"encoding/json"

	"github.com/cloud-exit/exitbox-redact/internal/redactor"
)

// Register installs the redact, clean and has_secrets handlers for r.
func Register(s *Server, r *redactor.Redactor) {
	s.Handle(TypeRedact, NewRedactHandler(r))
	s.Handle(TypeClean, NewCleanHandler(r))
	s.Handle(TypeHasSecrets, NewHasSecretsHandler(r))
}

// NewRedactHandler returns a HandlerFunc for "redact" requests.
func NewRedactHandler(r *redactor.Redactor) HandlerFunc {
	return func(req *Request) (interface{}, error) {
		var payload TextRequest
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return RedactResponse{Error: "invalid payload"}, nil
		}
		res := r.Redact(payload.Text)
		return RedactResponse{Text: res.Text, Count: res.Count, Matched: res.Matched}, nil
	}
}

// NewCleanHandler returns a HandlerFunc for "clean" requests.
func NewCleanHandler(r *redactor.Redactor) HandlerFunc {
	return func(req *Request) (interface{}, error) {
		var payload TextRequest
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return CleanResponse{Error: "invalid payload"}, nil
		}
		return CleanResponse{Text: r.Clean(payload.Text)}, nil
	}
}

// NewHasSecretsHandler returns a HandlerFunc for "has_secrets" requests.
func NewHasSecretsHandler(r *redactor.Redactor) HandlerFunc {
	return func(req *Request) (interface{}, error) {
		var payload TextRequest
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return HasSecretsResponse{Error: "invalid payload"}, nil
		}
		return HasSecretsResponse{Found: r.HasSecrets(payload.Text)}, nil
	}
}
