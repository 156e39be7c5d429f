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

// Package ipc exposes a Redactor over a Unix domain socket using a
// JSON-lines protocol, so a sandboxed process can scrub text with secrets
// known only to the host.
package ipc

import "encoding/json"

// Message types.
const (
	TypeRedact     = "redact"
	TypeClean      = "clean"
	TypeHasSecrets = "has_secrets"
)

// Request is a message sent from the client to the host.
type Request struct {
	Type    string          `json:"type"`
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// Response is a message sent from the host back to the client.
type Response struct {
	Type    string      `json:"type"`
	ID      string      `json:"id"`
	Payload interface{} `json:"payload"`
}

// ErrorResponse is the payload for malformed or unknown requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TextRequest is the payload for "redact", "clean" and "has_secrets".
type TextRequest struct {
	Text string `json:"text"`
}

// RedactResponse is the payload for "redact" responses.
type RedactResponse struct {
	Text    string   `json:"text"`
	Count   int      `json:"count"`
	Matched []string `json:"matched"`
	Error   string   `json:"error,omitempty"`
}

// CleanResponse is the payload for "clean" responses.
type CleanResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// HasSecretsResponse is the payload for "has_secrets" responses.
type HasSecretsResponse struct {
	Found bool   `json:"found"`
	Error string `json:"error,omitempty"`
}
