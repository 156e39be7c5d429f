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

// exitbox-scrub redacts text from inside a sandbox by asking the host's
// exitbox-redact server, so the secret values themselves never have to be
// present in the sandbox. It communicates via a Unix domain socket using the
// JSON-lines protocol.
//
// Usage:
//
//	some-command | exitbox-scrub          # prints redacted output
//	exitbox-scrub check < file            # exit 1 if the input holds secrets
package main

import (
	"bufio"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/cloud-exit/exitbox-redact/internal/config"
)

const maxLine = 4 * 1024 * 1024

type request struct {
	Type    string      `json:"type"`
	ID      string      `json:"id"`
	Payload interface{} `json:"payload"`
}

type response struct {
	Type    string          `json:"type"`
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

type textPayload struct {
	Text string `json:"text"`
}

type cleanResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

type hasSecretsResponse struct {
	Found bool   `json:"found"`
	Error string `json:"error,omitempty"`
}

func main() {
	var err error
	switch {
	case len(os.Args) < 2:
		err = cmdScrub(os.Stdin, os.Stdout)
	case os.Args[1] == "check":
		var found bool
		found, err = cmdCheck(os.Stdin)
		if err == nil && found {
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  some-command | exitbox-scrub      # prints redacted output")
	fmt.Fprintln(os.Stderr, "  exitbox-scrub check < FILE        # exit 1 if the input holds secrets")
}

// client holds one connection for the lifetime of the process.
type client struct {
	conn    net.Conn
	scanner *bufio.Scanner
}

// sandboxSocket is where the host socket is expected to be mounted.
const sandboxSocket = "/run/exitbox/redact.sock"

// socketCandidates lists the paths tried in order. EXITBOX_REDACT_SOCKET, when
// set, is the only candidate. Otherwise the sandbox mount point is tried
// before the host default used by "exitbox-redact serve".
func socketCandidates() []string {
	if v := os.Getenv("EXITBOX_REDACT_SOCKET"); v != "" {
		return []string{v}
	}
	return []string{sandboxSocket, config.SocketFile()}
}

func dial() (*client, error) {
	candidates := socketCandidates()
	for _, path := range candidates {
		conn, err := net.Dial("unix", path)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(conn)
		scanner.Buffer(make([]byte, 64*1024), maxLine)
		return &client{conn: conn, scanner: scanner}, nil
	}
	return nil, fmt.Errorf("redaction socket not available at %s; is exitbox-redact serve running?", strings.Join(candidates, " or "))
}

func (c *client) send(reqType string, payload interface{}) (*response, error) {
	id := randomID()
	data, err := json.Marshal(request{Type: reqType, ID: id, Payload: payload})
	if err != nil {
		return nil, err
	}
	data = append(data, '\n')
	if _, err := c.conn.Write(data); err != nil {
		return nil, err
	}

	if !c.scanner.Scan() {
		if scanErr := c.scanner.Err(); scanErr != nil {
			return nil, scanErr
		}
		return nil, fmt.Errorf("no response from host")
	}

	var resp response
	if err := json.Unmarshal(c.scanner.Bytes(), &resp); err != nil {
		return nil, err
	}
	if resp.ID != id {
		return nil, fmt.Errorf("response id %q does not match request %q", resp.ID, id)
	}
	return &resp, nil
}

// cmdScrub sends in line by line and writes each cleaned line to out.
func cmdScrub(in io.Reader, out io.Writer) error {
	c, err := dial()
	if err != nil {
		return err
	}
	defer c.conn.Close()

	br := bufio.NewReader(in)
	for {
		line, readErr := br.ReadString('\n')
		if line != "" {
			resp, err := c.send("clean", textPayload{Text: line})
			if err != nil {
				return err
			}
			var payload cleanResponse
			if err := json.Unmarshal(resp.Payload, &payload); err != nil {
				return err
			}
			if payload.Error != "" {
				return errors.New(payload.Error)
			}
			if _, err := io.WriteString(out, payload.Text); err != nil {
				return err
			}
		}
		if errors.Is(readErr, io.EOF) {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

func cmdCheck(in io.Reader) (bool, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return false, err
	}

	c, err := dial()
	if err != nil {
		return false, err
	}
	defer c.conn.Close()

	resp, err := c.send("has_secrets", textPayload{Text: string(data)})
	if err != nil {
		return false, err
	}
	var payload hasSecretsResponse
	if err := json.Unmarshal(resp.Payload, &payload); err != nil {
		return false, err
	}
	if payload.Error != "" {
		return false, errors.New(payload.Error)
	}
	return payload.Found, nil
}

func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%x", b)
}
