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
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/cloud-exit/exitbox-redact/internal/ui"
)

// maxLineSize bounds a single request line.
const maxLineSize = 4 << 20

// HandlerFunc processes an IPC request and returns a response payload.
type HandlerFunc func(req *Request) (interface{}, error)

// Server listens on a Unix domain socket and dispatches JSON-lines messages.
// A connection may carry any number of requests; each is answered in order.
type Server struct {
	socketDir  string // removed on Stop when the server created it
	socketPath string
	listener   net.Listener
	handlers   map[string]HandlerFunc
	done       chan struct{}
	wg         sync.WaitGroup
}

// NewServer creates a new IPC server with a temporary socket directory.
func NewServer() (*Server, error) {
	dir, err := os.MkdirTemp("", "exitbox-redact-*")
	if err != nil {
		return nil, err
	}
	s, err := listen(filepath.Join(dir, "redact.sock"))
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	s.socketDir = dir
	return s, nil
}

// Listen creates a server on socketPath. A stale socket file left by a
// previous run is removed first.
func Listen(socketPath string) (*Server, error) {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0700); err != nil {
		return nil, err
	}
	if fi, err := os.Lstat(socketPath); err == nil && fi.Mode()&os.ModeSocket != 0 {
		os.Remove(socketPath)
	}
	return listen(socketPath)
}

func listen(socketPath string) (*Server, error) {
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, err
	}

	// Allow a non-root sandbox user to connect.
	if err := os.Chmod(socketPath, 0666); err != nil {
		listener.Close()
		return nil, err
	}

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		handlers:   make(map[string]HandlerFunc),
		done:       make(chan struct{}),
	}, nil
}

// Handle registers a handler for a message type.
func (s *Server) Handle(msgType string, h HandlerFunc) {
	s.handlers[msgType] = h
}

// Start begins accepting connections in a background goroutine.
func (s *Server) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.done:
					return
				default:
					ui.Debugf("ipc accept: %v", err)
					continue
				}
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.handleConnection(conn)
			}()
		}
	}()
}

// Stop closes the listener, waits for goroutines, and removes the socket.
func (s *Server) Stop() {
	close(s.done)
	s.listener.Close()
	s.wg.Wait()
	if s.socketDir != "" {
		os.RemoveAll(s.socketDir)
	} else {
		os.Remove(s.socketPath)
	}
}

// SocketPath returns the path clients connect to.
func (s *Server) SocketPath() string {
	return s.socketPath
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	// Unblock the scanner when the server stops.
	closed := make(chan struct{})
	defer close(closed)
	go func() {
		select {
		case <-s.done:
			conn.Close()
		case <-closed:
		}
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		resp := s.dispatch(scanner.Bytes())
		data, _ := json.Marshal(resp)
		if _, err := conn.Write(append(data, '\n')); err != nil {
			ui.Debugf("ipc write: %v", err)
			return
		}
	}
	if err := scanner.Err(); err != nil {
		ui.Debugf("ipc read: %v", err)
	}
}

func (s *Server) dispatch(line []byte) Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return Response{Type: "error", Payload: ErrorResponse{Error: "invalid request"}}
	}

	handler, ok := s.handlers[req.Type]
	if !ok {
		return Response{
			Type:    req.Type,
			ID:      req.ID,
			Payload: ErrorResponse{Error: "unknown message type: " + req.Type},
		}
	}

	resp := Response{Type: req.Type, ID: req.ID}
	payload, err := handler(&req)
	if err != nil {
		resp.Payload = ErrorResponse{Error: err.Error()}
	} else {
		resp.Payload = payload
	}
	return resp
}
