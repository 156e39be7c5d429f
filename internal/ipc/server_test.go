package ipc

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
)

func TestServerRoundTrip(t *testing.T) {
	srv, err := NewServer()
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	defer srv.Stop()

	srv.Handle("echo", func(req *Request) (interface{}, error) {
		var payload map[string]string
		json.Unmarshal(req.Payload, &payload)
		return payload, nil
	})
	srv.Start()

	// Connect and send a request.
	conn, err := net.Dial("unix", srv.SocketPath())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	req := Request{
		Type: "echo",
		ID:   "test-1",
	}
	payload, _ := json.Marshal(map[string]string{"msg": "hello"})
	req.Payload = payload
	data, _ := json.Marshal(req)
	conn.Write(append(data, '\n'))

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		t.Fatal("no response")
	}

	var resp Response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.Type != "echo" {
		t.Errorf("type = %q, want echo", resp.Type)
	}
	if resp.ID != "test-1" {
		t.Errorf("id = %q, want test-1", resp.ID)
	}

	raw, _ := json.Marshal(resp.Payload)
	var got map[string]string
	json.Unmarshal(raw, &got)
	if got["msg"] != "hello" {
		t.Errorf("payload msg = %q, want hello", got["msg"])
	}
}

func TestServerUnknownType(t *testing.T) {
	srv, err := NewServer()
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	defer srv.Stop()
	srv.Start()

	conn, err := net.Dial("unix", srv.SocketPath())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	req := Request{Type: "nonexistent", ID: "test-2"}
	data, _ := json.Marshal(req)
	conn.Write(append(data, '\n'))

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		t.Fatal("no response")
	}

	var resp Response
	json.Unmarshal(scanner.Bytes(), &resp)

	raw, _ := json.Marshal(resp.Payload)
	var payload ErrorResponse
	json.Unmarshal(raw, &payload)

	if payload.Error == "" {
		t.Error("expected error for unknown type")
	}
}

func TestServerInvalidJSON(t *testing.T) {
	srv, err := NewServer()
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	defer srv.Stop()
	srv.Start()

	conn, err := net.Dial("unix", srv.SocketPath())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	conn.Write([]byte("not json\n"))

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		t.Fatal("no response")
	}
	var resp Response
	json.Unmarshal(scanner.Bytes(), &resp)
	if resp.Type != "error" {
		t.Errorf("type = %q, want error", resp.Type)
	}
}

func TestListenReplacesStaleSocket(t *testing.T) {
	// Unix socket paths are length-limited; keep the directory short.
	dir, err := os.MkdirTemp("", "erx")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "r.sock")

	first, err := Listen(path)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	// Simulate a crash: close the listener without removing the file.
	first.listener.(*net.UnixListener).SetUnlinkOnClose(false)
	first.listener.Close()

	second, err := Listen(path)
	if err != nil {
		t.Fatalf("Listen over stale socket: %v", err)
	}
	second.Start()
	second.Stop()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("socket not removed on Stop: %v", err)
	}
}
