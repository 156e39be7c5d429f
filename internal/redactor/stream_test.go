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
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(chunks ...string) <-chan string {
	in := make(chan string, len(chunks))
	for _, c := range chunks {
		in <- c
	}
	close(in)
	return in
}

func collect(t *testing.T, out <-chan string) []string {
	t.Helper()
	var got []string
	timeout := time.After(5 * time.Second)
	for {
		select {
		case c, ok := <-out:
			if !ok {
				return got
			}
			got = append(got, c)
		case <-timeout:
			t.Fatal("stream did not close")
		}
	}
}

func TestStream_RedactsEachChunk(t *testing.T) {
	r := newRedactor(t)

	out := r.Stream(context.Background(), feed(
		"first "+anthropicKey+"\n",
		"clean text\n",
		"last "+githubToken+"\n",
	))

	got := collect(t, out)
	assert.Equal(t, []string{
		"first [REDACTED]\n",
		"clean text\n",
		"last [REDACTED]\n",
	}, got)
}

func TestStream_SplitSecretNotDetected(t *testing.T) {
	r := newRedactor(t)

	got := collect(t, r.Stream(context.Background(), feed(
		"sk-ant-abcdefghij",
		"klmnopqrstuvwxyz",
	)))
	assert.Equal(t, []string{"sk-ant-abcdefghij", "klmnopqrstuvwxyz"}, got)
}

func TestStream_EmptyInput(t *testing.T) {
	r := newRedactor(t)

	assert.Empty(t, collect(t, r.Stream(context.Background(), feed())))
}

func TestStream_ContextCancel(t *testing.T) {
	r := newRedactor(t)
	ctx, cancel := context.WithCancel(context.Background())

	in := make(chan string)
	out := r.Stream(ctx, in)
	cancel()

	assert.Empty(t, collect(t, out))
}

func TestWriter_RedactsEachWrite(t *testing.T) {
	r := newRedactor(t, WithLabels())
	var buf bytes.Buffer
	w := r.NewWriter(&buf)

	p := []byte("token " + githubToken + "\n")
	n, err := w.Write(p)
	require.NoError(t, err)
	assert.Equal(t, len(p), n)

	_, err = io.WriteString(w, "nothing here\n")
	require.NoError(t, err)

	assert.Equal(t, "token [REDACTED:github-token]\nnothing here\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriter_PropagatesError(t *testing.T) {
	r := newRedactor(t)
	w := r.NewWriter(failingWriter{})

	n, err := w.Write([]byte("hello"))
	assert.Error(t, err)
	assert.Equal(t, 0, n)
}

func TestStreamResults_CarriesMetadata(t *testing.T) {
	r := newRedactor(t)

	out := r.StreamResults(context.Background(), feed("a "+anthropicKey, "plain"))

	first := <-out
	assert.Equal(t, 1, first.Count)
	assert.Equal(t, []string{"anthropic-api-key"}, first.Matched)

	second := <-out
	assert.Equal(t, 0, second.Count)
	assert.Equal(t, "plain", second.Text)

	_, ok := <-out
	assert.False(t, ok)
}
