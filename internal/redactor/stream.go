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
	"context"
	"io"
)

// Stream redacts each chunk received on in and sends the cleaned chunk on the
// returned channel, preserving order. Chunks are handled in isolation, so a
// secret split across two chunks is not detected. The output channel is
// closed when in is closed or ctx is done.
func (r *Redactor) Stream(ctx context.Context, in <-chan string) <-chan string {
	return mapChunks(ctx, in, r.Clean)
}

// StreamResults is like Stream but emits the full Result for each chunk.
func (r *Redactor) StreamResults(ctx context.Context, in <-chan string) <-chan Result {
	return mapChunks(ctx, in, r.Redact)
}

func mapChunks[T any](ctx context.Context, in <-chan string, fn func(string) T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case chunk, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- fn(chunk):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Writer redacts every Write before passing it to the underlying writer.
type Writer struct {
	r *Redactor
	w io.Writer
}

// NewWriter wraps w. Each call to Write is treated as one chunk.
func (r *Redactor) NewWriter(w io.Writer) *Writer {
	return &Writer{r: r, w: w}
}

// Write redacts p and writes the result. On success it reports len(p), not
// the length of the redacted text, so callers such as io.Copy do not treat
// the length change as a short write.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if _, err := io.WriteString(w.w, w.r.Clean(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}
