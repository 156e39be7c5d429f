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

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cloud-exit/exitbox-redact/internal/redactor"
	"github.com/cloud-exit/exitbox-redact/internal/ui"
	"github.com/spf13/cobra"
)

var redactCmd = &cobra.Command{
	Use:   "redact [FILE...]",
	Short: "Redact secrets from files or stdin",
	Long: `Read text line by line from the given files (or stdin) and write it to stdout
with every detected secret replaced.

Each line is redacted on its own, so a secret broken across lines is not detected.`,
	Example: `  some-tool 2>&1 | exitbox-redact
  exitbox-redact --scan-env --label build.log`,
	RunE: runRedact,
}

func init() {
	addRedactFlags(redactCmd)
	rootCmd.AddCommand(redactCmd)
}

// addRedactFlags registers the redact flags. The root command gets them too
// because it runs redact when no subcommand is given.
func addRedactFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("stats", false, "Print a summary of redactions to stderr")
}

// summary accumulates Result metadata across chunks.
type summary struct {
	count   int
	matched []string
	seen    map[string]bool
}

func (s *summary) add(res redactor.Result) {
	s.count += res.Count
	for _, m := range res.Matched {
		if !s.seen[m] {
			s.seen[m] = true
			s.matched = append(s.matched, m)
		}
	}
}

func runRedact(cmd *cobra.Command, args []string) error {
	r, err := buildRedactor(cmd)
	if err != nil {
		return err
	}
	stats, _ := cmd.Flags().GetBool("stats")

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	sum := &summary{seen: make(map[string]bool)}
	if len(args) == 0 {
		if ui.StdinIsTerminal() {
			ui.Info("Reading from terminal, end input with Ctrl-D")
		}
		if err := redactStream(cmd.Context(), r, cmd.InOrStdin(), out, sum); err != nil {
			return err
		}
	}
	for _, path := range args {
		if err := redactFile(cmd.Context(), r, path, out, sum); err != nil {
			return err
		}
	}

	if err := out.Flush(); err != nil {
		return err
	}
	if stats {
		if sum.count == 0 {
			ui.Success("No secrets found")
		} else {
			ui.Infof("Redacted %d secret(s): %s", sum.count, strings.Join(sum.matched, ", "))
		}
	}
	return nil
}

func redactFile(ctx context.Context, r *redactor.Redactor, path string, out io.Writer, sum *summary) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	ui.Debugf("Redacting %s", path)
	if err := redactStream(ctx, r, f, out, sum); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// redactStream feeds in line by line through the redactor and writes the
// cleaned lines to out in order.
func redactStream(ctx context.Context, r *redactor.Redactor, in io.Reader, out io.Writer, sum *summary) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chunks := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(chunks)
		readErr <- readLines(ctx, in, chunks)
	}()

	for res := range r.StreamResults(ctx, chunks) {
		sum.add(res)
		if _, err := io.WriteString(out, res.Text); err != nil {
			return err
		}
	}
	return <-readErr
}

// readLines sends each line of in, newline included, on chunks.
func readLines(ctx context.Context, in io.Reader, chunks chan<- string) error {
	br := bufio.NewReader(in)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			select {
			case chunks <- line:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
