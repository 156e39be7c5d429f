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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cloud-exit/exitbox-redact/internal/redactor"
	"github.com/cloud-exit/exitbox-redact/internal/ui"
	"github.com/spf13/cobra"
)

// errSecretsFound makes check exit non-zero without an error message.
var errSecretsFound = errors.New("secrets found")

var checkCmd = &cobra.Command{
	Use:   "check [FILE...]",
	Short: "Exit non-zero if any input contains secrets",
	Long: `Scan files (or stdin) and report which patterns or environment variables
matched. Secret values are never printed. Exits 1 when anything is found.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolP("quiet", "q", false, "Print nothing, only set the exit status")
	rootCmd.AddCommand(checkCmd)
}

// checkReport is one line of check output.
type checkReport struct {
	source string
	result redactor.Result
}

func runCheck(cmd *cobra.Command, args []string) error {
	r, err := buildRedactor(cmd)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	var reports []checkReport
	if len(args) == 0 {
		rep, err := checkReader(r, "<stdin>", cmd.InOrStdin())
		if err != nil {
			return err
		}
		reports = append(reports, rep)
	}
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		rep, err := checkReader(r, path, f)
		f.Close()
		if err != nil {
			return err
		}
		reports = append(reports, rep)
	}

	found := false
	for _, rep := range reports {
		if rep.result.Count == 0 {
			continue
		}
		found = true
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), formatReport(rep))
		}
	}
	if found {
		return errSecretsFound
	}
	if !quiet {
		ui.Success("No secrets found")
	}
	return nil
}

func checkReader(r *redactor.Redactor, source string, in io.Reader) (checkReport, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return checkReport{}, fmt.Errorf("%s: %w", source, err)
	}
	return checkReport{source: source, result: r.Redact(string(data))}, nil
}

func formatReport(rep checkReport) string {
	return fmt.Sprintf("%s: %s %s",
		rep.source,
		ui.AlertStyle.Render(fmt.Sprintf("%d secret(s)", rep.result.Count)),
		ui.DimStyle.Render(strings.Join(rep.result.Matched, ", ")))
}
