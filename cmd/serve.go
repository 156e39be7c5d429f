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
	"os/signal"
	"syscall"

	"github.com/cloud-exit/exitbox-redact/internal/config"
	"github.com/cloud-exit/exitbox-redact/internal/ipc"
	"github.com/cloud-exit/exitbox-redact/internal/ui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve redaction over a Unix socket",
	Long: `Listen on a Unix domain socket and answer JSON-lines redact, clean and
has_secrets requests. Mount the socket into a sandbox and use exitbox-scrub
there, so the environment values being redacted never enter the sandbox.

exitbox-scrub looks for the socket at $EXITBOX_REDACT_SOCKET, then at
/run/exitbox/redact.sock (the mount point inside a sandbox), then at this
command's default path. For example:

  exitbox-redact serve &
  docker run -v "$XDG_RUNTIME_DIR/exitbox-redact.sock:/run/exitbox/redact.sock" ...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := buildRedactor(cmd)
		if err != nil {
			return err
		}

		socket, _ := cmd.Flags().GetString("socket")
		srv, err := ipc.Listen(socket)
		if err != nil {
			return err
		}
		ipc.Register(srv, r)
		srv.Start()
		defer srv.Stop()

		ui.Infof("Listening on %s", srv.SocketPath())

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		ui.Info("Shutting down")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("socket", config.SocketFile(), "Socket path")
	rootCmd.AddCommand(serveCmd)
}
