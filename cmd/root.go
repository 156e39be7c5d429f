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
	"os"

	"github.com/cloud-exit/exitbox-redact/internal/config"
	"github.com/cloud-exit/exitbox-redact/internal/ui"
	"github.com/spf13/cobra"
)

// Version is set by ldflags at build time.
var Version = "0.1.0"

// cfg is the configuration loaded before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "exitbox-redact",
	Short: "Scrub secrets from text before it reaches an agent",
	Long: `exitbox-redact replaces API keys, tokens and passwords in text with a placeholder.

Built-in patterns cover common credential formats. The values of secret-looking
environment variables can also be redacted (--scan-env).`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, _ := cmd.Flags().GetBool("verbose")
		ui.Verbose = v

		path, _ := cmd.Flags().GetString("config")
		loaded, err := loadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	RunE:          runRedact,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "exitbox-redact version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default "+config.ConfigFile()+")")
	addEngineFlags(rootCmd)
	addRedactFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)

	rootCmd.SetVersionTemplate("exitbox-redact version {{.Version}}\n")
	rootCmd.Version = Version
}

// loadConfig reads an explicit config path, or the default file when it
// exists. A missing default file is not an error.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		c, err := config.LoadConfigFrom(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return c, nil
	}
	c, err := config.LoadConfig()
	if errors.Is(err, os.ErrNotExist) {
		ui.Debugf("No config at %s, using defaults", config.ConfigFile())
		return config.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return c, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSecretsFound) {
			ui.ErrorNoExit(err.Error())
		}
		os.Exit(1)
	}
}
