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
	"fmt"

	"github.com/cloud-exit/exitbox-redact/internal/config"
	"github.com/cloud-exit/exitbox-redact/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.ConfigExists() {
			ui.Infof("Config already exists at %s", config.ConfigFile())
			return nil
		}
		if err := config.EnsureDirs(); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err := config.WriteDefaults(); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		ui.Successf("Wrote %s", config.ConfigFile())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  "Print the loaded configuration with command-line flags applied.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		merged, err := effectiveConfig(cmd)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(merged)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the effective configuration to the config file",
	Long: `Write the loaded configuration with command-line flags applied to the config
file, replacing it. Comments in an existing file are not kept.`,
	Example: `  exitbox-redact config save --scan-env --env-key '*_DSN'`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		merged, err := effectiveConfig(cmd)
		if err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("config")
		if path != "" {
			err = config.SaveConfigTo(merged, path)
		} else {
			path = config.ConfigFile()
			if err = config.EnsureDirs(); err == nil {
				err = config.SaveConfig(merged)
			}
		}
		if err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		ui.Successf("Wrote %s", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.ConfigFile())
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd, configSaveCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
