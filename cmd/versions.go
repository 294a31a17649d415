// Copyright (c) 2026 Micro SF Client
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	versionsConfigPath string
)

// versionsCmd lists the API versions the configured instance exposes at the
// record-query service root. Helpful when deciding what to put in the
// config's version field.
var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List API versions exposed by the instance",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(versionsConfigPath)
		if err != nil {
			return presentError(err, "loading configuration")
		}
		cfg, err = resolveSecrets(cfg)
		if err != nil {
			return presentError(err, "resolving credentials")
		}
		client, err := newSessionClient(cfg)
		if err != nil {
			return presentError(err, "validating configuration")
		}

		stopSpinner := startInlineSpinner(os.Stderr, "Fetching API versions")
		versions, err := client.Versions(cmd.Context())
		stopSpinner()
		if err != nil {
			return presentError(err, "fetching API versions")
		}

		if len(versions) == 0 {
			pterm.Println("The instance reported no API versions.")
			return nil
		}

		rows := pterm.TableData{{"Version", "Label", "URL"}}
		for _, v := range versions {
			marker := v.Version
			if v.Version == cfg.Version || "v"+v.Version == cfg.Version {
				marker = v.Version + " (configured)"
			}
			rows = append(rows, []string{marker, v.Label, v.URL})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}

func init() {
	versionsCmd.Flags().StringVarP(&versionsConfigPath, "config", "c", "", "Path to config file (default: XDG config dir)")
	rootCmd.AddCommand(versionsCmd)
}
