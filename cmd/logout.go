// Copyright (c) 2026 Micro SF Client
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/augustuswm/micro-sf-client/internal/keychain"
)

// logoutCmd removes the stored secrets from the OS keychain. There is no
// remote session to invalidate: tokens are never persisted, so clearing the
// local secrets is the whole operation.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored credentials from the OS keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			fmt.Println("⚠️  Secure storage is not available on this system")
			return nil
		}
		if err := km.ClearSecrets(); err != nil {
			return err
		}
		fmt.Println("✅ Stored credentials have been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
