// Copyright (c) 2026 Micro SF Client
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/augustuswm/micro-sf-client/internal/keychain"
	"github.com/augustuswm/micro-sf-client/internal/terminal"
)

var (
	loginConfigPath string
)

// loginCmd stores the client secret and password in the OS keychain and
// verifies them by performing a token exchange. After a successful login
// the config file no longer needs to carry either secret.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Store and verify API credentials",
	Long: `The login command prompts for the connected app's client secret and the
account password, verifies them by performing an OAuth2 password-grant token
exchange against the configured login URL, and stores them in the OS
keychain. The non-secret settings (login_url, version, client_id, username)
still come from the config file.

The issued token itself is never persisted; each process run authenticates
fresh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(loginConfigPath)
		if err != nil {
			return presentError(err, "loading configuration")
		}

		clientSecret := cfg.ClientSecret
		if clientSecret == "" {
			clientSecret, err = promptSecret(fmt.Sprintf("Client secret for %s: ", cfg.ClientID))
			if err != nil {
				return err
			}
		}
		password := cfg.Password
		if password == "" {
			password, err = promptSecret(fmt.Sprintf("Password for %s: ", cfg.Username))
			if err != nil {
				return err
			}
		}

		cfg.ClientSecret = clientSecret
		cfg.Password = password

		client, err := newSessionClient(cfg)
		if err != nil {
			return presentError(err, "validating configuration")
		}

		stopSpinner := startInlineSpinner(os.Stderr, "Verifying credentials")
		err = client.Verify(cmd.Context())
		stopSpinner()
		if err != nil {
			return presentError(err, "verifying credentials")
		}

		km, err := keychain.GetManager()
		if err != nil {
			fmt.Println("⚠️  Credentials verified but secure storage is unavailable on this system.")
			fmt.Println("   Keep client_secret and password in your config file instead.")
			return err
		}
		if err := km.SaveSecrets(clientSecret, password); err != nil {
			return err
		}

		fmt.Printf("✅ Logged in as %s\n", cfg.Username)
		fmt.Println("   Secrets saved to the OS keychain.")
		return nil
	},
}

// promptSecret reads a secret from stdin and clears the prompt line
// afterwards so the value never lingers on screen.
func promptSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	value, _ := reader.ReadString('\n')
	value = strings.TrimSpace(value)

	terminal.ClearPreviousLines(len(prompt) + len(value))

	if value == "" {
		return "", errors.New("a value is required")
	}
	return value, nil
}

func init() {
	loginCmd.Flags().StringVarP(&loginConfigPath, "config", "c", "", "Path to config file (default: XDG config dir)")
	rootCmd.AddCommand(loginCmd)
}
