package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/augustuswm/micro-sf-client/internal/httperrors"
)

var (
	whoamiConfigPath string
	whoamiVerify     bool
)

// whoamiCmd shows the configured identity and optionally verifies that the
// credentials are still accepted by performing a token exchange.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the configured account",
	Long: `The whoami command displays the username and login host from the current
configuration. With --verify it additionally performs a token exchange to
confirm the credentials are still accepted by the login service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(whoamiConfigPath)
		if err != nil {
			fmt.Println("🔒 No usable configuration found!")
			fmt.Println("   Create a config file or pass one with --config.")
			return nil
		}

		fmt.Printf("Account: %s\n", cfg.Username)
		fmt.Printf("Host:    %s\n", httperrors.ExtractHostFromURL(cfg.LoginURL))

		if !whoamiVerify {
			return nil
		}

		cfg, err = resolveSecrets(cfg)
		if err != nil {
			return presentError(err, "resolving credentials")
		}
		client, err := newSessionClient(cfg)
		if err != nil {
			return presentError(err, "validating configuration")
		}

		stopSpinner := startInlineSpinner(os.Stderr, "Checking credentials")
		err = client.Verify(cmd.Context())
		stopSpinner()
		if err != nil {
			return presentError(err, "checking credentials")
		}

		fmt.Printf("✅ Credentials accepted; instance: %s\n", client.Token().InstanceURL)
		return nil
	},
}

func init() {
	whoamiCmd.Flags().StringVarP(&whoamiConfigPath, "config", "c", "", "Path to config file (default: XDG config dir)")
	whoamiCmd.Flags().BoolVar(&whoamiVerify, "verify", false, "Verify the credentials with a token exchange")
	rootCmd.AddCommand(whoamiCmd)
}
