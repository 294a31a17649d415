// Copyright (c) 2026 Micro SF Client
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/augustuswm/micro-sf-client/internal/session"
)

var (
	queryConfigPath string
	queryText       string
	queryAttempts   int
	queryRawJSON    bool
)

// queryCmd runs a single query against the configured instance. It
// authenticates when no token is cached, retries transient failures up to
// the attempt budget, and re-authenticates automatically when the backend
// rejects the token with a 401.
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a query against the record-query API",
	Long: `The query command authenticates using the OAuth2 password grant and runs
the supplied query against the instance named by the issued token. The token
is cached for the lifetime of the process and replaced automatically when
the backend reports it expired.

Connection settings are read from the config file (see --config); the client
secret and password may instead come from the OS keychain after
'microsf login'.`,
	Example: `  microsf query -q "SELECT Id, Name FROM Account"
  microsf query -c ./config.toml -q "SELECT Id FROM Contact" --attempts 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(queryConfigPath)
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
		client.SetAttemptLimit(queryAttempts)

		stopSpinner := startInlineSpinner(os.Stderr, "Running query")
		result, err := client.Query(cmd.Context(), queryText)
		stopSpinner()
		if err != nil {
			return presentError(err, "running the query")
		}

		return renderResult(result, queryRawJSON)
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryConfigPath, "config", "c", "", "Path to config file (default: XDG config dir)")
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "Query to run against the API")
	queryCmd.Flags().IntVar(&queryAttempts, "attempts", session.DefaultAttemptLimit, "Internal retries per query (0 disables retry)")
	queryCmd.Flags().BoolVar(&queryRawJSON, "json", false, "Print the raw result as JSON")
	_ = queryCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(queryCmd)
}
