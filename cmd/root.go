// Copyright (c) 2026 Micro SF Client
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the microsf client.
// It implements subcommands for running queries, managing stored
// credentials, and inspecting the remote API using the Cobra CLI framework.
package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion bool
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "microsf",
	Short:         "A micro client for the SalesForce record-query API",
	Long:          `microsf is a command-line client for a SalesForce-style record-query service. It authenticates with the OAuth2 password grant, caches the issued token for the lifetime of the process, and runs queries against the instance the token names.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Enable verbose mode for all modules if --verbose is set
		if verbose || os.Getenv("MICROSF_VERBOSE") == "1" {
			os.Setenv("MICROSF_VERBOSE", "1")
			pterm.EnableDebugMessages()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("microsf %s\n", Version)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Show debug output")
}
