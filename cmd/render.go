// Copyright (c) 2026 Micro SF Client
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/augustuswm/micro-sf-client/internal/backend"
	clierrors "github.com/augustuswm/micro-sf-client/internal/errors"
	"github.com/augustuswm/micro-sf-client/internal/httperrors"
	"github.com/augustuswm/micro-sf-client/internal/logging"
)

// renderResult prints a query result. With raw set, the wire JSON is
// written to stdout for piping; otherwise a summary plus the records are
// pretty-printed.
func renderResult(result *backend.QueryResult, raw bool) error {
	if raw {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	done := "no"
	if result.Done {
		done = "yes"
	}
	pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Total records: ") + pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprintf("%d", result.TotalSize))
	pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Complete:      ") + pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(done))
	pterm.Println()

	if len(result.Records) == 0 {
		pterm.Println("No records returned.")
		return nil
	}

	for i, record := range result.Records {
		var buf bytes.Buffer
		if err := json.Indent(&buf, record, "", "  "); err != nil {
			// Record is opaque; show it as-is when it will not re-indent.
			buf.Reset()
			buf.Write(record)
		}
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan).Sprintf("Record %d", i+1)).
			Println(buf.String())
	}
	return nil
}

// presentError displays a failure in a category-appropriate way and returns
// a kinded, masked error for the CLI exit path. Nothing is swallowed: the
// error always propagates after display.
func presentError(err error, context string) error {
	var netErr *backend.NetworkError
	if errors.As(err, &netErr) {
		return clierrors.Wrap(clierrors.NetworkFailed, context, httperrors.FormatNetworkError(netErr.Err, context))
	}

	var authErr *backend.AuthError
	if errors.As(err, &authErr) {
		showAuthError(authErr)
		return clierrors.New(clierrors.AuthFailed, logging.PresentError(context, authErr))
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		showAPIError(apiErr)
		return clierrors.New(clierrors.QueryFailed, logging.PresentError(context, apiErr))
	}

	var cliErr *clierrors.E
	if errors.As(err, &cliErr) {
		pterm.Printf("❌ Failed while %s\n", context)
		pterm.Println("   " + logging.Mask(cliErr.Message))
		return cliErr
	}

	pterm.Printf("❌ Failed while %s\n", context)
	pterm.Println("   " + logging.PresentError("", err))
	kind := clierrors.QueryFailed
	if errors.Is(err, backend.ErrAuthResponseParse) {
		kind = clierrors.AuthFailed
	}
	return clierrors.New(kind, logging.PresentError(context, err))
}

// showAuthError maps each classified authentication failure to a hint the
// user can act on.
func showAuthError(authErr *backend.AuthError) {
	pterm.Println("🔒 Authentication was rejected by the login service")
	pterm.Println()
	switch authErr.Failure {
	case backend.FailureInvalidClientID:
		pterm.Println("   The client_id is not recognized. Check the connected app settings.")
	case backend.FailureInvalidClientSecret:
		pterm.Println("   The client_secret does not match. Re-run 'microsf login' to update it.")
	case backend.FailureInvalidGrant:
		pterm.Println("   The username or password was rejected. Re-run 'microsf login'.")
	case backend.FailureInvalidUser:
		pterm.Println("   This user account is inactive.")
	case backend.FailureOrgUnavailable:
		pterm.Println("   The organization is inactive or unavailable.")
	case backend.FailureRateLimitExceeded:
		pterm.Println("   Login rate limit exceeded. Wait a little and try again.")
	default:
		pterm.Println("   The login service could not issue a token.")
	}
	if authErr.Description != "" {
		pterm.Println()
		pterm.Println("   Server says: " + logging.Mask(authErr.Description))
	}
	pterm.Println()
}

// showAPIError renders a query failure with its status and any implicated
// fields.
func showAPIError(apiErr *backend.APIError) {
	pterm.Printf("⚠️  The API reported a failure (HTTP %d)\n", apiErr.StatusCode)
	pterm.Println()
	pterm.Println("   " + logging.Mask(apiErr.Message))
	if len(apiErr.Fields) > 0 {
		pterm.Println("   Fields: " + strings.Join(apiErr.Fields, ", "))
	}
	pterm.Println()
}
