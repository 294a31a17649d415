// Copyright (c) 2026 Micro SF Client
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

// Credentials holds the connection parameters for the password grant.
// All five fields are sent on every token exchange.
type Credentials struct {
	LoginURL     string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// New creates a backend API implementation for the given credentials and
// API version. Returns the HTTP client (real backend).
func New(creds Credentials, version string) API {
	return newHTTP(creds, version)
}
