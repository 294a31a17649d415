// Copyright (c) 2026 Micro SF Client
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"errors"
	"fmt"
	"strings"
)

// AuthFailure is a classified rejection reported by the login endpoint.
// The set is closed; codes the service has not documented map to
// FailureTokenUnavailable.
type AuthFailure string

const (
	FailureInvalidClientID     AuthFailure = "invalid_client_id"
	FailureInvalidClientSecret AuthFailure = "invalid_client_secret"
	FailureInvalidGrant        AuthFailure = "invalid_grant"
	FailureInvalidUser         AuthFailure = "invalid_user"
	FailureOrgUnavailable      AuthFailure = "org_unavailable"
	FailureRateLimitExceeded   AuthFailure = "rate_limit_exceeded"
	FailureTokenUnavailable    AuthFailure = "token_unavailable"
)

// classifyAuthFailure maps the wire `error` code to an AuthFailure.
// The mapping is a pure function of the code string and does not guess
// beyond this table.
func classifyAuthFailure(code string) AuthFailure {
	switch code {
	case "invalid_client_id":
		return FailureInvalidClientID
	case "invalid_client_credentials":
		return FailureInvalidClientSecret
	case "invalid_grant":
		return FailureInvalidGrant
	case "inactive_user":
		return FailureInvalidUser
	case "inactive_org":
		return FailureOrgUnavailable
	case "rate_limit_exceeded":
		return FailureRateLimitExceeded
	default:
		return FailureTokenUnavailable
	}
}

// AuthError is an authentication rejection from the login endpoint.
type AuthError struct {
	Failure     AuthFailure
	Description string
}

func (e *AuthError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("authentication rejected (%s): %s", e.Failure, e.Description)
	}
	return fmt.Sprintf("authentication rejected (%s)", e.Failure)
}

// APIError is a query failure reported by the API. StatusCode is taken from
// the HTTP transport; the wire body never carries it.
type APIError struct {
	Message    string
	StatusCode int
	Fields     []string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api error %d: %s (fields: %s)", e.StatusCode, e.Message, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// NetworkError is a transport-level failure: the request never completed
// with a status code. It is kept distinct from both the authentication
// taxonomy and API failures.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

var (
	// ErrAuthResponseParse reports a login response body that matches
	// neither the token shape nor the error shape.
	ErrAuthResponseParse = errors.New("could not parse authentication response")

	// ErrQueryResponseParse reports a query response body that matches
	// neither the result shape nor the failure shape.
	ErrQueryResponseParse = errors.New("could not parse query response")
)
