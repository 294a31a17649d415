// Package backend provides interfaces and implementations for communicating
// with the remote record-query service. It defines the API contract for the
// password-grant token exchange, authenticated queries, and API version
// discovery, along with the HTTP-based implementation.
package backend

import "context"

// API defines the remote operations the client depends on.
// Implementations may call the real HTTP endpoints or provide fakes for tests.
type API interface {
	// Authenticate performs the OAuth2 password-grant exchange against the
	// login URL and returns the issued token.
	Authenticate(ctx context.Context) (*Token, error)
	// Query runs a single query call against the instance named by the
	// token, authorized with its access token.
	Query(ctx context.Context, token *Token, query string) (*QueryResult, error)
	// APIVersions lists the API versions exposed by the token's instance.
	APIVersions(ctx context.Context, token *Token) ([]APIVersion, error)
}
