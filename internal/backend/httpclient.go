package backend

import (
	"net/http"
	"strings"
	"time"
)

// apiBase is the fixed path segment of the record-query service, rooted at
// the instance URL issued with the token.
const apiBase = "/services/data/"

// HTTP implements API over the remote REST endpoints.
// It performs the password-grant token exchange against the login URL and
// bearer-authenticated calls against the instance URL carried by the token.
type HTTP struct {
	// creds holds the connection parameters for the password grant
	creds Credentials
	// version is the API version segment used in query URLs (e.g., "v42.0")
	version string
	// client is the underlying HTTP client with configured timeout
	client *http.Client
}

// newHTTP creates a new HTTP client for the given credentials and API version.
// It configures a 10-second timeout for all requests.
func newHTTP(creds Credentials, version string) *HTTP {
	return &HTTP{
		creds:   creds,
		version: version,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// instanceEndpoint joins an instance base URL with a service path.
func instanceEndpoint(instanceURL, path string) string {
	return strings.TrimRight(instanceURL, "/") + path
}
