// Package errors defines typed errors with categories for user-friendly
// reporting. The CLI layer wraps core failures with a machine-readable kind
// so exit paths and messages can be chosen by category without inspecting
// error strings.
package errors

import "fmt"

// Kind is a machine-readable error category.
type Kind string

const (
	// ConfigInvalid indicates the config file could not be understood or
	// is missing required settings.
	ConfigInvalid Kind = "config_invalid"
	// AuthFailed indicates the token exchange was rejected.
	AuthFailed Kind = "auth_failed"
	// QueryFailed indicates the query call returned a failure.
	QueryFailed Kind = "query_failed"
	// NetworkFailed indicates a transport-level failure.
	NetworkFailed Kind = "network_failed"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }
