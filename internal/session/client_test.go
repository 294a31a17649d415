// Copyright (c) 2026 Micro SF Client
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/augustuswm/micro-sf-client/internal/backend"
)

// fakeAPI counts calls and plays back scripted responses. Scripted errors
// in authErrs/queryErrs are consumed first; once a script is exhausted the
// fixed authErr/queryErr (or success) applies.
type fakeAPI struct {
	authCalls  int
	queryCalls int

	authErr   error
	authErrs  []error
	queryErr  error
	queryErrs []error
	result    *backend.QueryResult

	lastToken *backend.Token
}

func (f *fakeAPI) Authenticate(ctx context.Context) (*backend.Token, error) {
	f.authCalls++
	err := f.authErr
	if len(f.authErrs) > 0 {
		err = f.authErrs[0]
		f.authErrs = f.authErrs[1:]
	}
	if err != nil {
		return nil, err
	}
	return &backend.Token{AccessToken: "issued", InstanceURL: "https://instance"}, nil
}

func (f *fakeAPI) Query(ctx context.Context, token *backend.Token, query string) (*backend.QueryResult, error) {
	f.queryCalls++
	f.lastToken = token
	err := f.queryErr
	if len(f.queryErrs) > 0 {
		err = f.queryErrs[0]
		f.queryErrs = f.queryErrs[1:]
	}
	if err != nil {
		return nil, err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &backend.QueryResult{TotalSize: 1, Done: true, Records: []json.RawMessage{json.RawMessage(`{"id":"12345"}`)}}, nil
}

func (f *fakeAPI) APIVersions(ctx context.Context, token *backend.Token) ([]backend.APIVersion, error) {
	return nil, nil
}

func TestNewRejectsEmptyParameters(t *testing.T) {
	tests := []struct {
		name    string
		creds   backend.Credentials
		version string
		want    error
	}{
		{
			name:    "empty login url",
			creds:   backend.Credentials{ClientID: "id", ClientSecret: "s", Username: "u", Password: "p"},
			version: "v20.0",
			want:    ErrInvalidLoginURL,
		},
		{
			name:    "empty version",
			creds:   backend.Credentials{LoginURL: "https://login.example.com", ClientID: "id"},
			version: "",
			want:    ErrInvalidVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.creds, tt.version)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewRejectsEmptyLoginURLWithoutNetworkCalls(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	creds := backend.Credentials{LoginURL: "", ClientID: "id", ClientSecret: "s", Username: "u", Password: "p"}
	if _, err := New(creds, "v20.0"); !errors.Is(err, ErrInvalidLoginURL) {
		t.Fatalf("New() error = %v, want ErrInvalidLoginURL", err)
	}
	if calls != 0 {
		t.Errorf("network calls = %d, want 0", calls)
	}
}

func TestQueryAuthenticatesOnceThenQueries(t *testing.T) {
	api := &fakeAPI{}
	client := NewWithAPI(api)

	result, err := client.Query(context.Background(), "SELECT Id FROM Account")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if api.authCalls != 1 || api.queryCalls != 1 {
		t.Errorf("auth/query calls = %d/%d, want 1/1", api.authCalls, api.queryCalls)
	}
	if result.TotalSize != 1 || !result.Done {
		t.Errorf("result = %+v", result)
	}
	if client.Token() == nil || client.Token().AccessToken != "issued" {
		t.Errorf("token not cached after success: %+v", client.Token())
	}
}

func TestQueryReusesCachedToken(t *testing.T) {
	api := &fakeAPI{}
	client := NewWithAPI(api)

	for i := 0; i < 3; i++ {
		if _, err := client.Query(context.Background(), "q"); err != nil {
			t.Fatalf("Query() %d error = %v", i, err)
		}
	}
	if api.authCalls != 1 {
		t.Errorf("auth calls = %d, want 1 (token stays cached)", api.authCalls)
	}
	if api.queryCalls != 3 {
		t.Errorf("query calls = %d, want 3", api.queryCalls)
	}
}

func TestQueryEvictsTokenOn401AndReauthenticates(t *testing.T) {
	api := &fakeAPI{
		queryErrs: []error{
			&backend.APIError{Message: "Token is expired", StatusCode: http.StatusUnauthorized, Fields: []string{}},
			nil,
		},
	}
	client := NewWithAPI(api)
	client.SetAttemptLimit(1)
	client.SetToken(&backend.Token{AccessToken: "stale", InstanceURL: "https://instance"})

	result, err := client.Query(context.Background(), "q")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if result == nil {
		t.Fatal("Query() returned nil result")
	}
	if api.authCalls != 1 {
		t.Errorf("auth calls = %d, want exactly 1 re-authentication", api.authCalls)
	}
	if api.queryCalls != 2 {
		t.Errorf("query calls = %d, want 2", api.queryCalls)
	}
	if api.lastToken == nil || api.lastToken.AccessToken != "issued" {
		t.Errorf("retry used token %+v, want the re-issued one", api.lastToken)
	}
}

func TestQuery401WithZeroAttemptLimitSurfacesFailure(t *testing.T) {
	api := &fakeAPI{
		queryErr: &backend.APIError{Message: "Token is expired", StatusCode: http.StatusUnauthorized, Fields: []string{}},
	}
	client := NewWithAPI(api)
	client.SetAttemptLimit(0)
	client.SetToken(&backend.Token{AccessToken: "stale", InstanceURL: "https://instance"})

	_, err := client.Query(context.Background(), "q")
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("Query() error = %v, want the 401 failure verbatim", err)
	}
	if api.authCalls != 0 {
		t.Errorf("auth calls = %d, want 0 (retry disabled)", api.authCalls)
	}
	if api.queryCalls != 1 {
		t.Errorf("query calls = %d, want 1", api.queryCalls)
	}
}

func TestQueryRetriesAuthFailuresToLimit(t *testing.T) {
	tests := []struct {
		name          string
		limit         int
		wantAuthCalls int
	}{
		{
			name:          "limit zero",
			limit:         0,
			wantAuthCalls: 1,
		},
		{
			name:          "limit three",
			limit:         3,
			wantAuthCalls: 4,
		},
		{
			name:          "limit five",
			limit:         5,
			wantAuthCalls: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{
				authErr: &backend.AuthError{Failure: backend.FailureInvalidGrant, Description: "mock error"},
			}
			client := NewWithAPI(api)
			client.SetAttemptLimit(tt.limit)

			_, err := client.Query(context.Background(), "q")

			var authErr *backend.AuthError
			if !errors.As(err, &authErr) || authErr.Failure != backend.FailureInvalidGrant {
				t.Fatalf("Query() error = %v, want InvalidGrant", err)
			}
			if api.authCalls != tt.wantAuthCalls {
				t.Errorf("auth calls = %d, want %d", api.authCalls, tt.wantAuthCalls)
			}
			if api.queryCalls != 0 {
				t.Errorf("query calls = %d, want 0 (no token was ever issued)", api.queryCalls)
			}
		})
	}
}

func TestQueryRetriesTransientFailuresWithoutEviction(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "network failure",
			err:  &backend.NetworkError{Op: "query", Err: errors.New("connection reset")},
		},
		{
			name: "parse failure",
			err:  backend.ErrQueryResponseParse,
		},
		{
			name: "non-401 api failure",
			err:  &backend.APIError{Message: "boom", StatusCode: http.StatusInternalServerError, Fields: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{queryErrs: []error{tt.err, nil}}
			client := NewWithAPI(api)
			client.SetAttemptLimit(2)

			if _, err := client.Query(context.Background(), "q"); err != nil {
				t.Fatalf("Query() error = %v, want recovery on retry", err)
			}
			if api.authCalls != 1 {
				t.Errorf("auth calls = %d, want 1 (token must not be evicted)", api.authCalls)
			}
			if api.queryCalls != 2 {
				t.Errorf("query calls = %d, want 2", api.queryCalls)
			}
		})
	}
}

func TestQueryReturnsLastFailureWhenExhausted(t *testing.T) {
	api := &fakeAPI{
		queryErr: &backend.APIError{Message: "still broken", StatusCode: http.StatusBadRequest, Fields: []string{"Id"}},
	}
	client := NewWithAPI(api)
	client.SetAttemptLimit(2)

	_, err := client.Query(context.Background(), "q")

	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Query() error = %v, want *APIError", err)
	}
	if apiErr.Message != "still broken" || apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("final error = %+v, want the last failure verbatim", apiErr)
	}
	if api.queryCalls != 3 {
		t.Errorf("query calls = %d, want 3 (limit+1 total attempts)", api.queryCalls)
	}
}

func TestQueryAttemptCounterResetsPerCall(t *testing.T) {
	api := &fakeAPI{
		queryErrs: []error{
			backend.ErrQueryResponseParse,
			nil,
			backend.ErrQueryResponseParse,
			nil,
		},
	}
	client := NewWithAPI(api)
	client.SetAttemptLimit(1)

	for i := 0; i < 2; i++ {
		if _, err := client.Query(context.Background(), "q"); err != nil {
			t.Fatalf("Query() %d error = %v", i, err)
		}
	}
	if api.queryCalls != 4 {
		t.Errorf("query calls = %d, want 4 (each call retried once)", api.queryCalls)
	}
}

func TestSetAttemptLimitClampsNegative(t *testing.T) {
	api := &fakeAPI{queryErr: backend.ErrQueryResponseParse}
	client := NewWithAPI(api)
	client.SetAttemptLimit(-7)

	_, err := client.Query(context.Background(), "q")
	if !errors.Is(err, backend.ErrQueryResponseParse) {
		t.Fatalf("Query() error = %v", err)
	}
	if api.queryCalls != 1 {
		t.Errorf("query calls = %d, want 1", api.queryCalls)
	}
}

func TestVerifyReplacesToken(t *testing.T) {
	api := &fakeAPI{}
	client := NewWithAPI(api)
	client.SetToken(&backend.Token{AccessToken: "stale", InstanceURL: "https://old"})

	if err := client.Verify(context.Background()); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if api.authCalls != 1 {
		t.Errorf("auth calls = %d, want 1", api.authCalls)
	}
	if client.Token().AccessToken != "issued" {
		t.Errorf("token = %+v, want the freshly issued one", client.Token())
	}
}

// The tests below run the full pipeline against a real HTTP server to
// cover the session and backend layers together.

func pipelineCredentials(loginURL string) backend.Credentials {
	return backend.Credentials{
		LoginURL:     loginURL,
		ClientID:     "id",
		ClientSecret: "secret",
		Username:     "user",
		Password:     "pass",
	}
}

func TestPipelineAuthenticatesAndQueries(t *testing.T) {
	var authCalls, queryCalls int
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		authCalls++
		w.Write([]byte(`{"access_token": "tok", "token_type": "Bearer", "instance_url": "` + srv.URL + `", "signature": "sig", "issued_at": "1"}`))
	})
	mux.HandleFunc("/services/data/v20.0/query", func(w http.ResponseWriter, r *http.Request) {
		queryCalls++
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", got)
		}
		w.Write([]byte(`{"total_size": 1, "done": true, "records": [{"id": "12345"}]}`))
	})

	client, err := New(pipelineCredentials(srv.URL+"/token"), "v20.0")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := client.Query(context.Background(), "SELECT Id FROM Account")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if authCalls != 1 || queryCalls != 1 {
		t.Errorf("auth/query calls = %d/%d, want 1/1", authCalls, queryCalls)
	}
	if result.TotalSize != 1 || !result.Done || len(result.Records) != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestPipelineRecoversFromExpiredToken(t *testing.T) {
	var authCalls, queryCalls int
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		authCalls++
		w.Write([]byte(`{"access_token": "fresh", "token_type": "Bearer", "instance_url": "` + srv.URL + `", "signature": "sig", "issued_at": "1"}`))
	})
	mux.HandleFunc("/services/data/v20.0/query", func(w http.ResponseWriter, r *http.Request) {
		queryCalls++
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message": "Token is expired", "fields": []}`))
			return
		}
		w.Write([]byte(`{"total_size": 1, "done": true, "records": [{"id": "12345"}]}`))
	})

	client, err := New(pipelineCredentials(srv.URL+"/token"), "v20.0")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	client.SetAttemptLimit(1)
	client.SetToken(&backend.Token{AccessToken: "stale", InstanceURL: srv.URL})

	result, err := client.Query(context.Background(), "SELECT Id FROM Account")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if authCalls != 1 {
		t.Errorf("auth calls = %d, want exactly 1 re-authentication", authCalls)
	}
	if queryCalls != 2 {
		t.Errorf("query calls = %d, want 2", queryCalls)
	}
	if result.TotalSize != 1 {
		t.Errorf("result = %+v", result)
	}
	if client.Token().AccessToken != "fresh" {
		t.Errorf("cached token = %+v, want the re-issued one", client.Token())
	}
}

func TestPipelineRetriesFailedAuthenticationToLimit(t *testing.T) {
	const limit = 5
	var authCalls int
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		authCalls++
		w.Write([]byte(`{"error": "invalid_grant", "error_description": "mock error"}`))
	})

	client, err := New(pipelineCredentials(srv.URL+"/token"), "v20.0")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	client.SetAttemptLimit(limit)

	_, err = client.Query(context.Background(), "SELECT Id FROM Account")

	var authErr *backend.AuthError
	if !errors.As(err, &authErr) || authErr.Failure != backend.FailureInvalidGrant {
		t.Fatalf("Query() error = %v, want InvalidGrant", err)
	}
	if authCalls != limit+1 {
		t.Errorf("auth calls = %d, want %d", authCalls, limit+1)
	}
}
