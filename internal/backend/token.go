// Copyright (c) 2026 Micro SF Client
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Token is an access credential issued by the login endpoint. A Token is
// immutable once constructed; the session layer replaces it wholesale on
// re-authentication and never mutates individual fields.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	InstanceURL string `json:"instance_url"`
	Signature   string `json:"signature"`
	IssuedAt    string `json:"issued_at"`
}

// tokenErrorBody is the error shape the login endpoint returns in place of
// a token.
type tokenErrorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Authenticate posts the form-encoded password grant to the login URL and
// decodes the response against the two known shapes in fixed priority:
// token first, then error. A body matching neither yields
// ErrAuthResponseParse; it is never treated as success.
func (h *HTTP) Authenticate(ctx context.Context) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", h.creds.ClientID)
	form.Set("client_secret", h.creds.ClientSecret)
	form.Set("username", h.creds.Username)
	form.Set("password", h.creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.creds.LoginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &NetworkError{Op: "authenticate", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "authenticate", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "authenticate", Err: err}
	}

	var token Token
	if err := json.Unmarshal(body, &token); err == nil && token.AccessToken != "" && token.InstanceURL != "" {
		return &token, nil
	}

	var tokenErr tokenErrorBody
	if err := json.Unmarshal(body, &tokenErr); err == nil && tokenErr.Error != "" {
		return nil, &AuthError{
			Failure:     classifyAuthFailure(tokenErr.Error),
			Description: tokenErr.ErrorDescription,
		}
	}

	return nil, ErrAuthResponseParse
}
