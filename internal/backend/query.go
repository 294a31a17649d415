// Copyright (c) 2026 Micro SF Client
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// QueryResult is a successful query response. Records are opaque structured
// values; the client does not model their schema.
type QueryResult struct {
	// TotalSize is the total number of records matching the query.
	TotalSize int `json:"total_size"`
	// Done reports whether all matching records were returned in this
	// response.
	Done bool `json:"done"`
	// Records holds the returned records in order.
	Records []json.RawMessage `json:"records"`
}

// queryResultBody mirrors QueryResult with pointer fields so that a body
// missing the required wire fields is rejected instead of decoding to zero
// values.
type queryResultBody struct {
	TotalSize *int              `json:"total_size"`
	Done      *bool             `json:"done"`
	Records   []json.RawMessage `json:"records"`
}

// queryFailureBody is the failure shape the query endpoint returns for
// non-200 statuses. The HTTP status code is not part of the body.
type queryFailureBody struct {
	Message *string  `json:"message"`
	Fields  []string `json:"fields"`
}

// Query issues one GET against the instance's query endpoint with the access
// token as a bearer credential. On 200 it decodes the result shape; on any
// other status it decodes the failure shape and attaches the observed status
// code. It performs no interpretation of status codes beyond attaching them;
// noticing credential rejection is the session layer's job.
func (h *HTTP) Query(ctx context.Context, token *Token, query string) (*QueryResult, error) {
	endpoint := instanceEndpoint(token.InstanceURL, apiBase+h.version+"/query?q="+url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &NetworkError{Op: "query", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "query", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "query", Err: err}
	}

	if resp.StatusCode == http.StatusOK {
		var out queryResultBody
		if err := json.Unmarshal(body, &out); err != nil || out.TotalSize == nil || out.Done == nil {
			return nil, ErrQueryResponseParse
		}
		records := out.Records
		if records == nil {
			records = []json.RawMessage{}
		}
		return &QueryResult{TotalSize: *out.TotalSize, Done: *out.Done, Records: records}, nil
	}

	var fail queryFailureBody
	if err := json.Unmarshal(body, &fail); err != nil || fail.Message == nil {
		return nil, ErrQueryResponseParse
	}
	fields := fail.Fields
	if fields == nil {
		fields = []string{}
	}
	return nil, &APIError{Message: *fail.Message, StatusCode: resp.StatusCode, Fields: fields}
}
