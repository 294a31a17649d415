package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// APIVersion describes one REST API version exposed by an instance.
type APIVersion struct {
	Label   string `json:"label"`
	URL     string `json:"url"`
	Version string `json:"version"`
}

// APIVersions lists the API versions available on the token's instance by
// calling the service root. Non-200 responses are decoded like query
// failures so the session layer sees the same error taxonomy.
func (h *HTTP) APIVersions(ctx context.Context, token *Token) ([]APIVersion, error) {
	endpoint := instanceEndpoint(token.InstanceURL, apiBase)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &NetworkError{Op: "versions", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "versions", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "versions", Err: err}
	}

	if resp.StatusCode == http.StatusOK {
		var out []APIVersion
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, ErrQueryResponseParse
		}
		return out, nil
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
