// Package policy requests upload policies from the upload policy service.
package policy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/portive/upload-auth/auth"
)

// DefaultURL is the endpoint of the hosted upload policy service.
const DefaultURL = "https://api.portive.com/api/v1/upload"

// DefaultTokenField is the request field carrying the auth token.
//
// Earlier deployments of the upload policy service expect "permit" or "auth" instead.
const DefaultTokenField = "authToken"

// Client requests upload policies over HTTP.
//
// It sends exactly one request per call: there are no retries and no timeout
// beyond what the context and the underlying http.Client enforce.
type Client struct {
	url        string
	tokenField string
	httpClient *http.Client
}

// NewClient returns a new Client.
func NewClient(opts ...ClientOption) Client {
	c := Client{
		url:        DefaultURL,
		tokenField: DefaultTokenField,
	}

	for _, opt := range opts {
		opt.applyClient(&c)
	}

	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}

	return c
}

// URL returns the endpoint the client posts to.
func (c Client) URL() string {
	return c.url
}

// FetchUploadPolicy implements auth.UploadPolicyFetcher.
//
// The response status is not interpreted: a non-2xx response with a JSON body
// is returned like any other policy and it is up to the caller to inspect it.
func (c Client) FetchUploadPolicy(ctx context.Context, token string, metadata auth.UploadMetadata) (auth.UploadPolicy, error) {
	body, err := c.requestBody(token, metadata)
	if err != nil {
		return auth.UploadPolicy{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return auth.UploadPolicy{}, &auth.TransportError{URL: c.url, Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return auth.UploadPolicy{}, &auth.TransportError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return auth.UploadPolicy{}, &auth.TransportError{URL: c.url, Err: err}
	}

	if !json.Valid(respBody) {
		return auth.UploadPolicy{}, &auth.TransportError{
			URL: c.url,
			Err: fmt.Errorf("response (HTTP %d) is not valid JSON", resp.StatusCode),
		}
	}

	return auth.UploadPolicy{
		StatusCode: resp.StatusCode,
		Body:       json.RawMessage(respBody),
	}, nil
}

// requestBody merges the token into the upload metadata.
// The token field always wins over a metadata field of the same name.
func (c Client) requestBody(token string, metadata auth.UploadMetadata) ([]byte, error) {
	encodedMetadata, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(encodedMetadata, &data); err != nil {
		return nil, err
	}

	encodedToken, err := json.Marshal(token)
	if err != nil {
		return nil, err
	}

	data[c.tokenField] = encodedToken

	return json.Marshal(data)
}
