package policy

import (
	"net/http"
)

// ClientOption configures a Client.
type ClientOption interface {
	applyClient(c *Client)
}

type clientOptionFunc func(c *Client)

func (fn clientOptionFunc) applyClient(c *Client) {
	fn(c)
}

// WithURL sets the upload policy endpoint. Defaults to DefaultURL.
func WithURL(url string) ClientOption {
	return clientOptionFunc(func(c *Client) {
		if url != "" {
			c.url = url
		}
	})
}

// WithTokenField sets the name of the request field carrying the token. Defaults to DefaultTokenField.
func WithTokenField(field string) ClientOption {
	return clientOptionFunc(func(c *Client) {
		if field != "" {
			c.tokenField = field
		}
	})
}

// WithHTTPClient sets the http.Client used for requests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return clientOptionFunc(func(c *Client) {
		c.httpClient = httpClient
	})
}
