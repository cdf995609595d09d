package config

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/portive/upload-auth/auth"
	"github.com/portive/upload-auth/auth/policy"
)

// UploadPolicyClient is the configuration for an auth.UploadPolicyFetcher.
type UploadPolicyClient struct {
	Type   string `yaml:"type"`
	Config UploadPolicyFetcherFactory
}

func (c *UploadPolicyClient) UnmarshalYAML(value *yaml.Node) error {
	var rawConfig rawConfig

	err := value.Decode(&rawConfig)
	if err != nil {
		return err
	}

	var config UploadPolicyFetcherFactory

	switch rawConfig.Type {
	case "http":
		var factory httpUploadPolicyClient

		err := decode(rawConfig.Config, &factory)
		if err != nil {
			return err
		}

		config = factory

	default:
		return fmt.Errorf("unknown upload policy client type: %s", rawConfig.Type)
	}

	c.Type = rawConfig.Type
	c.Config = config

	return nil
}

// UploadPolicyFetcherFactory creates a new auth.UploadPolicyFetcher.
type UploadPolicyFetcherFactory interface {
	CreateUploadPolicyFetcher() (auth.UploadPolicyFetcher, error)
	Validate() error
}

type httpUploadPolicyClient struct {
	URL        string `mapstructure:"url"`
	TokenField string `mapstructure:"tokenField"`

	// Timeout is applied by the HTTP transport. Zero means no timeout.
	Timeout time.Duration `mapstructure:"timeout"`
}

func (c httpUploadPolicyClient) CreateUploadPolicyFetcher() (auth.UploadPolicyFetcher, error) {
	return policy.NewClient(
		policy.WithURL(c.URL),
		policy.WithTokenField(c.TokenField),
		policy.WithHTTPClient(&http.Client{Timeout: c.Timeout}),
	), nil
}

func (c httpUploadPolicyClient) Validate() error {
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("upload policy client: http: invalid url: %q", c.URL)
		}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("upload policy client: http: timeout must not be negative")
	}

	return nil
}
