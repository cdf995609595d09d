package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/portive/upload-auth/auth"
	"github.com/portive/upload-auth/auth/authz"
)

// Authorizer is the configuration for an auth.ClaimsAuthorizer.
//
// It is optional: without an authorizer every requested claim is signed.
type Authorizer struct {
	Type   string `yaml:"type"`
	Config AuthorizerFactory
}

func (c *Authorizer) UnmarshalYAML(value *yaml.Node) error {
	var rawConfig rawConfig

	err := value.Decode(&rawConfig)
	if err != nil {
		return err
	}

	var config AuthorizerFactory

	switch rawConfig.Type {
	case "pathPrefix":
		var factory pathPrefixAuthorizer

		err := decode(rawConfig.Config, &factory)
		if err != nil {
			return err
		}

		config = factory

	default:
		return fmt.Errorf("unknown authorizer type: %s", rawConfig.Type)
	}

	c.Type = rawConfig.Type
	c.Config = config

	return nil
}

// AuthorizerFactory creates a new auth.ClaimsAuthorizer.
type AuthorizerFactory interface {
	CreateAuthorizer() (auth.ClaimsAuthorizer, error)
	Validate() error
}

type pathPrefixAuthorizer struct {
	Prefixes []string `mapstructure:"prefixes"`
}

func (c pathPrefixAuthorizer) CreateAuthorizer() (auth.ClaimsAuthorizer, error) {
	return authz.NewPathPrefixAuthorizer(c.Prefixes), nil
}

func (c pathPrefixAuthorizer) Validate() error {
	if len(c.Prefixes) == 0 {
		return fmt.Errorf("authorizer: pathPrefix: at least one prefix is required")
	}

	return nil
}
