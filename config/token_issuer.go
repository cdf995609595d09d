package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/portive/upload-auth/auth"
	"github.com/portive/upload-auth/auth/schema"
	"github.com/portive/upload-auth/auth/token/jwt"
)

// TokenIssuer is the configuration for an auth.TokenIssuer.
type TokenIssuer struct {
	Type   string `yaml:"type"`
	Config TokenIssuerFactory
}

func (c *TokenIssuer) UnmarshalYAML(value *yaml.Node) error {
	var rawConfig rawConfig

	err := value.Decode(&rawConfig)
	if err != nil {
		return err
	}

	var config TokenIssuerFactory

	switch rawConfig.Type {
	case "jwt":
		var factory jwtTokenIssuer

		err := decode(rawConfig.Config, &factory)
		if err != nil {
			return err
		}

		config = factory

	default:
		return fmt.Errorf("unknown token issuer type: %s", rawConfig.Type)
	}

	c.Type = rawConfig.Type
	c.Config = config

	return nil
}

// TokenIssuerFactory creates a new auth.TokenIssuer.
type TokenIssuerFactory interface {
	CreateTokenIssuer() (auth.TokenIssuer, error)
	Validate() error
}

type jwtTokenIssuer struct {
	// AllowUnknownClaims accepts claims beyond the default upload claims.
	AllowUnknownClaims bool `mapstructure:"allowUnknownClaims"`
}

func (c jwtTokenIssuer) CreateTokenIssuer() (auth.TokenIssuer, error) {
	claimsSchema := schema.Schema{
		Fields:       jwt.DefaultClaimsSchema.Fields,
		Reserved:     jwt.DefaultClaimsSchema.Reserved,
		AllowUnknown: c.AllowUnknownClaims,
	}

	return jwt.NewIssuer(jwt.WithClaimsSchema(claimsSchema)), nil
}

func (c jwtTokenIssuer) Validate() error {
	return nil
}
