package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/portive/upload-auth/auth"
)

// Config collects all configuration options.
type Config struct {
	// APIKey is the composite API key (PRTV_<keyID>_<secretKey>).
	APIKey string `yaml:"apiKey"`

	// APIKeyEnv names an environment variable holding the API key.
	// It is used when APIKey is empty.
	APIKeyEnv string `yaml:"apiKeyEnv"`

	Defaults           Defaults           `yaml:"defaults"`
	TokenIssuer        TokenIssuer        `yaml:"tokenIssuer"`
	UploadPolicyClient UploadPolicyClient `yaml:"uploadPolicyClient"`
	Authorizer         Authorizer         `yaml:"authorizer"`
}

// Defaults are applied to every issued token.
type Defaults struct {
	ExpiresIn auth.ExpiresIn        `yaml:"expiresIn"`
	Claims    map[string]interface{} `yaml:"claims"`
}

// Load reads a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var config Config

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return config, nil
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if _, err := c.ResolveAPIKey(); err != nil {
		return err
	}

	if c.Defaults.ExpiresIn == 0 {
		return fmt.Errorf("defaults: expiresIn is required")
	}

	if err := c.Defaults.ExpiresIn.Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	if c.TokenIssuer.Type == "" {
		return fmt.Errorf("token issuer type is required")
	}

	if err := c.TokenIssuer.Config.Validate(); err != nil {
		return err
	}

	if c.UploadPolicyClient.Type == "" {
		return fmt.Errorf("upload policy client type is required")
	}

	if err := c.UploadPolicyClient.Config.Validate(); err != nil {
		return err
	}

	if c.Authorizer.Config != nil {
		if err := c.Authorizer.Config.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ResolveAPIKey returns the configured API key, falling back to the APIKeyEnv environment variable.
func (c Config) ResolveAPIKey() (auth.APIKey, error) {
	apiKey := c.APIKey
	if apiKey == "" && c.APIKeyEnv != "" {
		apiKey = os.Getenv(c.APIKeyEnv)
	}

	if apiKey == "" {
		return auth.APIKey{}, fmt.Errorf("api key is required (set apiKey or apiKeyEnv)")
	}

	key, err := auth.ParseAPIKey(apiKey)
	if err != nil {
		return auth.APIKey{}, fmt.Errorf("api key: %w", err)
	}

	return key, nil
}

// CreateTokenServer wires an auth.TokenServer from the configuration.
func (c Config) CreateTokenServer(logger *zap.Logger) (auth.TokenServer, error) {
	key, err := c.ResolveAPIKey()
	if err != nil {
		return auth.TokenServer{}, err
	}

	issuer, err := c.TokenIssuer.Config.CreateTokenIssuer()
	if err != nil {
		return auth.TokenServer{}, err
	}

	fetcher, err := c.UploadPolicyClient.Config.CreateUploadPolicyFetcher()
	if err != nil {
		return auth.TokenServer{}, err
	}

	var authorizer auth.ClaimsAuthorizer
	if c.Authorizer.Config != nil {
		authorizer, err = c.Authorizer.Config.CreateAuthorizer()
		if err != nil {
			return auth.TokenServer{}, err
		}
	}

	return auth.TokenServer{
		Service: auth.UploadService{
			Issuer:  issuer,
			Fetcher: fetcher,
			Logger:  logger,
		},
		APIKey:     key.String(),
		Claims:     auth.Claims(c.Defaults.Claims),
		ExpiresIn:  c.Defaults.ExpiresIn,
		Authorizer: authorizer,
		Logger:     logger,
	}, nil
}

// rawConfig is a general struct to be used by other config structs to unmarshal yaml config first.
type rawConfig struct {
	Type   string                 `yaml:"type"`
	Config map[string]interface{} `yaml:"config"`
}
