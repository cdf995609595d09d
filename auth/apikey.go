package auth

import (
	"fmt"
	"strings"
)

// APIKeyTag is the first segment of every API key.
// It makes sure an API key is not confused with a key issued by some other service.
const APIKeyTag = "PRTV"

const apiKeySeparator = "_"

// APIKey combines a key ID and a secret key into a single value.
//
// The string form is PRTV_<keyID>_<secretKey>, eg. PRTV_CfTDX9cq282nQV3K_nJF2aDL4Nf41L3D5Nh8QJtosN0cJvlL0.
// Underscores keep the whole key selectable with a double click and a single
// value keeps the key ID and the secret key together in one environment variable.
//
// Neither the key ID nor the secret key may contain an underscore:
// such a key is encoded without complaint, but it cannot be parsed back.
type APIKey struct {
	Tag       string
	KeyID     string
	SecretKey string
}

// NewAPIKey returns an APIKey for a key ID and a secret key.
func NewAPIKey(keyID string, secretKey string) APIKey {
	return APIKey{
		Tag:       APIKeyTag,
		KeyID:     keyID,
		SecretKey: secretKey,
	}
}

// ParseAPIKey splits an API key into its parts.
func ParseAPIKey(apiKey string) (APIKey, error) {
	parts := strings.Split(apiKey, apiKeySeparator)
	if len(parts) != 3 {
		return APIKey{}, &MalformedKeyError{Segments: len(parts)}
	}

	if parts[0] != APIKeyTag {
		return APIKey{}, &InvalidKeyTagError{Tag: parts[0]}
	}

	return APIKey{
		Tag:       parts[0],
		KeyID:     parts[1],
		SecretKey: parts[2],
	}, nil
}

// String returns the encoded API key, including the secret key.
func (k APIKey) String() string {
	return strings.Join([]string{APIKeyTag, k.KeyID, k.SecretKey}, apiKeySeparator)
}

// GoString keeps the secret key out of %#v output.
func (k APIKey) GoString() string {
	return fmt.Sprintf("auth.APIKey{Tag:%q, KeyID:%q, SecretKey:\"[redacted]\"}", k.Tag, k.KeyID)
}

// SigningKey returns the key material used for issuing tokens.
func (k APIKey) SigningKey() SigningKey {
	return SigningKey{
		KeyID:     k.KeyID,
		SecretKey: k.SecretKey,
	}
}
