package auth

import (
	"fmt"
)

// MalformedKeyError is returned when an API key does not consist of exactly three segments.
type MalformedKeyError struct {
	Segments int
}

func (e *MalformedKeyError) Error() string {
	return fmt.Sprintf("expected api key to split on _ into exactly 3 parts but is %d", e.Segments)
}

// InvalidKeyTagError is returned when the first segment of an API key is not APIKeyTag.
type InvalidKeyTagError struct {
	Tag string
}

func (e *InvalidKeyTagError) Error() string {
	return fmt.Sprintf("expected first part of api key to be %s but is %q", APIKeyTag, e.Tag)
}

// ClaimValidationError is returned when claims do not match the payload schema.
type ClaimValidationError struct {
	Path    string
	Message string
}

func (e *ClaimValidationError) Error() string {
	return fmt.Sprintf("error validating token payload. At path: %s: %s", e.Path, e.Message)
}

// InvalidHeaderError is returned when the token header (eg. the key ID) is invalid.
type InvalidHeaderError struct {
	Field   string
	Message string
}

func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("error validating token header: %q %s", e.Field, e.Message)
}

// MissingSecretError is returned when a token is issued without a secret key.
type MissingSecretError struct{}

func (e *MissingSecretError) Error() string {
	return "secret key must have a value"
}

// InvalidExpiresInError is returned when a token expiry cannot be interpreted.
type InvalidExpiresInError struct {
	Value string
}

func (e *InvalidExpiresInError) Error() string {
	return fmt.Sprintf("invalid expiresIn value %q: expected a positive number of seconds or a duration like \"1h\" or \"1d\"", e.Value)
}

// TransportError is returned when an upload policy request cannot be completed.
//
// A response with a non-2xx status code is not a TransportError.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching upload policy from %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
