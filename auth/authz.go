package auth

import (
	"context"
	"errors"
)

// ErrUnauthorized is returned when the requested claims exceed what the caller may be granted.
var ErrUnauthorized = errors.New("unauthorized")

// ClaimsAuthorizer decides whether a set of claims may be signed into a token.
type ClaimsAuthorizer interface {
	Authorize(ctx context.Context, claims Claims) error
}
