package auth

import (
	"time"
)

// Claims are application-defined scope attributes (eg. an allowed path pattern) embedded in a token payload.
type Claims map[string]any

// SigningKey is the key material a token is signed with.
//
// It is kept separate from Claims so that it never ends up in a token payload by accident.
type SigningKey struct {
	// KeyID identifies the secret key. It is placed in the token header ("kid").
	KeyID string

	// SecretKey is the shared HMAC secret. It never leaves the issuing process.
	SecretKey string
}

// IssueOptions controls how a token is signed.
type IssueOptions struct {
	SigningKey

	ExpiresIn ExpiresIn
}

// Token is a signed, compact credential authorizing uploads within the scope of its claims.
type Token struct {
	Payload string

	KeyID     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer signs claims into a Token.
//
// Claims are validated before signing; reserved claims (iat, exp, kid) are rejected rather than overridden.
type TokenIssuer interface {
	IssueToken(claims Claims, opts IssueOptions) (Token, error)
}

// VerifiedToken is the decoded content of a token that passed verification.
type VerifiedToken struct {
	Header map[string]any
	Claims Claims

	IssuedAt  time.Time
	ExpiresAt time.Time
}
