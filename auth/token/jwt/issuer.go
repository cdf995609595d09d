package jwt

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jonboulle/clockwork"
	"golang.org/x/exp/maps"

	"github.com/portive/upload-auth/auth"
	"github.com/portive/upload-auth/auth/schema"
)

// TokenType is the "typ" header of every issued token.
const TokenType = "JWT"

// DefaultClaimsSchema describes the private claims of an upload auth token.
var DefaultClaimsSchema = schema.Schema{
	Fields: map[string]schema.Field{
		"path":         {Kind: schema.String, Required: true},
		"domain":       {Kind: schema.String},
		"maxFileBytes": {Kind: schema.Number},
	},
	Reserved: []string{"iat", "exp", "kid"},
}

var headerSchema = schema.Schema{
	Fields: map[string]schema.Field{
		"alg": {Kind: schema.String, Required: true, NonEmpty: true},
		"typ": {Kind: schema.String, Required: true, NonEmpty: true},
		"kid": {Kind: schema.String, Required: true, NonEmpty: true},
	},
}

// Issuer signs upload auth tokens with HMAC-SHA256.
type Issuer struct {
	claimsSchema schema.Schema

	clock clockwork.Clock
}

// NewIssuer returns a new Issuer.
func NewIssuer(opts ...IssuerOption) Issuer {
	i := Issuer{
		claimsSchema: DefaultClaimsSchema,
	}

	for _, opt := range opts {
		opt.applyIssuer(&i)
	}

	if i.clock == nil {
		i.clock = clockwork.NewRealClock()
	}

	return i
}

// IssueToken implements auth.TokenIssuer.
func (i Issuer) IssueToken(claims auth.Claims, opts auth.IssueOptions) (auth.Token, error) {
	if err := i.claimsSchema.Validate(claims); err != nil {
		return auth.Token{}, claimValidationError(err)
	}

	header := map[string]any{
		"alg": jwt.SigningMethodHS256.Alg(),
		"typ": TokenType,
		"kid": opts.KeyID,
	}

	if err := headerSchema.Validate(header); err != nil {
		var fieldErr *schema.FieldError
		if errors.As(err, &fieldErr) {
			return auth.Token{}, &auth.InvalidHeaderError{Field: fieldErr.Path, Message: fieldErr.Message}
		}

		return auth.Token{}, err
	}

	if opts.SecretKey == "" {
		return auth.Token{}, &auth.MissingSecretError{}
	}

	if err := opts.ExpiresIn.Validate(); err != nil {
		return auth.Token{}, err
	}

	issuedAt := i.clock.Now().Unix()
	expiresAt := issuedAt + opts.ExpiresIn.Seconds()

	payload := jwt.MapClaims(maps.Clone(claims))
	if payload == nil {
		payload = jwt.MapClaims{}
	}
	payload["iat"] = issuedAt
	payload["exp"] = expiresAt

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	for k, v := range header {
		token.Header[k] = v
	}

	signedToken, err := token.SignedString([]byte(opts.SecretKey))
	if err != nil {
		return auth.Token{}, err
	}

	return auth.Token{
		Payload:   signedToken,
		KeyID:     opts.KeyID,
		IssuedAt:  unixTime(issuedAt),
		ExpiresAt: unixTime(expiresAt),
	}, nil
}

func claimValidationError(err error) error {
	var fieldErr *schema.FieldError
	if errors.As(err, &fieldErr) {
		return &auth.ClaimValidationError{Path: fieldErr.Path, Message: fieldErr.Message}
	}

	return err
}
