package jwt

import (
	"errors"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jonboulle/clockwork"

	"github.com/portive/upload-auth/auth"
)

// ErrTokenExpired is returned when a token is verified after its "exp" claim.
var ErrTokenExpired = errors.New("token is expired")

// Verifier checks tokens issued by an Issuer.
type Verifier struct {
	clock clockwork.Clock
}

// NewVerifier returns a new Verifier.
func NewVerifier(opts ...VerifierOption) Verifier {
	var v Verifier

	for _, opt := range opts {
		opt.applyVerifier(&v)
	}

	if v.clock == nil {
		v.clock = clockwork.NewRealClock()
	}

	return v
}

// Verify checks the algorithm, the signature and the expiry of a token signed with secretKey.
func (v Verifier) Verify(tokenString string, secretKey string) (auth.VerifiedToken, error) {
	if secretKey == "" {
		return auth.VerifiedToken{}, &auth.MissingSecretError{}
	}

	// Expiry is checked below against the verifier's own clock.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := jwt.MapClaims{}

	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil {
		return auth.VerifiedToken{}, err
	}

	if !claims.VerifyExpiresAt(v.clock.Now().Unix(), true) {
		return auth.VerifiedToken{}, ErrTokenExpired
	}

	verified := auth.VerifiedToken{
		Header:    token.Header,
		Claims:    auth.Claims{},
		IssuedAt:  numericTime(claims["iat"]),
		ExpiresAt: numericTime(claims["exp"]),
	}

	for name, value := range claims {
		if name == "iat" || name == "exp" {
			continue
		}

		verified.Claims[name] = value
	}

	return verified, nil
}

func numericTime(v interface{}) time.Time {
	f, ok := v.(float64)
	if !ok {
		return time.Time{}
	}

	return unixTime(int64(math.Floor(f)))
}

func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
