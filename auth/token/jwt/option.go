package jwt

import (
	"github.com/jonboulle/clockwork"

	"github.com/portive/upload-auth/auth/schema"
)

// IssuerOption configures an Issuer.
type IssuerOption interface {
	applyIssuer(i *Issuer)
}

// VerifierOption configures a Verifier.
type VerifierOption interface {
	applyVerifier(v *Verifier)
}

// Clock provides the current time.
type Clock = clockwork.Clock

// WithClock sets the clock used for "iat" and "exp".
func WithClock(clock Clock) clockOption {
	return clockOption{clock}
}

type clockOption struct {
	clock Clock
}

func (o clockOption) applyIssuer(i *Issuer) {
	i.clock = o.clock
}

func (o clockOption) applyVerifier(v *Verifier) {
	v.clock = o.clock
}

// WithClaimsSchema replaces DefaultClaimsSchema.
func WithClaimsSchema(s schema.Schema) IssuerOption {
	return claimsSchemaOption{s}
}

type claimsSchemaOption struct {
	schema schema.Schema
}

func (o claimsSchemaOption) applyIssuer(i *Issuer) {
	i.claimsSchema = o.schema
}
