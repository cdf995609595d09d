package auth

import (
	"context"

	"go.uber.org/zap"
)

// AuthOptions are the private claims of an auth token together with its lifetime.
type AuthOptions struct {
	ExpiresIn ExpiresIn
	Claims    Claims
}

// UploadService issues auth tokens from an API key and exchanges them for upload policies.
//
// Errors of the underlying components are returned unchanged.
type UploadService struct {
	Issuer  TokenIssuer
	Fetcher UploadPolicyFetcher

	Logger *zap.Logger
}

func (s UploadService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}

	return s.Logger
}

// IssueAuthToken decodes apiKey and signs opts.Claims with its secret key.
//
// The resulting token can be handed to a browser: it carries the key ID, never the secret key.
func (s UploadService) IssueAuthToken(apiKey string, opts AuthOptions) (Token, error) {
	key, err := ParseAPIKey(apiKey)
	if err != nil {
		return Token{}, err
	}

	token, err := s.Issuer.IssueToken(opts.Claims, IssueOptions{
		SigningKey: key.SigningKey(),
		ExpiresIn:  opts.ExpiresIn,
	})
	if err != nil {
		return Token{}, err
	}

	s.logger().Debug(
		"auth token issued",
		zap.String("kid", token.KeyID),
		zap.Time("expiresAt", token.ExpiresAt),
	)

	return token, nil
}

// FetchUploadPolicy issues an auth token and exchanges it for an upload policy in a single step.
//
// Nothing is sent when the API key or the claims are invalid.
func (s UploadService) FetchUploadPolicy(ctx context.Context, apiKey string, metadata UploadMetadata, opts AuthOptions) (UploadPolicy, error) {
	token, err := s.IssueAuthToken(apiKey, opts)
	if err != nil {
		return UploadPolicy{}, err
	}

	policy, err := s.Fetcher.FetchUploadPolicy(ctx, token.Payload, metadata)
	if err != nil {
		return UploadPolicy{}, err
	}

	s.logger().Debug(
		"upload policy fetched",
		zap.String("path", metadata.Path),
		zap.Int("status", policy.StatusCode),
	)

	return policy, nil
}
