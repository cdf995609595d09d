package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"github.com/gorilla/schema"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
)

// Set a Decoder instance as a package global, because it caches
// meta-data about structs, and an instance can be shared safely.
var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(ExpiresIn(0), func(value string) reflect.Value {
		expiresIn, err := ParseExpiresIn(value)
		if err != nil {
			return reflect.Value{}
		}

		return reflect.ValueOf(expiresIn)
	})

	return d
}

// TokenServer hands out auth tokens and upload policies over HTTP, keeping the API key on the server.
//
// TokenServer does not authenticate its callers: it is meant to be mounted behind
// the application's own authentication.
type TokenServer struct {
	Service UploadService

	// APIKey is the composite API key tokens are signed with.
	APIKey string

	// Claims are added to every issued token. Request parameters take precedence.
	Claims Claims

	// ExpiresIn is used when a request does not specify a lifetime.
	ExpiresIn ExpiresIn

	// Authorizer restricts the claims a caller can obtain. Everything is allowed when nil.
	Authorizer ClaimsAuthorizer

	Logger *zap.Logger
}

type authTokenRequest struct {
	Path         string    `schema:"path"`
	Domain       string    `schema:"domain"`
	MaxFileBytes int64     `schema:"maxFileBytes"`
	ExpiresIn    ExpiresIn `schema:"expiresIn"`
}

type authTokenResponse struct {
	AuthToken string `json:"authToken"`
	ExpiresAt int64  `json:"expiresAt"`
}

type uploadPolicyRequest struct {
	UploadMetadata

	ExpiresIn ExpiresIn `json:"expiresIn,omitempty"`
}

// requestError is returned when a request cannot be decoded.
type requestError struct {
	err error
}

func (e *requestError) Error() string {
	return "invalid request: " + e.err.Error()
}

func (e *requestError) Unwrap() error {
	return e.err
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s TokenServer) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}

	return s.Logger
}

func (s TokenServer) handleError(err error, w http.ResponseWriter) {
	status := http.StatusInternalServerError

	var (
		claimErr     *ClaimValidationError
		expiresErr   *InvalidExpiresInError
		transportErr *TransportError
		requestErr   *requestError
	)

	switch {
	case errors.As(err, &claimErr), errors.As(err, &expiresErr), errors.As(err, &requestErr):
		status = http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		status = http.StatusForbidden
	case errors.As(err, &transportErr):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		s.logger().Error("request failed", zap.Error(err))
	} else {
		s.logger().Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}

	message := http.StatusText(status)
	if status == http.StatusBadRequest {
		message = err.Error()
	}

	writeJSON(w, status, errorResponse{Status: "error", Message: message})
}

// AuthTokenHandler issues an auth token for the claims in the query string (eg. ?path=articles/*&expiresIn=1h).
func (s TokenServer) AuthTokenHandler(w http.ResponseWriter, r *http.Request) {
	var request authTokenRequest

	err := decoder.Decode(&request, r.URL.Query())
	if err != nil {
		s.handleError(&requestError{err: err}, w)
		return
	}

	claims := s.claims()
	if request.Path != "" {
		claims["path"] = request.Path
	}
	if request.Domain != "" {
		claims["domain"] = request.Domain
	}
	if request.MaxFileBytes > 0 {
		claims["maxFileBytes"] = request.MaxFileBytes
	}

	err = s.authorize(r.Context(), claims)
	if err != nil {
		s.handleError(err, w)
		return
	}

	token, err := s.Service.IssueAuthToken(s.APIKey, AuthOptions{
		ExpiresIn: s.expiresIn(request.ExpiresIn),
		Claims:    claims,
	})
	if err != nil {
		s.handleError(err, w)
		return
	}

	writeJSON(w, http.StatusOK, authTokenResponse{
		AuthToken: token.Payload,
		ExpiresAt: token.ExpiresAt.Unix(),
	})
}

// UploadPolicyHandler fetches an upload policy on behalf of the client.
//
// The token is scoped to the upload path unless a path claim is configured.
//
// The status code and the body of the upload policy service are relayed unchanged.
func (s TokenServer) UploadPolicyHandler(w http.ResponseWriter, r *http.Request) {
	var request uploadPolicyRequest

	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		s.handleError(&requestError{err: err}, w)
		return
	}

	// Configured path claims (eg. "articles/*") scope the token more broadly than a single upload.
	claims := s.claims()
	if _, ok := claims["path"]; !ok && request.Path != "" {
		claims["path"] = request.Path
	}

	err = s.authorize(r.Context(), claims)
	if err != nil {
		s.handleError(err, w)
		return
	}

	policy, err := s.Service.FetchUploadPolicy(r.Context(), s.APIKey, request.UploadMetadata, AuthOptions{
		ExpiresIn: s.expiresIn(request.ExpiresIn),
		Claims:    claims,
	})
	if err != nil {
		s.handleError(err, w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(policy.StatusCode)
	w.Write(policy.Body)
}

func (s TokenServer) authorize(ctx context.Context, claims Claims) error {
	if s.Authorizer == nil {
		return nil
	}

	return s.Authorizer.Authorize(ctx, claims)
}

func (s TokenServer) claims() Claims {
	claims := maps.Clone(s.Claims)
	if claims == nil {
		claims = Claims{}
	}

	return claims
}

func (s TokenServer) expiresIn(requested ExpiresIn) ExpiresIn {
	if requested > 0 {
		return requested
	}

	return s.ExpiresIn
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
