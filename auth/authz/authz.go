package authz

import (
	"context"
	"strings"

	"github.com/portive/upload-auth/auth"
)

// PathPrefixAuthorizer only grants "path" claims that stay within one of its prefixes.
type PathPrefixAuthorizer struct {
	prefixes []string
}

// NewPathPrefixAuthorizer returns a new PathPrefixAuthorizer.
//
// A prefix of "" allows every path.
func NewPathPrefixAuthorizer(prefixes []string) PathPrefixAuthorizer {
	return PathPrefixAuthorizer{
		prefixes: append([]string(nil), prefixes...),
	}
}

// Authorize implements auth.ClaimsAuthorizer.
func (a PathPrefixAuthorizer) Authorize(_ context.Context, claims auth.Claims) error {
	path, ok := claims["path"].(string)
	if !ok {
		// Left to claim validation
		return nil
	}

	// Relative segments could escape the prefix
	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return auth.ErrUnauthorized
		}
	}

	for _, prefix := range a.prefixes {
		if prefix == "" || path == prefix || strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/") {
			return nil
		}
	}

	return auth.ErrUnauthorized
}
