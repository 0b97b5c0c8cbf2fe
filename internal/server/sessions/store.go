// Package sessions implements the ephemeral session-token store that maps
// opaque tokens to user identities. Tokens are independent of the metadata
// and content stores; losing every session never affects persisted entries.
package sessions

import (
	"context"
	"time"
)

// DefaultTTL is how long a newly created session stays valid unless revoked.
const DefaultTTL = 24 * time.Hour

// Store issues, resolves, and revokes session tokens. All operations are
// atomic per token; independent tokens may be processed concurrently.
type Store interface {
	// Create records a new session for userID and returns its opaque token.
	// The token is valid immediately.
	Create(ctx context.Context, userID string) (string, error)

	// Resolve returns the user id associated with token, or the empty
	// string if the token is unknown or already expired. An absent token
	// is not an error so that callers treat it uniformly as unauthenticated.
	Resolve(ctx context.Context, token string) (string, error)

	// Revoke deletes the session. Revoking an unknown token is a no-op.
	Revoke(ctx context.Context, token string) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
