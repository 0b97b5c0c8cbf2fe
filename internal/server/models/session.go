package models

import "time"

// Session maps an opaque token to a user identity until it expires or is
// revoked. Sessions live only in the session store; no other component
// persists tokens.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
