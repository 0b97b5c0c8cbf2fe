// Package access holds the pure allow/deny decisions for entry operations.
// It never touches a store: callers pass the already-fetched entry and the
// acting identity (empty string for anonymous).
//
// Denials are surfaced asymmetrically by the service layer: a read denial
// becomes "not found" so private entries are indistinguishable from absent
// ones, while a write denial becomes "unauthorized".
package access

import "github.com/dmitrijs2005/filekeeper/internal/server/models"

// Operation classifies an access request.
type Operation int

const (
	// OpRead covers show, list, and content retrieval.
	OpRead Operation = iota
	// OpWrite covers visibility changes (publish/unpublish).
	OpWrite
)

// Anonymous is the acting identity of an unauthenticated caller.
const Anonymous = ""

// Allowed reports whether userID may perform op on entry.
func Allowed(entry *models.Entry, userID string, op Operation) bool {
	switch op {
	case OpRead:
		return entry.IsPublic || (userID != Anonymous && userID == entry.UserID)
	case OpWrite:
		return userID != Anonymous && userID == entry.UserID
	}
	return false
}
