// Package blob implements content storage for raw entry payloads. Blobs are
// addressed by a server-generated opaque reference, never by the user-chosen
// file name, so attacker-controlled names cannot collide or traverse paths.
package blob

import (
	"context"
	"io"
)

// Store persists raw decoded bytes and streams them back. References are
// append-once: no two writes are ever assigned the same reference.
type Store interface {
	// Write persists data under a freshly generated reference and returns
	// it. The backing location is created lazily if absent.
	Write(ctx context.Context, data []byte) (string, error)

	// OpenRead returns a single-pass reader for the blob, or
	// common.ErrorNotFound if the reference does not exist on the medium
	// (covers metadata/content drift as well as missing writes).
	OpenRead(ctx context.Context, ref string) (io.ReadCloser, error)

	// Exists reports whether the reference is present, letting callers
	// short-circuit retrieval before streaming.
	Exists(ctx context.Context, ref string) (bool, error)

	// Remove deletes the blob. Used only as compensating cleanup when a
	// metadata write fails after the content write succeeded.
	Remove(ctx context.Context, ref string) error
}
