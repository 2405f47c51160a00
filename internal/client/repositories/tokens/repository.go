// Package tokens persists the session's access token between runs.
// Absence of the stored value means "no session".
package tokens

import "context"

// Repository stores exactly one opaque token string.
type Repository interface {
	// Get returns the persisted token, or "" when none is stored.
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
