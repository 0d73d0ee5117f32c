package port

import "context"

//go:generate mockgen -destination=../service/mocks/auth_mock.go -package=mocks -source=auth.go

// SessionStore maps opaque bearer tokens to user identities. Token format
// and expiry live entirely behind this interface.
type SessionStore interface {
	// Issue creates a token for the user and returns it.
	Issue(ctx context.Context, userID int64) (string, error)

	// Resolve returns the user id a token maps to, or ErrUnauthorized.
	Resolve(ctx context.Context, token string) (int64, error)

	// Revoke invalidates a token. Revoking an unknown token is ErrUnauthorized.
	Revoke(ctx context.Context, token string) error
}
