package interfaces

import "context"

// IdentityProvider resolves the acting user for operations that do not
// receive an explicit user id.
type IdentityProvider interface {
	CurrentUserID(ctx context.Context) (string, error)
}
