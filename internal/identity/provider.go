package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

// ErrNoIdentity is returned when no acting user can be resolved from the context.
var ErrNoIdentity = errors.New("identity: no user in context")

type contextKey string

const userIDKey contextKey = "pages.identity.user_id"

// WithUserID annotates the context with the acting user's id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, strings.TrimSpace(userID))
}

// UserIDFromContext extracts a previously annotated user id.
func UserIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(userIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// ContextProvider resolves the acting user from context annotations.
type ContextProvider struct{}

var _ interfaces.IdentityProvider = ContextProvider{}

func (ContextProvider) CurrentUserID(ctx context.Context) (string, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return "", ErrNoIdentity
	}
	return id, nil
}

// StaticProvider always resolves the same user id. Useful for CLIs and tests.
type StaticProvider struct {
	UserID string
}

var _ interfaces.IdentityProvider = StaticProvider{}

func (p StaticProvider) CurrentUserID(context.Context) (string, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return "", ErrNoIdentity
	}
	return p.UserID, nil
}
