// Package auth holds the authenticated identity, password hashing and the
// bearer tokens accepted next to session cookies.
package auth

import (
	"context"
	"errors"
)

// ErrUnknownUser is returned by user loaders when the id no longer names a
// user, as opposed to the lookup failing.
var ErrUnknownUser = errors.New("auth: unknown user")

// Identity is the resolved, authenticated caller. Services receive it
// explicitly; a nil Identity means anonymous.
type Identity struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored by the authentication middleware.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok && id != nil
}
