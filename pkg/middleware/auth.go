package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/session"
)

// SessionUserKey is the session key holding the logged-in user's id.
const SessionUserKey = "user_id"

// UserLoader resolves a user id to an identity. It returns an error wrapping
// auth.ErrUnknownUser when the user does not exist.
type UserLoader func(ctx context.Context, userID uint) (*auth.Identity, error)

// Authenticate resolves the caller from the session cookie, or from an
// "Authorization: Bearer" token when there is no session user, and stores
// the identity in the request context. Requests it cannot resolve continue
// anonymously; each handler decides what anonymous means.
//
// Wire it after the session middleware.
func Authenticate(load UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := resolve(r, load); id != nil {
				r = r.WithContext(auth.WithIdentity(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolve(r *http.Request, load UserLoader) *auth.Identity {
	ctx := r.Context()
	log := logger.WithCtx(ctx)
	sess := session.FromCtx(r)

	if uid, ok := sess.GetUint(SessionUserKey); ok {
		id, err := load(ctx, uid)
		if err == nil {
			return id
		}
		if !errors.Is(err, auth.ErrUnknownUser) {
			// the store may be down: keep the login
			log.Error("session user could not be loaded", "user_id", uid, "error", err)
			return nil
		}
		log.Warn("session user no longer exists", "user_id", uid)
		sess.Delete(SessionUserKey)
	}

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return nil
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		log.Debug("bearer token rejected", "error", err)
		return nil
	}

	id, err := load(ctx, claims.UserID)
	if err != nil {
		log.Debug("bearer token user could not be loaded", "user_id", claims.UserID, "error", err)
		return nil
	}
	return id
}
