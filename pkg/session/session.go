// Package session provides cookie-identified server-side sessions.
//
// The cookie carries only the session id, sealed with the application
// secret; the data lives in a cache.Store (Redis or memory). Sessions are
// saved automatically before the first byte of the response is written.
//
//	sess := session.FromCtx(r)
//	sess.Set("user_id", user.ID)
//	id, ok := sess.GetUint("user_id")
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/crypt"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// ------------------- Options -------------------

// Options configures the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions reads SESSION_TTL and SESSION_SECURE.
func DefaultOptions() Options {
	return Options{
		CookieName: "storefront_session",
		TTL:        config.SessionTTL(),
		HTTPOnly:   true,
		Secure:     config.SessionSecure(),
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// ------------------- Manager -------------------

// Manager loads and persists sessions.
type Manager struct {
	store cache.Store
	box   *crypt.Box
	opts  Options
}

// NewManager builds a Manager whose cookies are sealed with secret.
func NewManager(store cache.Store, secret string, opts Options) (*Manager, error) {
	box, err := crypt.NewBox(secret)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return &Manager{store: store, box: box, opts: opts}, nil
}

func storeKey(id string) string { return "storefront:session:" + id }

func (m *Manager) load(ctx context.Context, r *http.Request) *Session {
	sess := &Session{mgr: m, data: map[string]interface{}{}}

	cookie, err := r.Cookie(m.opts.CookieName)
	if err == nil {
		if raw, err := m.box.Open(cookie.Value); err == nil {
			id := string(raw)
			var data map[string]interface{}
			if m.store.Get(ctx, storeKey(id), &data) {
				sess.id = id
				if data != nil {
					sess.data = data
				}
				return sess
			}
		}
	}

	sess.id = uuid.NewString()
	return sess
}

// Middleware attaches a Session to every request and saves it before the
// response is committed.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := m.load(r.Context(), r)
			sw := &saveWriter{ResponseWriter: w, sess: sess, ctx: r.Context()}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
			sw.save()
		})
	}
}

// saveWriter persists the session on the first WriteHeader or Write, while
// Set-Cookie can still be added.
type saveWriter struct {
	http.ResponseWriter
	sess  *Session
	ctx   context.Context
	saved bool
}

func (w *saveWriter) save() {
	if w.saved {
		return
	}
	w.saved = true
	if err := w.sess.Save(w.ctx, w.ResponseWriter); err != nil {
		logger.WithCtx(w.ctx).Error("session save failed", "error", err)
	}
}

func (w *saveWriter) WriteHeader(code int) {
	w.save()
	w.ResponseWriter.WriteHeader(code)
}

func (w *saveWriter) Write(b []byte) (int, error) {
	w.save()
	return w.ResponseWriter.Write(b)
}

// ------------------- Session -------------------

type ctxKey struct{}

// Session is the per-request handle.
type Session struct {
	mgr     *Manager
	id      string
	data    map[string]interface{}
	changed bool
	stale   []string
}

// FromCtx returns the request's session. Outside the middleware it returns a
// detached session that is never persisted.
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	return &Session{id: uuid.NewString(), data: map[string]interface{}{}}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Set(key string, value interface{}) {
	s.data[key] = value
	s.changed = true
}

func (s *Session) Get(key string) (interface{}, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.data[key].(string)
	return v, ok
}

// GetUint reads an id-like value. Values that went through the store come
// back as float64.
func (s *Session) GetUint(key string) (uint, bool) {
	switch n := s.data[key].(type) {
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case uint:
		return n, true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	}
	return 0, false
}

func (s *Session) Delete(key string) {
	if _, ok := s.data[key]; !ok {
		return
	}
	delete(s.data, key)
	s.changed = true
}

// Flash stores a message that is removed the first time it is read.
func (s *Session) Flash(key, message string) {
	s.Set("_flash_"+key, message)
}

// GetFlash returns and removes a flash message.
func (s *Session) GetFlash(key string) (string, bool) {
	v, ok := s.GetString("_flash_" + key)
	if ok {
		s.Delete("_flash_" + key)
	}
	return v, ok
}

// Regenerate moves the data to a new id. Call on login so an id issued
// before authentication is never trusted after it.
func (s *Session) Regenerate() {
	s.stale = append(s.stale, s.id)
	s.id = uuid.NewString()
	s.changed = true
}

// Invalidate drops all data and the stored record (logout).
func (s *Session) Invalidate() {
	s.data = map[string]interface{}{}
	s.Regenerate()
}

// Save writes the session to the store and sets the cookie. An emptied
// session expires the cookie instead.
func (s *Session) Save(ctx context.Context, w http.ResponseWriter) error {
	if s.mgr == nil || !s.changed {
		return nil
	}
	m := s.mgr

	if len(s.stale) > 0 {
		keys := make([]string, len(s.stale))
		for i, id := range s.stale {
			keys[i] = storeKey(id)
		}
		if err := m.store.Del(ctx, keys...); err != nil {
			return fmt.Errorf("session: delete stale: %w", err)
		}
		s.stale = nil
	}

	if len(s.data) == 0 {
		if err := m.store.Del(ctx, storeKey(s.id)); err != nil {
			return fmt.Errorf("session: delete: %w", err)
		}
		http.SetCookie(w, m.cookie("", -1))
		s.changed = false
		return nil
	}

	if err := m.store.Set(ctx, storeKey(s.id), s.data, m.opts.TTL); err != nil {
		return fmt.Errorf("session: store: %w", err)
	}

	sealed, err := m.box.Seal([]byte(s.id))
	if err != nil {
		return fmt.Errorf("session: seal: %w", err)
	}
	http.SetCookie(w, m.cookie(sealed, int(m.opts.TTL.Seconds())))

	s.changed = false
	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     m.opts.Path,
		MaxAge:   maxAge,
		HttpOnly: m.opts.HTTPOnly,
		Secure:   m.opts.Secure,
		SameSite: m.opts.SameSite,
	}
}
