package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"spinstudio/internal/application/studio"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const appContextKey contextKey = "studio"

const sessionCookieName = "studio_session"

// Factory starts a seeded studio instance.
type Factory func(ctx context.Context, id string) (*studio.App, error)

type session struct {
	app      *studio.App
	lastSeen time.Time
}

// Registry maps session tokens to running studio instances.
// Instances idle for longer than the TTL are closed by a background sweep.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	factory  Factory
	ttl      time.Duration
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

// NewRegistry creates a registry.
// PRE: factory is non-nil; ttl > 0
// POST: A background goroutine closes idle instances until Stop is called
func NewRegistry(factory Factory, ttl time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[string]*session),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go r.sweepLoop()
	return r
}

func (r *Registry) sweepLoop() {
	interval := r.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Create starts a new instance and returns its token.
// POST: the instance is registered under a fresh random token
func (r *Registry) Create(ctx context.Context) (string, *studio.App, error) {
	token, err := generateToken()
	if err != nil {
		return "", nil, err
	}
	app, err := r.factory(ctx, uuid.NewString())
	if err != nil {
		return "", nil, err
	}

	r.mu.Lock()
	r.sessions[token] = &session{app: app, lastSeen: r.now()}
	n := len(r.sessions)
	r.mu.Unlock()

	log.Info().Str("studio", app.ID()).Int("sessions", n).Msg("session_created")
	return token, app, nil
}

// Get returns the instance for token and marks it as seen.
func (r *Registry) Get(token string) (*studio.App, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok {
		return nil, false
	}
	s.lastSeen = r.now()
	return s.app, true
}

// Delete closes and forgets the instance for token.
func (r *Registry) Delete(token string) {
	r.mu.Lock()
	s, ok := r.sessions[token]
	delete(r.sessions, token)
	r.mu.Unlock()
	if ok {
		closeApp(s.app, "deleted")
	}
}

// Sweep closes every instance idle for longer than the TTL.
// POST: returns the number of instances closed
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)
	var expired []*studio.App

	r.mu.Lock()
	for token, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			expired = append(expired, s.app)
			delete(r.sessions, token)
		}
	}
	r.mu.Unlock()

	for _, app := range expired {
		closeApp(app, "expired")
	}
	return len(expired)
}

// Len returns the number of live instances.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Stop ends the sweep and closes every instance.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.done) })

	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*session)
	r.mu.Unlock()

	for _, s := range all {
		closeApp(s.app, "shutdown")
	}
}

func closeApp(app *studio.App, reason string) {
	if err := app.Close(); err != nil {
		log.Error().Err(err).Str("studio", app.ID()).Msg("studio_close_failed")
		return
	}
	log.Info().Str("studio", app.ID()).Str("reason", reason).Msg("session_closed")
}

// Sessions returns middleware that attaches the caller's studio instance to
// the request context, starting one on the first request.
func Sessions(reg *Registry, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var app *studio.App
			if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
				app, _ = reg.Get(cookie.Value)
			}
			if app == nil {
				token, created, err := reg.Create(r.Context())
				if err != nil {
					log.Error().Err(err).Msg("session_create_failed")
					http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
					return
				}
				SetSessionCookie(w, token, secure, reg.ttl)
				app = created
			}
			next.ServeHTTP(w, r.WithContext(ContextWithApp(r.Context(), app)))
		})
	}
}

// AppFromContext extracts the session's studio instance.
func AppFromContext(ctx context.Context) (*studio.App, bool) {
	app, ok := ctx.Value(appContextKey).(*studio.App)
	return app, ok
}

// ContextWithApp returns a context carrying app.
// Intended for handlers and tests.
func ContextWithApp(ctx context.Context, app *studio.App) context.Context {
	return context.WithValue(ctx, appContextKey, app)
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string, secure bool, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
