package web

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"spinstudio/internal/adapters/http/middleware"
	"spinstudio/internal/perf"
)

//go:embed templates/*.html static
var assets embed.FS

// Deps holds everything the router needs.
type Deps struct {
	Registry       *middleware.Registry
	Limiter        *middleware.RateLimiter // nil disables rate limiting
	Perf           *perf.Collector         // nil disables /debug/perf
	CSRFKey        []byte                  // nil disables CSRF (tests only)
	Secure         bool
	AllowedOrigins []string
	SlowRequest    time.Duration
}

type server struct {
	deps     Deps
	upgrader websocket.Upgrader
}

// NewRouter wires the HTTP surface of the app.
// PRE: deps.Registry is non-nil
// POST: every route except /healthz and /static/ runs against the caller's studio instance
func NewRouter(deps Deps) http.Handler {
	s := &server{deps: deps}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(deps.AllowedOrigins),
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(deps.AllowedOrigins))
	if deps.Limiter != nil {
		r.Use(middleware.RateLimit(deps.Limiter))
	}
	r.Use(middleware.Timing(deps.Perf, deps.SlowRequest))

	static, _ := fs.Sub(assets, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	r.Get("/healthz", handleHealth)
	if deps.Perf != nil {
		r.Get("/debug/perf", s.handlePerf)
	}

	r.Group(func(r chi.Router) {
		if deps.CSRFKey != nil {
			r.Use(middleware.CSRF(deps.CSRFKey, deps.Secure, deps.AllowedOrigins))
		}
		r.Use(middleware.Sessions(deps.Registry, deps.Secure))

		r.Get("/", s.handleShell)
		r.Route("/api", func(r chi.Router) {
			r.Get("/view", s.handleView)
			r.Post("/intents/{name}", s.handleIntent)
			r.Post("/profile/avatar", s.handleAvatarUpload)
			r.Post("/chat/attachments", s.handleChatAttachment)
		})
		r.Get("/ws/scanner", s.handleScanner)
	})

	return r
}

// originChecker admits same-origin upgrades, plus any configured origin.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == origin {
				return true
			}
		}
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}
