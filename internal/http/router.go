package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/nhl-discord-bot/internal/http/handlers"
	"github.com/preston-bernstein/nhl-discord-bot/internal/http/middleware"
	"github.com/preston-bernstein/nhl-discord-bot/internal/http/requestutil"
	"github.com/preston-bernstein/nhl-discord-bot/internal/metrics"
)

// RouterConfig collects the handlers mounted on the listener.
type RouterConfig struct {
	Handler        *handlers.Handler
	Admin          *handlers.AdminHandler
	Goals          nethttp.Handler
	Logger         *slog.Logger
	Metrics        *metrics.Recorder
	AllowedOrigins []string
}

// NewRouter registers HTTP routes on a chi router.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	h := cfg.Handler
	if h == nil {
		h = handlers.NewHandler(nil, cfg.Logger, nil)
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/", h.Root)
	r.Head("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodDelete, nethttp.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestutil.HeaderRequestID},
			ExposedHeaders: []string{requestutil.HeaderRequestID},
			MaxAge:         300,
		}))
		r.Get("/watch", h.Watching)
		if cfg.Admin != nil {
			r.Post("/watch/{"+handlers.GameIDParam+"}", cfg.Admin.Watch)
			r.Delete("/watch/{"+handlers.GameIDParam+"}", cfg.Admin.Unwatch)
			r.Post("/admin/rebuild", cfg.Admin.Rebuild)
		}
	})

	if cfg.Goals != nil {
		r.Get("/ws/goals", cfg.Goals.ServeHTTP)
	}
	return r
}
