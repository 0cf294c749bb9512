package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/modelworkmethod/edm-bot-3.0-v2-sub002/docs"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/duel"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/economy"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/handler"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/metrics"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/middleware"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/progression"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/sse"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/xpevent"
)

// Config holds the HTTP listener settings
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Version        string
	MaxBodyBytes   int64
}

// Deps are the services behind the API
type Deps struct {
	DB          handler.Pinger
	Progression progression.Service
	Economy     economy.Service
	Duels       duel.Service
	XPEvents    xpevent.Service
	// Stream is optional; without it the event stream route is not mounted
	Stream *sse.Hub
}

// Server is the HTTP API
type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and its middleware stack
func NewServer(cfg Config, deps Deps) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultRequestBodyMaxSize
	}
	handler.InitValidator()

	r := chi.NewRouter()
	detector := NewSuspiciousActivityDetector()

	// Outermost first: the request id must exist before anything logs
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(middleware.Logger)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DB))
	r.Get("/version", handler.HandleVersion(cfg.Version))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	progressionHandlers := handler.NewProgressionHandlers(deps.Progression)
	economyHandlers := handler.NewEconomyHandlers(deps.Economy)
	duelHandler := handler.NewDuelHandler(deps.Duels)
	xpEventHandlers := handler.NewXPEventHandlers(deps.XPEvents)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/progression", func(r chi.Router) {
			r.Post("/submit", progressionHandlers.HandleSubmitStats)
			r.Get("/profile", progressionHandlers.HandleGetProfile)
			r.Post("/chat", progressionHandlers.HandleChatEngagement)
			r.Put("/faction", progressionHandlers.HandleSetFaction)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/progression/reset", progressionHandlers.HandleResetProgression)
		})

		r.Route("/economy", func(r chi.Router) {
			r.Post("/award", economyHandlers.HandleAward)
			r.Get("/history", economyHandlers.HandleHistory)
			r.Get("/boosts", economyHandlers.HandleBoosts)
		})

		r.Route("/duels", func(r chi.Router) {
			r.Post("/", duelHandler.HandleCreate)
			r.Get("/{id}", duelHandler.HandleGet)
			r.Post("/{id}/accept", duelHandler.HandleAccept)
			r.Post("/{id}/decline", duelHandler.HandleDecline)
			r.Post("/{id}/complete", duelHandler.HandleComplete)
		})

		r.Route("/xp-events", func(r chi.Router) {
			r.Post("/", xpEventHandlers.HandleCreate)
			r.Get("/active", xpEventHandlers.HandleListActive)
			r.Delete("/{id}", xpEventHandlers.HandleEnd)
		})

		if deps.Stream != nil {
			r.Get("/events/stream", sse.Handler(deps.Stream))
		}
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until Stop is called. It returns http.ErrServerClosed after a clean stop.
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop drains in-flight requests until ctx expires
func (s *Server) Stop(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
