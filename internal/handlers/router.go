package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"skillup/internal/metrics"
	mw "skillup/internal/middleware"
)

// Accounts combines everything the auth and user endpoints need.
type Accounts interface {
	Authenticator
	AccountService
}

type RouterConfig struct {
	Accounts  Accounts
	Goals     GoalService
	DB        Pinger
	JWTSecret []byte
	TokenTTL  time.Duration

	CORSOrigins []string

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable it only behind a proxy that overwrites those headers.
	TrustProxy bool

	// AuthLimiter throttles signup and login when set.
	AuthLimiter    *mw.RateLimiter
	Metrics        metrics.Recorder
	MetricsHandler http.Handler
	Log            *zap.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	rec := cfg.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(mw.ZapRequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(mw.Metrics(rec))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := NewAuthHandler(cfg.Accounts, cfg.JWTSecret, cfg.TokenTTL, log)
	userHandler := NewUserHandler(cfg.Accounts, log)
	goalHandler := NewGoalHandler(cfg.Goals, log)
	progressHandler := NewProgressHandler(cfg.Goals, log)
	dashboardHandler := NewDashboardHandler(cfg.Goals, log)
	migrateHandler := NewMigrateHandler(cfg.Goals, log)
	authMW := mw.NewAuthMiddleware(cfg.JWTSecret)

	if cfg.DB != nil {
		r.Get("/healthz", NewHealthHandler(cfg.DB, log).Healthz)
	}
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Group(func(pub chi.Router) {
			if cfg.AuthLimiter != nil {
				pub.Use(cfg.AuthLimiter.Middleware)
			}
			pub.Post("/auth/signup", authHandler.Signup)
			pub.Post("/auth/login", authHandler.Login)
		})
		api.Get("/goals/xp-preview", progressHandler.XPPreview)

		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)

			pr.Get("/me", userHandler.GetMe)
			pr.Delete("/me", userHandler.DeleteMe)
			pr.Put("/me/profile", userHandler.UpdateProfile)
			pr.Put("/me/notifications", userHandler.UpdateNotifications)
			pr.Put("/me/visibility", userHandler.UpdateVisibility)
			pr.Put("/me/password", userHandler.ChangePassword)

			pr.Post("/goals", goalHandler.Create)
			pr.Get("/goals", goalHandler.List)
			pr.Get("/goals/summary", progressHandler.Summary)
			pr.Post("/goals/{id}/complete", goalHandler.Complete)

			pr.Get("/dashboard", dashboardHandler.Get)
			pr.Post("/import", migrateHandler.Import)
		})
	})
	return r
}
