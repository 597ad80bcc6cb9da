package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"skillup/internal/config"
	"skillup/internal/crypto"
	"skillup/internal/db"
	"skillup/internal/handlers"
	"skillup/internal/logger"
	"skillup/internal/metrics"
	mw "skillup/internal/middleware"
	"skillup/internal/password"
	"skillup/internal/services"
	"skillup/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	encKey, err := crypto.DecodeKey(cfg.EncryptionKey)
	if err != nil {
		log.Fatal("invalid ENCRYPTION_KEY", zap.Error(err))
	}
	indexKey, err := crypto.DecodeKey(cfg.BlindIndexKey)
	if err != nil {
		log.Fatal("invalid BLIND_INDEX_KEY", zap.Error(err))
	}
	encSvc, err := services.NewEncryptionService(encKey, indexKey)
	if err != nil {
		log.Fatal("failed to init encryption", zap.Error(err))
	}

	st, closeStore := openStore(cfg, log)
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewCollector(reg)

	accounts := services.NewAccountService(st, encSvc, password.NewBcryptHasher(0), rec, log)
	goals := services.NewGoalService(st, encSvc, rec, log, cfg.Location)

	limitCfg := mw.DefaultRateLimiterConfig()
	limitCfg.PerMinute = cfg.AuthRatePerMinute
	limitCfg.Burst = cfg.AuthRateBurst
	limiter := mw.NewRateLimiter(limitCfg, log)
	defer limiter.Stop()

	router := handlers.NewRouter(handlers.RouterConfig{
		Accounts:       accounts,
		Goals:          goals,
		DB:             st,
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.TokenTTL,
		CORSOrigins:    cfg.CORSOrigins,
		TrustProxy:     cfg.TrustProxy,
		AuthLimiter:    limiter,
		Metrics:        rec,
		MetricsHandler: metrics.Handler(reg),
		Log:            log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}

// openStore connects to PostgreSQL and migrates it, or falls back to the
// in-memory store when DATABASE_URL is unset.
func openStore(cfg *config.Config, log *zap.Logger) (store.Store, func()) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set; using in-memory store, data is lost on restart")
		return store.NewMemoryStore(), func() {}
	}

	conn, err := sqlx.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to open db", zap.Error(err))
	}
	conn.SetMaxOpenConns(cfg.DBMaxOpen)
	conn.SetConnMaxLifetime(2 * time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		log.Fatal("failed to ping db", zap.Error(err))
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Fatal("failed migrations", zap.Error(err))
	}
	return store.NewPostgresStore(conn), func() { conn.Close() }
}
