package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	emailPkg "spinstudio/internal/adapters/email"
	web "spinstudio/internal/adapters/http"
	"spinstudio/internal/adapters/http/middleware"
	"spinstudio/internal/application/studio"
	"spinstudio/internal/config"
	"spinstudio/internal/domain/navigation"
	"spinstudio/internal/perf"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	setupLogger(cfg.LogLevel, cfg.IsProduction())

	csrfKey, err := cfg.CSRFSecret()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load csrf key")
	}

	// Configure email sender
	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		log.Info().Msg("email sender configured (resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			log.Warn().Msg("STUDIO_RESEND_KEY is not set, password reset email is disabled")
		} else {
			log.Info().Msg("email sender configured (noop, set STUDIO_RESEND_KEY for real delivery)")
		}
	}

	collector := perf.NewCollector(perf.DefaultRingSize)
	timings := navigation.Timings{
		SplashDelay: cfg.SplashDelay,
		FinalDelay:  cfg.FinalDelay,
		AdminIdle:   cfg.AdminIdle,
	}

	// One studio instance per browser session, each on its own in-memory database.
	registry := middleware.NewRegistry(func(ctx context.Context, id string) (*studio.App, error) {
		return studio.New(ctx, id, studio.Config{
			Clock:         clockwork.NewRealClock(),
			Timings:       timings,
			BikeCount:     cfg.BikeCount,
			AdminPassword: cfg.AdminPassword,
			Email:         sender,
			EmailFrom:     cfg.EmailFrom,
			ResetURL:      cfg.ResetURL,
			Perf:          collector,
			SlowQuery:     cfg.SlowQuery,
		})
	}, cfg.SessionTTL)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Second)

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: web.NewRouter(web.Deps{
			Registry:       registry,
			Limiter:        limiter,
			Perf:           collector,
			CSRFKey:        csrfKey,
			Secure:         cfg.IsProduction(),
			AllowedOrigins: cfg.AllowedOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().
			Str("version", version).
			Str("addr", cfg.Addr).
			Str("env", cfg.Env).
			Msg("studio server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	limiter.Stop()
	registry.Stop()
	log.Info().Msg("server exited")
}

// setupLogger configures the global zerolog logger. Development gets the
// console writer; production logs JSON lines.
func setupLogger(level string, production bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	if !production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
