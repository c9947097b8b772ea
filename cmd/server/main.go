// Package main starts the portfolio backend HTTP server.
//
// Startup order: load .env (best effort), parse configuration, configure
// logging, install tracing, open and migrate the database, build the mail
// notifier, then serve until SIGINT/SIGTERM and shut down gracefully.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/plugin/opentelemetry/tracing"

	_ "github.com/cbouguerba/portfolio-backend/docs"
	"github.com/cbouguerba/portfolio-backend/internal/config"
	httpapi "github.com/cbouguerba/portfolio-backend/internal/http"
	"github.com/cbouguerba/portfolio-backend/internal/mail"
	"github.com/cbouguerba/portfolio-backend/internal/observability"
	"github.com/cbouguerba/portfolio-backend/internal/repo"
	"github.com/cbouguerba/portfolio-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// shutdownGrace bounds in-flight request draining on exit.
const shutdownGrace = 10 * time.Second

func main() {
	// Local development convenience; production supplies real env vars.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := shutdownOTel(c); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database failed")
	}
	if cfg.OTEL.Enabled {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			log.Warn().Err(err).Msg("gorm tracing plugin")
		}
	}

	notifier := buildNotifier(cfg.Mail)
	if notifier == nil {
		log.Warn().Msg("mail disabled: contact notifications will not be sent")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, notifier, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// buildNotifier assembles the operator notifier from mail configuration, or
// returns nil when mail is not configured. The primary channel speaks
// STARTTLS; the fallback reuses the same server and credentials over
// implicit TLS when a fallback port is set.
func buildNotifier(mc config.MailConfig) *mail.Notifier {
	if !mc.Enabled() {
		return nil
	}
	n := &mail.Notifier{
		Primary: mail.NewSMTPSender(mail.SMTPOptions{
			Host:     mc.Host,
			Port:     mc.Port,
			Username: mc.Username,
			Password: mc.Password,
			From:     mc.From,
			Timeout:  mc.Timeout,
		}),
		Operator: mc.Operator,
	}
	if mc.FallbackPort > 0 {
		n.Fallback = mail.NewSMTPSender(mail.SMTPOptions{
			Host:     mc.Host,
			Port:     mc.FallbackPort,
			Username: mc.Username,
			Password: mc.Password,
			From:     mc.From,
			SSL:      true,
			Timeout:  mc.Timeout,
		})
	}
	return n
}
