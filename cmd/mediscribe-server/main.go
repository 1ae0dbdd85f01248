package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mediscribe/mediscribe/internal/ai"
	"github.com/mediscribe/mediscribe/internal/assist"
	"github.com/mediscribe/mediscribe/internal/config"
	"github.com/mediscribe/mediscribe/internal/ehr"
	"github.com/mediscribe/mediscribe/internal/patients"
	"github.com/mediscribe/mediscribe/internal/platform/auth"
	"github.com/mediscribe/mediscribe/internal/platform/middleware"
)

const maxRequestBody = 1 << 20 // 1 MB

func main() {
	rootCmd := &cobra.Command{
		Use:   "mediscribe-server",
		Short: "Clinical documentation assistant API",
	}
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger() zerolog.Logger {
	if os.Getenv("ENV") == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// newServer wires the whole application. Split from runServer so tests can
// exercise the routing table without binding a port.
func newServer(cfg *config.Config, logger zerolog.Logger) (*echo.Echo, error) {
	secret := cfg.SessionSecret
	if secret == "" {
		// Development fallback: sessions die with the process.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		secret = hex.EncodeToString(buf)
		logger.Warn().Msg("SESSION_SECRET not set, using an ephemeral secret")
	}
	sessions := auth.NewSessionManager(secret)

	ehrClient := ehr.NewClient(cfg, logger)
	patientsSvc := patients.NewService(cfg, ehrClient, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(maxRequestBody))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	e.Use(sessions.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
			"mode":   cfg.DataSource,
		})
	})

	apiV1 := e.Group("/api/v1")
	if cfg.RateLimitRPS > 0 {
		apiV1.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	auth.NewHandler(cfg, sessions, ehrClient, logger).RegisterRoutes(apiV1)
	patients.NewHandler(patientsSvc).RegisterRoutes(apiV1)

	provider, err := ai.New(cfg)
	if err != nil {
		// The record API still works without a completion provider; the
		// assistant panels just stay dark.
		logger.Warn().Err(err).Msg("assist endpoints disabled")
	} else {
		logger.Info().Str("provider", provider.Name()).Msg("completion provider ready")
		assist.NewHandler(patientsSvc, provider, logger).RegisterRoutes(apiV1)
	}

	return e, nil
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	e, err := newServer(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build server")
	}

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("mode", cfg.DataSource).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		return err
	}
	return nil
}
