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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nrednav/cuid2"
	"github.com/rs/zerolog"

	"github.com/enviador/messaging-gateway/internal/config"
	"github.com/enviador/messaging-gateway/internal/dispatch"
	emailvalidator "github.com/enviador/messaging-gateway/internal/dispatch/validator/email"
	whatsappvalidator "github.com/enviador/messaging-gateway/internal/dispatch/validator/whatsapp"
	"github.com/enviador/messaging-gateway/internal/handlers"
	"github.com/enviador/messaging-gateway/internal/logger"
	"github.com/enviador/messaging-gateway/internal/senders"
	"github.com/enviador/messaging-gateway/internal/senders/factory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fail("config load", err)
	}

	baseLogger, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		fail("logger init", err)
	}
	log := baseLogger.With().Str("service", "api-server").Logger()

	emailProvider, err := factory.Email(cfg.Senders, log.With().Str("component", "email-sender").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise email sender")
	}
	waProvider, err := factory.WhatsApp(cfg.Senders, log.With().Str("component", "whatsapp-sender").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise whatsapp sender")
	}

	senderSet, err := senders.NewSet(
		emailProvider,
		waProvider,
		time.Duration(cfg.Timeouts.SenderTimeoutSeconds)*time.Second,
		log.With().Str("component", "senders").Logger(),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise sender set")
	}

	dispatcher, err := dispatch.New(
		emailvalidator.New(cfg.Validation, log.With().Str("component", "email-validator").Logger()),
		whatsappvalidator.New(cfg.Validation, log.With().Str("component", "whatsapp-validator").Logger()),
		senderSet,
		log.With().Str("component", "dispatcher").Logger(),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise dispatcher")
	}

	server := echo.New()
	server.HideBanner = true
	server.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(middleware.Recover())

	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	server.GET("/health", handlers.Health)
	server.POST("/send", handlers.Send(dispatcher))
	server.POST("/send-email", handlers.SendEmail(dispatcher))
	server.POST("/send-whatsapp", handlers.SendWhatsApp(dispatcher))

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		log.Info().Str("addr", addr).Msg("api server started")
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server terminated unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func fail(stage string, err error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	logger.Fatal().Err(err).Str("stage", stage).Msg("api server init failed")
}
