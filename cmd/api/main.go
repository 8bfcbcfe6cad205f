package main

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4/middleware"

	"stylistapi/controllers"
	"stylistapi/services"
	"stylistapi/stylist"
)

func main() {
	cfg := services.LoadConfig()
	logger := services.NewLogger(cfg.Env, cfg.LogLevel)

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Env,
			Release:          "stylistapi@1.0.0",
			Debug:            false,
			TracesSampleRate: 1.0,
		})
		if err != nil {
			log.Fatalf("sentry.Init: %s", err)
		}
		defer sentry.Flush(2 * time.Second)
	} else {
		logger.Info().Msg("SENTRY_DSN is not set, error reporting disabled")
	}
	if cfg.GoogleAPIKey == "" {
		logger.Warn().Msg("GOOGLE_API_KEY is not set, outfit generation will fail until it is")
	}

	sessions, err := stylist.NewSessionStore(cfg.SessionTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize session store")
	}
	defer sessions.Close()

	metrics := services.NewMetrics()
	provider := services.NewGoogleStylist(services.GoogleStylistConfig{
		APIKey:           cfg.GoogleAPIKey,
		BaseURL:          cfg.GenAIBaseURL,
		DescriptionModel: cfg.DescriptionModel,
		ImageModel:       cfg.ImageModel,
	}, logger)
	generator := stylist.NewGenerator(provider, metrics, logger)

	e := controllers.SetupServer(sessions, generator, metrics, logger, cfg.UploadBodyLimit)
	e.Debug = cfg.Env == "local"
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	logger.Info().Str("port", cfg.Port).Str("description_model", cfg.DescriptionModel).Str("image_model", cfg.ImageModel).Msg("starting stylist api")
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
