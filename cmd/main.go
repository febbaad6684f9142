package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"oddsdesk/prop_fetcher/cmd/config"
	"oddsdesk/prop_fetcher/internal/api"
	"oddsdesk/prop_fetcher/internal/sender"
	"oddsdesk/prop_fetcher/internal/server"
	"oddsdesk/prop_fetcher/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	logger.Info().Msg(">> Starting prop_fetcher")

	appConfig, err := config.ProvideAppConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load app configuration")
	}

	oddsAPI := api.New(appConfig.APIConfig, &logger)
	progressSender := sender.New()
	oddsService := service.New(oddsAPI, appConfig.APIConfig, &logger)
	httpServer := server.New(appConfig, oddsService, progressSender, &logger)

	srv := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: httpServer.Router(),
	}

	go func() {
		if err = srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	logger.Info().Msgf("Listening on :%s. Sport: %s, bookmaker: %s", appConfig.Port, appConfig.Sport, appConfig.Bookmaker)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	progressSender.CloseAll()

	if err = srv.Shutdown(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("failed to stop server")
	}

	logger.Info().Msg(">> Stopping prop_fetcher")
}
