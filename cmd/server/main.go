package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"ulascansenturk/city-explorer/config"
	"ulascansenturk/city-explorer/internal/api/v1/handlers"
	"ulascansenturk/city-explorer/internal/db"
	"ulascansenturk/city-explorer/internal/db/citydata"
	"ulascansenturk/city-explorer/internal/inmemorycache"
	"ulascansenturk/city-explorer/internal/providers"
	"ulascansenturk/city-explorer/internal/scheduler"
	"ulascansenturk/city-explorer/internal/service"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || conf.LogLevel == "" {
		logLevel = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()

	ctx, mainCtxStop := context.WithCancel(context.Background())

	database, err := db.Connect(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	locationRepo := citydata.NewLocationRepository(database)
	weatherRepo := citydata.NewWeatherRepository(database)
	meetupRepo := citydata.NewMeetupRepository(database)
	businessRepo := citydata.NewBusinessRepository(database)

	cacheProvider := inmemorycache.NewInMemoryCacheProvider(time.Minute)

	providerClient := &http.Client{Timeout: conf.ProviderTimeout}
	geocoder := providers.NewGeocoder(conf.GeocodeAPIKey, conf.GeocodeBaseURL, providerClient)
	forecasts := providers.NewForecastProvider(conf.WeatherAPIKey, conf.WeatherBaseURL, providerClient)
	events := providers.NewEventProvider(conf.MeetupAPIKey, conf.MeetupBaseURL, conf.MeetupLimit, providerClient)
	businesses := providers.NewBusinessProvider(conf.YelpAPIKey, conf.YelpBaseURL, providerClient)

	locationAggregator := service.NewRequestAggregator[citydata.Location](conf.ProviderTimeout)
	weatherAggregator := service.NewRequestAggregator[[]citydata.Weather](conf.ProviderTimeout)
	meetupAggregator := service.NewRequestAggregator[[]citydata.Meetup](conf.ProviderTimeout)
	businessAggregator := service.NewRequestAggregator[[]citydata.Business](conf.ProviderTimeout)

	locationService := service.NewLocationService(geocoder, locationRepo, cacheProvider, conf.LocationMemoryTTL, locationAggregator)
	weatherService := service.NewWeatherService(forecasts, weatherRepo, conf.CacheTTL, weatherAggregator)
	meetupService := service.NewMeetupService(events, meetupRepo, conf.MeetupLimit, conf.CacheTTL, meetupAggregator)
	businessService := service.NewBusinessService(businesses, businessRepo, conf.CacheTTL, businessAggregator)

	handler := handlers.NewExplorerHandler(
		locationService,
		weatherService,
		meetupService,
		businessService,
		conf.HTTPTimeoutDuration(),
	)
	handler.Handle("/metrics", promhttp.Handler())

	sweeper := scheduler.NewSweeper(conf.SweepInterval, conf.RecordRetention,
		scheduler.Target{Table: "weathers", Purger: weatherRepo},
		scheduler.Target{Table: "meetups", Purger: meetupRepo},
		scheduler.Target{Table: "businesses", Purger: businessRepo},
	)
	if err := sweeper.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start retention sweeper")
	}

	httpServer := &http.Server{
		Addr:              conf.ServerAddress,
		Handler:           handlers.WithCORS(handler, conf.CORSAllowedOrigins),
		ReadHeaderTimeout: conf.HTTPTimeoutDuration(),
	}

	handleSignals(ctx, mainCtxStop, func(shutdownCtx context.Context) {
		shutdownErr := httpServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			log.Fatal().Err(shutdownErr).Msg("server shutdown failed")
		}

		sweeper.Stop()

		locationAggregator.Shutdown()
		weatherAggregator.Shutdown()
		meetupAggregator.Shutdown()
		businessAggregator.Shutdown()

		weatherService.WaitForWrites()
		meetupService.WaitForWrites()
		businessService.WaitForWrites()

		cacheProvider.Stop()

		if sqlDB, err := database.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close database")
			}
		}
	})

	log.Info().Msgf("started server on %s", conf.ServerAddress)

	serverErr := httpServer.ListenAndServe()
	if serverErr != nil && !errors.Is(serverErr, http.ErrServerClosed) {
		log.Err(serverErr).Msg("server stopped")
		mainCtxStop()
	}
	<-ctx.Done()
}

func handleSignals(ctx context.Context, cancelCtx context.CancelFunc, callback func(shutdownCtx context.Context)) {
	sig := make(chan os.Signal, 1)

	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	const shutdownDuration = 30 * time.Second

	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownDuration)

		go func() {
			<-shutdownCtx.Done()

			if shutdownCtx.Err() == context.DeadlineExceeded {
				panic("graceful shutdown timed out.. forcing exit.")
			}
		}()

		callback(shutdownCtx)

		cancel()
		cancelCtx()
	}()
}
