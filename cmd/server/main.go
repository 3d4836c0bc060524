package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-face-login/internal/config"
	myHTTP "github.com/MKhiriev/go-face-login/internal/handler/http"
	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/MKhiriev/go-face-login/internal/matcher"
	"github.com/MKhiriev/go-face-login/internal/recognizer"
	"github.com/MKhiriev/go-face-login/internal/server"
	"github.com/MKhiriev/go-face-login/internal/service"
	"github.com/MKhiriev/go-face-login/internal/store"
	"github.com/MKhiriev/go-face-login/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("face-login-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	extractor := recognizer.NewHTTPExtractor(cfg.Recognizer)
	faceMatcher := matcher.NewMatcher()

	scanPool := workers.NewPool(cfg.Matcher.IdentifyWorkers)
	workers.NewWorkers(scanPool).Run()
	defer scanPool.Shutdown()

	services := service.NewServices(storages, extractor, faceMatcher, scanPool, *cfg, log)

	handler := myHTTP.NewHandler(services, cfg.Auth, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
