package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"catalog_query/internal/adapters/dummyjson"
	server "catalog_query/internal/adapters/http_server"
	"catalog_query/internal/adapters/observability"
	"catalog_query/internal/app"
	"catalog_query/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	if _, err := observability.Serve(cfg.MetricsAddr, reg); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.MetricsAddr).Msg("metrics listener failed")
	}

	client, err := dummyjson.New(cfg.CatalogBase, cfg.CatalogRPS, cfg.CatalogTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog client")
	}
	q := app.NewCatalogService(client)

	// http
	srv := server.New(log.Logger, cfg.CatalogTimeout+5*time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("catalog", cfg.CatalogBase).
		Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
