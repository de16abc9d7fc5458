package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/vetclinic-core/internal/config"
	"github.com/jwalitptl/vetclinic-core/internal/handler/relations"
	"github.com/jwalitptl/vetclinic-core/internal/repository"
	"github.com/jwalitptl/vetclinic-core/internal/repository/memory"
	"github.com/jwalitptl/vetclinic-core/internal/repository/postgres"
	"github.com/jwalitptl/vetclinic-core/internal/router"
	"github.com/jwalitptl/vetclinic-core/internal/service/enrichment"
	"github.com/jwalitptl/vetclinic-core/internal/service/integrity"
	"github.com/jwalitptl/vetclinic-core/internal/service/repair"
	"github.com/jwalitptl/vetclinic-core/pkg/logger"
	"github.com/jwalitptl/vetclinic-core/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	var store repository.Store
	switch cfg.Engine.Store {
	case "postgres":
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		store = postgres.NewStore(db)
	default:
		store = memory.NewStore()
	}

	enricher := enrichment.NewService()
	validator := integrity.NewValidator(enricher)
	repairer := repair.NewEngine(appLogger)
	m := metrics.NewMetrics("vetclinic")

	relationsH := relations.NewHandler(store, enricher, validator, repairer, m)

	r := router.NewRouter(relationsH, router.Config{
		RateLimit: rate.Limit(cfg.Server.RateLimit),
		RateBurst: cfg.Server.RateBurst,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("store", cfg.Engine.Store).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
}
