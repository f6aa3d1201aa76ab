package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/canaryfuel/fuel-price-dashboard/internal/config"
	"github.com/canaryfuel/fuel-price-dashboard/internal/fuel"
	"github.com/canaryfuel/fuel-price-dashboard/internal/fuel/upstream"
	"github.com/canaryfuel/fuel-price-dashboard/internal/warehouse"
)

// Runs one ingestion: fetch the current snapshot, map it against the
// warehouse dimensions and persist the fact batch. Per-row failures end up
// in the run report; a fetch or store failure is fatal for the run.
func main() {
	log := config.NewLogger()

	if err := godotenv.Load(); err != nil {
		log.WithError(err).Info("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	db, err := warehouse.Open(cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("failed to open warehouse")
	}
	store := warehouse.NewStore(db)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	client := upstream.NewClient(httpClient, cfg.APIEndpoint)

	service := fuel.NewService(store, client, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := service.RunIngestion(ctx, time.Now().UTC())
	if err != nil {
		log.WithError(err).Error("ingestion run failed")
		os.Exit(1)
	}
	log.WithFields(report.Fields()).Info("ingestion run finished")
}
