package main

import (
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/canaryfuel/fuel-price-dashboard/internal/config"
	"github.com/canaryfuel/fuel-price-dashboard/internal/warehouse"
)

// Performs the initial bulk load of the dimension tables: the calendar, the
// fixed product and moment enumerations, and the station master CSV.
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

	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"dim_date", warehouse.SeedDates},
		{"dim_product", warehouse.SeedProducts},
		{"dim_moment", warehouse.SeedMoments},
		{"dim_station", func(db *gorm.DB) error {
			return warehouse.SeedStations(db, cfg.StationMasterPath)
		}},
	}

	failed := false
	for _, step := range steps {
		if err := step.run(db); err != nil {
			log.WithError(err).WithField("table", step.name).Error("bulk load step failed")
			failed = true
			continue
		}
		log.WithField("table", step.name).Info("bulk load step completed")
	}
	if failed {
		os.Exit(1)
	}
}
