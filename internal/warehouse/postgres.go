package warehouse

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/canaryfuel/fuel-price-dashboard/internal/fuel"
)

// DBConfig holds the postgres connection settings.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Open dials postgres, tunes the connection pool and creates the star-schema
// tables when they do not exist yet.
func Open(cfg DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("obtaining sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := db.AutoMigrate(&DimDate{}, &DimStation{}, &DimProduct{}, &DimMoment{}, &FactData{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return db, nil
}

// Store is the postgres-backed warehouse. It implements fuel.Warehouse.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on an open gorm handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Dimensions reads the active (EndOfUse null) rows of all four dimension
// tables in one pass, for a per-batch registry build.
func (s *Store) Dimensions(ctx context.Context) (fuel.DimensionSet, error) {
	var set fuel.DimensionSet

	var dates []DimDate
	if err := s.db.WithContext(ctx).Where("end_of_use IS NULL").Find(&dates).Error; err != nil {
		return set, fmt.Errorf("reading dim_date: %w", err)
	}
	for _, d := range dates {
		set.Dates = append(set.Dates, fuel.DateRow{DateKey: d.DateKey, Day: d.DateID})
	}

	var stations []DimStation
	if err := s.db.WithContext(ctx).Where("end_of_use IS NULL").Find(&stations).Error; err != nil {
		return set, fmt.Errorf("reading dim_station: %w", err)
	}
	for _, st := range stations {
		set.Stations = append(set.Stations, fuel.StationRow{StationKey: st.StationKey, StationID: st.StationID})
	}

	var products []DimProduct
	if err := s.db.WithContext(ctx).Where("end_of_use IS NULL").Find(&products).Error; err != nil {
		return set, fmt.Errorf("reading dim_product: %w", err)
	}
	for _, p := range products {
		set.Products = append(set.Products, fuel.ProductRow{
			ProductKey: p.ProductKey,
			ProductID:  p.ProductID,
			Name:       p.ProductName,
		})
	}

	var moments []DimMoment
	if err := s.db.WithContext(ctx).Where("end_of_use IS NULL").Find(&moments).Error; err != nil {
		return set, fmt.Errorf("reading dim_moment: %w", err)
	}
	for _, m := range moments {
		set.Moments = append(set.Moments, fuel.MomentRow{MomentKey: m.MomentKey, MomentID: fuel.MomentID(m.MomentID)})
	}

	return set, nil
}

// InsertFacts writes a fact batch with partial commit. Key tuples already
// present in the store are rejected per-row and reported as duplicates; the
// remaining rows are committed in one insert. Existing rows are never
// touched, so the first-written price always wins.
func (s *Store) InsertFacts(ctx context.Context, facts []fuel.FactRow) (fuel.InsertResult, error) {
	var result fuel.InsertResult
	if len(facts) == 0 {
		return result, nil
	}

	// All rows of one batch share DateKey and MomentKey, so one indexed
	// read covers every possible collision.
	existing, err := s.existingKeys(ctx, facts[0].DateKey, facts[0].MomentKey)
	if err != nil {
		return result, err
	}

	fresh, duplicates := PartitionFacts(existing, facts)
	result.Duplicates = duplicates
	if len(fresh) == 0 {
		return result, nil
	}

	rows := make([]FactData, 0, len(fresh))
	for _, f := range fresh {
		rows = append(rows, FactData{
			DateKey:    f.DateKey,
			StationKey: f.StationKey,
			ProductKey: f.ProductKey,
			MomentKey:  f.MomentKey,
			Price:      f.Price,
			LoadAt:     f.LoadAt,
			IsReliable: f.IsReliable,
		})
	}

	if err := s.db.WithContext(ctx).CreateInBatches(rows, 500).Error; err != nil {
		return result, fmt.Errorf("inserting facts: %w", err)
	}
	result.Inserted = len(rows)
	return result, nil
}

func (s *Store) existingKeys(ctx context.Context, dateKey, momentKey int) (map[fuel.FactKey]bool, error) {
	var keys []fuel.FactKey
	err := s.db.WithContext(ctx).
		Table("fact_data").
		Select("date_key, station_key, product_key, moment_key").
		Where("date_key = ? AND moment_key = ?", dateKey, momentKey).
		Scan(&keys).Error
	if err != nil {
		return nil, fmt.Errorf("reading existing fact keys: %w", err)
	}

	existing := make(map[fuel.FactKey]bool, len(keys))
	for _, k := range keys {
		existing[k] = true
	}
	return existing, nil
}

// joinedColumns is the projection of the dashboard read query; aliases match
// the fuel.PriceRow field mapping.
const joinedColumns = `
	fact_data.date_key,
	fact_data.station_key,
	fact_data.product_key,
	fact_data.moment_key,
	fact_data.price,
	dim_date.date_id,
	dim_moment.moment_id,
	dim_product.product_id,
	dim_product.product_name,
	dim_station.station_id,
	dim_station.station_name,
	dim_station.station_address,
	dim_station.station_postal_code,
	dim_station.station_latitude,
	dim_station.station_longitude,
	dim_station.station_location,
	dim_station.station_municipality,
	dim_station.station_municipality_id,
	dim_station.station_province,
	dim_station.station_province_id,
	dim_station.station_ac,
	dim_station.station_ac_id,
	dim_station.station_island,
	dim_station.station_island_id`

// JoinedWindow returns the fact rows of the 7 days up to ref joined with all
// four dimensions, restricted to the given time-of-day bucket.
func (s *Store) JoinedWindow(ctx context.Context, ref time.Time, momentKey int) ([]fuel.PriceRow, error) {
	from := ref.AddDate(0, 0, -7)

	var rows []fuel.PriceRow
	err := s.db.WithContext(ctx).
		Table("fact_data").
		Select(joinedColumns).
		Joins("INNER JOIN dim_date ON fact_data.date_key = dim_date.date_key").
		Joins("INNER JOIN dim_moment ON fact_data.moment_key = dim_moment.moment_key").
		Joins("INNER JOIN dim_product ON fact_data.product_key = dim_product.product_key").
		Joins("INNER JOIN dim_station ON fact_data.station_key = dim_station.station_key").
		Where("dim_date.date_id >= ?", from).
		Where("fact_data.moment_key = ?", momentKey).
		Order("fact_data.date_key, fact_data.station_key, fact_data.product_key").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("reading joined window: %w", err)
	}
	return rows, nil
}
