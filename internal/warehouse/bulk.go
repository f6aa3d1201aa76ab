package warehouse

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/canaryfuel/fuel-price-dashboard/internal/fuel"
)

// Initial bulk load of the dimension tables: a generated calendar, the fixed
// product and moment enumerations, and the station master file.

const (
	bulkStartDay  = "2024-01-01"
	bulkDateCount = 5000
	bulkBatchSize = 500
)

// SeedDates loads one DimDate row per day for bulkDateCount consecutive days.
func SeedDates(db *gorm.DB) error {
	start, err := time.Parse("2006-01-02", bulkStartDay)
	if err != nil {
		return err
	}

	rows := make([]DimDate, 0, bulkDateCount)
	for i := 0; i < bulkDateCount; i++ {
		rows = append(rows, DimDate{DateID: start.AddDate(0, 0, i)})
	}
	return db.CreateInBatches(rows, bulkBatchSize).Error
}

// SeedProducts loads the fourteen known products in their fixed order.
func SeedProducts(db *gorm.DB) error {
	rows := make([]DimProduct, 0, len(fuel.Products))
	for _, p := range fuel.Products {
		rows = append(rows, DimProduct{ProductID: p.ID, ProductName: p.Name})
	}
	return db.Create(&rows).Error
}

// SeedMoments loads the five time-of-day buckets with keys 1..5.
func SeedMoments(db *gorm.DB) error {
	rows := make([]DimMoment, 0, len(fuel.Moments))
	for i, m := range fuel.Moments {
		rows = append(rows, DimMoment{MomentKey: i + 1, MomentID: string(m)})
	}
	return db.Create(&rows).Error
}

// SeedStations loads the station master from a semicolon-separated CSV using
// the upstream column names. Coordinates use a decimal comma, text columns
// are uppercased and the autonomous community is the constant "CANARIAS".
func SeedStations(db *gorm.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening station master: %w", err)
	}
	defer f.Close()

	stations, err := ReadStationMaster(f)
	if err != nil {
		return err
	}
	return db.CreateInBatches(stations, bulkBatchSize).Error
}

// ReadStationMaster parses the station master CSV into dimension rows.
func ReadStationMaster(r io.Reader) ([]DimStation, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading station master header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	required := []string{
		"IDEESS", "Rótulo", "Dirección", "C.P.", "Latitud", "Longitud (WGS84)",
		"Localidad", "Municipio", "IDMunicipio", "Provincia", "IDProvincia",
		"IDCCAA", "Isla", "IdIsla",
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("station master missing column %q", name)
		}
	}

	var stations []DimStation
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading station master line %d: %w", line, err)
		}
		line++

		field := func(name string) string { return strings.TrimSpace(record[cols[name]]) }

		stationID, err := strconv.Atoi(field("IDEESS"))
		if err != nil {
			return nil, fmt.Errorf("station master line %d: bad IDEESS %q", line, field("IDEESS"))
		}
		lat, err := parseCoordinate(field("Latitud"))
		if err != nil {
			return nil, fmt.Errorf("station master line %d: %w", line, err)
		}
		lon, err := parseCoordinate(field("Longitud (WGS84)"))
		if err != nil {
			return nil, fmt.Errorf("station master line %d: %w", line, err)
		}

		stations = append(stations, DimStation{
			StationID:             stationID,
			StationName:           strings.ToUpper(field("Rótulo")),
			StationAddress:        strings.ToUpper(field("Dirección")),
			StationPostalCode:     field("C.P."),
			StationLatitude:       lat,
			StationLongitude:      lon,
			StationLocation:       strings.ToUpper(field("Localidad")),
			StationMunicipality:   strings.ToUpper(field("Municipio")),
			StationMunicipalityID: atoiOrZero(field("IDMunicipio")),
			StationProvince:       strings.ToUpper(field("Provincia")),
			StationProvinceID:     atoiOrZero(field("IDProvincia")),
			StationAC:             "CANARIAS",
			StationACID:           atoiOrZero(field("IDCCAA")),
			StationIsland:         strings.ToUpper(field("Isla")),
			StationIslandID:       atoiOrZero(field("IdIsla")),
		})
	}

	return stations, nil
}

// parseCoordinate converts a decimal-comma coordinate string into a float.
func parseCoordinate(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("bad coordinate %q", raw)
	}
	return v, nil
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
