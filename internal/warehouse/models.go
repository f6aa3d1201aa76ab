package warehouse

import (
	"time"

	"github.com/shopspring/decimal"
)

// The star schema: four slowly-changing dimension tables and one fact table.
// Dimension rows are append-mostly and soft-retired via EndOfUse so historic
// facts keep resolving; fact rows are immutable once written.

// DimDate holds one row per calendar day. Exactly one active row exists per
// day: DateID values are unique among rows where EndOfUse is null.
type DimDate struct {
	DateKey   int        `gorm:"column:date_key;primaryKey;autoIncrement"`
	DateID    time.Time  `gorm:"column:date_id;not null;index"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	EndOfUse  *time.Time `gorm:"column:end_of_use"`
}

func (DimDate) TableName() string { return "dim_date" }

// DimStation holds the station master data with its full geography. At most
// one active row exists per upstream StationID.
type DimStation struct {
	StationKey            int        `gorm:"column:station_key;primaryKey;autoIncrement"`
	StationID             int        `gorm:"column:station_id;not null;index"`
	StationName           string     `gorm:"column:station_name;size:512;not null"`
	StationAddress        string     `gorm:"column:station_address;size:512"`
	StationPostalCode     string     `gorm:"column:station_postal_code;size:5"`
	StationLatitude       float64    `gorm:"column:station_latitude"`
	StationLongitude      float64    `gorm:"column:station_longitude"`
	StationLocation       string     `gorm:"column:station_location;size:512"`
	StationMunicipality   string     `gorm:"column:station_municipality;size:512"`
	StationMunicipalityID int        `gorm:"column:station_municipality_id"`
	StationProvince       string     `gorm:"column:station_province;size:512"`
	StationProvinceID     int        `gorm:"column:station_province_id"`
	StationAC             string     `gorm:"column:station_ac;size:512"`
	StationACID           int        `gorm:"column:station_ac_id"`
	StationIsland         string     `gorm:"column:station_island;size:512"`
	StationIslandID       int        `gorm:"column:station_island_id"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime"`
	EndOfUse              *time.Time `gorm:"column:end_of_use"`
}

func (DimStation) TableName() string { return "dim_station" }

// DimProduct holds the fixed enumeration of the fourteen upstream products.
// ProductID is the upstream field-name string (e.g. "Precio Gasoleo A").
type DimProduct struct {
	ProductKey  int        `gorm:"column:product_key;primaryKey;autoIncrement"`
	ProductID   string     `gorm:"column:product_id;size:64;not null;index"`
	ProductName string     `gorm:"column:product_name;size:64;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	EndOfUse    *time.Time `gorm:"column:end_of_use"`
}

func (DimProduct) TableName() string { return "dim_product" }

// DimMoment holds the five time-of-day buckets, bijective with keys 1..5.
// Keys are assigned explicitly, not by the database.
type DimMoment struct {
	MomentKey int        `gorm:"column:moment_key;primaryKey;autoIncrement:false"`
	MomentID  string     `gorm:"column:moment_id;size:64;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	EndOfUse  *time.Time `gorm:"column:end_of_use"`
}

func (DimMoment) TableName() string { return "dim_moment" }

// FactData is one observed price for one station/product at one date+moment.
// The composite primary key is the only uniqueness safety net for overlapping
// ingestions, so inserts never upsert.
type FactData struct {
	DateKey    int             `gorm:"column:date_key;primaryKey;autoIncrement:false"`
	StationKey int             `gorm:"column:station_key;primaryKey;autoIncrement:false"`
	ProductKey int             `gorm:"column:product_key;primaryKey;autoIncrement:false"`
	MomentKey  int             `gorm:"column:moment_key;primaryKey;autoIncrement:false"`
	Price      decimal.Decimal `gorm:"column:price;type:decimal(10,3);not null"`
	LoadAt     time.Time       `gorm:"column:load_at;not null"`
	IsReliable bool            `gorm:"column:is_reliable;not null;default:true"`
}

func (FactData) TableName() string { return "fact_data" }
