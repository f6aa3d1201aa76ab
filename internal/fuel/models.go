package fuel

import (
	"time"

	"github.com/shopspring/decimal"
)

// MomentID identifies one of the five fixed time-of-day buckets used to
// segment same-day readings.
type MomentID string

const (
	MomentMadrugada MomentID = "Madrugada"
	MomentManana    MomentID = "Mañana"
	MomentMediodia  MomentID = "Mediodía"
	MomentTarde     MomentID = "Tarde"
	MomentNoche     MomentID = "Noche"
)

// Moments lists the five buckets in surrogate-key order (MomentKey 1..5).
var Moments = []MomentID{
	MomentMadrugada,
	MomentManana,
	MomentMediodia,
	MomentTarde,
	MomentNoche,
}

// GeoLevel is one of the four geography axes the dashboard can filter on.
type GeoLevel string

const (
	GeoAutonomousCommunity GeoLevel = "COMUNIDAD AUTÓNOMA"
	GeoProvince            GeoLevel = "PROVINCIA"
	GeoIsland              GeoLevel = "ISLA"
	GeoMunicipality        GeoLevel = "MUNICIPIO"
)

// GeoLevels lists the selectable geography levels.
var GeoLevels = []GeoLevel{GeoAutonomousCommunity, GeoProvince, GeoIsland, GeoMunicipality}

// Brand is a station brand filter value. Besides the named brands there are
// two pseudo-values: BrandAll matches every station and BrandOther matches
// stations that carry none of the named brand tokens in their name.
type Brand string

const (
	BrandAll    Brand = "TODAS"
	BrandBP     Brand = "BP"
	BrandCepsa  Brand = "CEPSA"
	BrandDisa   Brand = "DISA"
	BrandRepsol Brand = "REPSOL"
	BrandShell  Brand = "SHELL"
	BrandOther  Brand = "OTRAS"
)

// KnownBrands are the brand tokens matched as substrings of the station name.
var KnownBrands = []Brand{BrandBP, BrandCepsa, BrandDisa, BrandRepsol, BrandShell}

// ProductGroup is one of the eleven user-facing product groups. Two of them
// ("GASOLINA 95" and "GASOLINA 98") aggregate several upstream product
// variants; the rest map 1:1 to a single product.
type ProductGroup string

const (
	GroupBiodiesel      ProductGroup = "BIODIÉSEL"
	GroupBioetanol      ProductGroup = "BIOETANOL"
	GroupGNC            ProductGroup = "GNC"
	GroupGNL            ProductGroup = "GNL"
	GroupGLP            ProductGroup = "GLP"
	GroupGasoleoA       ProductGroup = "GASÓLEO A"
	GroupGasoleoB       ProductGroup = "GASÓLEO B"
	GroupGasoleoPremium ProductGroup = "GASÓLEO PREMIUM"
	GroupGasolina95     ProductGroup = "GASOLINA 95"
	GroupGasolina98     ProductGroup = "GASOLINA 98"
	GroupHidrogeno      ProductGroup = "HIDRÓGENO"
)

// ProductGroups lists the selectable product groups in dashboard order.
var ProductGroups = []ProductGroup{
	GroupBiodiesel,
	GroupBioetanol,
	GroupGNC,
	GroupGNL,
	GroupGLP,
	GroupGasoleoA,
	GroupGasoleoB,
	GroupGasoleoPremium,
	GroupGasolina95,
	GroupGasolina98,
	GroupHidrogeno,
}

// GroupProducts maps each display group to the natural ProductID keys of the
// upstream products it aggregates. The mapping is declared on natural keys and
// resolved into surrogate keys when the registry is built, so registry
// insertion order never matters.
var GroupProducts = map[ProductGroup][]string{
	GroupBiodiesel:      {"Precio Biodiesel"},
	GroupBioetanol:      {"Precio Bioetanol"},
	GroupGNC:            {"Precio Gas Natural Comprimido"},
	GroupGNL:            {"Precio Gas Natural Licuado"},
	GroupGLP:            {"Precio Gases licuados del petróleo"},
	GroupGasoleoA:       {"Precio Gasoleo A"},
	GroupGasoleoB:       {"Precio Gasoleo B"},
	GroupGasoleoPremium: {"Precio Gasoleo Premium"},
	GroupGasolina95:     {"Precio Gasolina 95 E10", "Precio Gasolina 95 E5", "Precio Gasolina 95 E5 Premium"},
	GroupGasolina98:     {"Precio Gasolina 98 E10", "Precio Gasolina 98 E5"},
	GroupHidrogeno:      {"Precio Hidrogeno"},
}

// Products lists the fourteen upstream products: natural key (the upstream
// field name) and display label, in the order the initial bulk load seeds them.
var Products = []struct {
	ID   string
	Name string
}{
	{"Precio Biodiesel", "BIODIÉSEL"},
	{"Precio Bioetanol", "BIOETANOL"},
	{"Precio Gas Natural Comprimido", "GNC"},
	{"Precio Gas Natural Licuado", "GNL"},
	{"Precio Gases licuados del petróleo", "GLP"},
	{"Precio Gasoleo A", "GASÓLEO A"},
	{"Precio Gasoleo B", "GASÓLEO B"},
	{"Precio Gasoleo Premium", "GASÓLEO PREMIUM"},
	{"Precio Gasolina 95 E10", "GASOLINA 95 E10"},
	{"Precio Gasolina 95 E5", "GASOLINA 95 E5"},
	{"Precio Gasolina 95 E5 Premium", "GASOLINA 95 PREMIUM"},
	{"Precio Gasolina 98 E10", "GASOLINA 98 E10"},
	{"Precio Gasolina 98 E5", "GASOLINA 98 E5"},
	{"Precio Hidrogeno", "HIDRÓGENO"},
}

// InScopeProvinces are the upstream province identifiers for the Canary
// Islands; records from any other province are out of geographic scope.
var InScopeProvinces = []string{"35", "38"}

// StationPriceRecord is one per-station entry of an upstream snapshot.
// Prices maps the product natural key to the raw locale-formatted price
// string; products the station does not sell are absent or empty.
type StationPriceRecord struct {
	ProvinceID string
	StationID  string
	Prices     map[string]string
}

// FactKey is the composite key of one fact row.
type FactKey struct {
	DateKey    int `gorm:"column:date_key" json:"dateKey"`
	StationKey int `gorm:"column:station_key" json:"stationKey"`
	ProductKey int `gorm:"column:product_key" json:"productKey"`
	MomentKey  int `gorm:"column:moment_key" json:"momentKey"`
}

// FactRow is one observed price for a station/product at a date+moment,
// ready to be written by the warehouse. Facts are immutable once written.
type FactRow struct {
	FactKey
	Price      decimal.Decimal
	LoadAt     time.Time
	IsReliable bool
}

// PriceRow is one row of the joined fact+dimension projection the read side
// operates on. Read-only: selection and KPI computation never mutate it.
// Column tags bind the row to the warehouse read query's projection.
type PriceRow struct {
	DateKey    int `gorm:"column:date_key" json:"dateKey"`
	StationKey int `gorm:"column:station_key" json:"stationKey"`
	ProductKey int `gorm:"column:product_key" json:"productKey"`
	MomentKey  int `gorm:"column:moment_key" json:"momentKey"`

	Price  decimal.Decimal `gorm:"column:price" json:"price"`
	DateID time.Time       `gorm:"column:date_id" json:"dateId"`

	MomentID    string `gorm:"column:moment_id" json:"momentId"`
	ProductID   string `gorm:"column:product_id" json:"productId"`
	ProductName string `gorm:"column:product_name" json:"productName"`

	StationID             int     `gorm:"column:station_id" json:"stationId"`
	StationName           string  `gorm:"column:station_name" json:"stationName"`
	StationAddress        string  `gorm:"column:station_address" json:"stationAddress"`
	StationPostalCode     string  `gorm:"column:station_postal_code" json:"stationPostalCode"`
	StationLatitude       float64 `gorm:"column:station_latitude" json:"stationLatitude"`
	StationLongitude      float64 `gorm:"column:station_longitude" json:"stationLongitude"`
	StationLocation       string  `gorm:"column:station_location" json:"stationLocation"`
	StationMunicipality   string  `gorm:"column:station_municipality" json:"stationMunicipality"`
	StationMunicipalityID int     `gorm:"column:station_municipality_id" json:"stationMunicipalityId"`
	StationProvince       string  `gorm:"column:station_province" json:"stationProvince"`
	StationProvinceID     int     `gorm:"column:station_province_id" json:"stationProvinceId"`
	StationAC             string  `gorm:"column:station_ac" json:"stationAc"`
	StationACID           int     `gorm:"column:station_ac_id" json:"stationAcId"`
	StationIsland         string  `gorm:"column:station_island" json:"stationIsland"`
	StationIslandID       int     `gorm:"column:station_island_id" json:"stationIslandId"`
}

// geoValue returns the row's column for the given geography level.
func (r PriceRow) geoValue(level GeoLevel) string {
	switch level {
	case GeoAutonomousCommunity:
		return r.StationAC
	case GeoProvince:
		return r.StationProvince
	case GeoIsland:
		return r.StationIsland
	case GeoMunicipality:
		return r.StationMunicipality
	default:
		return ""
	}
}

// RankedStation is one entry of the top-N cheapest ranking.
type RankedStation struct {
	StationName string          `json:"stationName"`
	Price       decimal.Decimal `json:"price"`
}

// DateRow, StationRow, ProductRow and MomentRow are the active dimension rows
// the registry indexes; the warehouse produces them from the dimension tables.
type DateRow struct {
	DateKey int
	Day     time.Time
}

type StationRow struct {
	StationKey int
	StationID  int
}

type ProductRow struct {
	ProductKey int
	ProductID  string
	Name       string
}

type MomentRow struct {
	MomentKey int
	MomentID  MomentID
}

// DimensionSet is one consistent read of the active rows of all four
// dimension tables, used to build a registry for a batch.
type DimensionSet struct {
	Dates    []DateRow
	Stations []StationRow
	Products []ProductRow
	Moments  []MomentRow
}
