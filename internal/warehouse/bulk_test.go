package warehouse

import (
	"strings"
	"testing"
)

const stationMasterSample = `IDEESS;Rótulo;Dirección;C.P.;Latitud;Longitud (WGS84);Localidad;Municipio;IDMunicipio;Provincia;IDProvincia;IDCCAA;Isla;IdIsla
4375;Repsol Arrecife;Calle Triana 12;35500;28,963;-13,547;Arrecife;Arrecife;607;Las Palmas;35;05;Lanzarote;1
5120;Disa Puerto;Av. Marítima 3;38001;28,468;-16,254;Santa Cruz;Santa Cruz de Tenerife;689;Santa Cruz de Tenerife;38;05;Tenerife;4
`

func TestReadStationMaster(t *testing.T) {
	stations, err := ReadStationMaster(strings.NewReader(stationMasterSample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stations) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(stations))
	}

	first := stations[0]
	if first.StationID != 4375 {
		t.Fatalf("expected station id 4375, got %d", first.StationID)
	}
	if first.StationName != "REPSOL ARRECIFE" {
		t.Fatalf("expected uppercased name, got %q", first.StationName)
	}
	if first.StationLatitude != 28.963 || first.StationLongitude != -13.547 {
		t.Fatalf("expected decimal-comma coordinates parsed, got %f/%f", first.StationLatitude, first.StationLongitude)
	}
	if first.StationAC != "CANARIAS" {
		t.Fatalf("expected constant AC CANARIAS, got %q", first.StationAC)
	}
	if first.StationProvinceID != 35 || stations[1].StationProvinceID != 38 {
		t.Fatal("expected province ids 35 and 38")
	}
	if first.StationMunicipality != "ARRECIFE" {
		t.Fatalf("expected uppercased municipality, got %q", first.StationMunicipality)
	}
}

func TestReadStationMasterMissingColumn(t *testing.T) {
	sample := "IDEESS;Rótulo\n1;X\n"
	if _, err := ReadStationMaster(strings.NewReader(sample)); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestReadStationMasterBadCoordinate(t *testing.T) {
	sample := strings.Replace(stationMasterSample, "28,963", "north", 1)
	if _, err := ReadStationMaster(strings.NewReader(sample)); err == nil {
		t.Fatal("expected error for malformed coordinate")
	}
}
