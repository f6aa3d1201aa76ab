package fuel

import (
	"errors"
	"testing"
	"time"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "1,234", want: "1.234"},
		{raw: "0,899", want: "0.899"},
		{raw: "2", want: "2"},
		{raw: "", wantErr: true},
		{raw: "1.234", wantErr: true}, // period means malformed, not locale
		{raw: "-1,2", wantErr: true},
		{raw: "abc", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParsePrice(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParsePrice(%q): expected error, got %s", tc.raw, got)
			}
			if !errors.Is(err, ErrPriceParse) {
				t.Fatalf("ParsePrice(%q): expected ErrPriceParse, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePrice(%q): unexpected error: %v", tc.raw, err)
		}
		if got.String() != tc.want {
			t.Fatalf("ParsePrice(%q): expected %s, got %s", tc.raw, tc.want, got)
		}
	}
}

func TestMapSnapshot(t *testing.T) {
	reg, err := BuildRegistry(testDimensions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10:30 on the third seeded day: Mañana bucket, date key 3.
	now := time.Date(2025, 3, 3, 10, 30, 0, 0, time.UTC)

	records := []StationPriceRecord{
		{
			ProvinceID: "35",
			StationID:  "4375",
			Prices: map[string]string{
				"Precio Gasoleo A":      "1,234",
				"Precio Gasolina 95 E5": "1,401",
				"Precio Hidrogeno":      "",
			},
		},
		{
			// Out of geographic scope; dropped silently.
			ProvinceID: "28",
			StationID:  "777",
			Prices:     map[string]string{"Precio Gasoleo A": "1,500"},
		},
		{
			// Unknown station; record skipped, batch continues.
			ProvinceID: "38",
			StationID:  "12345",
			Prices:     map[string]string{"Precio Gasoleo A": "1,300"},
		},
		{
			// One malformed price; only that fact row is dropped.
			ProvinceID: "38",
			StationID:  "5120",
			Prices: map[string]string{
				"Precio Gasoleo A":      "not-a-price",
				"Precio Gasolina 98 E5": "1,550",
			},
		},
	}

	facts, report, err := MapSnapshot(reg, records, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(facts) != 3 {
		t.Fatalf("expected 3 facts, got %d", len(facts))
	}
	if report.Facts != 3 {
		t.Fatalf("expected report.Facts 3, got %d", report.Facts)
	}
	if report.OutOfScope != 1 {
		t.Fatalf("expected 1 out-of-scope record, got %d", report.OutOfScope)
	}
	if len(report.UnknownStations) != 1 || report.UnknownStations[0] != 12345 {
		t.Fatalf("expected unknown station 12345, got %v", report.UnknownStations)
	}
	if len(report.ParseFailures) != 1 || report.ParseFailures[0].ProductID != "Precio Gasoleo A" {
		t.Fatalf("expected one parse failure for Precio Gasoleo A, got %v", report.ParseFailures)
	}

	momentKey, err := reg.ResolveMoment(MomentManana)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, f := range facts {
		if f.DateKey != 3 {
			t.Fatalf("expected date key 3, got %d", f.DateKey)
		}
		if f.MomentKey != momentKey {
			t.Fatalf("expected moment key %d, got %d", momentKey, f.MomentKey)
		}
		if !f.IsReliable {
			t.Fatal("expected facts to default to reliable")
		}
		if f.LoadAt != now {
			t.Fatalf("expected load time %v, got %v", now, f.LoadAt)
		}
	}

	// The empty Hidrogeno field must not produce a fact.
	gasoleoKey, _ := reg.ResolveProduct("Precio Gasoleo A")
	hidrogenoKey, _ := reg.ResolveProduct("Precio Hidrogeno")
	prices := map[int]string{}
	for _, f := range facts {
		if f.StationKey == 1 {
			prices[f.ProductKey] = f.Price.String()
		}
	}
	if _, ok := prices[hidrogenoKey]; ok {
		t.Fatal("empty price field must not produce a fact")
	}
	if prices[gasoleoKey] != "1.234" {
		t.Fatalf("expected gasoleo price 1.234, got %s", prices[gasoleoKey])
	}
}

func TestMapSnapshotOutOfScopeNeverProducesFacts(t *testing.T) {
	reg, err := BuildRegistry(testDimensions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := []StationPriceRecord{
		{ProvinceID: "08", StationID: "4375", Prices: map[string]string{"Precio Gasoleo A": "1,111"}},
		{ProvinceID: "", StationID: "5120", Prices: map[string]string{"Precio Gasoleo A": "1,222"}},
	}

	facts, report, err := MapSnapshot(reg, records, time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(facts) != 0 {
		t.Fatalf("expected no facts, got %d", len(facts))
	}
	if report.OutOfScope != 2 {
		t.Fatalf("expected 2 out-of-scope records, got %d", report.OutOfScope)
	}
}
