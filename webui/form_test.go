package webui

import (
	"math"
	"net/url"
	"testing"

	"github.com/YuminosukeSato/houseprice/valuation"
)

func field(t *testing.T, name string) Field {
	t.Helper()
	for _, f := range Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("no field %q", name)
	return Field{}
}

func TestFieldClamp(t *testing.T) {
	tests := []struct {
		field string
		in    float64
		want  float64
	}{
		{"bedrooms", 0, 1},
		{"bedrooms", 11, 10},
		{"bedrooms", 4.4, 4},
		{"bathrooms", 2.1, 2},
		{"bathrooms", 2.2, 2.25},
		{"bathrooms", 9, 8},
		{"floors", 1.3, 1.5},
		{"floors", 0.2, 1},
		{"sqft_living", 100, 300},
		{"sqft_living", 20000, 15000},
		{"sqft_lot", 2e6, 1000000},
		{"yr_built", 1800, 1900},
		{"yr_renovated", 2030, 2025},
		{"yr_renovated", 0, 0},
		{"yr_renovated", 5, 1800},
		{"yr_renovated", 1799, 1800},
		{"yr_renovated", 1990, 1990},
		{"waterfront", 3, 1},
		{"view", -2, 0},
		{"condition", math.Inf(1), 5},
		{"condition", math.NaN(), 3},
	}
	for _, tt := range tests {
		got := field(t, tt.field).Clamp(tt.in)
		if got != tt.want {
			t.Errorf("%s.Clamp(%v) = %v, want %v", tt.field, tt.in, got, tt.want)
		}
	}
}

func TestParsedYearsAlwaysValidate(t *testing.T) {
	for _, yr := range []string{"0", "1", "1799", "1800", "2025", "9999", "-4"} {
		form := Values(DefaultRecord())
		form.Set("yr_renovated", yr)
		r := ParseRecord(form)
		if err := r.Validate(); err != nil {
			t.Errorf("yr_renovated=%s parsed to %d, which fails validation: %v", yr, r.YrRenovated, err)
		}
	}
}

func TestDefaultRecord(t *testing.T) {
	want := valuation.Record{
		Bedrooms: 3, Bathrooms: 2, SqftLiving: 1800, SqftLot: 5000, Floors: 2,
		Waterfront: 0, View: 0, Condition: 3, SqftAbove: 1800, SqftBasement: 0,
		YrBuilt: 1995, YrRenovated: 0, City: "Seattle",
	}
	if got := DefaultRecord(); got != want {
		t.Errorf("DefaultRecord() = %+v, want %+v", got, want)
	}
	if err := want.Validate(); err != nil {
		t.Errorf("default record does not validate: %v", err)
	}
}

func TestParseRecord(t *testing.T) {
	t.Run("empty form gives defaults", func(t *testing.T) {
		if got := ParseRecord(url.Values{}); got != DefaultRecord() {
			t.Errorf("ParseRecord(empty) = %+v", got)
		}
	})

	t.Run("values are clamped and city trimmed", func(t *testing.T) {
		form := url.Values{
			"bedrooms":    {"42"},
			"bathrooms":   {"1.3"},
			"sqft_living": {"abc"},
			"waterfront":  {"1"},
			"city":        {"  Kirkland \t"},
		}
		got := ParseRecord(form)
		if got.Bedrooms != 10 || got.Bathrooms != 1.25 || got.SqftLiving != 1800 || got.Waterfront != 1 {
			t.Errorf("ParseRecord() = %+v", got)
		}
		if got.City != "Kirkland" {
			t.Errorf("City = %q, want %q", got.City, "Kirkland")
		}
	})

	t.Run("blank city stays blank", func(t *testing.T) {
		got := ParseRecord(url.Values{"city": {"   "}})
		if got.City != "" {
			t.Errorf("City = %q, want empty", got.City)
		}
	})

	t.Run("round trip through Values", func(t *testing.T) {
		r := DefaultRecord()
		r.Bathrooms = 3.75
		r.City = "Redmond"
		if got := ParseRecord(Values(r)); got != r {
			t.Errorf("ParseRecord(Values(r)) = %+v, want %+v", got, r)
		}
	})
}
