package valuation

import (
	"testing"

	"github.com/YuminosukeSato/houseprice/core/table"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
)

// defaultRecord is the interactive form's initial state.
func defaultRecord() Record {
	return Record{
		Bedrooms: 3, Bathrooms: 2.0, SqftLiving: 1800, SqftLot: 5000, Floors: 2.0,
		Waterfront: 0, View: 0, Condition: 3, SqftAbove: 1800, SqftBasement: 0,
		YrBuilt: 1995, YrRenovated: 0, City: "Seattle",
	}
}

func TestRecordTableColumnOrder(t *testing.T) {
	tbl, err := defaultRecord().Table()
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if tbl.Rows() != 1 {
		t.Errorf("Rows() = %d, want 1", tbl.Rows())
	}
	names := tbl.Names()
	if len(names) != len(Columns) {
		t.Fatalf("Names() = %v, want %v", names, Columns)
	}
	for i := range Columns {
		if names[i] != Columns[i] {
			t.Errorf("column %d = %q, want %q", i, names[i], Columns[i])
		}
	}

	city, ok := tbl.Column("city")
	if !ok || city.Kind != table.Categorical || city.Strings[0] != "Seattle" {
		t.Errorf("city column = %+v", city)
	}
	sqft, ok := tbl.Column("sqft_living")
	if !ok || sqft.Kind != table.Numeric || sqft.Floats[0] != 1800 {
		t.Errorf("sqft_living column = %+v", sqft)
	}
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Record)
		field  string
	}{
		{"valid", func(r *Record) {}, ""},
		{"renovated", func(r *Record) { r.YrRenovated = 2010 }, ""},
		{"empty city", func(r *Record) { r.City = "" }, "city"},
		{"blank city", func(r *Record) { r.City = "   " }, "city"},
		{"negative bedrooms", func(r *Record) { r.Bedrooms = -1 }, "bedrooms"},
		{"zero living area", func(r *Record) { r.SqftLiving = 0 }, "sqft_living"},
		{"zero lot", func(r *Record) { r.SqftLot = 0 }, "sqft_lot"},
		{"half floor", func(r *Record) { r.Floors = 0.5 }, "floors"},
		{"waterfront flag", func(r *Record) { r.Waterfront = 2 }, "waterfront"},
		{"view range", func(r *Record) { r.View = 5 }, "view"},
		{"condition range", func(r *Record) { r.Condition = 0 }, "condition"},
		{"negative basement", func(r *Record) { r.SqftBasement = -10 }, "sqft_basement"},
		{"year built", func(r *Record) { r.YrBuilt = 95 }, "yr_built"},
		{"year renovated", func(r *Record) { r.YrRenovated = 1 }, "yr_renovated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := defaultRecord()
			tt.mutate(&r)
			err := r.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			var invalid *errors.InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("Validate() error = %v, want InvalidInputError", err)
			}
			if invalid.Field != tt.field {
				t.Errorf("Field = %q, want %q", invalid.Field, tt.field)
			}
		})
	}
}

func TestRecordPairs(t *testing.T) {
	pairs := defaultRecord().Pairs()
	if len(pairs) != len(Columns) {
		t.Fatalf("len(Pairs()) = %d", len(pairs))
	}
	for i, p := range pairs {
		if p.Name != Columns[i] {
			t.Errorf("Pairs()[%d].Name = %q, want %q", i, p.Name, Columns[i])
		}
	}
}
