package table

import (
	"testing"

	"github.com/YuminosukeSato/houseprice/pkg/errors"
)

func TestTableNumeric(t *testing.T) {
	tb := New(2)
	if err := tb.AddNumeric("bedrooms", 3, 4); err != nil {
		t.Fatal(err)
	}
	if err := tb.AddCategorical("city", "Seattle", "Kent"); err != nil {
		t.Fatal(err)
	}
	if err := tb.AddNumeric("sqft_living", 1800, 2400); err != nil {
		t.Fatal(err)
	}

	got := tb.Names()
	want := []string{"bedrooms", "city", "sqft_living"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}

	m, err := tb.Numeric([]string{"sqft_living", "bedrooms"})
	if err != nil {
		t.Fatal(err)
	}
	r, c := m.Dims()
	if r != 2 || c != 2 {
		t.Fatalf("Dims() = %d×%d", r, c)
	}
	if m.At(1, 0) != 2400 || m.At(0, 1) != 3 {
		t.Errorf("unexpected values %v", m.RawMatrix().Data)
	}

	row := tb.Row(1)
	if row["city"] != "Kent" || row["bedrooms"] != 4.0 {
		t.Errorf("Row(1) = %v", row)
	}
}

func TestTableErrors(t *testing.T) {
	tb := New(1)
	if err := tb.AddNumeric("bedrooms", 3, 4); err == nil {
		t.Error("expected row count mismatch")
	} else {
		var dim *errors.DimensionError
		if !errors.As(err, &dim) {
			t.Errorf("expected DimensionError, got %T", err)
		}
	}
	_ = tb.AddNumeric("bedrooms", 3)
	if err := tb.AddNumeric("bedrooms", 3); err == nil {
		t.Error("expected duplicate column error")
	}
	_ = tb.AddCategorical("city", "Seattle")
	if _, err := tb.Numeric([]string{"city"}); err == nil {
		t.Error("categorical column must not be read as numeric")
	}
	if _, err := tb.Numeric([]string{"floors"}); err == nil {
		t.Error("missing column must be reported")
	}
}
