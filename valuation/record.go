// Package valuation turns a house description into an estimated price using a
// loaded pipeline.
package valuation

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/houseprice/core/table"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
)

// Columns is the training column order. The pipeline sees the record's
// fields under these names, in this order.
var Columns = []string{
	"bedrooms", "bathrooms", "sqft_living", "sqft_lot", "floors", "waterfront",
	"view", "condition", "sqft_above", "sqft_basement", "yr_built", "yr_renovated",
	"city",
}

// Plausible construction / renovation years.
const (
	MinYear = 1800
	MaxYear = 2100
)

// Record is one house to value. It is comparable and used as a cache key.
type Record struct {
	Bedrooms     float64 `json:"bedrooms"`
	Bathrooms    float64 `json:"bathrooms"`
	SqftLiving   int     `json:"sqft_living"`
	SqftLot      int     `json:"sqft_lot"`
	Floors       float64 `json:"floors"`
	Waterfront   int     `json:"waterfront"`
	View         int     `json:"view"`
	Condition    int     `json:"condition"`
	SqftAbove    int     `json:"sqft_above"`
	SqftBasement int     `json:"sqft_basement"`
	YrBuilt      int     `json:"yr_built"`
	YrRenovated  int     `json:"yr_renovated"`
	City         string  `json:"city"`
}

// Pair is a named field value, in column order.
type Pair struct {
	Name  string
	Value interface{}
}

// Pairs returns the record's fields in Columns order.
func (r Record) Pairs() []Pair {
	return []Pair{
		{"bedrooms", r.Bedrooms},
		{"bathrooms", r.Bathrooms},
		{"sqft_living", r.SqftLiving},
		{"sqft_lot", r.SqftLot},
		{"floors", r.Floors},
		{"waterfront", r.Waterfront},
		{"view", r.View},
		{"condition", r.Condition},
		{"sqft_above", r.SqftAbove},
		{"sqft_basement", r.SqftBasement},
		{"yr_built", r.YrBuilt},
		{"yr_renovated", r.YrRenovated},
		{"city", r.City},
	}
}

// Validate checks field domains. The city is compared as given; only an
// empty or all-blank value is rejected here.
func (r Record) Validate() error {
	if strings.TrimSpace(r.City) == "" {
		return errors.NewInvalidInputError("city", "must not be empty")
	}
	checks := []struct {
		field string
		ok    bool
		rule  string
	}{
		{"bedrooms", r.Bedrooms >= 0, "must be >= 0"},
		{"bathrooms", r.Bathrooms >= 0, "must be >= 0"},
		{"sqft_living", r.SqftLiving > 0, "must be > 0"},
		{"sqft_lot", r.SqftLot > 0, "must be > 0"},
		{"floors", r.Floors >= 1, "must be >= 1"},
		{"waterfront", r.Waterfront == 0 || r.Waterfront == 1, "must be 0 or 1"},
		{"view", r.View >= 0 && r.View <= 4, "must be between 0 and 4"},
		{"condition", r.Condition >= 1 && r.Condition <= 5, "must be between 1 and 5"},
		{"sqft_above", r.SqftAbove >= 0, "must be >= 0"},
		{"sqft_basement", r.SqftBasement >= 0, "must be >= 0"},
		{"yr_built", r.YrBuilt >= MinYear && r.YrBuilt <= MaxYear, fmt.Sprintf("must be between %d and %d", MinYear, MaxYear)},
		{"yr_renovated", r.YrRenovated == 0 || (r.YrRenovated >= MinYear && r.YrRenovated <= MaxYear), fmt.Sprintf("must be 0 or between %d and %d", MinYear, MaxYear)},
	}
	for _, c := range checks {
		if !c.ok {
			return errors.NewInvalidInputError(c.field, c.rule)
		}
	}
	return nil
}

// Table wraps the record as a one-row table in Columns order.
func (r Record) Table() (*table.Table, error) {
	t := table.New(1)
	for _, p := range r.Pairs() {
		var err error
		switch v := p.Value.(type) {
		case string:
			err = t.AddCategorical(p.Name, v)
		case int:
			err = t.AddNumeric(p.Name, float64(v))
		case float64:
			err = t.AddNumeric(p.Name, v)
		}
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}
