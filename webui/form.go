package webui

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/houseprice/valuation"
)

// Widget kinds rendered by the template.
const (
	WidgetSlider = "slider"
	WidgetNumber = "number"
	WidgetSelect = "select"
)

// DefaultCity is the initial value of the city input.
const DefaultCity = "Seattle"

// Field describes one bounded numeric input.
type Field struct {
	Name    string
	Label   string
	Widget  string
	Min     float64
	Max     float64
	Step    float64
	Default float64

	// NonZeroMin, when set, is the smallest accepted value other than 0.
	NonZeroMin float64
}

// Clamp brings v into [Min, Max] and onto the step grid anchored at Min.
// A nonzero value below NonZeroMin is raised to it. NaN yields the default.
func (f Field) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return f.Default
	}
	if v < f.Min {
		v = f.Min
	}
	if v > f.Max {
		v = f.Max
	}
	if f.Step > 0 {
		v = f.Min + math.Round((v-f.Min)/f.Step)*f.Step
		if v > f.Max {
			v -= f.Step
		}
	}
	if v != 0 && v < f.NonZeroMin {
		v = f.NonZeroMin
	}
	return v
}

// Fields are the numeric inputs in column order.
var Fields = []Field{
	{Name: "bedrooms", Label: "Quartos (bedrooms)", Widget: WidgetSlider, Min: 1, Max: 10, Step: 1, Default: 3},
	{Name: "bathrooms", Label: "Banheiros (bathrooms)", Widget: WidgetSlider, Min: 1, Max: 8, Step: 0.25, Default: 2},
	{Name: "sqft_living", Label: "Área Interna (sqft_living)", Widget: WidgetNumber, Min: 300, Max: 15000, Step: 1, Default: 1800},
	{Name: "sqft_lot", Label: "Área do Lote (sqft_lot)", Widget: WidgetNumber, Min: 500, Max: 1000000, Step: 1, Default: 5000},
	{Name: "floors", Label: "Andares (floors)", Widget: WidgetSlider, Min: 1, Max: 4, Step: 0.5, Default: 2},
	{Name: "waterfront", Label: "Vista para Água (waterfront)", Widget: WidgetSelect, Min: 0, Max: 1, Step: 1, Default: 0},
	{Name: "view", Label: "Vista (0-4)", Widget: WidgetSlider, Min: 0, Max: 4, Step: 1, Default: 0},
	{Name: "condition", Label: "Condição (1-5)", Widget: WidgetSlider, Min: 1, Max: 5, Step: 1, Default: 3},
	{Name: "sqft_above", Label: "Área (sem porão)", Widget: WidgetNumber, Min: 300, Max: 10000, Step: 1, Default: 1800},
	{Name: "sqft_basement", Label: "Área do Porão", Widget: WidgetNumber, Min: 0, Max: 5000, Step: 1, Default: 0},
	{Name: "yr_built", Label: "Ano de Construção", Widget: WidgetNumber, Min: 1900, Max: 2025, Step: 1, Default: 1995},
	{Name: "yr_renovated", Label: "Ano de Renovação (0 se nunca)", Widget: WidgetNumber, Min: 0, Max: 2025, Step: 1, Default: 0, NonZeroMin: valuation.MinYear},
}

// DefaultRecord is the form's initial record.
func DefaultRecord() valuation.Record {
	vals := make(map[string]float64, len(Fields))
	for _, f := range Fields {
		vals[f.Name] = f.Default
	}
	return fromValues(vals, DefaultCity)
}

// ParseRecord reads a record from submitted form values. Missing or
// unparsable numbers fall back to the field default and everything else is
// clamped into bounds, so the result always lies inside the form's domain.
// The city is trimmed; an absent city key means the default city.
func ParseRecord(form url.Values) valuation.Record {
	vals := make(map[string]float64, len(Fields))
	for _, f := range Fields {
		v := f.Default
		if raw := strings.TrimSpace(form.Get(f.Name)); raw != "" {
			if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
				v = parsed
			}
		}
		vals[f.Name] = f.Clamp(v)
	}

	city := DefaultCity
	if _, ok := form["city"]; ok {
		city = strings.TrimSpace(form.Get("city"))
	}
	return fromValues(vals, city)
}

// Values encodes r as form values, the inverse of ParseRecord.
func Values(r valuation.Record) url.Values {
	v := url.Values{}
	for _, p := range r.Pairs() {
		switch x := p.Value.(type) {
		case string:
			v.Set(p.Name, x)
		case int:
			v.Set(p.Name, strconv.Itoa(x))
		case float64:
			v.Set(p.Name, strconv.FormatFloat(x, 'f', -1, 64))
		}
	}
	return v
}

func fromValues(vals map[string]float64, city string) valuation.Record {
	i := func(name string) int { return int(math.Round(vals[name])) }
	return valuation.Record{
		Bedrooms:     vals["bedrooms"],
		Bathrooms:    vals["bathrooms"],
		SqftLiving:   i("sqft_living"),
		SqftLot:      i("sqft_lot"),
		Floors:       vals["floors"],
		Waterfront:   i("waterfront"),
		View:         i("view"),
		Condition:    i("condition"),
		SqftAbove:    i("sqft_above"),
		SqftBasement: i("sqft_basement"),
		YrBuilt:      i("yr_built"),
		YrRenovated:  i("yr_renovated"),
		City:         city,
	}
}
