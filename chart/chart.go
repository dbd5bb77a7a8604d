// Package chart draws how the estimated price responds to one numeric field
// while the rest of the record stays fixed.
package chart

import (
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/houseprice/core/parallel"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"github.com/YuminosukeSato/houseprice/valuation"
)

// Sqft living range of the interactive form.
const (
	SqftLivingMin = 300
	SqftLivingMax = 15000
)

// DefaultSteps is the number of points in a sweep.
const DefaultSteps = 40

// PredictFunc values one record.
type PredictFunc func(valuation.Record) (valuation.Price, error)

// Point is one evaluated record.
type Point struct {
	SqftLiving int
	Price      valuation.Price
}

// Sweep is the price curve over sqft_living.
type Sweep struct {
	Base   valuation.Record
	Points []Point
}

// parallelThreshold is the sweep size above which points are evaluated
// concurrently. The pipeline behind predict is read-only and shared.
const parallelThreshold = 16

// SweepSqftLiving evaluates base with sqft_living spread evenly over
// [min, max]. If any point fails, the error of the lowest failing
// sqft_living is returned.
func SweepSqftLiving(predict PredictFunc, base valuation.Record, min, max, steps int) (Sweep, error) {
	if steps < 2 {
		return Sweep{}, errors.NewValidationError("steps", "must be >= 2", steps)
	}
	if min <= 0 || max <= min {
		return Sweep{}, errors.NewValidationError("range", "must satisfy 0 < min < max", [2]int{min, max})
	}

	xs := make([]int, 0, steps)
	for i := 0; i < steps; i++ {
		x := min + (max-min)*i/(steps-1)
		if len(xs) > 0 && xs[len(xs)-1] == x {
			continue
		}
		xs = append(xs, x)
	}

	points := make([]Point, len(xs))
	err := parallel.Map(len(xs), parallelThreshold, func(i int) error {
		r := base
		r.SqftLiving = xs[i]
		price, err := predict(r)
		if err != nil {
			return errors.Wrapf(err, "sweep at sqft_living=%d", xs[i])
		}
		points[i] = Point{SqftLiving: xs[i], Price: price}
		return nil
	})
	if err != nil {
		return Sweep{}, err
	}
	return Sweep{Base: base, Points: points}, nil
}

// Render writes s as a PNG of the given size. The base record's own estimate
// is highlighted when current > 0.
func Render(w io.Writer, s Sweep, current valuation.Price, f *valuation.Formatter, width, height vg.Length) error {
	if len(s.Points) == 0 {
		return errors.NewModelError("chart.Render", "empty sweep", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = "Estimated price vs. sqft_living"
	p.X.Label.Text = "sqft_living"
	p.Y.Label.Text = "Estimated price"
	p.Add(plotter.NewGrid())
	p.Y.Tick.Marker = plot.TickerFunc(func(min, max float64) []plot.Tick {
		ticks := plot.DefaultTicks{}.Ticks(min, max)
		for i := range ticks {
			if ticks[i].Label != "" {
				ticks[i].Label = f.Format(valuation.Price(ticks[i].Value))
			}
		}
		return ticks
	})

	xys := make(plotter.XYs, len(s.Points))
	for i, pt := range s.Points {
		xys[i].X = float64(pt.SqftLiving)
		xys[i].Y = float64(pt.Price)
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return errors.Wrap(err, "build price line")
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	if current > 0 {
		marker, err := plotter.NewScatter(plotter.XYs{{X: float64(s.Base.SqftLiving), Y: float64(current)}})
		if err != nil {
			return errors.Wrap(err, "build current marker")
		}
		marker.GlyphStyle.Shape = draw.CircleGlyph{}
		marker.GlyphStyle.Radius = vg.Points(4)
		p.Add(marker)
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return errors.Wrap(err, "create png writer")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "write png")
	}
	return nil
}
