package valuation

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/YuminosukeSato/houseprice/pkg/errors"
)

// Formatter renders prices with a locale's digit grouping and decimal
// separator and a fixed currency symbol.
type Formatter struct {
	tag     language.Tag
	symbol  string
	printer *message.Printer
}

// NewFormatter parses locale (a BCP 47 tag such as "pt-BR") and returns a
// Formatter that prefixes symbol.
func NewFormatter(locale, symbol string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, errors.NewValidationError("locale", "not a BCP 47 language tag", locale)
	}
	return &Formatter{tag: tag, symbol: symbol, printer: message.NewPrinter(tag)}, nil
}

// Locale returns the parsed language tag.
func (f *Formatter) Locale() language.Tag { return f.tag }

// Number formats v with two decimals and the locale's separators.
func (f *Formatter) Number(v float64) string {
	return f.printer.Sprintf("%.2f", v)
}

// Format formats p as "<symbol> <number>", e.g. "R$ 361.004,94" for pt-BR.
func (f *Formatter) Format(p Price) string {
	if f.symbol == "" {
		return f.Number(float64(p))
	}
	return f.symbol + " " + f.Number(float64(p))
}
