package tui

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders API amounts for a locale
type Formatter struct {
	printer *message.Printer
}

// NewFormatter creates a Formatter for a BCP 47 locale, falling back to
// English for tags that don't parse
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Amount formats a decimal string with grouping and the given number of
// decimals. Unparseable input is returned unchanged.
func (f *Formatter) Amount(value string, places int32) string {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return value
	}
	v, _ := d.Round(places).Float64()
	return f.printer.Sprintf(fmt.Sprintf("%%.%df", places), v)
}

// Fiat formats a countervalue amount with its ticker. ISO 4217 tickers use
// the currency's standard scale.
func (f *Formatter) Fiat(value, ticker string) string {
	places := int32(2)
	if unit, err := currency.ParseISO(ticker); err == nil {
		scale, _ := currency.Standard.Rounding(unit)
		places = int32(scale)
	}
	return f.Amount(value, places) + " " + strings.ToUpper(ticker)
}

// Crypto formats a native balance with its ticker
func (f *Formatter) Crypto(value string, ticker string, units int32) string {
	return f.Amount(value, units) + " " + ticker
}

// Signed prefixes positive values with "+"
func (f *Formatter) Signed(value, ticker string) string {
	d, err := decimal.NewFromString(value)
	if err == nil && d.IsPositive() {
		return "+" + f.Fiat(value, ticker)
	}
	return f.Fiat(value, ticker)
}

// Percent formats an optional change percentage
func Percent(pct *string) string {
	if pct == nil {
		return "-"
	}
	if !strings.HasPrefix(*pct, "-") {
		return "+" + *pct + "%"
	}
	return *pct + "%"
}
