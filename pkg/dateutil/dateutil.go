// Package dateutil parses the YYYY-MM-DD dates and non-negative amounts that
// tool arguments carry.
package dateutil

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cuaderno/pkg/apperr"
)

const Layout = "2006-01-02"

// Parse reads a YYYY-MM-DD date as UTC midnight.
func Parse(field, s string) (time.Time, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperr.Validation("%s debe tener el formato YYYY-MM-DD (recibido %q)", field, s)
	}
	return t, nil
}

// ParseOptional is Parse for optional dates; empty input gives nil.
func ParseOptional(field, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := Parse(field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Format renders t as YYYY-MM-DD, or "" for the zero time.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Layout)
}

// FormatPtr is Format for optional dates.
func FormatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Format(*t)
}

// YearRange returns Jan 1 and Dec 31 of year, both inclusive.
func YearRange(year int) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	return from, to
}

// Amount converts an optional number into a decimal, rejecting negatives.
func Amount(field string, v *float64) (decimal.NullDecimal, error) {
	if v == nil {
		return decimal.NullDecimal{}, nil
	}
	if *v < 0 {
		return decimal.NullDecimal{}, apperr.Validation("%s no puede ser negativo (%v)", field, *v)
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*v)), nil
}

// Decimal renders an optional decimal, or "" when unset.
func Decimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// ClockOn reads an HH:MM time on day. Empty input gives nil.
func ClockOn(field string, day time.Time, hhmm string) (*time.Time, error) {
	hhmm = strings.TrimSpace(hhmm)
	if hhmm == "" {
		return nil, nil
	}
	c, err := time.Parse("15:04", hhmm)
	if err != nil {
		return nil, apperr.Validation("%s debe tener el formato HH:MM (recibido %q)", field, hhmm)
	}
	t := time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, day.Location())
	return &t, nil
}
