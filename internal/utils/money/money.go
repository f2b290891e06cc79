// Package money converts between the integer-cents representation the
// ledger stores and the decimal major-unit currency the API exposes. All
// conversions are exact; nothing here accumulates floating point.
package money

import (
	"fmt"
	"strings"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToCents converts a decimal major-unit amount (e.g. 252.95) to cents.
// Amounts with more than two fractional digits are rejected rather than
// rounded, so a lossy payload never silently changes value.
func ToCents(d decimal.Decimal) (int64, error) {
	cents := d.Mul(hundred)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("%w: amount %s has sub-cent precision", apperrors.ErrValidation, d.String())
	}
	return cents.IntPart(), nil
}

// FromCents converts cents to a decimal major-unit amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

// ParseLocalizedCents parses a statement value cell: either a plain numeric
// string ("1000.50", "-300") or a Brazilian-localized decimal
// ("1.234,56"). Returns cents.
func ParseLocalizedCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", apperrors.ErrValidation)
	}
	if strings.Contains(s, ",") {
		// "1.234,56" -> "1234.56"
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: value %q is not numeric", apperrors.ErrValidation, s)
	}
	// Spreadsheet cells arrive as formatted floats and can carry artifacts
	// like "1000.5000000001"; round to cents instead of rejecting them.
	return ToCents(d.Round(2))
}
