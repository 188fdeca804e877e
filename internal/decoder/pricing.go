package decoder

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Rounding is price rounding mode.
type Rounding string

// Price rounding modes.
const (
	// RoundingNone leaves price unchanged.
	RoundingNone Rounding = "none"
	// RoundingCeil rounds price up to integer.
	RoundingCeil Rounding = "ceil"
	// RoundingCeil2 rounds price up to two decimal places.
	RoundingCeil2 Rounding = "ceil2"
	// RoundingHalf rounds price up to next multiple of 0.50.
	RoundingHalf Rounding = "half"
)

var (
	// VATMultiplier is multiplier applied to prices when VAT addition is enabled.
	VATMultiplier = decimal.RequireFromString("1.22")

	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// UnmarshalText parses rounding mode from text.
func (r *Rounding) UnmarshalText(text []byte) error {
	switch mode := Rounding(strings.ToLower(strings.TrimSpace(string(text)))); mode {
	case "":
		*r = RoundingNone
	case RoundingNone, RoundingCeil, RoundingCeil2, RoundingHalf:
		*r = mode
	default:
		return fmt.Errorf("unknown rounding mode %q", string(text))
	}
	return nil
}

// RoundPrice rounds price according to rounding mode.
func RoundPrice(price decimal.Decimal, mode Rounding) decimal.Decimal {
	switch mode {
	case RoundingCeil:
		return price.Ceil()
	case RoundingCeil2:
		return price.RoundCeil(2)
	case RoundingHalf:
		return price.Mul(two).Ceil().Div(two)
	default:
		return price
	}
}

// AddVAT returns price with VAT added.
func AddVAT(price decimal.Decimal) decimal.Decimal {
	return price.Mul(VATMultiplier)
}

// SalePrice returns price discounted by percent and rounded according to rounding mode.
// It returns nil for non-positive price or when percent is not in (0, 100) range.
func SalePrice(price, percent decimal.Decimal, mode Rounding) *decimal.Decimal {
	if !price.IsPositive() || !percent.IsPositive() || percent.GreaterThanOrEqual(hundred) {
		return nil
	}

	sale := price.Mul(hundred.Sub(percent)).Div(hundred)
	sale = RoundPrice(sale, mode)

	return &sale
}
