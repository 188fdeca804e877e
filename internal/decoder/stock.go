package decoder

import (
	"fmt"
	"strings"
)

// StockType selects raw quantity field used as product stock.
type StockType string

// Stock types.
const (
	StockOnHand    StockType = "giacenza"
	StockAvailable StockType = "disponibilita"
	StockIncoming  StockType = "futura"
)

// UnmarshalText parses stock type from text.
func (s *StockType) UnmarshalText(text []byte) error {
	switch st := StockType(strings.ToLower(strings.TrimSpace(string(text)))); st {
	case "":
		*s = StockOnHand
	case StockOnHand, StockAvailable, StockIncoming:
		*s = st
	default:
		return fmt.Errorf("unknown stock type %q", string(text))
	}
	return nil
}

// field returns name of raw quantity field selected by stock type.
func (s StockType) field() string {
	switch s {
	case StockAvailable:
		return FieldStockAvailable
	case StockIncoming:
		return FieldStockIncoming
	default:
		return FieldStockOnHand
	}
}
