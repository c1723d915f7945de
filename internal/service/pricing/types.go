package pricing

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceService returns the current price for an instrument symbol.
type PriceService interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}
