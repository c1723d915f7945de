package binance

import (
	"context"
	"fmt"
	"strings"

	"github.com/KNICEX/signal-tracker/internal/service/pricing"
	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

type Service struct {
	cli *binance.Client
}

func NewService(cli *binance.Client) pricing.PriceService {
	return &Service{
		cli: cli,
	}
}

func (svc *Service) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	prices, err := svc.cli.NewListPricesService().Symbol(normalizeSymbol(symbol)).Do(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if len(prices) == 0 {
		return decimal.Zero, fmt.Errorf("symbol %s not found", symbol)
	}
	price, err := decimal.NewFromString(prices[0].Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("binance parse price %q: %w", prices[0].Price, err)
	}
	return price, nil
}

// normalizeSymbol maps the free-form "BTC/USDT" form to binance's "BTCUSDT".
func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.ReplaceAll(symbol, "/", ""))
}
