package ioc

import (
	"fmt"

	"github.com/KNICEX/signal-tracker/internal/service/pricing"
	binancesvc "github.com/KNICEX/signal-tracker/internal/service/pricing/binance"
	"github.com/KNICEX/signal-tracker/internal/service/pricing/twelvedata"
	"github.com/spf13/viper"
)

// InitPriceService builds the configured market-data adapter.
func InitPriceService() pricing.PriceService {
	name := viper.GetString("provider.name")
	if name == "" {
		name = "twelvedata"
	}

	switch name {
	case "twelvedata":
		apiKey := viper.GetString("provider.twelvedata.api_key")
		if apiKey == "" {
			panic("no twelvedata api key set")
		}
		return twelvedata.NewService(apiKey)
	case "binance":
		return binancesvc.NewService(InitBinanceCli())
	default:
		panic(fmt.Sprintf("unknown price provider: %s", name))
	}
}
