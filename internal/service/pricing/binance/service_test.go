package binance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "BTCUSDT", normalizeSymbol("BTC/USDT"))
	assert.Equal(t, "BTCUSDT", normalizeSymbol("btcusdt"))
	assert.Equal(t, "ETHUSDT", normalizeSymbol("ETHUSDT"))
}
