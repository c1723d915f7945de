package notification

import (
	"testing"
	"time"

	"github.com/KNICEX/signal-tracker/internal/entity"
	"github.com/KNICEX/signal-tracker/internal/service/monitor"
	"github.com/KNICEX/signal-tracker/pkg/decimalx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func cardSignal() entity.Signal {
	stop := decimalx.MustFromString("1.1")
	return entity.Signal{
		Id:         3,
		Symbol:     "EUR/USD",
		Side:       entity.SideLong,
		Entry:      decimalx.MustFromString("1.105"),
		Targets:    []decimal.Decimal{decimalx.MustFromString("1.11"), decimalx.MustFromString("1.115")},
		Stop:       &stop,
		Note:       "breakout",
		CreatedAt:  time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		Active:     true,
		HitTargets: []int{0},
	}
}

func TestRenderCard(t *testing.T) {
	card := RenderCard(cardSignal())

	assert.Contains(t, card, "SIGNAL LONG — EUR/USD")
	assert.Contains(t, card, "Entry: 1.10500")
	assert.Contains(t, card, "SL: 1.10000")
	assert.Contains(t, card, "T1: <b>1.11000</b> (✅ Hit)")
	assert.Contains(t, card, "T2: <b>1.11500</b>")
	assert.NotContains(t, card, "T2: <b>1.11500</b> (")
	assert.Contains(t, card, "Created: 2025-03-01 09:30 UTC")
	assert.Contains(t, card, "Note: <i>breakout</i>")
}

func TestRenderCardNoStopNoNote(t *testing.T) {
	signal := cardSignal()
	signal.Stop = nil
	signal.Note = ""
	signal.Active = false

	card := RenderCard(signal)
	assert.Contains(t, card, "SL: -")
	assert.Contains(t, card, "Inactive")
	assert.NotContains(t, card, "Note:")
}

func TestRenderTargetHit(t *testing.T) {
	text := RenderTargetHit(monitor.TargetHitEvent{
		Signal:        cardSignal(),
		TargetIndex:   1,
		TargetPrice:   decimalx.MustFromString("1.115"),
		ObservedPrice: decimalx.MustFromString("1.1162"),
	})

	assert.Contains(t, text, "Target Hit")
	assert.Contains(t, text, "T2 reached: <b>1.11500</b>")
	assert.Contains(t, text, "Live price: <b>1.11620</b>")
}

func TestRenderStopHit(t *testing.T) {
	text := RenderStopHit(monitor.StopHitEvent{
		Signal:        cardSignal(),
		StopPrice:     decimalx.MustFromString("1.1"),
		ObservedPrice: decimalx.MustFromString("1.0987"),
	})

	assert.Contains(t, text, "Stop Loss")
	assert.Contains(t, text, "1.10000")
	assert.Contains(t, text, "1.09870")
}

func TestRenderList(t *testing.T) {
	assert.Equal(t, "No signals yet.", RenderList(nil))

	line := RenderList([]entity.Signal{cardSignal()})
	assert.Contains(t, line, "#3 | EUR/USD | LONG")
	assert.Contains(t, line, "targets 1.11,1.115")
	assert.Contains(t, line, "Active")
}
