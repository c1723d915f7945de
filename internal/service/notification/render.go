package notification

import (
	"fmt"
	"strings"

	"github.com/KNICEX/signal-tracker/internal/entity"
	"github.com/KNICEX/signal-tracker/internal/service/monitor"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	iconBull   = "🟢"
	iconBear   = "🔴"
	iconTarget = "🎯"
	iconStop   = "🛑"
	iconAlert  = "⚡"
	iconCheck  = "✅"
	iconCross  = "❌"
	iconClock  = "⏱️"
	iconPush   = "📣"
)

func fmtPrice(price decimal.Decimal) string {
	return price.StringFixed(5)
}

// RenderCard renders the initial signal card posted to the channel.
func RenderCard(signal entity.Signal) string {
	sideIcon := iconBull
	if signal.Side == entity.SideShort {
		sideIcon = iconBear
	}

	stop := "-"
	if signal.Stop != nil {
		stop = fmtPrice(*signal.Stop)
	}

	status := iconCheck + " Active"
	if !signal.Active {
		status = iconCross + " Inactive"
	}

	targetLines := lo.Map(signal.Targets, func(target decimal.Decimal, idx int) string {
		line := fmt.Sprintf("%s T%d: <b>%s</b>", iconTarget, idx+1, fmtPrice(target))
		if signal.TargetHit(idx) {
			line += " (" + iconCheck + " Hit)"
		}
		return line
	})

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s SIGNAL %s — %s</b> %s\n", iconPush, signal.Side, signal.Symbol, sideIcon)
	fmt.Fprintf(&b, "<code>Entry: %s | SL: %s | Status: %s</code>\n", fmtPrice(signal.Entry), stop, status)
	b.WriteString(strings.Join(targetLines, "\n"))
	fmt.Fprintf(&b, "\n%s Created: %s", iconClock, signal.CreatedAt.UTC().Format("2006-01-02 15:04 UTC"))
	if signal.Note != "" {
		fmt.Fprintf(&b, "\n📝 Note: <i>%s</i>", signal.Note)
	}
	return b.String()
}

func RenderTargetHit(event monitor.TargetHitEvent) string {
	return fmt.Sprintf("%s <b>Target Hit</b> — %s %s\n%s T%d reached: <b>%s</b>\nLive price: <b>%s</b>",
		iconAlert, event.Signal.Symbol, iconTarget,
		iconCheck, event.TargetIndex+1, fmtPrice(event.TargetPrice),
		fmtPrice(event.ObservedPrice))
}

func RenderStopHit(event monitor.StopHitEvent) string {
	return fmt.Sprintf("%s <b>Stop Loss</b> — %s\nSL triggered at: <b>%s</b> | Price: <b>%s</b>",
		iconStop, event.Signal.Symbol,
		fmtPrice(event.StopPrice), fmtPrice(event.ObservedPrice))
}

// RenderList renders the compact one-line-per-signal listing.
func RenderList(signals []entity.Signal) string {
	if len(signals) == 0 {
		return "No signals yet."
	}

	lines := lo.Map(signals, func(signal entity.Signal, _ int) string {
		status := "Active"
		if !signal.Active {
			status = "Inactive"
		}
		stop := "-"
		if signal.Stop != nil {
			stop = signal.Stop.String()
		}
		targets := lo.Map(signal.Targets, func(target decimal.Decimal, _ int) string {
			return target.String()
		})
		return fmt.Sprintf("#%d | %s | %s | entry %s | SL %s | targets %s | %s",
			signal.Id, signal.Symbol, signal.Side, signal.Entry.String(), stop,
			strings.Join(targets, ","), status)
	})
	return strings.Join(lines, "\n")
}
