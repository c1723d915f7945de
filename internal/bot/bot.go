package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/KNICEX/signal-tracker/internal/service/notification"
	"github.com/KNICEX/signal-tracker/internal/service/signal"
	"github.com/samber/lo"
)

const (
	pollTimeoutSeconds = 30
	pollRetryDelay     = 3 * time.Second
)

const usageText = "Welcome!\n" +
	"Add signal example:\n" +
	"/addsignal symbol=EUR/USD side=LONG entry=1.1050 targets=1.1100,1.1150 stop=1.1000 note=Breakout\n\n" +
	"List: /list\nDelete: /delete 3"

const formatErrorText = "Format error. Example:\n" +
	"/addsignal symbol=EUR/USD side=LONG entry=1.1050 targets=1.1100,1.1150 stop=1.1000 note=Breakout"

// Bot is the thin chat front over the signal service: it parses commands,
// gates them on the operator whitelist and renders replies. All state lives
// behind signal.Service.
type Bot struct {
	cli       *notification.TelegramClient
	signalSvc signal.Service
	adminIds  map[int64]struct{}
}

func NewBot(cli *notification.TelegramClient, signalSvc signal.Service, adminIds []int64) *Bot {
	return &Bot{
		cli:       cli,
		signalSvc: signalSvc,
		adminIds: lo.SliceToMap(adminIds, func(id int64) (int64, struct{}) {
			return id, struct{}{}
		}),
	}
}

// Start long-polls for updates until ctx is cancelled. Poll errors are
// logged and retried after a short delay.
func (b *Bot) Start(ctx context.Context) {
	slog.Info("command bot started")
	var offset int64
	for {
		if ctx.Err() != nil {
			slog.Info("command bot stopped")
			return
		}

		updates, err := b.cli.GetUpdates(ctx, offset, pollTimeoutSeconds)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			slog.Error("failed to poll updates", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			b.handleMessage(ctx, *update.Message)
		}
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	_, ok := b.adminIds[userID]
	return ok
}

func (b *Bot) handleMessage(ctx context.Context, msg notification.Message) {
	command, args, _ := strings.Cut(strings.TrimSpace(msg.Text), " ")
	command, _, _ = strings.Cut(command, "@")
	if !strings.HasPrefix(command, "/") {
		return
	}

	if !b.isAdmin(msg.From.ID) {
		b.reply(ctx, msg, "Access denied.")
		return
	}

	switch command {
	case "/start":
		b.reply(ctx, msg, usageText)
	case "/addsignal":
		b.handleAdd(ctx, msg, args)
	case "/list":
		b.handleList(ctx, msg)
	case "/delete":
		b.handleDelete(ctx, msg, args)
	}
}

func (b *Bot) handleAdd(ctx context.Context, msg notification.Message, args string) {
	kv := parseKVArgs(args)

	req := signal.AddSignalReq{
		Symbol:  kv["symbol"],
		Side:    kv["side"],
		Entry:   kv["entry"],
		Targets: splitList(kv["targets"]),
		Stop:    kv["stop"],
		Note:    kv["note"],
	}
	if req.Symbol == "" {
		req.Symbol = "EUR/USD"
	}
	if req.Side == "" {
		req.Side = "LONG"
	}

	created, err := b.signalSvc.AddSignal(ctx, req)
	if errors.Is(err, signal.ErrInvalidSignal) {
		b.reply(ctx, msg, formatErrorText)
		return
	}
	if err != nil {
		slog.Error("failed to add signal", "error", err)
		b.reply(ctx, msg, "Internal error, signal not saved.")
		return
	}

	b.reply(ctx, msg, fmt.Sprintf("Signal #%d created and posted to channel.", created.Id))
}

func (b *Bot) handleList(ctx context.Context, msg notification.Message) {
	signals, err := b.signalSvc.ListSignals(ctx)
	if err != nil {
		slog.Error("failed to list signals", "error", err)
		b.reply(ctx, msg, "Internal error.")
		return
	}
	b.reply(ctx, msg, notification.RenderList(signals))
}

func (b *Bot) handleDelete(ctx context.Context, msg notification.Message, args string) {
	id, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		b.reply(ctx, msg, "Usage: /delete <id>")
		return
	}

	ok, err := b.signalSvc.DeleteSignal(ctx, id)
	if err != nil {
		slog.Error("failed to delete signal", "id", id, "error", err)
		b.reply(ctx, msg, "Internal error.")
		return
	}
	if ok {
		b.reply(ctx, msg, "Deleted.")
	} else {
		b.reply(ctx, msg, "Not found.")
	}
}

func (b *Bot) reply(ctx context.Context, msg notification.Message, text string) {
	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	if _, err := b.cli.SendMessage(ctx, chatID, text); err != nil {
		slog.Error("failed to send reply", "chat", chatID, "error", err)
	}
}
