package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/KNICEX/signal-tracker/internal/entity"
	"github.com/KNICEX/signal-tracker/internal/service/monitor"
)

const defaultAPIBaseURL = "https://api.telegram.org"

// TelegramClient is a minimal Bot API client, enough for sendMessage and
// getUpdates long polling.
type TelegramClient struct {
	cli      *http.Client
	baseURL  string
	botToken string
}

type ClientOption func(c *TelegramClient)

func WithHTTPClient(cli *http.Client) ClientOption {
	return func(c *TelegramClient) {
		c.cli = cli
	}
}

func WithBaseURL(baseURL string) ClientOption {
	return func(c *TelegramClient) {
		c.baseURL = baseURL
	}
}

func NewTelegramClient(botToken string, opts ...ClientOption) *TelegramClient {
	c := &TelegramClient{
		cli:      &http.Client{Timeout: 65 * time.Second},
		baseURL:  defaultAPIBaseURL,
		botToken: botToken,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	ReplyToMessageID      int64  `json:"reply_to_message_id,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type User struct {
	ID int64 `json:"id"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

type SendOption func(req *sendMessageRequest)

func ReplyTo(messageID int64) SendOption {
	return func(req *sendMessageRequest) {
		req.ReplyToMessageID = messageID
	}
}

// SendMessage posts an HTML message and returns the new message id.
func (c *TelegramClient) SendMessage(ctx context.Context, chatID, text string, opts ...SendOption) (int64, error) {
	req := sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}
	for _, opt := range opts {
		opt(&req)
	}

	var msg Message
	if err := c.call(ctx, "sendMessage", req, &msg); err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}

type getUpdatesRequest struct {
	Offset  int64 `json:"offset,omitempty"`
	Timeout int   `json:"timeout,omitempty"`
}

// GetUpdates long-polls for incoming updates past offset.
func (c *TelegramClient) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]Update, error) {
	var updates []Update
	err := c.call(ctx, "getUpdates", getUpdatesRequest{Offset: offset, Timeout: timeoutSeconds}, &updates)
	if err != nil {
		return nil, err
	}
	return updates, nil
}

func (c *TelegramClient) call(ctx context.Context, method string, payload, result any) error {
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, url.PathEscape(c.botToken), method)
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.cli.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var envelope apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("telegram %s decode: %w", method, err)
	}
	if !envelope.OK {
		return fmt.Errorf("telegram %s: %s", method, envelope.Description)
	}
	if result != nil && envelope.Result != nil {
		if err = json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("telegram %s result: %w", method, err)
		}
	}
	return nil
}

// TelegramNotifier posts signal cards and alerts to a channel. Alerts are
// additionally replied onto the original card when the signal carries an
// external ref; reply failures are ignored.
type TelegramNotifier struct {
	cli       *TelegramClient
	channelID string
}

func NewTelegramNotifier(cli *TelegramClient, channelID string) monitor.Notifier {
	return &TelegramNotifier{
		cli:       cli,
		channelID: channelID,
	}
}

func (n *TelegramNotifier) SignalPublished(ctx context.Context, signal entity.Signal) (string, error) {
	messageID, err := n.cli.SendMessage(ctx, n.channelID, RenderCard(signal))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(messageID, 10), nil
}

func (n *TelegramNotifier) TargetHit(ctx context.Context, event monitor.TargetHitEvent) error {
	return n.send(ctx, event.Signal, RenderTargetHit(event))
}

func (n *TelegramNotifier) StopHit(ctx context.Context, event monitor.StopHitEvent) error {
	return n.send(ctx, event.Signal, RenderStopHit(event))
}

func (n *TelegramNotifier) send(ctx context.Context, signal entity.Signal, text string) error {
	if _, err := n.cli.SendMessage(ctx, n.channelID, text); err != nil {
		return err
	}

	ref, err := strconv.ParseInt(signal.ExternalRef, 10, 64)
	if err != nil {
		return nil
	}
	if _, err = n.cli.SendMessage(ctx, n.channelID, text, ReplyTo(ref)); err != nil {
		slog.Warn("failed to thread alert onto card", "signal", signal.Id, "ref", signal.ExternalRef, "error", err)
	}
	return nil
}
