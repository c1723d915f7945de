package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/KNICEX/signal-tracker/internal/service/pricing"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://api.twelvedata.com"

type Service struct {
	cli     *http.Client
	baseURL string
	apiKey  string
}

type Option func(svc *Service)

func WithHTTPClient(cli *http.Client) Option {
	return func(svc *Service) {
		svc.cli = cli
	}
}

func WithBaseURL(baseURL string) Option {
	return func(svc *Service) {
		svc.baseURL = baseURL
	}
}

func NewService(apiKey string, opts ...Option) pricing.PriceService {
	svc := &Service{
		cli:     &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// priceResponse carries either a price or the provider's error envelope.
type priceResponse struct {
	Price   string `json:"price"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (svc *Service) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/price?symbol=%s&apikey=%s",
		svc.baseURL, url.QueryEscape(symbol), url.QueryEscape(svc.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, err
	}
	resp, err := svc.cli.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("twelvedata request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decimal.Zero, fmt.Errorf("twelvedata http %d", resp.StatusCode)
	}

	var body priceResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("twelvedata decode: %w", err)
	}
	if body.Price == "" {
		return decimal.Zero, fmt.Errorf("twelvedata error: code=%d message=%q", body.Code, body.Message)
	}

	price, err := decimal.NewFromString(body.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("twelvedata parse price %q: %w", body.Price, err)
	}
	return price, nil
}
