package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lattice-quant/marketflow/retry"
)

// HTTPPriceSource is the collaborator GetPriceHistory fronts with a
// priceCache. Split out as an interface so tests substitute a fake source
// instead of hitting a real exchange API.
type HTTPPriceSource interface {
	FetchPriceHistory(ctx context.Context, symbol string, from, to time.Time, interval string) ([]PricePoint, error)
}

// RemotePriceSource calls a JSON HTTP API returning OHLCV candles, wrapped
// in the shared retry.Config backoff policy (§C: "used by client for LLM
// calls and by domain for price/news HTTP calls").
type RemotePriceSource struct {
	BaseURL string
	Client  *http.Client
	Retry   retry.Config
}

// NewRemotePriceSource builds a RemotePriceSource with a bounded HTTP
// client and the shared retry defaults.
func NewRemotePriceSource(baseURL string) *RemotePriceSource {
	return &RemotePriceSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Retry:   retry.DefaultConfig(),
	}
}

type candleResponse struct {
	Candles []struct {
		Time   string  `json:"time"`
		Open   float64 `json:"open"`
		High   float64 `json:"high"`
		Low    float64 `json:"low"`
		Close  float64 `json:"close"`
		Volume float64 `json:"volume"`
	} `json:"candles"`
}

func (s *RemotePriceSource) FetchPriceHistory(ctx context.Context, symbol string, from, to time.Time, interval string) ([]PricePoint, error) {
	return retry.Do(ctx, s.Retry, func() ([]PricePoint, error) {
		u := fmt.Sprintf("%s/candles?symbol=%s&from=%s&to=%s&interval=%s",
			s.BaseURL, url.QueryEscape(symbol),
			url.QueryEscape(from.UTC().Format(time.RFC3339)),
			url.QueryEscape(to.UTC().Format(time.RFC3339)),
			url.QueryEscape(interval))

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.Client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("domain: price source returned status %d", resp.StatusCode)
		}

		var payload candleResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("domain: decoding price response: %w", err)
		}

		points := make([]PricePoint, 0, len(payload.Candles))
		for _, c := range payload.Candles {
			t, err := time.Parse(time.RFC3339, c.Time)
			if err != nil {
				continue
			}
			points = append(points, PricePoint{
				Time: t.UTC(), Open: c.Open, High: c.High, Low: c.Low, Close: c.Close, Volume: c.Volume,
			})
		}
		return points, nil
	})
}

// FakePriceSource is an in-memory, deterministic stand-in for a real
// exchange API — used by tests and by deployments without a configured
// BaseURL.
type FakePriceSource struct {
	// SeedPrice is the Close value of the first generated candle.
	SeedPrice float64
}

func (s *FakePriceSource) FetchPriceHistory(_ context.Context, symbol string, from, to time.Time, interval string) ([]PricePoint, error) {
	seed := s.SeedPrice
	if seed <= 0 {
		seed = 100
	}
	step := 24 * time.Hour
	if interval == "1h" || interval == "hour" || interval == "hourly" {
		step = time.Hour
	}

	var points []PricePoint
	price := seed
	for t := from; !t.After(to); t = t.Add(step) {
		open := price
		closePrice := price + float64(len(symbol)%5) - 2
		points = append(points, PricePoint{
			Time: t.UTC(), Open: open, High: open + 1, Low: closePrice - 1, Close: closePrice, Volume: 1000,
		})
		price = closePrice
	}
	return points, nil
}
