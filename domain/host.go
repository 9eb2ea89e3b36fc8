package domain

import (
	"context"
	"fmt"
	"time"
)

// Host is the reflected object the catalog is built over (§4.2): its
// exported, spec-documented methods are the domain operations an
// LLM-generated ASL workflow can invoke as Task states.
type Host struct {
	prices  *priceCache
	source  HTTPPriceSource
	news    NewsSource
	records *recordedOutputs
}

// NewHost wires a price source and news source behind the catalog-visible
// methods. Pass a *FakePriceSource/*FakeNewsSource in tests, a
// *RemotePriceSource in production.
func NewHost(source HTTPPriceSource, news NewsSource, cacheTTL time.Duration) *Host {
	return &Host{
		prices:  newPriceCache(cacheTTL),
		source:  source,
		news:    news,
		records: &recordedOutputs{},
	}
}

// GetPriceHistory returns OHLCV candles for symbol between from and to at
// the given interval, serving a cached copy within the cache's TTL when
// the bucketed window has already been fetched.
func (h *Host) GetPriceHistory(ctx context.Context, symbol string, from, to time.Time, interval string) ([]PricePoint, error) {
	if cached, ok := h.prices.get(symbol, from, to, interval); ok {
		return cached, nil
	}
	points, err := h.source.FetchPriceHistory(ctx, symbol, from, to, interval)
	if err != nil {
		return nil, fmt.Errorf("domain: fetching price history for %s: %w", symbol, err)
	}
	h.prices.put(symbol, from, to, interval, points)
	return points, nil
}

// GetNews returns an async sequence of headlines for symbol, exercising
// §4.2's async-sequence-unwrapping rule: the catalog drains this channel
// into a JSON array after invocation.
func (h *Host) GetNews(ctx context.Context, symbol string, limit int) (<-chan NewsItem, error) {
	items, err := h.news.FetchNews(ctx, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("domain: fetching news for %s: %w", symbol, err)
	}

	out := make(chan NewsItem, len(items))
	go func() {
		defer close(out)
		for _, item := range items {
			select {
			case out <- item:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// AddTime adds value units of unit to date.
func (h *Host) AddTime(_ context.Context, date time.Time, value int, unit DateUnit) (time.Time, error) {
	return date.Add(unit.duration(value)), nil
}

// DateDiff returns how many whole units of unit separate a and b (b - a).
func (h *Host) DateDiff(_ context.Context, a, b time.Time, unit DateUnit) (int, error) {
	delta := b.Sub(a)
	span := unit.duration(1)
	if span <= 0 {
		return 0, fmt.Errorf("domain: invalid unit %q", unit)
	}
	return int(delta / span), nil
}

// Summarize returns a Future[Stats] computed over the last 30 days of
// symbol's price history — exercising §4.2's future-unwrapping rule rather
// than blocking the caller directly.
func (h *Host) Summarize(ctx context.Context, symbol string) Future[Stats] {
	return newPromise(func() (Stats, error) {
		to := time.Now().UTC()
		from := to.Add(-30 * 24 * time.Hour)
		points, err := h.GetPriceHistory(ctx, symbol, from, to, "1d")
		if err != nil {
			return Stats{}, err
		}
		if len(points) == 0 {
			return Stats{Symbol: symbol}, nil
		}

		stats := Stats{Symbol: symbol, SampleCount: len(points), MinClose: points[0].Close, MaxClose: points[0].Close}
		var sum float64
		for _, p := range points {
			sum += p.Close
			stats.TotalVolume += p.Volume
			if p.Close < stats.MinClose {
				stats.MinClose = p.Close
			}
			if p.Close > stats.MaxClose {
				stats.MaxClose = p.Close
			}
		}
		stats.MeanClose = sum / float64(len(points))
		return stats, nil
	})
}

// RecordOutput implements §4.4: appends (category, content) to a
// thread-safe ordered list the orchestrator renders into the final prompt,
// and acknowledges the append so the Task state has a value to place.
func (h *Host) RecordOutput(_ context.Context, category, content string) (string, error) {
	h.records.append(category, content)
	return "recorded", nil
}

// RecordedOutputs returns a snapshot of everything RecordOutput has
// appended so far, for the orchestrator/renderer to consume (§6).
func (h *Host) RecordedOutputs() []RecordedEntry {
	return h.records.snapshot()
}
