package domain

import (
	"context"
	"fmt"
	"time"
)

// NewsSource stands in for the real CryptoPanic-scraping-plus-decryption
// collaborator, explicitly out of scope per spec.md §1/§9 Non-goals.
type NewsSource interface {
	FetchNews(ctx context.Context, symbol string, limit int) ([]NewsItem, error)
}

// FakeNewsSource is a small in-memory headline feed.
type FakeNewsSource struct {
	Items []NewsItem
}

// NewFakeNewsSource seeds a handful of deterministic headlines for symbol
// when no Items are supplied.
func NewFakeNewsSource() *FakeNewsSource {
	return &FakeNewsSource{}
}

func (s *FakeNewsSource) FetchNews(_ context.Context, symbol string, limit int) ([]NewsItem, error) {
	items := s.Items
	if items == nil {
		now := time.Now().UTC()
		items = []NewsItem{
			{Title: fmt.Sprintf("%s rallies on exchange inflows", symbol), Source: "fakewire", PublishedAt: now.Add(-2 * time.Hour), URL: "https://example.invalid/1"},
			{Title: fmt.Sprintf("Analysts split on %s short-term outlook", symbol), Source: "fakewire", PublishedAt: now.Add(-26 * time.Hour), URL: "https://example.invalid/2"},
			{Title: fmt.Sprintf("%s volume climbs ahead of weekend", symbol), Source: "fakewire", PublishedAt: now.Add(-50 * time.Hour), URL: "https://example.invalid/3"},
		}
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}
