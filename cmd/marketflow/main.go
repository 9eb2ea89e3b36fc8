// Command marketflow starts the MCP front-end: it builds the domain method
// catalog (crypto price history, news, date arithmetic, recorded output),
// wires it and the §2 LLM-driven orchestrator up as MCP tools, and serves
// them over stdio for an MCP client to call.
//
// Usage:
//
//	go run ./cmd/marketflow
//
// Configuration is read from the environment (see config.go); a .env file
// in the working directory is loaded first if present.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	ai "github.com/lattice-quant/marketflow"
	"github.com/lattice-quant/marketflow/catalog"
	"github.com/lattice-quant/marketflow/client"
	"github.com/lattice-quant/marketflow/domain"
	"github.com/lattice-quant/marketflow/mcp"
	"github.com/lattice-quant/marketflow/model"
	"github.com/lattice-quant/marketflow/orchestrate"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("marketflow: config: %v", err)
	}

	configureLogging(cfg)

	host := domain.NewHost(priceSource(cfg), domain.NewFakeNewsSource(), cfg.PriceCacheTTL)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.InterpretTimeout)
	defer cancel()

	chatClient, err := newChatClient(ctx, cfg)
	if err != nil {
		log.Fatalf("marketflow: client: %v", err)
	}

	cat, err := catalog.Build(host, domain.Specs())
	if err != nil {
		log.Fatalf("marketflow: catalog: %v", err)
	}

	reg, err := mcp.CatalogTools(cat, domain.Specs())
	if err != nil {
		log.Fatalf("marketflow: registering catalog tools: %v", err)
	}

	orchestrateOpts := []orchestrate.Option{orchestrate.WithDefaultMapConcurrency(cfg.MaxMapConcurrency)}
	if m, ok := model.Lookup(cfg.Model); ok {
		orchestrateOpts = append(orchestrateOpts, orchestrate.WithModel(m))
	}
	o := orchestrate.New(chatClient, cat, host, orchestrateOpts...)
	if err := mcp.AnalyzeTool(reg, o); err != nil {
		log.Fatalf("marketflow: registering analyze_market tool: %v", err)
	}

	slog.Info("marketflow: serving MCP over stdio", "tools", reg.Len(), "provider", cfg.Provider)

	if err := mcp.ServeStdio(reg,
		mcp.WithName(cfg.ServerName),
		mcp.WithVersion(cfg.ServerVersion),
	); err != nil {
		log.Fatalf("marketflow: serve: %v", err)
	}
}

// configureLogging installs the global slog handler per cfg.LogLevel/
// LogJSON — every package in this module logs through the context-aware
// slog package funcs rather than a threaded logger, so this is the one
// place the handler is set.
func configureLogging(cfg *Config) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// newChatClient selects a provider client per cfg.Provider/Model, used by
// orchestrate.Orchestrator for the relevance check, workflow-generation, and
// final-render calls (§2).
func newChatClient(ctx context.Context, cfg *Config) (*client.Client, error) {
	return client.New(ctx, client.Config{
		Provider:         client.ProviderName(cfg.Provider),
		APIKey:           getAPIKey(cfg),
		ChatModel:        ai.Model(cfg.Model),
		RequiredFeatures: []client.Feature{client.FeatureChat},
	})
}

// priceSource selects a RemotePriceSource when MARKETFLOW_PRICE_SOURCE_URL
// is configured, falling back to the deterministic in-memory fake — news
// has no equivalent remote option since §1/§9 Non-goals explicitly exclude
// a real news-scraping backend.
func priceSource(cfg *Config) domain.HTTPPriceSource {
	if cfg.PriceSourceURL == "" {
		return &domain.FakePriceSource{}
	}
	return domain.NewRemotePriceSource(cfg.PriceSourceURL)
}
