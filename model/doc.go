// Package model provides model constants for all supported AI providers.
//
// This package exposes typed model constants with pricing information.
// Each model reports its provider and pricing; the client picks its provider
// from client.Config.Provider, not from the model.
//
// # Chat Models
//
// Pass a model's String form to ai.WithModel() or, as ai.Model, to the
// client's default:
//
//	import (
//	    ai "github.com/lattice-quant/marketflow"
//	    "github.com/lattice-quant/marketflow/client"
//	    "github.com/lattice-quant/marketflow/model"
//	)
//
//	c, err := client.New(ctx, client.Config{
//	    Provider:  client.ProviderAnthropic,
//	    APIKey:    os.Getenv("ANTHROPIC_API_KEY"),
//	    ChatModel: ai.Model(model.ClaudeSonnet45.String()),
//	})
//
//	// Override the model for one request (same provider)
//	resp, err := c.Chat(ctx, messages, ai.WithModel(model.ClaudeHaiku45.String()))
//
// # Pricing Information
//
// All models include pricing methods for cost estimation:
//
//	pricing := model.GPT52.Pricing()
//	inputCost := float64(inputTokens) / 1_000_000 * pricing.InputPerMillion
//	outputCost := float64(outputTokens) / 1_000_000 * pricing.OutputPerMillion
//
// # Provider-Specific Pricing Features
//
// Some pricing fields are provider-specific. Use helper methods to check availability:
//
//	pricing := model.GPT52.Pricing()
//	if pricing.HasCachedPricing() {
//	    // OpenAI models support cached input pricing
//	    cachedCost := float64(cachedTokens) / 1_000_000 * pricing.CachedInputPerMillion
//	}
//
//	pricing := model.Gemini3Pro.Pricing()
//	if pricing.HasLongContextPricing() {
//	    // Google models have tiered pricing for >200K token contexts
//	    longInputCost := float64(tokens) / 1_000_000 * pricing.InputPerMillionLong
//	}
//
// # Available Providers
//
// Models are available for three providers:
//
//   - Anthropic: Claude models
//   - OpenAI: GPT and O-series models
//   - Google: Gemini models
package model
