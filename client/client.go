// Package client provides a unified client for accessing all AI provider capabilities.
package client

import (
	"context"
	"fmt"

	ai "github.com/lattice-quant/marketflow"
	"github.com/lattice-quant/marketflow/provider/anthropic"
	"github.com/lattice-quant/marketflow/provider/google"
	"github.com/lattice-quant/marketflow/provider/openai"
	"github.com/lattice-quant/marketflow/retry"
)

// ProviderName identifies supported AI providers.
type ProviderName string

const (
	ProviderAnthropic ProviderName = "anthropic"
	ProviderOpenAI    ProviderName = "openai"
	ProviderGoogle    ProviderName = "google"
)

// Feature represents a capability that a provider may support.
type Feature string

const (
	FeatureChat Feature = "chat"
)

// providerCapabilities defines which features each provider supports.
var providerCapabilities = map[ProviderName]map[Feature]bool{
	ProviderAnthropic: {
		FeatureChat: true,
	},
	ProviderOpenAI: {
		FeatureChat: true,
	},
	ProviderGoogle: {
		FeatureChat: true,
	},
}

// Config holds configuration for creating a unified client.
type Config struct {
	// Provider specifies which AI provider to use.
	Provider ProviderName
	// APIKey is the authentication key for the provider.
	APIKey string
	// ChatModel is the default model for chat operations.
	// A model id string, or a provider constant converted with ai.Model
	// (e.g., ai.Model(openai.GPT52)).
	ChatModel ai.Model
	// RequiredFeatures lists features that must be available.
	// Construction fails if any required feature is unsupported.
	RequiredFeatures []Feature
	// RetryConfig configures retry behavior for transient errors.
	// If nil, uses default retry configuration (10 attempts with exponential backoff).
	// Use retry.Disabled() to disable retries.
	RetryConfig *retry.Config
}

// ErrFeatureNotSupported is returned when a feature is unavailable for the provider.
type ErrFeatureNotSupported struct {
	Provider string
	Feature  string
}

func (e *ErrFeatureNotSupported) Error() string {
	return fmt.Sprintf("%s provider does not support %s", e.Provider, e.Feature)
}

// ErrInvalidProvider is returned when an unknown provider name is specified.
type ErrInvalidProvider struct {
	Provider string
}

func (e *ErrInvalidProvider) Error() string {
	return fmt.Sprintf("unknown provider: %q (valid providers: anthropic, openai, google)", e.Provider)
}

// Client is a unified interface to all AI provider capabilities.
type Client struct {
	provider     ProviderName
	chatProvider ai.ChatProvider
	retryConfig  retry.Config
}

// New creates a unified client with the given configuration.
// It validates that all required features are supported by the provider.
// The context is required for Google provider initialization.
func New(ctx context.Context, cfg Config) (*Client, error) {
	// Validate provider name
	caps, ok := providerCapabilities[cfg.Provider]
	if !ok {
		return nil, &ErrInvalidProvider{Provider: string(cfg.Provider)}
	}

	// Validate required features
	for _, feature := range cfg.RequiredFeatures {
		if !caps[feature] {
			return nil, &ErrFeatureNotSupported{
				Provider: string(cfg.Provider),
				Feature:  string(feature),
			}
		}
	}

	// Create provider-specific client
	var chatProv ai.ChatProvider

	switch cfg.Provider {
	case ProviderAnthropic:
		var opts []anthropic.ClientOption
		if cfg.ChatModel != "" {
			opts = append(opts, anthropic.WithModel(anthropic.ChatModel(cfg.ChatModel.String())))
		}
		chatProv = anthropic.New(cfg.APIKey, opts...)

	case ProviderOpenAI:
		var opts []openai.ClientOption
		if cfg.ChatModel != "" {
			opts = append(opts, openai.WithModel(openai.ChatModel(cfg.ChatModel.String())))
		}
		chatProv = openai.New(cfg.APIKey, opts...)

	case ProviderGoogle:
		var opts []google.ClientOption
		if cfg.ChatModel != "" {
			opts = append(opts, google.WithModel(google.ChatModel(cfg.ChatModel.String())))
		}
		gc, err := google.New(ctx, cfg.APIKey, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google client: %w", err)
		}
		chatProv = gc
	}

	// Determine retry configuration
	retryConfig := retry.DefaultConfig()
	if cfg.RetryConfig != nil {
		retryConfig = *cfg.RetryConfig
	}

	return &Client{
		provider:     cfg.Provider,
		chatProvider: chatProv,
		retryConfig:  retryConfig,
	}, nil
}

// Chat sends a conversation and returns a complete response.
// Automatically retries on transient errors according to the client's retry configuration.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	return retry.Do(ctx, c.retryConfig, func() (*ai.Response, error) {
		return c.chatProvider.Chat(ctx, messages, opts...)
	})
}

// ChatStream sends a conversation and returns a channel of streaming events.
// Automatically retries on transient errors when establishing the stream connection.
func (c *Client) ChatStream(ctx context.Context, messages []ai.Message, opts ...ai.Option) (<-chan ai.StreamEvent, error) {
	return retry.DoStream(ctx, c.retryConfig, func() (<-chan ai.StreamEvent, error) {
		return c.chatProvider.ChatStream(ctx, messages, opts...)
	})
}

// SupportsFeature returns true if the client's provider supports the given feature.
func (c *Client) SupportsFeature(f Feature) bool {
	switch f {
	case FeatureChat:
		return c.chatProvider != nil
	default:
		return false
	}
}

// Provider returns the name of the underlying provider.
func (c *Client) Provider() ProviderName {
	return c.provider
}
