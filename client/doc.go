// Package client provides a unified multi-provider client for AI chat capabilities.
//
// The Client wraps provider-specific implementations and provides:
//
//   - Provider selection: pick Anthropic, OpenAI, or Google at construction time
//   - Automatic retries: built-in exponential backoff for transient errors
//   - Feature checks: required-feature validation at construction time
//
// # Basic Usage
//
// Create a client for a single provider:
//
//	c, err := client.New(ctx, client.Config{
//	    Provider:  client.ProviderAnthropic,
//	    APIKey:    os.Getenv("ANTHROPIC_API_KEY"),
//	    ChatModel: ai.Model(model.ClaudeSonnet45.String()),
//	})
//
//	resp, err := c.Chat(ctx, []ai.Message{
//	    {Role: ai.RoleUser, Content: "Hello!"},
//	})
//
// # Feature Detection
//
// Check provider capabilities before use:
//
//	if c.SupportsFeature(client.FeatureChat) {
//	    resp, err := c.Chat(ctx, messages)
//	}
//
// # Retry Configuration
//
// The client automatically retries transient errors (rate limits, timeouts, 5xx errors).
// Customize retry behavior:
//
//	c, err := client.New(ctx, client.Config{
//	    Provider: client.ProviderOpenAI,
//	    APIKey:   os.Getenv("OPENAI_API_KEY"),
//	    RetryConfig: &retry.Config{
//	        MaxAttempts:  5,
//	        InitialDelay: 500 * time.Millisecond,
//	        MaxDelay:     30 * time.Second,
//	    },
//	})
package client
