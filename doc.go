// Package marketflow provides a unified interface for interacting with LLM providers.
//
// The marketflow library abstracts away provider-specific chat APIs, allowing you
// to write code once and switch between Anthropic (Claude), OpenAI (GPT), and
// Google (Gemini) with minimal changes.
//
// # Core Interface
//
// The library defines one provider interface:
//
//   - [ChatProvider]: Send conversations and receive responses (text, streaming, tool calls)
//
// Provider implementations are available in the provider subpackages:
//
//   - [github.com/lattice-quant/marketflow/provider/anthropic]: Claude models
//   - [github.com/lattice-quant/marketflow/provider/openai]: GPT models
//   - [github.com/lattice-quant/marketflow/provider/google]: Gemini models
//
// For a unified client that handles provider selection and retries, see the
// [github.com/lattice-quant/marketflow/client] package.
//
// # Basic Usage
//
// Send a simple chat message:
//
//	provider := anthropic.New(os.Getenv("ANTHROPIC_API_KEY"))
//
//	messages := []marketflow.Message{
//	    {Role: marketflow.RoleUser, Content: "What is the capital of France?"},
//	}
//
//	resp, err := provider.Chat(ctx, messages)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Content)
//
// # Streaming Responses
//
// For real-time output, use ChatStream:
//
//	stream, err := provider.ChatStream(ctx, messages)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for event := range stream {
//	    if event.Err != nil {
//	        log.Fatal(event.Err)
//	    }
//	    fmt.Print(event.Delta)
//	}
//
// # Configuration Options
//
// Customize requests with functional options:
//
//	resp, err := provider.Chat(ctx, messages,
//	    marketflow.WithModel(anthropic.ClaudeOpus45.String()),
//	    marketflow.WithMaxTokens(1000),
//	    marketflow.WithTemperature(0.7),
//	)
//
// # Tool Calling
//
// Define tools that the model can invoke:
//
//	tools := []marketflow.Tool{
//	    {
//	        Name:        "get_price_history",
//	        Description: "Fetch OHLC price history for a symbol",
//	        Parameters:  json.RawMessage(`{
//	            "type": "object",
//	            "properties": {
//	                "symbol": {"type": "string", "description": "Ticker symbol"}
//	            },
//	            "required": ["symbol"]
//	        }`),
//	    },
//	}
//
//	resp, err := provider.Chat(ctx, messages, marketflow.WithTools(tools))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Handle tool calls
//	for _, call := range resp.ToolCalls {
//	    fmt.Printf("Tool: %s, Args: %s\n", call.Name, call.Arguments)
//	}
//
// # Structured Output
//
// Request JSON responses with schema validation:
//
//	schema := marketflow.ResponseSchema{
//	    Name:   "workflow",
//	    Schema: json.RawMessage(`{"type":"object","properties":{"StartAt":{"type":"string"}}}`),
//	}
//
//	resp, err := provider.Chat(ctx, messages, marketflow.WithResponseSchema(schema))
//
// # Higher-Level Abstractions
//
// For more complex use cases, see:
//
//   - [github.com/lattice-quant/marketflow/retry]: Retry logic with exponential backoff
//   - [github.com/lattice-quant/marketflow/orchestrate]: Relevance check, workflow generation, and interpretation
//   - [github.com/lattice-quant/marketflow/interp]: The ASL state-machine interpreter
package marketflow
