package tool

import (
	"context"
	"encoding/json"
	"fmt"

	ai "github.com/lattice-quant/marketflow"
	"github.com/lattice-quant/marketflow/client"
)

// Chatter is the interface for non-streaming chat capabilities.
type Chatter interface {
	Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error)
}

// chatArgs defines the arguments for the chat tool.
type chatArgs struct {
	Prompt  string `json:"prompt" desc:"Question or task for the assistant" required:"true"`
	Context string `json:"context" desc:"Additional context to include"`
}

// ChatToolOption configures the chat tool.
type ChatToolOption func(*chatToolConfig)

type chatToolConfig struct {
	name         string
	systemPrompt string
	defaults     []ai.Option
}

// WithChatName sets a custom name for the chat tool.
// Default is "ask_assistant".
func WithChatName(name string) ChatToolOption {
	return func(c *chatToolConfig) {
		c.name = name
	}
}

// WithSystemPrompt sets a system prompt for the chat tool.
func WithSystemPrompt(prompt string) ChatToolOption {
	return func(c *chatToolConfig) {
		c.systemPrompt = prompt
	}
}

// WithChatDefaults sets default options for chat requests.
func WithChatDefaults(opts ...ai.Option) ChatToolOption {
	return func(c *chatToolConfig) {
		c.defaults = opts
	}
}

// NewChatTool creates a tool that makes LLM calls (sub-agent pattern).
// This allows an agent to delegate tasks to another LLM call.
func NewChatTool(c Chatter, opts ...ChatToolOption) (ai.Tool, Handler) {
	cfg := &chatToolConfig{
		name: "ask_assistant",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	schema := MustSchemaFor[chatArgs]()

	t := ai.Tool{
		Name:        cfg.name,
		Description: "Ask an AI assistant a question or delegate a task",
		Parameters:  schema,
	}

	handler := func(ctx context.Context, call ai.ToolCall) (string, error) {
		var args chatArgs
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return "", err
		}

		var messages []ai.Message

		if cfg.systemPrompt != "" {
			messages = append(messages, ai.Message{
				Role:    ai.RoleSystem,
				Content: cfg.systemPrompt,
			})
		}

		content := args.Prompt
		if args.Context != "" {
			content = fmt.Sprintf("%s\n\nContext:\n%s", args.Prompt, args.Context)
		}

		messages = append(messages, ai.Message{
			Role:    ai.RoleUser,
			Content: content,
		})

		resp, err := c.Chat(ctx, messages, cfg.defaults...)
		if err != nil {
			return "", err
		}

		return resp.Content, nil
	}

	return t, handler
}

// ClientTools returns a chat delegation tool backed by the given client.
func ClientTools(c *client.Client, opts ...ClientToolsOption) []ToolPair {
	cfg := &clientToolsConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	t, h := NewChatTool(c, cfg.chatOpts...)
	return []ToolPair{{Tool: t, Handler: h}}
}

// ClientToolsOption configures the ClientTools function.
type ClientToolsOption func(*clientToolsConfig)

type clientToolsConfig struct {
	chatOpts []ChatToolOption
}

// WithChatToolOptions sets options for the chat tool in ClientTools.
func WithChatToolOptions(opts ...ChatToolOption) ClientToolsOption {
	return func(c *clientToolsConfig) {
		c.chatOpts = opts
	}
}

// ToolPair holds a tool definition and its handler for easy registration.
type ToolPair struct {
	Tool    ai.Tool
	Handler Handler
}
