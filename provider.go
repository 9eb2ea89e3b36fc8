package marketflow

// Provider identifies an AI provider.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
	ProviderVertex    Provider = "vertex"
)

// Model identifies a specific model by name — client.Config.ChatModel
// accepts a bare string literal understood by whichever provider is
// selected (e.g. "claude-3-opus"), converted from there into a
// provider-specific typed constant (anthropic.ChatModel, openai.ChatModel,
// google.ChatModel).
type Model string

// String returns the model name.
func (m Model) String() string { return string(m) }
