package model

// allModels lists every model constant defined in this package, so Lookup
// can resolve an API identifier string back to its typed ChatModel without
// the caller needing to know which provider it belongs to.
var allModels = []ChatModel{
	ClaudeOpus45, ClaudeSonnet45, ClaudeHaiku45,
	ClaudeOpus45_20251101, ClaudeSonnet45_20250929, ClaudeHaiku45_20251001,

	GPT52, GPT52Pro,
	GPT51, GPT51Mini, GPT51Codex,
	GPT5, GPT5Mini, GPT5Nano, GPT5Pro,
	O3, O3Mini, O4Mini,

	Gemini3Pro, Gemini3DeepThink,
	Gemini25Pro, Gemini25Flash, Gemini25FlashLite,
}

var byID = func() map[string]ChatModel {
	m := make(map[string]ChatModel, len(allModels))
	for _, model := range allModels {
		m[model.id] = model
	}
	return m
}()

// Lookup resolves an API model identifier (e.g. "claude-sonnet-4-5") to its
// typed ChatModel, for callers that only have a configured string (an env
// var, a request field) and need its pricing. ok is false for an unknown or
// empty id, in which case the zero ChatModel (no pricing) is returned.
func Lookup(id string) (m ChatModel, ok bool) {
	m, ok = byID[id]
	return m, ok
}
