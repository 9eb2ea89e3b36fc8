package orchestrate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/lattice-quant/marketflow/catalog"
)

const relevanceSystemPrompt = `You decide whether a user message is asking about cryptocurrency market behaviour (prices, trends, news, or date-relative questions about a market). Reply with exactly one word: "yes" or "no".`

func relevanceMessages(question string) (string, string) {
	return relevanceSystemPrompt, question
}

func isAffirmative(reply string) bool {
	reply = strings.ToLower(strings.TrimSpace(reply))
	return strings.HasPrefix(reply, "yes")
}

const workflowSystemPromptTemplate = `You generate Amazon-States-Language-style JSON state machines. You may only call methods listed in the catalog below as Task states, using the literal method name as Resource. Use Parameters with ".$" path keys to pass data, ResultPath to place a Task's output, and RecordOutput to save any finding you want reported back to the user. Respond with ONLY the JSON state machine — no prose, no markdown fences.

Catalog:
%s`

func workflowGenerationMessages(question string, doc *catalog.MetadataDocument) (string, string, error) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("orchestrate: marshalling catalog metadata: %w", err)
	}
	system := fmt.Sprintf(workflowSystemPromptTemplate, string(raw))
	user := fmt.Sprintf("User request: %s", question)
	return system, user, nil
}

var jsonFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// extractJSON strips a markdown code fence around an LLM's JSON reply, if
// present, since providers are inconsistent about honoring "no markdown".
func extractJSON(reply string) string {
	if m := jsonFence.FindStringSubmatch(reply); len(m) == 2 {
		return m[1]
	}
	return strings.TrimSpace(reply)
}

const finalRenderSystemPrompt = `You answer the user's original question using only the recorded findings below, which were gathered by an automated workflow. Write a direct, concise answer in plain prose. Do not mention the workflow, the state machine, or that data was "recorded" — just answer.`

func finalRenderMessages(question, recordedText string) (string, string) {
	user := fmt.Sprintf("Original question: %s\n\nRecorded findings:\n%s", question, recordedText)
	return finalRenderSystemPrompt, user
}
