package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	ai "github.com/lattice-quant/marketflow"
	"github.com/lattice-quant/marketflow/orchestrate"
	"github.com/lattice-quant/marketflow/tool"
)

// AnalyzeTool registers §2's full LLM-driven flow (relevance check →
// workflow generation → interp.Run → final render) as a single MCP tool,
// the analogue of run_workflow for clients that would rather hand off a
// natural-language question than author their own ASL definition.
func AnalyzeTool(reg *tool.Registry, o *orchestrate.Orchestrator) error {
	t := ai.Tool{
		Name:        "analyze_market",
		Description: "Answers a natural-language question about cryptocurrency market behaviour by generating and running a workflow against the domain catalog.",
		Parameters:  json.RawMessage(analyzeSchema),
	}
	return reg.Register(t, analyzeHandler(o))
}

const analyzeSchema = `{
	"type": "object",
	"properties": {
		"question": {"type": "string", "description": "The user's market question, in plain English."}
	},
	"required": ["question"]
}`

type analyzeArgs struct {
	Question string `json:"question"`
}

func analyzeHandler(o *orchestrate.Orchestrator) tool.Handler {
	return func(ctx context.Context, call ai.ToolCall) (string, error) {
		var args analyzeArgs
		if call.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return "", fmt.Errorf("mcp: parsing analyze_market arguments: %w", err)
			}
		}
		return o.Analyze(ctx, args.Question)
	}
}
