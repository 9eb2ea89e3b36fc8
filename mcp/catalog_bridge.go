package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	ai "github.com/lattice-quant/marketflow"
	"github.com/lattice-quant/marketflow/asl"
	"github.com/lattice-quant/marketflow/catalog"
	"github.com/lattice-quant/marketflow/interp"
	"github.com/lattice-quant/marketflow/tool"
	"github.com/lattice-quant/marketflow/value"
)

// CatalogTools builds a tool.Registry exposing every method in cat's
// metadata document as an MCP-callable tool — named arguments marshalled
// positionally into cat.Invoke per specs' declared parameter order — plus
// a run_workflow tool that accepts an ASL definition and initial input and
// drives interp directly. This is the MCP analogue of §2's orchestration
// for clients that generate their own workflow rather than going through
// marketflow/orchestrate.
func CatalogTools(cat *catalog.Catalog, specs map[string]catalog.MethodSpec) (*tool.Registry, error) {
	reg := tool.NewRegistry()
	doc := cat.Metadata()

	for name, spec := range specs {
		methodDoc, ok := doc.Methods[name]
		if !ok {
			continue
		}
		t := ai.Tool{
			Name:        name,
			Description: methodDoc.Description,
			Parameters:  methodToolSchema(spec, methodDoc),
		}
		if err := reg.Register(t, catalogMethodHandler(cat, name, spec)); err != nil {
			return nil, fmt.Errorf("mcp: registering %q: %w", name, err)
		}
	}

	if err := reg.Register(runWorkflowTool(), runWorkflowHandler(cat)); err != nil {
		return nil, fmt.Errorf("mcp: registering run_workflow: %w", err)
	}
	return reg, nil
}

// methodToolSchema builds a JSON Schema object for spec/methodDoc's
// parameters, translating the catalog's ASL-oriented type strings
// ("array of T", "object as TypeName", a trailing " or null") into plain
// JSON Schema types — MCP clients don't understand ASL vocabulary, only
// the standard schema primitives.
func methodToolSchema(spec catalog.MethodSpec, methodDoc catalog.MethodDoc) json.RawMessage {
	properties := make(map[string]any, len(spec.Params))
	var required []string

	for _, p := range spec.Params {
		paramDoc := methodDoc.Parameters[p.Name]
		prop := map[string]any{"type": jsonSchemaType(paramDoc.Type)}
		if paramDoc.Description != "" {
			prop["description"] = paramDoc.Description
		}
		if strings.HasPrefix(paramDoc.Format, "enum:") {
			prop["description"] = strings.TrimSpace(fmt.Sprintf("%s (%s)", prop["description"], paramDoc.Format))
		}
		properties[p.Name] = prop
		if !strings.HasSuffix(paramDoc.Type, " or null") {
			required = append(required, p.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return json.RawMessage(`{"type":"object"}`)
	}
	return data
}

func jsonSchemaType(t string) string {
	t = strings.TrimSuffix(t, " or null")
	switch {
	case strings.HasPrefix(t, "array of"):
		return "array"
	case strings.HasPrefix(t, "object as"):
		return "object"
	case t == "number", t == "boolean", t == "null":
		return t
	default:
		return "string"
	}
}

// catalogMethodHandler adapts one catalog method into a tool.Handler: MCP
// calls arrive as a JSON object keyed by parameter name, but cat.Invoke
// takes positional args, so this reorders by spec.Params before invoking.
func catalogMethodHandler(cat *catalog.Catalog, name string, spec catalog.MethodSpec) tool.Handler {
	return func(ctx context.Context, call ai.ToolCall) (string, error) {
		argsVal, err := parseToolArguments(call.Arguments)
		if err != nil {
			return "", fmt.Errorf("mcp: parsing arguments for %q: %w", name, err)
		}

		args := make([]value.Value, len(spec.Params))
		for i, p := range spec.Params {
			if argsVal.Kind() == value.KindMap {
				if v, ok := argsVal.AsObject().Get(p.Name); ok {
					args[i] = v
					continue
				}
			}
			args[i] = value.Null()
		}

		out, err := cat.Invoke(ctx, name, args)
		if err != nil {
			return "", err
		}
		data, err := out.ToJSON()
		if err != nil {
			return "", fmt.Errorf("mcp: marshalling result of %q: %w", name, err)
		}
		return string(data), nil
	}
}

func parseToolArguments(raw string) (value.Value, error) {
	if raw == "" {
		return value.Map(value.NewObject()), nil
	}
	return value.FromJSON([]byte(raw))
}

const runWorkflowSchema = `{
	"type": "object",
	"properties": {
		"definition": {"type": "object", "description": "An ASL-style state machine definition (StartAt plus States)."},
		"input": {"type": "object", "description": "Initial input data for the workflow. Defaults to an empty object."}
	},
	"required": ["definition"]
}`

func runWorkflowTool() ai.Tool {
	return ai.Tool{
		Name:        "run_workflow",
		Description: "Executes an ASL-style JSON state machine against the domain method catalog and returns the resulting data, merged across every state's output.",
		Parameters:  json.RawMessage(runWorkflowSchema),
	}
}

type runWorkflowArgs struct {
	Definition json.RawMessage `json:"definition"`
	Input      json.RawMessage `json:"input,omitempty"`
}

func runWorkflowHandler(cat *catalog.Catalog) tool.Handler {
	return func(ctx context.Context, call ai.ToolCall) (string, error) {
		var args runWorkflowArgs
		if call.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return "", fmt.Errorf("mcp: parsing run_workflow arguments: %w", err)
			}
		}

		var def asl.Definition
		if err := json.Unmarshal(args.Definition, &def); err != nil {
			return "", fmt.Errorf("mcp: parsing workflow definition: %w", err)
		}

		input := value.Map(value.NewObject())
		if len(args.Input) > 0 {
			v, err := value.FromJSON(args.Input)
			if err != nil {
				return "", fmt.Errorf("mcp: parsing workflow input: %w", err)
			}
			input = v
		}

		in, err := interp.New(&def, cat)
		if err != nil {
			return "", err
		}
		out, err := in.Run(ctx, input)
		if err != nil {
			return "", err
		}

		data, err := out.ToJSON()
		if err != nil {
			return "", fmt.Errorf("mcp: marshalling workflow result: %w", err)
		}
		return string(data), nil
	}
}
