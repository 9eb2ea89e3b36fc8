package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/lattice-quant/marketflow"
	"github.com/lattice-quant/marketflow/catalog"
	"github.com/lattice-quant/marketflow/domain"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	host := domain.NewHost(&domain.FakePriceSource{SeedPrice: 50}, &domain.FakeNewsSource{}, time.Minute)
	cat, err := catalog.Build(host, domain.Specs())
	require.NoError(t, err)
	return cat
}

func TestCatalogToolsRegistersEveryMethodPlusRunWorkflow(t *testing.T) {
	cat := testCatalog(t)
	reg, err := CatalogTools(cat, domain.Specs())
	require.NoError(t, err)

	for name := range domain.Specs() {
		_, ok := reg.GetTool(name)
		assert.True(t, ok, "expected registry to expose %q", name)
	}
	_, ok := reg.GetTool("run_workflow")
	assert.True(t, ok)
}

func TestCatalogMethodHandlerInvokesByName(t *testing.T) {
	cat := testCatalog(t)
	spec := domain.Specs()["AddTime"]
	handler := catalogMethodHandler(cat, "AddTime", spec)

	args, err := json.Marshal(map[string]any{
		"date":  "2026-01-01T00:00:00Z",
		"value": 3,
		"unit":  "Days",
	})
	require.NoError(t, err)

	result, err := handler(context.Background(), ai.ToolCall{Name: "AddTime", Arguments: string(args)})
	require.NoError(t, err)
	assert.Contains(t, result, "2026-01-04")
}

func TestRunWorkflowHandlerExecutesDefinitionAndRecordsOutput(t *testing.T) {
	cat := testCatalog(t)
	handler := runWorkflowHandler(cat)

	def := json.RawMessage(`{
		"StartAt": "Note",
		"States": {
			"Note": {
				"Type": "Task",
				"Resource": "RecordOutput",
				"Parameters": {"category": "summary", "content": "all good"},
				"ResultPath": "$.ack",
				"End": true
			}
		}
	}`)
	args, err := json.Marshal(runWorkflowArgs{Definition: def})
	require.NoError(t, err)

	result, err := handler(context.Background(), ai.ToolCall{Name: "run_workflow", Arguments: string(args)})
	require.NoError(t, err)
	assert.Contains(t, result, "recorded")
}

func TestRunWorkflowHandlerRejectsUnknownResource(t *testing.T) {
	cat := testCatalog(t)
	handler := runWorkflowHandler(cat)

	def := json.RawMessage(`{"StartAt": "Bad", "States": {"Bad": {"Type": "Task", "Resource": "NoSuchMethod", "Parameters": {}, "End": true}}}`)
	args, err := json.Marshal(runWorkflowArgs{Definition: def})
	require.NoError(t, err)

	_, err = handler(context.Background(), ai.ToolCall{Name: "run_workflow", Arguments: string(args)})
	assert.Error(t, err)
}

func TestJSONSchemaTypeMapping(t *testing.T) {
	assert.Equal(t, "array", jsonSchemaType("array of number"))
	assert.Equal(t, "object", jsonSchemaType("object as Stats"))
	assert.Equal(t, "string", jsonSchemaType("string or null"))
	assert.Equal(t, "number", jsonSchemaType("number"))
	assert.Equal(t, "boolean", jsonSchemaType("boolean"))
}
