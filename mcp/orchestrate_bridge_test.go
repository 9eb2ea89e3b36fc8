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
	"github.com/lattice-quant/marketflow/orchestrate"
	"github.com/lattice-quant/marketflow/tool"
)

type scriptedChat struct {
	replies []string
	i       int
}

func (s *scriptedChat) Chat(_ context.Context, _ []ai.Message, _ ...ai.Option) (*ai.Response, error) {
	reply := s.replies[s.i]
	s.i++
	return &ai.Response{Content: reply}, nil
}

func TestAnalyzeToolRegistersAndInvokes(t *testing.T) {
	host := domain.NewHost(&domain.FakePriceSource{}, &domain.FakeNewsSource{}, time.Minute)
	cat, err := catalog.Build(host, domain.Specs())
	require.NoError(t, err)

	chat := &scriptedChat{replies: []string{"no"}}
	o := orchestrate.New(chat, cat, host)

	reg := tool.NewRegistry()
	require.NoError(t, AnalyzeTool(reg, o))

	_, ok := reg.GetTool("analyze_market")
	assert.True(t, ok)

	handler, ok := reg.Get("analyze_market")
	require.True(t, ok)

	args, err := json.Marshal(analyzeArgs{Question: "what's a good lasagna recipe?"})
	require.NoError(t, err)

	result, err := handler(context.Background(), ai.ToolCall{Name: "analyze_market", Arguments: string(args)})
	require.NoError(t, err)
	assert.Equal(t, orchestrate.NotRelevantAnswer, result)
}
