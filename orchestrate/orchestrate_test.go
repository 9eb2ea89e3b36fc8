package orchestrate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/lattice-quant/marketflow"
	"github.com/lattice-quant/marketflow/catalog"
	"github.com/lattice-quant/marketflow/domain"
	"github.com/lattice-quant/marketflow/model"
)

// fakeChatClient replays a scripted sequence of responses (or errors), one
// per call, so each orchestration stage can be driven deterministically.
type fakeChatClient struct {
	replies []string
	errs    []error
	calls   []string // user-message content, one per call, for assertions
}

func (f *fakeChatClient) Chat(_ context.Context, messages []ai.Message, _ ...ai.Option) (*ai.Response, error) {
	i := len(f.calls)
	for _, m := range messages {
		if m.Role == ai.RoleUser {
			f.calls = append(f.calls, m.Content)
		}
	}
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i >= len(f.replies) {
		return nil, errors.New("fakeChatClient: no scripted reply left")
	}
	return &ai.Response{Content: f.replies[i]}, nil
}

func testHostAndCatalog(t *testing.T) (*domain.Host, *catalog.Catalog) {
	t.Helper()
	host := domain.NewHost(&domain.FakePriceSource{}, &domain.FakeNewsSource{}, time.Minute)
	cat, err := catalog.Build(host, domain.Specs())
	require.NoError(t, err)
	return host, cat
}

func TestAnalyzeReturnsCannedAnswerWhenNotRelevant(t *testing.T) {
	host, cat := testHostAndCatalog(t)
	chat := &fakeChatClient{replies: []string{"no, this is about recipes"}}
	o := New(chat, cat, host)

	answer, err := o.Analyze(context.Background(), "what's a good lasagna recipe?")
	require.NoError(t, err)
	assert.Equal(t, NotRelevantAnswer, answer)
	assert.Len(t, chat.calls, 1)
}

func TestAnalyzeRunsFullFlow(t *testing.T) {
	host, cat := testHostAndCatalog(t)

	workflowJSON := "```json\n" + `{
		"StartAt": "Note",
		"States": {
			"Note": {
				"Type": "Task",
				"Resource": "RecordOutput",
				"Parameters": {"category": "summary", "content": "BTC looks stable"},
				"ResultPath": "$.ack",
				"End": true
			}
		}
	}` + "\n```"

	chat := &fakeChatClient{replies: []string{
		"yes",
		workflowJSON,
		"BTC has been stable recently.",
	}}
	o := New(chat, cat, host)

	answer, err := o.Analyze(context.Background(), "how has BTC been doing?")
	require.NoError(t, err)
	assert.Equal(t, "BTC has been stable recently.", answer)

	entries := host.RecordedOutputs()
	require.Len(t, entries, 1)
	assert.Equal(t, "summary", entries[0].Category)
	assert.Equal(t, "BTC looks stable", entries[0].Content)

	require.Len(t, chat.calls, 3)
	assert.Contains(t, chat.calls[2], "BTC looks stable")
}

func TestAnalyzeWrapsRelevanceError(t *testing.T) {
	host, cat := testHostAndCatalog(t)
	chat := &fakeChatClient{errs: []error{errors.New("provider down")}}
	o := New(chat, cat, host)

	_, err := o.Analyze(context.Background(), "how is ETH doing?")
	require.Error(t, err)
	var relErr *RelevanceError
	assert.ErrorAs(t, err, &relErr)
}

func TestAnalyzeWrapsGenerationErrorOnUnparsableJSON(t *testing.T) {
	host, cat := testHostAndCatalog(t)
	chat := &fakeChatClient{replies: []string{"yes", "not json at all"}}
	o := New(chat, cat, host)

	_, err := o.Analyze(context.Background(), "how is ETH doing?")
	require.Error(t, err)
	var genErr *GenerationError
	assert.ErrorAs(t, err, &genErr)
}

func TestAnalyzeWrapsInterpretErrorOnBadResource(t *testing.T) {
	host, cat := testHostAndCatalog(t)
	workflowJSON := `{"StartAt": "Bad", "States": {"Bad": {"Type": "Task", "Resource": "NoSuchMethod", "Parameters": {}, "End": true}}}`
	chat := &fakeChatClient{replies: []string{"yes", workflowJSON}}
	o := New(chat, cat, host)

	_, err := o.Analyze(context.Background(), "how is ETH doing?")
	require.Error(t, err)
	var interpErr *InterpretError
	assert.ErrorAs(t, err, &interpErr)
}

func TestWithModelEnablesCostLogging(t *testing.T) {
	host, cat := testHostAndCatalog(t)
	chat := &fakeChatClient{replies: []string{"no"}}

	o := New(chat, cat, host)
	assert.False(t, o.hasModel)
	o.logCost(context.Background(), "relevance", ai.Usage{InputTokens: 10, OutputTokens: 5}) // no-op, must not panic

	o = New(chat, cat, host, WithModel(model.ClaudeSonnet45))
	assert.True(t, o.hasModel)
	assert.Equal(t, model.ClaudeSonnet45, o.model)
	o.logCost(context.Background(), "relevance", ai.Usage{InputTokens: 10, OutputTokens: 5})
}

func TestIsAffirmative(t *testing.T) {
	assert.True(t, isAffirmative("Yes"))
	assert.True(t, isAffirmative("  yes, definitely"))
	assert.False(t, isAffirmative("no"))
	assert.False(t, isAffirmative("maybe"))
}

func TestExtractJSONStripsMarkdownFence(t *testing.T) {
	raw := "```json\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, extractJSON(raw))
	assert.Equal(t, `{"a": 1}`, extractJSON(`{"a": 1}`))
}
