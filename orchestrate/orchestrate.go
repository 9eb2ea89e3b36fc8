package orchestrate

import (
	"context"
	"encoding/json"
	"log/slog"

	ai "github.com/lattice-quant/marketflow"
	"github.com/lattice-quant/marketflow/asl"
	"github.com/lattice-quant/marketflow/catalog"
	"github.com/lattice-quant/marketflow/domain"
	"github.com/lattice-quant/marketflow/interp"
	"github.com/lattice-quant/marketflow/model"
	"github.com/lattice-quant/marketflow/render"
	"github.com/lattice-quant/marketflow/value"
)

// ChatClient is the subset of client.Client the orchestrator depends on —
// narrow enough that tests can substitute a fake without standing up a
// real provider.
type ChatClient interface {
	Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error)
}

// NotRelevantAnswer is returned by Analyze when the relevance check
// determines the question is not about crypto market behaviour, so no
// workflow is generated or run.
const NotRelevantAnswer = "That doesn't look like a question about cryptocurrency market behaviour, so I don't have anything to run a workflow against."

// Orchestrator drives §2's flow: relevance check, workflow generation,
// interpretation, final render.
type Orchestrator struct {
	chat                  ChatClient
	cat                   *catalog.Catalog
	host                  *domain.Host
	log                   *slog.Logger
	defaultMapConcurrency int
	model                 model.ChatModel
	hasModel              bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDefaultMapConcurrency bounds the Map-state fan-out of every workflow
// this Orchestrator interprets, for LLM-generated definitions that set no
// MaxConcurrency of their own. Passed straight through to
// interp.WithDefaultMapConcurrency.
func WithDefaultMapConcurrency(n int) Option {
	return func(o *Orchestrator) {
		o.defaultMapConcurrency = n
	}
}

// WithModel attaches pricing for the model the ChatClient was configured
// with, so each of the three LLM calls Analyze makes logs its USD cost.
// Omit this option to skip cost logging entirely.
func WithModel(m model.ChatModel) Option {
	return func(o *Orchestrator) {
		o.model = m
		o.hasModel = true
	}
}

// New builds an Orchestrator over chat (the LLM collaborator), cat (the
// method catalog reflected over host), and host itself (so RecordOutput
// entries can be read back after interpretation).
func New(chat ChatClient, cat *catalog.Catalog, host *domain.Host, opts ...Option) *Orchestrator {
	o := &Orchestrator{chat: chat, cat: cat, host: host, log: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Analyze runs the full §2 flow for one user question and returns the
// LLM-rendered final answer.
func (o *Orchestrator) Analyze(ctx context.Context, question string) (string, error) {
	relevant, err := o.checkRelevance(ctx, question)
	if err != nil {
		return "", &RelevanceError{Err: err}
	}
	if !relevant {
		o.log.DebugContext(ctx, "orchestrate: question judged not relevant")
		return NotRelevantAnswer, nil
	}

	def, err := o.generateWorkflow(ctx, question)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	if err := o.interpret(ctx, question, def); err != nil {
		return "", &InterpretError{Err: err}
	}

	answer, err := o.renderFinal(ctx, question)
	if err != nil {
		return "", &RenderError{Err: err}
	}
	return answer, nil
}

// logCost records the USD cost of one chat call at Debug, using the pricing
// attached via WithModel. A no-op when the Orchestrator was built without a
// recognized model.
func (o *Orchestrator) logCost(ctx context.Context, stage string, usage ai.Usage) {
	if !o.hasModel {
		return
	}
	o.log.DebugContext(ctx, "orchestrate: chat call cost",
		"stage", stage, "model", o.model.String(),
		"input_tokens", usage.InputTokens, "output_tokens", usage.OutputTokens,
		"cost_usd", o.model.Cost(usage))
}

func (o *Orchestrator) checkRelevance(ctx context.Context, question string) (bool, error) {
	system, user := relevanceMessages(question)
	resp, err := o.chat.Chat(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: system},
		{Role: ai.RoleUser, Content: user},
	})
	if err != nil {
		return false, err
	}
	o.logCost(ctx, "relevance", resp.Usage)
	return isAffirmative(resp.Content), nil
}

func (o *Orchestrator) generateWorkflow(ctx context.Context, question string) (*asl.Definition, error) {
	system, user, err := workflowGenerationMessages(question, o.cat.Metadata())
	if err != nil {
		return nil, err
	}
	resp, err := o.chat.Chat(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: system},
		{Role: ai.RoleUser, Content: user},
	})
	if err != nil {
		return nil, err
	}
	o.logCost(ctx, "generate", resp.Usage)

	var def asl.Definition
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &def); err != nil {
		return nil, err
	}
	o.log.DebugContext(ctx, "orchestrate: generated workflow", "start_at", def.StartAt, "states", len(def.States))
	return &def, nil
}

func (o *Orchestrator) interpret(ctx context.Context, question string, def *asl.Definition) error {
	in, err := interp.New(def, o.cat, interp.WithDefaultMapConcurrency(o.defaultMapConcurrency))
	if err != nil {
		return err
	}

	input := value.NewObject()
	input.Set("question", value.String(question))
	_, err = in.Run(ctx, value.Map(input))
	return err
}

func (o *Orchestrator) renderFinal(ctx context.Context, question string) (string, error) {
	recordedText := render.Format(o.host.RecordedOutputs())
	system, user := finalRenderMessages(question, recordedText)
	resp, err := o.chat.Chat(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: system},
		{Role: ai.RoleUser, Content: user},
	})
	if err != nil {
		return "", err
	}
	o.logCost(ctx, "render", resp.Usage)
	return resp.Content, nil
}
