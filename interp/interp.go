package interp

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lattice-quant/marketflow/asl"
	"github.com/lattice-quant/marketflow/catalog"
	"github.com/lattice-quant/marketflow/value"
)

// Interpreter executes one validated ASL Definition against a catalog.
type Interpreter struct {
	def                   *asl.Definition
	cat                   *catalog.Catalog
	defaultMapConcurrency int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithDefaultMapConcurrency bounds a Map state's fan-out when it sets no
// MaxConcurrency of its own (§4.3 otherwise defaults to item count, i.e.
// unbounded goroutines). cmd/marketflow wires this from
// MARKETFLOW_MAX_MAP_CONCURRENCY so an LLM-generated workflow can't fan out
// unbounded concurrent Task calls against the domain host.
func WithDefaultMapConcurrency(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.defaultMapConcurrency = n
		}
	}
}

// New validates def (§3 Invariants 1-2) and binds it to cat.
func New(def *asl.Definition, cat *catalog.Catalog, opts ...Option) (*Interpreter, error) {
	if err := asl.Validate(def); err != nil {
		return nil, err
	}
	in := &Interpreter{def: def, cat: cat}
	for _, opt := range opts {
		opt(in)
	}
	return in, nil
}

// execContext threads the shared, mutex-guarded globalData accumulator
// through one interpretation, per §3's "globalData is scoped to one
// interpretation" lifecycle and §9's single-mutable-accumulator design.
type execContext struct {
	cat                   *catalog.Catalog
	mu                    sync.Mutex
	global                value.Value
	defaultMapConcurrency int
}

func newExecContext(cat *catalog.Catalog, input value.Value, defaultMapConcurrency int) *execContext {
	return &execContext{cat: cat, global: value.DeepClone(input), defaultMapConcurrency: defaultMapConcurrency}
}

func (ec *execContext) mergeGlobal(result value.Value) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.global = value.MergeObjects(ec.global, result)
}

func (ec *execContext) readGlobal() value.Value {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.global
}

// Run executes the definition from StartAt with input as the initial data
// and returns the terminal globalData (§3 "globalData ... returned as the
// final result").
func (in *Interpreter) Run(ctx context.Context, input value.Value) (value.Value, error) {
	ec := newExecContext(in.cat, input, in.defaultMapConcurrency)
	return runDefinition(ctx, in.def, ec, value.DeepClone(input))
}

// runDefinition drives §4.3's dispatch loop for one Definition — the
// top-level interpretation, or a Map Iterator / Parallel branch — against
// ec's shared catalog and globalData.
func runDefinition(ctx context.Context, def *asl.Definition, ec *execContext, current value.Value) (value.Value, error) {
	stateName := def.StartAt

	for {
		if err := ctx.Err(); err != nil {
			return value.Null(), &CancelledError{State: stateName, Err: err}
		}

		state, ok := def.States[stateName]
		if !ok {
			return value.Null(), &PathError{State: stateName, Err: errStateNotFound(stateName)}
		}
		slog.DebugContext(ctx, "interp: entering state", "state", stateName, "type", state.Type)

		input, err := applyInputPath(stateName, current, state.InputPath)
		if err != nil {
			return value.Null(), err
		}

		// Map applies Parameters once per item inside its own handler
		// (§4.3), not once against the whole ItemsPath sequence, so it
		// skips the generic pre-resolution other kinds get here.
		effective := input
		if state.Type != asl.TypeMap && state.Parameters != nil {
			effective = resolveParameters(*state.Parameters, input, ec.readGlobal())
		}

		output, next, ended, err := dispatch(ctx, ec, stateName, state, input, effective)
		if err != nil {
			slog.WarnContext(ctx, "interp: state failed", "state", stateName, "type", state.Type, "error", err)
			redirect, cerr := applyCatch(stateName, input, state, err)
			if cerr != nil {
				return value.Null(), cerr
			}
			if redirect == nil {
				return value.Null(), err
			}
			ec.mergeGlobal(redirect.output)
			current = redirect.output
			stateName = redirect.next
			continue
		}

		ec.mergeGlobal(output)
		if ended {
			return ec.readGlobal(), nil
		}
		current = output
		stateName = next
	}
}

// dispatch runs one state's handler (with Retry honored), applies
// ResultPath (when the kind produces one) and OutputPath, and returns the
// value to merge into globalData / pass to the next state.
func dispatch(ctx context.Context, ec *execContext, stateName string, state *asl.State, input, effective value.Value) (value.Value, string, bool, error) {
	var raw value.Value
	var usesResultPath bool
	var next string
	var ended bool
	var err error

	switch state.Type {
	case asl.TypePass:
		raw = effective
		if state.Result != nil {
			raw = *state.Result
		}
		usesResultPath = true
		next, ended = state.Next, state.End

	case asl.TypeTask:
		slog.InfoContext(ctx, "interp: dispatching task", "state", stateName, "resource", state.Resource)
		raw, err = applyRetry(ctx, state, func() (value.Value, error) {
			return runTask(ctx, ec, stateName, state, effective)
		})
		usesResultPath = true
		next, ended = state.Next, state.End

	case asl.TypeChoice:
		if len(state.Choices) == 0 {
			err = &ChoiceError{State: stateName}
			break
		}
		// Invariant 3: no rule matched and no Default set simply
		// terminates the run, on the same footing as Succeed.
		raw = effective
		next, ended = chooseNext(effective, state)

	case asl.TypeWait:
		d, werr := waitDuration(stateName, state, effective, ec.readGlobal())
		if werr != nil {
			err = werr
			break
		}
		if werr = waitFor(ctx, stateName, d); werr != nil {
			err = werr
			break
		}
		raw = effective
		next, ended = state.Next, state.End

	case asl.TypeSucceed:
		raw = effective
		ended = true

	case asl.TypeFail:
		errName := state.Error
		if errName == "" {
			errName = "FailState"
		}
		cause := state.Cause
		if cause == "" {
			cause = "Failure"
		}
		slog.WarnContext(ctx, "interp: fail state reached", "state", stateName, "error", errName, "cause", cause)
		err = &FailError{State: stateName, Err: errName, Cause: cause}

	case asl.TypeMap:
		raw, err = applyRetry(ctx, state, func() (value.Value, error) {
			return runMap(ctx, ec, stateName, state, effective)
		})
		usesResultPath = true
		next, ended = state.Next, state.End

	case asl.TypeParallel:
		raw, err = applyRetry(ctx, state, func() (value.Value, error) {
			return runParallel(ctx, ec, stateName, state, effective)
		})
		next, ended = state.Next, state.End

	default:
		err = &PathError{State: stateName, Err: errUnknownType(state.Type)}
	}

	if err != nil {
		return value.Null(), "", false, err
	}

	placed := raw
	if usesResultPath {
		rp := ""
		if state.ResultPath != nil {
			rp = *state.ResultPath
		}
		placed, err = placeResult(stateName, input, rp, raw)
		if err != nil {
			return value.Null(), "", false, err
		}
	}

	out, err := applyOutputPathValue(stateName, placed, state.OutputPath)
	if err != nil {
		return value.Null(), "", false, err
	}
	return out, next, ended, nil
}

type notFoundError struct{ name string }

func (e *notFoundError) Error() string { return "state " + e.name + " not found" }

func errStateNotFound(name string) error { return &notFoundError{name: name} }

type unknownTypeError struct{ kind string }

func (e *unknownTypeError) Error() string { return "unknown state type " + e.kind }

func errUnknownType(kind string) error { return &unknownTypeError{kind: kind} }
