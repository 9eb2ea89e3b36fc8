package interp

import (
	"context"
	"fmt"
	"sync"

	"github.com/lattice-quant/marketflow/asl"
	"github.com/lattice-quant/marketflow/value"
)

// runMap implements §4.3's Map contract: reads a sequence from ItemsPath
// (falling back to globalData), fans out one Iterator sub-interpretation per
// item bounded by MaxConcurrency, falling back to the Interpreter's
// configured default (WithDefaultMapConcurrency) and finally to item count
// (unbounded) if neither is set. Concurrency shape grounded on
// workflow/parallel.go's WaitGroup + semaphore.
func runMap(ctx context.Context, ec *execContext, stateName string, state *asl.State, input value.Value) (value.Value, error) {
	items, err := readItemsPath(stateName, input, ec.readGlobal(), state.ItemsPath)
	if err != nil {
		return value.Null(), err
	}
	if state.Iterator == nil {
		return value.Null(), &PathError{State: stateName, Err: fmt.Errorf("Map state has no Iterator")}
	}

	limit := state.MaxConcurrency
	if limit <= 0 {
		limit = ec.defaultMapConcurrency
	}
	if limit <= 0 {
		limit = len(items)
	}
	if limit <= 0 {
		return value.Seq(), nil
	}
	sem := make(chan struct{}, limit)

	results := make([]value.Value, len(items))
	var firstErr error
	var firstErrIndex int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(i int, item value.Value) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			subInput := item
			if state.Parameters != nil {
				subInput = resolveParameters(*state.Parameters, item, ec.readGlobal())
			}

			subEC := newExecContext(ec.cat, subInput, ec.defaultMapConcurrency)
			out, runErr := runDefinition(ctx, state.Iterator, subEC, subInput)

			mu.Lock()
			defer mu.Unlock()
			if runErr != nil {
				if firstErr == nil {
					firstErr = runErr
					firstErrIndex = i
				}
				return
			}
			results[i] = out
		}(i, item)
	}
	wg.Wait()

	if firstErr != nil {
		return value.Null(), &MapError{State: stateName, Index: firstErrIndex, Err: firstErr}
	}
	return value.Seq(results...), nil
}

func readItemsPath(stateName string, data, global value.Value, path string) ([]value.Value, error) {
	v, err := value.GetByPath(data, path)
	if err != nil {
		return nil, &PathError{State: stateName, Err: err}
	}
	if v.IsNull() {
		v, err = value.GetByPath(global, path)
		if err != nil {
			return nil, &PathError{State: stateName, Err: err}
		}
	}
	if v.Kind() != value.KindSeq {
		return nil, &PathError{State: stateName, Err: fmt.Errorf("ItemsPath %q does not resolve to a sequence", path)}
	}
	return v.AsSeq(), nil
}

// runParallel implements §4.3's Parallel contract: launches one
// sub-interpretation per Branches[i] against the same input, awaits all,
// and merges each branch's output into the running accumulator (starting
// from input) via MergeObjects.
func runParallel(ctx context.Context, ec *execContext, stateName string, state *asl.State, input value.Value) (value.Value, error) {
	if len(state.Branches) == 0 {
		return input, nil
	}

	outputs := make([]value.Value, len(state.Branches))
	var firstErr error
	var firstErrIndex int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, branch := range state.Branches {
		wg.Add(1)
		go func(i int, branch *asl.Definition) {
			defer wg.Done()
			subEC := newExecContext(ec.cat, input, ec.defaultMapConcurrency)
			out, runErr := runDefinition(ctx, branch, subEC, input)

			mu.Lock()
			defer mu.Unlock()
			if runErr != nil {
				if firstErr == nil {
					firstErr = runErr
					firstErrIndex = i
				}
				return
			}
			outputs[i] = out
		}(i, branch)
	}
	wg.Wait()

	if firstErr != nil {
		return value.Null(), &ParallelError{State: stateName, Branch: firstErrIndex, Err: firstErr}
	}

	merged := input
	for _, out := range outputs {
		merged = value.MergeObjects(merged, out)
	}
	return merged, nil
}
