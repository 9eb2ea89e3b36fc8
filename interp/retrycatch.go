package interp

import (
	"context"
	"time"

	"github.com/lattice-quant/marketflow/asl"
	"github.com/lattice-quant/marketflow/retry"
	"github.com/lattice-quant/marketflow/value"
)

// applyRetry re-invokes fn under state.Retry's backoff policy when the
// raised error's ASL name matches one of the rule's ErrorEquals. Honored
// per the Retry/Catch Open Question decision in DESIGN.md; IntervalSeconds/
// BackoffRate/MaxAttempts build a marketflow/retry.Config whose Delay sets
// the wait before each attempt of the local attempt loop.
func applyRetry(ctx context.Context, state *asl.State, fn func() (value.Value, error)) (value.Value, error) {
	result, err := fn()
	if err == nil || len(state.Retry) == 0 {
		return result, err
	}

	name := errorName(err)
	for _, rule := range state.Retry {
		if !asl.ErrorEqualsMatch(rule.ErrorEquals, name) {
			continue
		}
		cfg := retryConfigFromRule(rule)
		for attempt := 1; attempt < cfg.MaxAttempts; attempt++ {
			select {
			case <-time.After(cfg.Delay(attempt - 1)):
			case <-ctx.Done():
				return value.Null(), err
			}
			result, err = fn()
			if err == nil {
				return result, nil
			}
			if errorName(err) != name {
				break
			}
		}
		break
	}
	return result, err
}

func retryConfigFromRule(rule asl.RetryRule) retry.Config {
	cfg := retry.Config{
		MaxAttempts:  rule.MaxAttempts,
		InitialDelay: time.Duration(rule.IntervalSeconds * float64(time.Second)),
		Multiplier:   rule.BackoffRate,
		MaxDelay:     time.Hour,
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = time.Second
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = 2.0
	}
	return cfg
}

// catchRedirect is the outcome of a Catch rule matching a state's error:
// the globalData-mergeable output and the state name to resume at.
type catchRedirect struct {
	output value.Value
	next   string
}

// applyCatch implements Catch: on a matching ErrorEquals, synthesizes an
// {Error, Cause} record, places it at the rule's ResultPath (or the
// synthetic default) atop base, and redirects to rule.Next.
func applyCatch(stateName string, base value.Value, state *asl.State, err error) (*catchRedirect, error) {
	name := errorName(err)
	for _, rule := range state.Catch {
		if !asl.ErrorEqualsMatch(rule.ErrorEquals, name) {
			continue
		}
		errObj := value.NewObject()
		errObj.Set("Error", value.String(name))
		errObj.Set("Cause", value.String(err.Error()))

		placed, perr := placeResult(stateName, base, rule.ResultPath, value.Map(errObj))
		if perr != nil {
			return nil, perr
		}
		return &catchRedirect{output: placed, next: rule.Next}, nil
	}
	return nil, nil
}
