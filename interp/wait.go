package interp

import (
	"context"
	"time"

	"github.com/lattice-quant/marketflow/asl"
	"github.com/lattice-quant/marketflow/value"
)

// waitDuration computes a Wait state's delay per §4.3: Seconds, then
// SecondsPath, then Timestamp, then TimestampPath are honoured additively
// in order of listing (each contributes its own delay if present).
func waitDuration(stateName string, state *asl.State, data, global value.Value) (time.Duration, error) {
	var total time.Duration
	now := time.Now()

	if state.Seconds != nil {
		total += time.Duration(*state.Seconds * float64(time.Second))
	}
	if state.SecondsPath != "" {
		secs, ok := numericFromPath(data, global, state.SecondsPath)
		if ok {
			total += time.Duration(secs * float64(time.Second))
		}
	}
	if state.Timestamp != "" {
		if d, ok := durationUntil(state.Timestamp, now); ok {
			total += d
		}
	}
	if state.TimestampPath != "" {
		v, err := value.GetByPath(data, state.TimestampPath)
		if err != nil {
			return 0, &PathError{State: stateName, Err: err}
		}
		if v.IsNull() {
			v, _ = value.GetByPath(global, state.TimestampPath)
		}
		if v.Kind() == value.KindString {
			if d, ok := durationUntil(v.AsString(), now); ok {
				total += d
			}
		}
	}

	if total < 0 {
		total = 0
	}
	return total, nil
}

func numericFromPath(data, global value.Value, path string) (float64, bool) {
	v, err := value.GetByPath(data, path)
	if err != nil {
		return 0, false
	}
	if v.IsNull() {
		v, _ = value.GetByPath(global, path)
	}
	if v.Kind() != value.KindNumber {
		return 0, false
	}
	return v.AsNumber(), true
}

func durationUntil(timestamp string, now time.Time) (time.Duration, bool) {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return 0, false
	}
	if !t.After(now) {
		return 0, false
	}
	return t.Sub(now), true
}

// waitFor blocks for d, honoring context cancellation cooperatively.
func waitFor(ctx context.Context, stateName string, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return &CancelledError{State: stateName, Err: ctx.Err()}
	}
}
