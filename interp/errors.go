package interp

import "fmt"

// namedError is implemented by every error this package raises so that
// Retry/Catch rules can match against an ASL error name (ErrorEquals),
// per the Retry/Catch Open Question decision recorded in DESIGN.md.
type namedError interface {
	error
	Name() string
}

func errorName(err error) string {
	if ne, ok := err.(namedError); ok {
		return ne.Name()
	}
	return "States.TaskFailed"
}

// PathError reports a malformed or unresolvable state reference or path
// expression — fatal per §4.3's failure semantics.
type PathError struct {
	State string
	Err   error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("interp: state %q: %v", e.State, e.Err)
}
func (e *PathError) Unwrap() error { return e.Err }
func (e *PathError) Name() string  { return "States.PathMatchFailure" }

// ChoiceError reports a Choice state declared with no Choices rules at
// all (§7) — distinct from Invariant 3's "no rule matched and no Default",
// which is a normal successful termination, not an error.
type ChoiceError struct {
	State string
}

func (e *ChoiceError) Error() string {
	return fmt.Sprintf("interp: state %q: Choice state has no Choices", e.State)
}
func (e *ChoiceError) Name() string { return "States.ChoiceStateNoChoices" }

// ResourceError reports a Task state with a missing, malformed, or
// unresolvable Resource.
type ResourceError struct {
	State    string
	Resource string
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("interp: state %q: resource %q: %v", e.State, e.Resource, e.Err)
}
func (e *ResourceError) Unwrap() error { return e.Err }
func (e *ResourceError) Name() string  { return "States.TaskFailed" }

// HostError wraps an error returned by a catalog method invocation.
type HostError struct {
	State  string
	Method string
	Err    error
}

func (e *HostError) Error() string {
	return fmt.Sprintf("interp: state %q: method %q: %v", e.State, e.Method, e.Err)
}
func (e *HostError) Unwrap() error { return e.Err }
func (e *HostError) Name() string  { return "States.TaskFailed" }

// FailError is raised by a Fail state (§4.3): "<Error or FailState>: <Cause
// or Failure>".
type FailError struct {
	State string
	Err   string
	Cause string
}

func (e *FailError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Cause)
}
func (e *FailError) Name() string { return e.Err }

// CancelledError reports cooperative cancellation via context, surfaced
// while walking states or draining a Map/Parallel fan-out.
type CancelledError struct {
	State string
	Err   error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("interp: state %q: cancelled: %v", e.State, e.Err)
}
func (e *CancelledError) Unwrap() error { return e.Err }
func (e *CancelledError) Name() string  { return "States.Cancelled" }

// ParallelError wraps the first failing branch of a Parallel state
// (style grounded on workflow/errors.go's ParallelError).
type ParallelError struct {
	State  string
	Branch int
	Err    error
}

func (e *ParallelError) Error() string {
	return fmt.Sprintf("interp: state %q: branch %d failed: %v", e.State, e.Branch, e.Err)
}
func (e *ParallelError) Unwrap() error { return e.Err }
func (e *ParallelError) Name() string  { return errorName(e.Err) }

// MapError wraps the first failing item of a Map state.
type MapError struct {
	State string
	Index int
	Err   error
}

func (e *MapError) Error() string {
	return fmt.Sprintf("interp: state %q: item %d failed: %v", e.State, e.Index, e.Err)
}
func (e *MapError) Unwrap() error { return e.Err }
func (e *MapError) Name() string  { return errorName(e.Err) }
