package asl

import "fmt"

// DefinitionError reports a static defect in an ASL definition discovered
// before interpretation begins: a missing StartAt, an unknown state kind,
// or a dangling Next/Default/Choice-Next reference.
type DefinitionError struct {
	State   string // empty for definition-level errors (e.g. missing StartAt)
	Message string
}

func (e *DefinitionError) Error() string {
	if e.State == "" {
		return fmt.Sprintf("asl: definition error: %s", e.Message)
	}
	return fmt.Sprintf("asl: definition error in state %q: %s", e.State, e.Message)
}
