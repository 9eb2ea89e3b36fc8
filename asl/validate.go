package asl

import "fmt"

// Validate checks Invariants 1-2 of §3: the start state exists, and every
// Next/Default/Choice-Next/Catch-Next reference resolves to a declared
// state. It also rejects unknown state kinds. Nested Map iterators and
// Parallel branches are validated recursively against their own States
// namespace.
func Validate(d *Definition) error {
	if d == nil {
		return &DefinitionError{Message: "definition is nil"}
	}
	if d.StartAt == "" {
		return &DefinitionError{Message: "StartAt is empty"}
	}
	if _, ok := d.States[d.StartAt]; !ok {
		return &DefinitionError{Message: fmt.Sprintf("StartAt %q does not exist in States", d.StartAt)}
	}

	for name, st := range d.States {
		if st == nil {
			return &DefinitionError{State: name, Message: "state is nil"}
		}
		if !KnownTypes[st.Type] {
			return &DefinitionError{State: name, Message: fmt.Sprintf("unknown state type %q", st.Type)}
		}
		if st.Next != "" {
			if _, ok := d.States[st.Next]; !ok {
				return &DefinitionError{State: name, Message: fmt.Sprintf("Next %q does not resolve to a state", st.Next)}
			}
		}

		if st.Type == TypeChoice {
			if st.Default != "" {
				if _, ok := d.States[st.Default]; !ok {
					return &DefinitionError{State: name, Message: fmt.Sprintf("Default %q does not resolve to a state", st.Default)}
				}
			}
			for i, c := range st.Choices {
				if c.Next != "" {
					if _, ok := d.States[c.Next]; !ok {
						return &DefinitionError{State: name, Message: fmt.Sprintf("Choices[%d].Next %q does not resolve to a state", i, c.Next)}
					}
				}
			}
		}

		for i, c := range st.Catch {
			if c.Next != "" {
				if _, ok := d.States[c.Next]; !ok {
					return &DefinitionError{State: name, Message: fmt.Sprintf("Catch[%d].Next %q does not resolve to a state", i, c.Next)}
				}
			}
		}

		if st.Type == TypeMap && st.Iterator != nil {
			if err := Validate(st.Iterator); err != nil {
				return err
			}
		}
		if st.Type == TypeParallel {
			for _, branch := range st.Branches {
				if err := Validate(branch); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
