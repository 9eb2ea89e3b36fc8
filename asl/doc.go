// Package asl defines the Amazon-States-Language-style JSON state machine
// data model consumed by the interpreter: a Definition (StartAt plus a
// States map), per-kind State fields, and Choice comparator rules.
//
// Validate performs the two static checks required before interpretation
// begins (§3 Invariants 1-2): the start state exists, and every Next
// reference resolves to a declared state.
package asl
