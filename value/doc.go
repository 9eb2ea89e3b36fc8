// Package value implements the JSON value model that flows through the
// interpreter: a recursive tagged value (null, bool, number, string,
// ordered sequence, ordered keyed map) plus a dotted-path engine
// (GetByPath, PlaceByPath, DeepClone, MergeObjects) over it.
//
// Map key order is preserved for round-trip display but is semantically
// insignificant for lookups — see §3 of the interpreter specification.
package value
