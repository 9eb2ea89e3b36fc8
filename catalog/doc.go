// Package catalog reflects over a host object's exported methods and
// produces (a) an ASL-oriented metadata document describing those methods
// for embedding into an LLM prompt, and (b) a dispatch table that marshals
// JSON values into native arguments, invokes the method, and marshals the
// native return value (including awaited futures and drained async
// sequences) back into a JSON value.
//
// Per Design Notes §9, the dispatch table is built once at
// catalog-construction time, keyed by (lowercased method name, arity) —
// reflection is never re-walked per call.
package catalog
