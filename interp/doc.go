// Package interp is the ASL state-machine interpreter (§4.3): it walks a
// validated asl.Definition, applies InputPath/Parameters/ResultPath/
// OutputPath at each state, dispatches per state kind, drives concurrency
// for Map and Parallel, evaluates Choice predicates, honors Wait timing,
// and accumulates state outputs into a globalData value scoped to one
// interpretation. A Map item or Parallel branch runs as its own nested
// interpretation with its own independent globalData, sharing only the
// catalog (and therefore the underlying host) with its parent.
package interp
