// Package orchestrate implements §2's analysis flow: a relevance check,
// a workflow-generation prompt embedding the method catalog's metadata
// document, running the resulting ASL definition through interp, and a
// final-render prompt over the collected recorded outputs.
package orchestrate
