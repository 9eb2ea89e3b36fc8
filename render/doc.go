// Package render implements §6's recorded-output plain-text
// serialization: the indentation-sensitive format the orchestrator uses
// to turn collected Go values (recorded-output entries, domain method
// results) into text embeddable in the final LLM prompt.
package render
