// Package domain supplies the concrete, reflected host object the catalog
// exposes to the LLM (§4.2): crypto market price history (with an
// in-process interval cache in front of an HTTPPriceSource), news fetching
// as an async sequence, date arithmetic over a DateUnit enum, a
// Future-wrapped composite summary, and the RecordOutput side channel
// (§4.4) that lets Task states contribute data to the final answer.
package domain
