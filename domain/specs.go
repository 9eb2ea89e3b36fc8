package domain

import "github.com/lattice-quant/marketflow/catalog"

// Specs documents Host's catalog-visible methods (§4.2): names, parameter
// names/descriptions, and return descriptions. Go reflection cannot
// recover a compiled method's parameter names, so this table supplies them
// alongside the reflected types catalog.Build walks.
func Specs() map[string]catalog.MethodSpec {
	return map[string]catalog.MethodSpec{
		"GetPriceHistory": {
			Description: "Fetches OHLCV price candles for a crypto symbol over a time window.",
			Params: []catalog.ParamSpec{
				{Name: "symbol", Description: "ticker symbol, e.g. BTC"},
				{Name: "from", Description: "start of the window, inclusive"},
				{Name: "to", Description: "end of the window, inclusive"},
				{Name: "interval", Description: `candle granularity, e.g. "1d" or "1h"`},
			},
			ReturnDescription: "price candles ordered oldest first",
		},
		"GetNews": {
			Description: "Fetches recent headlines mentioning a crypto symbol.",
			Params: []catalog.ParamSpec{
				{Name: "symbol", Description: "ticker symbol, e.g. BTC"},
				{Name: "limit", Description: "maximum number of headlines to return"},
			},
			ReturnDescription: "headlines newest first",
		},
		"AddTime": {
			Description: "Adds a signed count of a unit to a date.",
			Params: []catalog.ParamSpec{
				{Name: "date", Description: "the starting timestamp"},
				{Name: "value", Description: "signed count of units to add"},
				{Name: "unit", Description: "the unit value is counted in"},
			},
			ReturnDescription: "date plus value units",
		},
		"DateDiff": {
			Description: "Counts whole units between two dates (b - a).",
			Params: []catalog.ParamSpec{
				{Name: "a", Description: "the earlier timestamp"},
				{Name: "b", Description: "the later timestamp"},
				{Name: "unit", Description: "the unit to count in"},
			},
			ReturnDescription: "whole units separating a and b",
		},
		"Summarize": {
			Description: "Computes summary statistics over a symbol's recent price history.",
			Params: []catalog.ParamSpec{
				{Name: "symbol", Description: "ticker symbol, e.g. BTC"},
			},
			ReturnDescription: "close-price statistics over the trailing window",
		},
		"RecordOutput": {
			Description: "Appends a labeled piece of collected data to the run's recorded-output list (§4.4).",
			Params: []catalog.ParamSpec{
				{Name: "category", Description: "short label grouping this entry"},
				{Name: "content", Description: "the data to surface in the final answer"},
			},
			ReturnDescription: "acknowledgement that the entry was recorded",
		},
	}
}
