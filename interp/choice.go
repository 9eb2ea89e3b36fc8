package interp

import (
	"errors"
	"strconv"
	"time"

	"github.com/lattice-quant/marketflow/asl"
	"github.com/lattice-quant/marketflow/value"
)

var errNotATimestamp = errors.New("interp: value is not a timestamp string")

// evaluateRule reports whether any comparator set on rule fires against the
// value at rule.Variable, per §4.3's table. Multiple set comparators are
// disjunctive (ANY firing wins) — the preserved source semantics recorded
// as an Open Question decision in DESIGN.md.
func evaluateRule(data value.Value, rule asl.ChoiceRule) bool {
	v, err := value.GetByPath(data, rule.Variable)
	if err != nil {
		return false
	}

	if rule.IsNull != nil && (v.IsNull() == *rule.IsNull) {
		return true
	}
	if rule.IsNumeric != nil && (v.Kind() == value.KindNumber) == *rule.IsNumeric {
		return true
	}
	if rule.IsString != nil && (v.Kind() == value.KindString) == *rule.IsString {
		return true
	}
	if rule.IsBoolean != nil && (v.Kind() == value.KindBool) == *rule.IsBoolean {
		return true
	}
	if rule.IsTimestamp != nil {
		_, perr := parseComparableTime(v)
		if (perr == nil) == *rule.IsTimestamp {
			return true
		}
	}

	if rule.BooleanEquals != nil && v.Kind() == value.KindBool && v.AsBool() == *rule.BooleanEquals {
		return true
	}

	if num, ok := numericOperand(v); ok {
		switch {
		case rule.NumericEquals != nil && num == *rule.NumericEquals:
			return true
		case rule.NumericGreaterThan != nil && num > *rule.NumericGreaterThan:
			return true
		case rule.NumericGreaterThanEquals != nil && num >= *rule.NumericGreaterThanEquals:
			return true
		case rule.NumericLessThan != nil && num < *rule.NumericLessThan:
			return true
		case rule.NumericLessThanEquals != nil && num <= *rule.NumericLessThanEquals:
			return true
		}
	}

	if v.Kind() == value.KindString {
		s := v.AsString()
		switch {
		case rule.StringEquals != nil && s == *rule.StringEquals:
			return true
		case rule.StringGreaterThan != nil && s > *rule.StringGreaterThan:
			return true
		case rule.StringGreaterThanEquals != nil && s >= *rule.StringGreaterThanEquals:
			return true
		case rule.StringLessThan != nil && s < *rule.StringLessThan:
			return true
		case rule.StringLessThanEquals != nil && s <= *rule.StringLessThanEquals:
			return true
		}
	}

	if t, perr := parseComparableTime(v); perr == nil {
		switch {
		case rule.TimestampEquals != nil && timeEquals(t, *rule.TimestampEquals):
			return true
		case rule.TimestampGreaterThan != nil && timeCompare(t, *rule.TimestampGreaterThan, func(a, b time.Time) bool { return a.After(b) }):
			return true
		case rule.TimestampGreaterThanEquals != nil && timeCompare(t, *rule.TimestampGreaterThanEquals, func(a, b time.Time) bool { return !a.Before(b) }):
			return true
		case rule.TimestampLessThan != nil && timeCompare(t, *rule.TimestampLessThan, func(a, b time.Time) bool { return a.Before(b) }):
			return true
		case rule.TimestampLessThanEquals != nil && timeCompare(t, *rule.TimestampLessThanEquals, func(a, b time.Time) bool { return !a.After(b) }):
			return true
		}
	}

	return false
}

func numericOperand(v value.Value) (float64, bool) {
	switch v.Kind() {
	case value.KindNumber:
		return v.AsNumber(), true
	case value.KindString:
		f, err := strconv.ParseFloat(v.AsString(), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func parseComparableTime(v value.Value) (time.Time, error) {
	if v.Kind() != value.KindString {
		return time.Time{}, errNotATimestamp
	}
	return time.Parse(time.RFC3339, v.AsString())
}

func timeEquals(t time.Time, other string) bool {
	ot, err := time.Parse(time.RFC3339, other)
	if err != nil {
		return false
	}
	return t.UTC().Equal(ot.UTC())
}

func timeCompare(t time.Time, other string, cmp func(a, b time.Time) bool) bool {
	ot, err := time.Parse(time.RFC3339, other)
	if err != nil {
		return false
	}
	return cmp(t.UTC(), ot.UTC())
}

// chooseNext implements §4.3's Choice dispatch: the first rule whose
// comparator(s) fire and which has a Next wins; else Default; else the
// state terminates the run.
func chooseNext(data value.Value, state *asl.State) (next string, terminal bool) {
	for _, rule := range state.Choices {
		if rule.Next != "" && evaluateRule(data, rule) {
			return rule.Next, false
		}
	}
	if state.Default != "" {
		return state.Default, false
	}
	return "", true
}
