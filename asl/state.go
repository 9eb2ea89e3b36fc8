package asl

import "github.com/lattice-quant/marketflow/value"

// State kind vocabulary (§3).
const (
	TypePass     = "Pass"
	TypeTask     = "Task"
	TypeChoice   = "Choice"
	TypeWait     = "Wait"
	TypeSucceed  = "Succeed"
	TypeFail     = "Fail"
	TypeMap      = "Map"
	TypeParallel = "Parallel"
)

// KnownTypes lists every recognized state kind.
var KnownTypes = map[string]bool{
	TypePass:     true,
	TypeTask:     true,
	TypeChoice:   true,
	TypeWait:     true,
	TypeSucceed:  true,
	TypeFail:     true,
	TypeMap:      true,
	TypeParallel: true,
}

// ArnLambdaInvoke is the Lambda-invoke resource literal Task states may use
// instead of a bare method name (§4.3).
const ArnLambdaInvoke = "arn:aws:states:::lambda:invoke"

// Definition is an ASL state machine: a (StartAt, States) pair.
type Definition struct {
	StartAt string            `json:"StartAt"`
	States  map[string]*State `json:"States"`
}

// State holds every field any state kind may carry; unused fields for a
// given Type are simply absent from the source JSON.
type State struct {
	Type string `json:"Type"`

	// Data plumbing, common to most kinds.
	InputPath  *string      `json:"InputPath,omitempty"`
	Parameters *value.Value `json:"Parameters,omitempty"`
	ResultPath *string      `json:"ResultPath,omitempty"`
	OutputPath *string      `json:"OutputPath,omitempty"`
	Result     *value.Value `json:"Result,omitempty"`

	// Control flow.
	Next string `json:"Next,omitempty"`
	End  bool   `json:"End,omitempty"`

	// Task.
	Resource string `json:"Resource,omitempty"`

	// Choice.
	Choices []ChoiceRule `json:"Choices,omitempty"`
	Default string       `json:"Default,omitempty"`

	// Wait.
	Seconds       *float64 `json:"Seconds,omitempty"`
	SecondsPath   string   `json:"SecondsPath,omitempty"`
	Timestamp     string   `json:"Timestamp,omitempty"`
	TimestampPath string   `json:"TimestampPath,omitempty"`

	// Map.
	ItemsPath      string      `json:"ItemsPath,omitempty"`
	Iterator       *Definition `json:"Iterator,omitempty"`
	MaxConcurrency int         `json:"MaxConcurrency,omitempty"`

	// Parallel.
	Branches []*Definition `json:"Branches,omitempty"`

	// Fail.
	Error string `json:"Error,omitempty"`
	Cause string `json:"Cause,omitempty"`

	// Recognized for forward compatibility and, per the Open Question
	// decision in DESIGN.md, actually honoured by interp.
	Retry []RetryRule `json:"Retry,omitempty"`
	Catch []CatchRule `json:"Catch,omitempty"`
}

// ChoiceRule is one entry of a Choice state's Choices list. Multiple
// comparator fields may be set simultaneously; per the spec's preserved
// source semantics, the rule fires if ANY set comparator is true.
type ChoiceRule struct {
	Variable string `json:"Variable"`
	Next     string `json:"Next,omitempty"`

	NumericEquals            *float64 `json:"NumericEquals,omitempty"`
	NumericGreaterThan       *float64 `json:"NumericGreaterThan,omitempty"`
	NumericGreaterThanEquals *float64 `json:"NumericGreaterThanEquals,omitempty"`
	NumericLessThan          *float64 `json:"NumericLessThan,omitempty"`
	NumericLessThanEquals    *float64 `json:"NumericLessThanEquals,omitempty"`

	StringEquals            *string `json:"StringEquals,omitempty"`
	StringGreaterThan        *string `json:"StringGreaterThan,omitempty"`
	StringGreaterThanEquals  *string `json:"StringGreaterThanEquals,omitempty"`
	StringLessThan           *string `json:"StringLessThan,omitempty"`
	StringLessThanEquals     *string `json:"StringLessThanEquals,omitempty"`

	TimestampEquals            *string `json:"TimestampEquals,omitempty"`
	TimestampGreaterThan       *string `json:"TimestampGreaterThan,omitempty"`
	TimestampGreaterThanEquals *string `json:"TimestampGreaterThanEquals,omitempty"`
	TimestampLessThan          *string `json:"TimestampLessThan,omitempty"`
	TimestampLessThanEquals    *string `json:"TimestampLessThanEquals,omitempty"`

	BooleanEquals *bool `json:"BooleanEquals,omitempty"`

	IsNull      *bool `json:"IsNull,omitempty"`
	IsNumeric   *bool `json:"IsNumeric,omitempty"`
	IsString    *bool `json:"IsString,omitempty"`
	IsBoolean   *bool `json:"IsBoolean,omitempty"`
	IsTimestamp *bool `json:"IsTimestamp,omitempty"`
}

// RetryRule is a Task-state retry policy entry (Design Notes §9).
type RetryRule struct {
	ErrorEquals     []string `json:"ErrorEquals"`
	IntervalSeconds float64  `json:"IntervalSeconds,omitempty"`
	BackoffRate     float64  `json:"BackoffRate,omitempty"`
	MaxAttempts     int      `json:"MaxAttempts,omitempty"`
}

// CatchRule is a Task-state error-redirect entry (Design Notes §9).
type CatchRule struct {
	ErrorEquals []string `json:"ErrorEquals"`
	ResultPath  string   `json:"ResultPath,omitempty"`
	Next        string   `json:"Next"`
}

// ErrorEquals matching: a rule matches an error name if it lists the
// literal name or the "States.ALL" wildcard (Open Question decision,
// DESIGN.md).
const ErrorEqualsAll = "States.ALL"

// ErrorEqualsMatch reports whether errName is covered by ee.
func ErrorEqualsMatch(ee []string, errName string) bool {
	for _, e := range ee {
		if e == ErrorEqualsAll || e == errName {
			return true
		}
	}
	return false
}
