package interp

import (
	"context"
	"fmt"

	"github.com/lattice-quant/marketflow/asl"
	"github.com/lattice-quant/marketflow/value"
)

// runTask implements §4.3's Task contract: resolves the method name and
// argument source (honoring the arn:aws:states:::lambda:invoke convention),
// builds the argument array, and invokes the catalog.
func runTask(ctx context.Context, ec *execContext, stateName string, state *asl.State, effective value.Value) (value.Value, error) {
	if state.Resource == "" {
		return value.Null(), &ResourceError{State: stateName, Err: fmt.Errorf("Task state requires Resource")}
	}

	methodName, argSource, err := resolveTaskTarget(stateName, state, effective)
	if err != nil {
		return value.Null(), err
	}

	args := buildParameterArray(argSource)

	result, err := ec.cat.Invoke(ctx, methodName, args)
	if err != nil {
		return value.Null(), &HostError{State: stateName, Method: methodName, Err: err}
	}
	return result, nil
}

// resolveTaskTarget implements the Resource/lambda:invoke branching: a bare
// Resource names the method directly against effective; the lambda:invoke
// literal instead requires effective to be a map carrying FunctionName (the
// method name, falling back to the state name) and Payload (the argument
// source, falling back to the remaining map entries).
func resolveTaskTarget(stateName string, state *asl.State, effective value.Value) (string, value.Value, error) {
	if state.Resource != asl.ArnLambdaInvoke {
		return state.Resource, effective, nil
	}

	if effective.Kind() != value.KindMap {
		return "", value.Null(), &ResourceError{
			State: stateName, Resource: state.Resource,
			Err: fmt.Errorf("lambda:invoke requires a map of built parameters, got %s", effective.Kind()),
		}
	}
	obj := effective.AsObject()

	methodName := stateName
	if fn, ok := obj.Get("FunctionName"); ok && fn.Kind() == value.KindString {
		methodName = fn.AsString()
	}

	if payload, ok := obj.Get("Payload"); ok {
		return methodName, payload, nil
	}

	rest := value.NewObject()
	for _, k := range obj.Keys() {
		if k == "FunctionName" || k == "Payload" {
			continue
		}
		v, _ := obj.Get(k)
		rest.Set(k, v)
	}
	return methodName, value.Map(rest), nil
}
