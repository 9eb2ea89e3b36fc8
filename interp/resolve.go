package interp

import (
	"strings"

	"github.com/lattice-quant/marketflow/value"
)

func applyInputPath(stateName string, current value.Value, inputPath *string) (value.Value, error) {
	p := ""
	if inputPath != nil {
		p = *inputPath
	}
	v, err := value.ApplyInputPath(current, p)
	if err != nil {
		return value.Null(), &PathError{State: stateName, Err: err}
	}
	return v, nil
}

func applyOutputPathValue(stateName string, v value.Value, outputPath *string) (value.Value, error) {
	p := ""
	if outputPath != nil {
		p = *outputPath
	}
	out, err := value.ApplyOutputPath(v, p)
	if err != nil {
		return value.Null(), &PathError{State: stateName, Err: err}
	}
	return out, nil
}

// placeResult implements Invariant 4: ResultPath==null/empty means the
// effective path is the synthetic "$.<stateName>".
func placeResult(stateName string, base value.Value, resultPath string, result value.Value) (value.Value, error) {
	rp := resultPath
	if rp == "" {
		rp = "$." + stateName
	}
	placed, err := value.PlaceByPath(base, rp, result)
	if err != nil {
		return value.Null(), &PathError{State: stateName, Err: err}
	}
	return placed, nil
}

// resolveParameters implements §4.3's ResolveParameters: a map whose keys
// end in ".$" resolve their (string) value as a path against data, falling
// back to global; every other map entry and every sequence element recurse;
// scalars are used verbatim.
func resolveParameters(template, data, global value.Value) value.Value {
	switch template.Kind() {
	case value.KindMap:
		out := value.NewObject()
		if obj := template.AsObject(); obj != nil {
			for _, k := range obj.Keys() {
				v, _ := obj.Get(k)
				if strings.HasSuffix(k, ".$") {
					key := strings.TrimSuffix(k, ".$")
					resolved, _ := value.GetByPath(data, v.AsString())
					if resolved.IsNull() {
						resolved, _ = value.GetByPath(global, v.AsString())
					}
					out.Set(key, resolved)
				} else {
					out.Set(k, resolveParameters(v, data, global))
				}
			}
		}
		return value.Map(out)
	case value.KindSeq:
		items := template.AsSeq()
		out := make([]value.Value, len(items))
		for i, item := range items {
			out[i] = resolveParameters(item, data, global)
		}
		return value.Seq(out...)
	default:
		return template
	}
}

// buildParameterArray implements the Task payload's argument-array
// construction rule: a map contributes its values in iteration order, a
// sequence contributes its elements, anything else becomes a single-element
// array.
func buildParameterArray(v value.Value) []value.Value {
	switch v.Kind() {
	case value.KindMap:
		if obj := v.AsObject(); obj != nil {
			return obj.Values()
		}
		return nil
	case value.KindSeq:
		return v.AsSeq()
	default:
		return []value.Value{v}
	}
}
