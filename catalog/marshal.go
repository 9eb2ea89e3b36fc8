package catalog

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lattice-quant/marketflow/value"
)

// marshalToNative implements §4.2's JSON → native marshalling rules.
func marshalToNative(v value.Value, target reflect.Type) (reflect.Value, error) {
	if target.Kind() == reflect.Ptr {
		if v.IsNull() {
			return reflect.Zero(target), nil
		}
		elem, err := marshalToNative(v, target.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	}

	switch target {
	case timeType:
		t, err := parseTemporal(v)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(t), nil
	case durationType:
		d, err := time.ParseDuration(v.AsString())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(d), nil
	case uuidType:
		u, err := uuid.Parse(v.AsString())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(u), nil
	}

	if implementsEnum(target) {
		members := reflect.Zero(target).Interface().(Enum).EnumMembers()
		want := strings.ToLower(stringifyScalar(v))
		for _, m := range members {
			if strings.ToLower(m) == want {
				return reflect.ValueOf(m).Convert(target), nil
			}
		}
		return reflect.Value{}, fmt.Errorf("catalog: %q is not a member of enum %s", stringifyScalar(v), target.Name())
	}

	switch target.Kind() {
	case reflect.Bool:
		b, err := toBool(v)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		f, err := toFloat(v)
		if err != nil {
			return reflect.Value{}, err
		}
		nv := reflect.New(target).Elem()
		switch target.Kind() {
		case reflect.Float32, reflect.Float64:
			nv.SetFloat(f)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			nv.SetUint(uint64(f))
		default:
			nv.SetInt(int64(f))
		}
		return nv, nil

	case reflect.String:
		return reflect.ValueOf(stringifyScalar(v)).Convert(target), nil

	case reflect.Slice, reflect.Array:
		if v.Kind() != value.KindSeq {
			return reflect.Value{}, fmt.Errorf("catalog: expected a sequence for %s", target)
		}
		items := v.AsSeq()
		if target.Kind() == reflect.Array {
			arr := reflect.New(target).Elem()
			for i, item := range items {
				if i >= target.Len() {
					break
				}
				ev, err := marshalToNative(item, target.Elem())
				if err != nil {
					return reflect.Value{}, err
				}
				arr.Index(i).Set(ev)
			}
			return arr, nil
		}
		sl := reflect.MakeSlice(target, 0, len(items))
		for _, item := range items {
			ev, err := marshalToNative(item, target.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			sl = reflect.Append(sl, ev)
		}
		return sl, nil

	case reflect.Map:
		if v.Kind() != value.KindMap {
			return reflect.Value{}, fmt.Errorf("catalog: expected an object for %s", target)
		}
		m := reflect.MakeMap(target)
		if obj := v.AsObject(); obj != nil {
			for _, k := range obj.Keys() {
				cv, _ := obj.Get(k)
				ev, err := marshalToNative(cv, target.Elem())
				if err != nil {
					return reflect.Value{}, err
				}
				m.SetMapIndex(reflect.ValueOf(k).Convert(target.Key()), ev)
			}
		}
		return m, nil

	case reflect.Struct:
		if v.Kind() != value.KindMap {
			return reflect.Value{}, fmt.Errorf("catalog: expected an object for %s", target)
		}
		obj := v.AsObject()
		sv := reflect.New(target).Elem()
		for i := 0; i < target.NumField(); i++ {
			f := target.Field(i)
			if f.PkgPath != "" {
				continue
			}
			name := jsonFieldName(f)
			if obj == nil {
				continue
			}
			fv, ok := obj.Get(name)
			if !ok {
				continue
			}
			nv, err := marshalToNative(fv, f.Type)
			if err != nil {
				continue // per-field failure is defensive, not fatal
			}
			sv.Field(i).Set(nv)
		}
		return sv, nil

	case reflect.Interface:
		if target.NumMethod() == 0 {
			return reflect.ValueOf(toAny(v)), nil
		}
	}

	return reflect.Value{}, fmt.Errorf("catalog: unsupported marshal target %s", target)
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Name
	if tag := f.Tag.Get("json"); tag != "" {
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		if tag != "" {
			name = tag
		}
	}
	return name
}

func stringifyScalar(v value.Value) string {
	switch v.Kind() {
	case value.KindString:
		return v.AsString()
	case value.KindNumber:
		return strconv.FormatFloat(v.AsNumber(), 'f', -1, 64)
	case value.KindBool:
		return strconv.FormatBool(v.AsBool())
	default:
		return ""
	}
}

func toFloat(v value.Value) (float64, error) {
	switch v.Kind() {
	case value.KindNumber:
		return v.AsNumber(), nil
	case value.KindString:
		return strconv.ParseFloat(v.AsString(), 64)
	case value.KindBool:
		if v.AsBool() {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("catalog: cannot parse %s as a number", v.Kind())
	}
}

func toBool(v value.Value) (bool, error) {
	switch v.Kind() {
	case value.KindBool:
		return v.AsBool(), nil
	case value.KindString:
		switch strings.ToLower(v.AsString()) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, fmt.Errorf("catalog: cannot parse %s as a boolean", v.Kind())
}

func parseTemporal(v value.Value) (time.Time, error) {
	if v.Kind() != value.KindString {
		return time.Time{}, fmt.Errorf("catalog: temporal value must be a string, got %s", v.Kind())
	}
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05Z", "2006-01-02"}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, v.AsString())
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func toAny(v value.Value) any {
	switch v.Kind() {
	case value.KindBool:
		return v.AsBool()
	case value.KindNumber:
		return v.AsNumber()
	case value.KindString:
		return v.AsString()
	case value.KindSeq:
		out := make([]any, 0, len(v.AsSeq()))
		for _, item := range v.AsSeq() {
			out = append(out, toAny(item))
		}
		return out
	case value.KindMap:
		out := map[string]any{}
		if obj := v.AsObject(); obj != nil {
			for _, k := range obj.Keys() {
				cv, _ := obj.Get(k)
				out[k] = toAny(cv)
			}
		}
		return out
	default:
		return nil
	}
}

// marshalFromNative implements the return-value half of §4.2: native
// Go value → value.Value.
func marshalFromNative(rv reflect.Value) (value.Value, error) {
	if !rv.IsValid() {
		return value.Null(), nil
	}
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return value.Null(), nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return value.Null(), nil
		}
		return marshalFromNative(rv.Elem())
	}

	switch {
	case rv.Type() == timeType:
		return value.String(rv.Interface().(time.Time).UTC().Format("2006-01-02T15:04:05Z")), nil
	case rv.Type() == durationType:
		return value.String(rv.Interface().(time.Duration).String()), nil
	case rv.Type() == uuidType:
		return value.String(rv.Interface().(uuid.UUID).String()), nil
	case implementsEnum(rv.Type()):
		return value.String(rv.String()), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return value.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return value.Number(rv.Float()), nil
	case reflect.String:
		return value.String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return value.Seq(), nil
		}
		items := make([]value.Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := marshalFromNative(rv.Index(i))
			if err != nil {
				return value.Null(), err
			}
			items = append(items, ev)
		}
		return value.Seq(items...), nil
	case reflect.Map:
		obj := value.NewObject()
		keys := rv.MapKeys()
		strKeys := make([]string, len(keys))
		byStr := make(map[string]reflect.Value, len(keys))
		for i, k := range keys {
			s := fmt.Sprintf("%v", k.Interface())
			strKeys[i] = s
			byStr[s] = k
		}
		sort.Strings(strKeys)
		for _, s := range strKeys {
			ev, err := marshalFromNative(rv.MapIndex(byStr[s]))
			if err != nil {
				return value.Null(), err
			}
			obj.Set(s, ev)
		}
		return value.Map(obj), nil
	case reflect.Struct:
		obj := value.NewObject()
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if f.PkgPath != "" || f.Tag.Get("ignore") == "true" {
				continue
			}
			ev, err := marshalFromNative(rv.Field(i))
			if err != nil {
				return value.Null(), err
			}
			obj.Set(jsonFieldName(f), ev)
		}
		return value.Map(obj), nil
	default:
		return value.Null(), fmt.Errorf("catalog: unsupported return kind %s", rv.Kind())
	}
}

// unwrapReturn implements §4.2 rule 4: await futures, drain async
// sequences, recursively (a future may itself resolve to another future).
func unwrapReturn(ctx context.Context, rv reflect.Value) (reflect.Value, error) {
	if rv.Kind() == reflect.Interface && !rv.IsNil() && isFutureShape(rv.Type()) {
		awaitM := rv.MethodByName("Await")
		results := awaitM.Call([]reflect.Value{reflect.ValueOf(ctx)})
		if errVal := results[1]; !errVal.IsNil() {
			return reflect.Value{}, errVal.Interface().(error)
		}
		return unwrapReturn(ctx, results[0])
	}

	if rv.Kind() == reflect.Chan {
		elemType := rv.Type().Elem()
		out := reflect.MakeSlice(reflect.SliceOf(elemType), 0, 0)
		if rv.IsNil() {
			return out, nil
		}
		recvCase := reflect.SelectCase{Dir: reflect.SelectRecv, Chan: rv}
		doneCase := reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ctx.Done())}
		for {
			chosen, recv, recvOK := reflect.Select([]reflect.SelectCase{recvCase, doneCase})
			if chosen == 1 {
				return reflect.Value{}, ctx.Err()
			}
			if !recvOK {
				break
			}
			out = reflect.Append(out, recv)
		}
		return out, nil
	}

	return rv, nil
}
