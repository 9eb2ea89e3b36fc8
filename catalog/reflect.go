package catalog

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Enum is implemented by ASL-visible enum types (§4.2 "enum T"). The
// underlying type must be string, and each member's value must equal its
// own name as returned here, so that case-insensitive string matching and
// reflect.Value.Convert round-trip cleanly (see marshalToNative).
type Enum interface {
	EnumMembers() []string
}

var (
	ctxType      = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType      = reflect.TypeOf((*error)(nil)).Elem()
	enumType     = reflect.TypeOf((*Enum)(nil)).Elem()
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	uuidType     = reflect.TypeOf(uuid.UUID{})
)

// TemporalFormat is the fixed ISO-8601 pattern used for all temporal
// values (§4.2, §6).
const TemporalFormat = "yyyy-MM-ddTHH:mm:ssZ"

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// isFutureShape reports whether an interface type's method set matches
// "Await(context.Context) (T, error)" for some T — i.e. any instantiation
// of domain's Future[T], detected structurally so catalog never imports
// the domain package.
func isFutureShape(rt reflect.Type) bool {
	if rt.Kind() != reflect.Interface || rt.NumMethod() != 1 {
		return false
	}
	m := rt.Method(0)
	return m.Name == "Await" &&
		m.Type.NumIn() == 1 && m.Type.In(0) == ctxType &&
		m.Type.NumOut() == 2 && m.Type.Out(1) == errType
}

func futureInnerType(rt reflect.Type) reflect.Type {
	return rt.Method(0).Type.Out(0)
}

func implementsEnum(rt reflect.Type) bool {
	return rt.Kind() != reflect.Ptr && rt.Implements(enumType)
}

// resolver walks reflect.Types into ParamDoc/TypeDoc/Enums entries,
// registering composite types by name before recursing into their fields
// so self-referential (cyclic) structs terminate (§4.2 "cycles are broken
// by name-first registration").
type resolver struct {
	types map[string]*TypeDoc
	enums map[string][]string
}

func newResolver() *resolver {
	return &resolver{types: map[string]*TypeDoc{}, enums: map[string][]string{}}
}

func (r *resolver) resolve(rt reflect.Type) ParamDoc {
	nullable := false
	for rt.Kind() == reflect.Ptr {
		nullable = true
		rt = rt.Elem()
	}

	var doc ParamDoc
	switch {
	case rt == timeType:
		doc = ParamDoc{Type: "string", Format: TemporalFormat}
	case rt == durationType:
		doc = ParamDoc{Type: "string"}
	case rt == uuidType:
		doc = ParamDoc{Type: "string"}
	case implementsEnum(rt):
		members := reflect.Zero(rt).Interface().(Enum).EnumMembers()
		r.enums[rt.Name()] = members
		doc = ParamDoc{Type: "string", Format: "enum:" + rt.Name()}
	case rt.Kind() == reflect.Bool:
		doc = ParamDoc{Type: "boolean"}
	case isNumericKind(rt.Kind()):
		doc = ParamDoc{Type: "number"}
	case rt.Kind() == reflect.String:
		doc = ParamDoc{Type: "string"}
	case rt.Kind() == reflect.Slice || rt.Kind() == reflect.Array:
		elem := r.resolve(rt.Elem())
		doc = ParamDoc{Type: "array of " + elem.Type, Format: elem.Format}
	case rt.Kind() == reflect.Map:
		elem := r.resolve(rt.Elem())
		doc = ParamDoc{Type: "array of " + elem.Type, Format: elem.Format}
	case rt.Kind() == reflect.Chan:
		elem := r.resolve(rt.Elem())
		doc = ParamDoc{Type: "array of " + elem.Type, Format: elem.Format}
	case rt.Kind() == reflect.Interface && isFutureShape(rt):
		doc = r.resolve(futureInnerType(rt))
	case rt.Kind() == reflect.Struct:
		doc = r.resolveStruct(rt)
	default:
		name := rt.Name()
		if name == "" {
			name = rt.String()
		}
		doc = ParamDoc{Type: "object as " + name}
	}

	if nullable {
		doc.Type += " or null"
	}
	return doc
}

func (r *resolver) resolveStruct(rt reflect.Type) ParamDoc {
	name := rt.Name()
	if name == "" {
		name = rt.String()
	}
	if _, ok := r.types[name]; ok {
		return ParamDoc{Type: "object as " + name}
	}
	placeholder := &TypeDoc{Properties: map[string]ParamDoc{}}
	r.types[name] = placeholder

	props := map[string]ParamDoc{}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		if f.Tag.Get("ignore") == "true" {
			continue
		}
		fieldDoc := r.resolve(f.Type)
		if desc := f.Tag.Get("desc"); desc != "" {
			fieldDoc.Description = desc
		}
		if format := f.Tag.Get("format"); format != "" {
			fieldDoc.Format = format
		}
		propName := f.Name
		if jsonTag := f.Tag.Get("json"); jsonTag != "" {
			if idx := strings.Index(jsonTag, ","); idx >= 0 {
				jsonTag = jsonTag[:idx]
			}
			if jsonTag != "" {
				propName = jsonTag
			}
		}
		props[propName] = fieldDoc
	}
	placeholder.Properties = props
	return ParamDoc{Type: "object as " + name}
}
