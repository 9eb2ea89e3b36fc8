package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/lattice-quant/marketflow/store"
	"github.com/lattice-quant/marketflow/value"
)

// ParamSpec supplies the name and documentation for one method parameter.
// Go reflection cannot recover parameter names from a compiled function, so
// the catalog's caller (domain) declares them explicitly alongside the
// host's native method signatures.
type ParamSpec struct {
	Name        string
	Description string
	Format      string // overrides the type-default Format when non-empty
}

// MethodSpec supplies the documentation for one host method. The number of
// Params must equal the method's ASL-visible arity (its Go parameter count
// minus a leading context.Context, if present).
type MethodSpec struct {
	Description       string
	Params            []ParamSpec
	ReturnDescription string
	ReturnFormat      string
}

// entryTemplate is the host-type-level (instance-independent) half of a
// dispatch entry — everything derivable from reflect.Type alone, and
// therefore memoizable per host Go type.
type entryTemplate struct {
	index      int // method index on the type, for reflect.Value.Method
	name       string
	hasCtx     bool
	paramTypes []reflect.Type
	hasErr     bool
	returnType reflect.Type
}

type methodEntry struct {
	name       string
	fn         reflect.Value // bound method value
	hasCtx     bool
	paramTypes []reflect.Type
	hasErr     bool
	returnType reflect.Type
}

// Catalog is a read-only, immutable-after-construction dispatch table plus
// the metadata document describing it (§3 Lifecycles).
type Catalog struct {
	entries map[string]*methodEntry
	doc     *MetadataDocument
}

func dispatchKey(name string, arity int) string {
	return strings.ToLower(name) + "#" + strconv.Itoa(arity)
}

// buildMetadata walks a host Go type's exported methods and produces the
// metadata document plus the instance-independent entry templates. It uses
// only the type, never an instance, so it can be computed once per host
// type and reused across instances (§3 "computed once per host-object type").
func buildMetadata(ht reflect.Type, specs map[string]MethodSpec) (*MetadataDocument, map[string]*entryTemplate, error) {
	r := newResolver()
	methodsDoc := map[string]MethodDoc{}
	templates := map[string]*entryTemplate{}

	for i := 0; i < ht.NumMethod(); i++ {
		m := ht.Method(i)
		spec, ok := specs[m.Name]
		if !ok {
			continue // only explicitly documented methods are catalog-visible
		}

		mt := m.Type // receiver is mt.In(0)
		hasCtx := mt.NumIn() > 1 && mt.In(1) == ctxType
		start := 1
		if hasCtx {
			start = 2
		}
		paramTypes := make([]reflect.Type, 0, mt.NumIn()-start)
		for j := start; j < mt.NumIn(); j++ {
			paramTypes = append(paramTypes, mt.In(j))
		}
		if len(paramTypes) != len(spec.Params) {
			return nil, nil, fmt.Errorf("catalog: method %s has %d ASL-visible parameters but spec declares %d",
				m.Name, len(paramTypes), len(spec.Params))
		}

		numOut := mt.NumOut()
		hasErr := numOut > 0 && mt.Out(numOut-1) == errType
		valueOutCount := numOut
		if hasErr {
			valueOutCount--
		}
		if valueOutCount != 1 {
			return nil, nil, fmt.Errorf("catalog: method %s must return exactly one value plus an optional trailing error", m.Name)
		}
		returnType := mt.Out(0)

		templates[dispatchKey(m.Name, len(paramTypes))] = &entryTemplate{
			index: i, name: m.Name, hasCtx: hasCtx,
			paramTypes: paramTypes, hasErr: hasErr, returnType: returnType,
		}

		paramsDoc := map[string]ParamDoc{}
		for j, pt := range paramTypes {
			pd := r.resolve(pt)
			ps := spec.Params[j]
			if ps.Description != "" {
				pd.Description = ps.Description
			}
			if ps.Format != "" {
				pd.Format = ps.Format
			}
			paramsDoc[ps.Name] = pd
		}
		retDoc := r.resolve(returnType)
		if spec.ReturnDescription != "" {
			retDoc.Description = spec.ReturnDescription
		}
		if spec.ReturnFormat != "" {
			retDoc.Format = spec.ReturnFormat
		}

		methodsDoc[m.Name] = MethodDoc{
			Description: spec.Description,
			Parameters:  paramsDoc,
			Return:      retDoc,
		}
	}

	typesDoc := map[string]TypeDoc{}
	for name, td := range r.types {
		typesDoc[name] = *td
	}

	return &MetadataDocument{Methods: methodsDoc, Types: typesDoc, Enums: r.enums}, templates, nil
}

func bindEntries(hv reflect.Value, templates map[string]*entryTemplate) map[string]*methodEntry {
	entries := make(map[string]*methodEntry, len(templates))
	for key, tmpl := range templates {
		entries[key] = &methodEntry{
			name:       tmpl.name,
			fn:         hv.Method(tmpl.index),
			hasCtx:     tmpl.hasCtx,
			paramTypes: tmpl.paramTypes,
			hasErr:     tmpl.hasErr,
			returnType: tmpl.returnType,
		}
	}
	return entries
}

// Build reflects over host's exported methods, using specs to name and
// document each one, and returns an immutable Catalog.
func Build(host any, specs map[string]MethodSpec) (*Catalog, error) {
	ht := reflect.TypeOf(host)
	doc, templates, err := buildMetadata(ht, specs)
	if err != nil {
		return nil, err
	}
	return &Catalog{entries: bindEntries(reflect.ValueOf(host), templates), doc: doc}, nil
}

// BuildWithStore is like Build, but memoizes the metadata document per
// host-Go-type name in adapter (§3's "memoizable" lifecycle). The
// dispatch-table templates are themselves pure functions of the type, so
// they are always recomputed (cheap, reflect.Type-only work). The document
// is likewise always rebuilt; adapter lets it be compared against the one
// on record so that a structural drift in the host's method surface is
// logged rather than silently forgotten, after which the freshly built
// document replaces the stored one.
func BuildWithStore(ctx context.Context, adapter store.Adapter, host any, specs map[string]MethodSpec) (*Catalog, error) {
	ht := reflect.TypeOf(host)
	typeName := ht.String()

	builtDoc, templates, err := buildMetadata(ht, specs)
	if err != nil {
		return nil, err
	}

	doc := builtDoc
	if raw, ok, getErr := adapter.Get(ctx, typeName); getErr == nil && ok {
		var cached MetadataDocument
		if json.Unmarshal(raw, &cached) == nil {
			if !documentsEqual(&cached, builtDoc) {
				slog.Warn("catalog metadata drifted from memoized document", "host_type", typeName)
			}
		}
	}
	if raw, marshalErr := json.Marshal(doc); marshalErr == nil {
		_ = adapter.Set(ctx, typeName, raw)
	}

	return &Catalog{entries: bindEntries(reflect.ValueOf(host), templates), doc: doc}, nil
}

func documentsEqual(a, b *MetadataDocument) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(ja) == string(jb)
}

// Metadata returns the catalog's metadata document (§6).
func (c *Catalog) Metadata() *MetadataDocument {
	return c.doc
}

// Resolve finds the method entry matching name (case-insensitive) and
// arity, per §4.2's method-resolution rule 1.
func (c *Catalog) Resolve(name string, arity int) (*methodEntry, bool) {
	e, ok := c.entries[dispatchKey(name, arity)]
	return e, ok
}

// Invoke marshals args into entry's native parameters, calls the method,
// and marshals its return value (awaiting futures, draining async
// sequences) back into a value.Value, per §4.2 rules 2-4.
func (c *Catalog) Invoke(ctx context.Context, name string, args []value.Value) (value.Value, error) {
	entry, ok := c.Resolve(name, len(args))
	if !ok {
		return value.Null(), fmt.Errorf("catalog: no method named %q with arity %d", name, len(args))
	}

	in := make([]reflect.Value, 0, len(entry.paramTypes)+1)
	if entry.hasCtx {
		in = append(in, reflect.ValueOf(ctx))
	}
	for i, pt := range entry.paramTypes {
		nv, err := marshalToNative(args[i], pt)
		if err != nil {
			// §4.2: "Failures yield null for that argument" — the reflector
			// never throws on a single unparseable element.
			nv = reflect.Zero(pt)
		}
		in = append(in, nv)
	}

	out := entry.fn.Call(in)
	if entry.hasErr {
		if errVal := out[len(out)-1]; !errVal.IsNil() {
			return value.Null(), errVal.Interface().(error)
		}
	}

	unwrapped, err := unwrapReturn(ctx, out[0])
	if err != nil {
		return value.Null(), err
	}
	return marshalFromNative(unwrapped)
}
