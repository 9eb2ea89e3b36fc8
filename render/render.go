package render

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is §6's fixed timestamp rendering layout.
const TimeLayout = "2006-01-02 15:04:05Z07:00"

var timeType = reflect.TypeOf(time.Time{})

// Format renders v as §6's plain-text, indentation-sensitive format:
// scalars on one line, composites descending with tab indentation,
// homogeneous simple-property composite sequences as a column table,
// simple-keyed maps as "key: value" lines, and cycles as "∞".
func Format(v any) string {
	var sb strings.Builder
	visiting := map[uintptr]bool{}
	writeTop(&sb, reflect.ValueOf(v), visiting)
	return strings.TrimRight(sb.String(), "\n")
}

func writeTop(sb *strings.Builder, rv reflect.Value, visiting map[uintptr]bool) {
	rv, pop, cyclic := deref(rv, visiting)
	defer pop()
	if cyclic {
		sb.WriteString("∞\n")
		return
	}
	if !rv.IsValid() {
		sb.WriteString("null\n")
		return
	}
	if isSimple(rv) {
		sb.WriteString(scalarText(rv) + "\n")
		return
	}
	writeComposite(sb, rv, 0, visiting)
}

// deref follows pointers/interfaces, marking every pointer address it
// passes through as "on the current recursion path" until the returned
// pop func runs. A pointer already on that path reports a cycle; a
// pointer seen earlier on a sibling path (DAG sharing, not a true cycle)
// is unaffected since its own pop already ran before this call began.
func deref(rv reflect.Value, visiting map[uintptr]bool) (out reflect.Value, pop func(), cyclic bool) {
	var pushed []uintptr
	pop = func() {
		for _, a := range pushed {
			delete(visiting, a)
		}
	}
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}, pop, false
		}
		if rv.Kind() == reflect.Ptr {
			addr := rv.Pointer()
			if visiting[addr] {
				return reflect.Value{}, pop, true
			}
			visiting[addr] = true
			pushed = append(pushed, addr)
		}
		rv = rv.Elem()
	}
	return rv, pop, false
}

func isSimple(rv reflect.Value) bool {
	if rv.Type() == timeType {
		return true
	}
	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func scalarText(rv reflect.Value) string {
	if rv.Type() == timeType {
		return rv.Interface().(time.Time).UTC().Format(TimeLayout)
	}
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.String:
		return rv.String()
	default:
		return ""
	}
}

func tabs(n int) string { return strings.Repeat("\t", n) }

func writeComposite(sb *strings.Builder, rv reflect.Value, indent int, visiting map[uintptr]bool) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		writeSequence(sb, rv, indent, visiting)
	case reflect.Map:
		writeDict(sb, mapEntries(rv), indent, visiting)
	case reflect.Struct:
		writeDict(sb, structEntries(rv), indent, visiting)
	default:
		sb.WriteString(tabs(indent) + "<unsupported>\n")
	}
}

type entry struct {
	key string
	val reflect.Value
}

func mapEntries(rv reflect.Value) []entry {
	keys := rv.MapKeys()
	out := make([]entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, entry{key: fmtMapKey(k), val: rv.MapIndex(k)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

func fmtMapKey(rv reflect.Value) string {
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return scalarText(rv)
}

func structEntries(rv reflect.Value) []entry {
	rt := rv.Type()
	out := make([]entry, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue
		}
		out = append(out, entry{key: jsonFieldName(f), val: rv.Field(i)})
	}
	return out
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

// writeDict renders §6's "dictionaries keyed by simple types render as
// key: value lines" rule, recursing into composite values.
func writeDict(sb *strings.Builder, entries []entry, indent int, visiting map[uintptr]bool) {
	if len(entries) == 0 {
		sb.WriteString(tabs(indent) + "(empty)\n")
		return
	}
	for _, e := range entries {
		writeDictEntry(sb, e, indent, visiting)
	}
}

func writeDictEntry(sb *strings.Builder, e entry, indent int, visiting map[uintptr]bool) {
	rv, pop, cyclic := deref(e.val, visiting)
	defer pop()
	if cyclic {
		sb.WriteString(tabs(indent) + e.key + ": ∞\n")
		return
	}
	if !rv.IsValid() {
		sb.WriteString(tabs(indent) + e.key + ": null\n")
		return
	}
	if isSimple(rv) {
		sb.WriteString(tabs(indent) + e.key + ": " + scalarText(rv) + "\n")
		return
	}
	sb.WriteString(tabs(indent) + e.key + ":\n")
	writeComposite(sb, rv, indent+1, visiting)
}

// writeSequence renders a slice/array. Homogeneous composite elements
// whose own properties are all simple render as a column-header line plus
// tab-indented rows (§6); anything else renders element by element.
func writeSequence(sb *strings.Builder, rv reflect.Value, indent int, visiting map[uintptr]bool) {
	n := rv.Len()
	if n == 0 {
		sb.WriteString(tabs(indent) + "(empty)\n")
		return
	}

	columns, rows, ok := tabularize(rv, visiting)
	if ok {
		sb.WriteString(tabs(indent) + strings.Join(columns, "\t") + "\n")
		for _, row := range rows {
			sb.WriteString(tabs(indent) + strings.Join(row, "\t") + "\n")
		}
		return
	}

	for i := 0; i < n; i++ {
		writeSequenceElem(sb, rv.Index(i), indent, visiting)
	}
}

func writeSequenceElem(sb *strings.Builder, elem reflect.Value, indent int, visiting map[uintptr]bool) {
	rv, pop, cyclic := deref(elem, visiting)
	defer pop()
	if cyclic {
		sb.WriteString(tabs(indent) + "∞\n")
		return
	}
	if !rv.IsValid() {
		sb.WriteString(tabs(indent) + "null\n")
		return
	}
	if isSimple(rv) {
		sb.WriteString(tabs(indent) + scalarText(rv) + "\n")
		return
	}
	writeComposite(sb, rv, indent, visiting)
}

// tabularize reports whether every element of rv is a struct or map with
// the same set of simple-valued properties, and if so returns the shared
// column names (struct declaration order, or sorted map keys) and one row
// of cell text per element.
func tabularize(rv reflect.Value, visiting map[uintptr]bool) ([]string, [][]string, bool) {
	n := rv.Len()
	var columns []string
	rows := make([][]string, 0, n)

	for i := 0; i < n; i++ {
		row, names, ok := tabularizeElem(rv.Index(i), visiting)
		if !ok {
			return nil, nil, false
		}
		if columns == nil {
			columns = names
		} else if !sameColumns(columns, names) {
			return nil, nil, false
		}
		rows = append(rows, row)
	}

	return columns, rows, true
}

func tabularizeElem(idx reflect.Value, visiting map[uintptr]bool) (row, names []string, ok bool) {
	elem, pop, cyclic := deref(idx, visiting)
	defer pop()
	if cyclic || !elem.IsValid() {
		return nil, nil, false
	}

	var entries []entry
	switch elem.Kind() {
	case reflect.Struct:
		entries = structEntries(elem)
	case reflect.Map:
		entries = mapEntries(elem)
	default:
		return nil, nil, false
	}

	names = make([]string, len(entries))
	row = make([]string, len(entries))
	for j, e := range entries {
		fv, fpop, fcyclic := deref(e.val, visiting)
		if fcyclic || !fv.IsValid() || !isSimple(fv) {
			fpop()
			return nil, nil, false
		}
		names[j] = e.key
		row[j] = scalarText(fv)
		fpop()
	}
	return row, names, true
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
