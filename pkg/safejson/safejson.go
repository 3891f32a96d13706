package safejson

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	circularMarker  = "[Circular]"
	depthMarker     = "[MaxDepth]"
	truncatedSuffix = "…(truncated)"
)

// Limits bound the work done and the size of the produced text.
type Limits struct {
	MaxDepth int
	MaxItems int
	MaxBytes int
}

// DefaultLimits keeps a serialized value well under a single 4 KiB log line.
var DefaultLimits = Limits{
	MaxDepth: 10,
	MaxItems: 100,
	MaxBytes: 2048,
}

// Stringify renders v with DefaultLimits.
func Stringify(v any) string {
	return StringifyWithLimits(v, DefaultLimits)
}

// StringifyWithLimits renders v as JSON text bounded by l.
// Non-positive limits fall back to the matching DefaultLimits value.
func StringifyWithLimits(v any, l Limits) (out string) {
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultLimits.MaxDepth
	}
	if l.MaxItems <= 0 {
		l.MaxItems = DefaultLimits.MaxItems
	}
	if l.MaxBytes <= 0 {
		l.MaxBytes = DefaultLimits.MaxBytes
	}

	defer func() {
		if r := recover(); r != nil {
			out = strconv.Quote(fmt.Sprintf("[unserializable: %v]", r))
		}
	}()

	w := &walker{limits: l, path: make(map[uintptr]struct{})}
	tree := w.walk(reflect.ValueOf(v), 0)

	b, err := json.Marshal(tree)
	if err != nil {
		return strconv.Quote(fmt.Sprintf("[unserializable: %v]", err))
	}
	return truncate(string(b), l.MaxBytes)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncatedSuffix
}

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	errorType         = reflect.TypeFor[error]()
)

// walker converts a value into a tree of JSON-safe primitives, maps and
// slices. path holds the addresses of the containers currently being walked,
// so only true cycles are flagged, not shared references.
type walker struct {
	limits Limits
	path   map[uintptr]struct{}
}

func (w *walker) walk(v reflect.Value, depth int) any {
	if !v.IsValid() {
		return nil
	}
	if depth > w.limits.MaxDepth {
		return depthMarker
	}

	if out, ok := w.custom(v); ok {
		return out
	}

	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return f
	case reflect.Complex64, reflect.Complex128:
		return fmt.Sprint(v.Complex())
	case reflect.String:
		return v.String()
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return w.walk(v.Elem(), depth)
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return w.enter(v.Pointer(), func() any { return w.walk(v.Elem(), depth+1) })
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		return w.enter(v.Pointer(), func() any { return w.walkMap(v, depth) })
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Bytes()
		}
		return w.enter(v.Pointer(), func() any { return w.walkList(v, depth) })
	case reflect.Array:
		return w.walkList(v, depth)
	case reflect.Struct:
		return w.walkStruct(v, depth)
	default:
		return fmt.Sprintf("[%s]", v.Kind())
	}
}

// enter walks a reference-typed container unless it is already on the path.
func (w *walker) enter(addr uintptr, fn func() any) any {
	if _, seen := w.path[addr]; seen {
		return circularMarker
	}
	w.path[addr] = struct{}{}
	defer delete(w.path, addr)
	return fn()
}

// custom honors the value's own serialization, if it has one.
func (w *walker) custom(v reflect.Value) (any, bool) {
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, false
	}
	if !v.CanInterface() {
		return nil, false
	}
	t := v.Type()

	switch {
	case t.Implements(jsonMarshalerType):
		b, err := marshalCustom(v.Interface().(json.Marshaler))
		if err != nil {
			return nil, false
		}
		return json.RawMessage(b), true
	case t.Implements(textMarshalerType):
		b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, false
		}
		return string(b), true
	case t.Implements(errorType):
		return v.Interface().(error).Error(), true
	}
	return nil, false
}

func marshalCustom(m json.Marshaler) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("marshal panic: %v", r)
		}
	}()
	b, err = m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("invalid JSON from %T", m)
	}
	return b, nil
}

func (w *walker) walkMap(v reflect.Value, depth int) any {
	out := make(map[string]any, min(v.Len(), w.limits.MaxItems))
	iter := v.MapRange()
	n := 0
	for iter.Next() {
		if n == w.limits.MaxItems {
			out["[+more]"] = fmt.Sprintf("%d more", v.Len()-n)
			break
		}
		out[mapKey(iter.Key())] = w.walk(iter.Value(), depth+1)
		n++
	}
	return out
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if k.CanInterface() {
		if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
			if b, err := tm.MarshalText(); err == nil {
				return string(b)
			}
		}
		return fmt.Sprint(k.Interface())
	}
	return fmt.Sprintf("[%s]", k.Kind())
}

func (w *walker) walkList(v reflect.Value, depth int) any {
	n := v.Len()
	limit := min(n, w.limits.MaxItems)
	out := make([]any, 0, limit+1)
	for i := range limit {
		out = append(out, w.walk(v.Index(i), depth+1))
	}
	if n > limit {
		out = append(out, fmt.Sprintf("[+%d more]", n-limit))
	}
	return out
}

func (w *walker) walkStruct(v reflect.Value, depth int) any {
	out := make(map[string]any)
	w.collectFields(v, depth, out)
	return out
}

// collectFields writes v's exported fields into out. Fields promoted from
// embedded structs never shadow a field declared at a shallower level.
func (w *walker) collectFields(v reflect.Value, depth int, out map[string]any) {
	promoted := make(map[string]any)
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		fv := v.Field(i)

		name, omitEmpty, skip := fieldName(f)
		if skip {
			continue
		}

		// Embedded structs are flattened, like encoding/json does.
		if f.Anonymous && f.Tag.Get("json") == "" {
			switch {
			case f.Type.Kind() == reflect.Struct:
				w.collectFields(fv, depth, promoted)
				continue
			case f.Type.Kind() == reflect.Pointer && f.Type.Elem().Kind() == reflect.Struct:
				if !fv.IsNil() {
					w.collectEmbedded(f.Name, fv, depth+1, promoted)
				}
				continue
			}
		}

		if !f.IsExported() {
			continue
		}
		if omitEmpty && fv.IsZero() {
			continue
		}
		if _, exists := out[name]; exists {
			continue
		}
		out[name] = w.walk(fv, depth+1)
	}

	for name, val := range promoted {
		if _, exists := out[name]; !exists {
			out[name] = val
		}
	}
}

// collectEmbedded flattens the struct behind an embedded pointer. The pointer
// takes part in cycle detection and counts as one level of depth.
func (w *walker) collectEmbedded(name string, ptr reflect.Value, depth int, out map[string]any) {
	marker := w.enter(ptr.Pointer(), func() any {
		if depth > w.limits.MaxDepth {
			return depthMarker
		}
		w.collectFields(ptr.Elem(), depth, out)
		return nil
	})
	if marker == nil {
		return
	}
	if _, exists := out[name]; !exists {
		out[name] = marker
	}
}

func fieldName(f reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	for opt := range strings.SplitSeq(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}
