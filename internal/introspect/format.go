package introspect

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/agentic-research/slidescope/api"
)

var scalarTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:    reflect.TypeFor[bool](),
	reflect.Int:     reflect.TypeFor[int](),
	reflect.Int8:    reflect.TypeFor[int8](),
	reflect.Int16:   reflect.TypeFor[int16](),
	reflect.Int32:   reflect.TypeFor[int32](),
	reflect.Int64:   reflect.TypeFor[int64](),
	reflect.Uint:    reflect.TypeFor[uint](),
	reflect.Uint8:   reflect.TypeFor[uint8](),
	reflect.Uint16:  reflect.TypeFor[uint16](),
	reflect.Uint32:  reflect.TypeFor[uint32](),
	reflect.Uint64:  reflect.TypeFor[uint64](),
	reflect.Float32: reflect.TypeFor[float32](),
	reflect.Float64: reflect.TypeFor[float64](),
	reflect.String:  reflect.TypeFor[string](),
}

// format dispatches on the dynamic type of v: registered leaf formatter,
// nested Object, collection, scalar, then text.
func (f *Frame) format(label string, v any, depth int) (any, error) {
	if v == nil {
		return nil, nil
	}
	if fn, ok := f.engine.registry.Lookup(reflect.TypeOf(v)); ok {
		return fn(v)
	}
	if obj, ok := v.(Object); ok {
		if isNilObject(obj) {
			return nil, nil
		}
		if addr, ok := addressOf(obj); ok && f.tracked && addr == f.addr && reflect.TypeOf(obj) == f.key.typ {
			return Dict{api.KeyReference: fmt.Sprintf("Self reference to %s at %s", f.typ, hexAddr(addr))}, nil
		}
		return f.engine.Serialize(obj, f.nested(depth)), nil
	}

	switch s := v.(type) {
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return s, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return f.formatCollection(label, rv, depth), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Kind() == reflect.Pointer {
			key, addr := slot{spacePointer, rv.Type()}, uint64(rv.Pointer())
			if !f.opts.Visited.enter(key, addr) {
				return Dict{api.KeyReference: fmt.Sprintf("Circular reference to %v at %s", rv.Type(), hexAddr(addr))}, nil
			}
			defer f.opts.Visited.leave(key, addr)
		}
		return f.format(label, rv.Elem().Interface(), depth)
	}
	if base, ok := scalarTypes[rv.Kind()]; ok {
		return rv.Convert(base).Interface(), nil
	}
	return textOf(v), nil
}

func (f *Frame) formatCollection(label string, rv reflect.Value, depth int) any {
	if !f.opts.ExpandCollections || depth <= 0 {
		return summarizeValue(rv)
	}

	// Collections that contain themselves are caught like objects.
	addr, tracked := collectionAddr(rv)
	if tracked {
		key := slot{spaceCollection, rv.Type()}
		if !f.opts.Visited.enter(key, addr) {
			return Dict{api.KeyReference: fmt.Sprintf("Circular reference to %s at %s", collectionKind(rv), hexAddr(addr))}
		}
		defer f.opts.Visited.leave(key, addr)
	}

	if rv.Kind() == reflect.Map {
		out := make(Dict, rv.Len())
		for _, k := range sortedMapKeys(rv) {
			key := mapKey(out, k.Interface())
			out[key] = f.FormatAt(label+"."+key, rv.MapIndex(k).Interface(), depth)
		}
		return out
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = f.FormatAt(label+"["+strconv.Itoa(i)+"]", rv.Index(i).Interface(), depth)
	}
	return out
}

func collectionAddr(rv reflect.Value) (uint64, bool) {
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.IsNil() || rv.Len() == 0 {
			return 0, false
		}
		return uint64(rv.Pointer()), true
	}
	return 0, false
}

// textOf is the fallback representation for values with no better form.
func textOf(v any) string {
	switch t := v.(type) {
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	}
	return fmt.Sprintf("%+v", v)
}

// sortedMapKeys orders map keys by their string form, then by type name
// so keys that print alike keep a stable order.
func sortedMapKeys(rv reflect.Value) []reflect.Value {
	keys := rv.MapKeys()
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := fmt.Sprint(keys[i].Interface()), fmt.Sprint(keys[j].Interface())
		if a != b {
			return a < b
		}
		return fmt.Sprintf("%T", keys[i].Interface()) < fmt.Sprintf("%T", keys[j].Interface())
	})
	return keys
}

// mapKey is the string form of k. A key that prints like one already in
// out is qualified with its Go type, then numbered.
func mapKey(out Dict, k any) string {
	key := fmt.Sprint(k)
	if _, taken := out[key]; !taken {
		return key
	}
	typed := fmt.Sprintf("%s (%T)", key, k)
	key = typed
	for n := 2; ; n++ {
		if _, taken := out[key]; !taken {
			return key
		}
		key = fmt.Sprintf("%s #%d", typed, n)
	}
}
