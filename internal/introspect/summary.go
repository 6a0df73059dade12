package introspect

import (
	"reflect"

	"github.com/agentic-research/slidescope/api"
)

// Summarize returns {"_collection_summary": {count, item_type,
// collection_type}} for a slice, array or map. Elements are never
// formatted; only the first element's type name is read. Other values
// return nil.
func Summarize(v any) Dict {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return summarizeValue(rv)
	}
	return nil
}

func summarizeValue(rv reflect.Value) Dict {
	itemType := "object"
	if rv.Len() > 0 {
		if rv.Kind() == reflect.Map {
			itemType = TypeNameOf(rv.MapIndex(sortedMapKeys(rv)[0]).Interface())
		} else {
			itemType = TypeNameOf(rv.Index(0).Interface())
		}
	}
	return Dict{api.KeySummary: Dict{
		"count":           rv.Len(),
		"item_type":       itemType,
		"collection_type": collectionKind(rv),
	}}
}

func collectionKind(rv reflect.Value) string {
	if rv.Kind() == reflect.Map {
		return "dict"
	}
	return "list"
}

// TypeNameOf names the type of v the way collection summaries report it:
// str, int, float, bool, list, dict and NoneType for builtins, TypeName()
// for Objects, and the Go type name for anything else.
func TypeNameOf(v any) string {
	if v == nil {
		return "NoneType"
	}
	if obj, ok := v.(Object); ok && !isNilObject(obj) {
		return typeNameOf(obj)
	}
	rt := reflect.TypeOf(v)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Name() != "" && rt.PkgPath() != "" {
		return rt.Name()
	}
	switch rt.Kind() {
	case reflect.String:
		return "str"
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map:
		return "dict"
	}
	return rt.String()
}

// typeNameOf calls TypeName, falling back to the Go type name if it panics.
func typeNameOf(obj Object) (name string) {
	defer func() {
		if r := recover(); r != nil {
			name = reflectName(obj)
		}
	}()
	if name = obj.TypeName(); name == "" {
		name = reflectName(obj)
	}
	return name
}

func reflectName(v any) string {
	rt := reflect.TypeOf(v)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Name() != "" {
		return rt.Name()
	}
	return rt.String()
}
