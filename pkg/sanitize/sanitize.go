// Package sanitize replaces non-finite floats with null so payloads always encode as JSON.
package sanitize

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
)

// Float returns nil for NaN and ±Inf, otherwise a pointer to v.
func Float(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Finite returns v, or 0 when v is NaN or ±Inf.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Value walks v and returns a JSON-ready tree where every non-finite float is nil.
// Structs are converted to maps keyed by their json tag names; values implementing
// json.Marshaler are kept as-is.
func Value(v any) any {
	if v == nil {
		return nil
	}
	return walk(reflect.ValueOf(v))
}

var marshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()

func walk(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface && rv.Type().Implements(marshalerType) {
		return rv.Interface()
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return walk(rv.Elem())
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[mapKey(iter.Key())] = walk(iter.Value())
		}
		return out
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Interface()
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = walk(rv.Index(i))
		}
		return out
	case reflect.Struct:
		return walkStruct(rv)
	default:
		return rv.Interface()
	}
}

func walkStruct(rv reflect.Value) any {
	rt := rv.Type()
	out := make(map[string]any, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty, skip := parseTag(field)
		if skip {
			continue
		}
		fv := rv.Field(i)
		if field.Anonymous && field.Tag.Get("json") == "" {
			if nested, ok := walk(fv).(map[string]any); ok {
				for k, v := range nested {
					out[k] = v
				}
				continue
			}
		}
		if omitEmpty && fv.IsZero() {
			continue
		}
		out[name] = walk(fv)
	}
	return out
}

func parseTag(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name = field.Name
	if tag == "" {
		return name, false, false
	}
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	b, err := json.Marshal(k.Interface())
	if err != nil {
		return ""
	}
	return strings.Trim(string(b), `"`)
}
