package xmp

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/zoobzio/sentinel"
)

// Of converts a Go value into a Value. Checks run in order and the first
// match wins:
//
//   - Value                       → itself
//   - nil, nil pointer            → Null
//   - Marshaler                   → result of MarshalXMP
//   - DateLike, time.Time         → Date
//   - bool                        → Bool
//   - integer and float kinds     → Number
//   - string kinds                → String
//   - *Structure, Structure       → Structure
//   - slice, array                → Sequence
//   - map with string keys        → Structure, keys sorted
//   - struct                      → Structure, see FromStruct
//   - anything else               → Unsupported
func Of(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return Null()
	}

	switch x := v.(type) {
	case Marshaler:
		return marshal(x)
	case DateLike:
		return Date(x)
	case time.Time:
		return Time(x)
	case *time.Time:
		return Time(*x)
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int64:
		return Int(x)
	case float64:
		return Float(x)
	case string:
		return String(x)
	case *Structure:
		return Struct(x)
	case Structure:
		return Struct(&x)
	case []any:
		return Seq(x...)
	case []Value:
		return Value{kind: KindSequence, seq: x}
	}

	return ofReflect(rv)
}

// ofReflect handles named and composite types by kind.
func ofReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Ptr:
		return Of(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint())
	case reflect.Float32:
		f := rv.Float()
		v := Float(f)
		if v.kind == KindNumber && f != 0 {
			v.text = strconv.FormatFloat(f, 'f', -1, 32)
		}
		return v
	case reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Slice:
		if rv.IsNil() {
			return Null()
		}
		fallthrough
	case reflect.Array:
		seq := make([]Value, rv.Len())
		for i := range seq {
			seq[i] = Of(rv.Index(i).Interface())
		}
		return Value{kind: KindSequence, seq: seq}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Unsupported(rv.Interface())
		}
		if rv.IsNil() {
			return Null()
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})
		st := NewStructure()
		for _, k := range keys {
			st.Set(k.String(), rv.MapIndex(k).Interface())
		}
		return Struct(st)
	case reflect.Struct:
		rt := rv.Type()
		plan := planFor(rt, func() sentinel.Metadata { return scanType(rt) })
		return Struct(plan.structure(rv))
	}
	return Unsupported(rv.Interface())
}

// FromStruct converts a struct into a Structure using its `xmp` tags.
//
// Fields are emitted in declaration order. The tag names the property
// (`xmp:"dc:title"`); untagged exported fields use the Go field name,
// `xmp:"-"` skips a field, and the omitempty option leaves out zero values.
// T must be a struct type or implement Marshaler with a Structure result.
func FromStruct[T any](v T) (*Structure, error) {
	if m, ok := any(v).(Marshaler); ok {
		out, err := m.MarshalXMP()
		if err != nil {
			return nil, &UnsupportedValueError{Value: v, Cause: err}
		}
		st, ok := out.AsStructure()
		if !ok {
			return nil, &UnsupportedValueError{Value: v}
		}
		return st, nil
	}

	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, &UnsupportedValueError{Value: v}
	}
	plan := planFor(rt, sentinel.Scan[T])
	return plan.structure(reflect.ValueOf(v)), nil
}
