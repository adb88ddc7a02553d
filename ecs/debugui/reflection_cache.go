package debugui

import (
	"reflect"
	"sync"
)

// Field describes one exported field as the inspector shows it.
type Field struct {
	Name  string
	Index int
	Type  reflect.Type
	Kind  FieldKind
}

// FieldKind groups reflect kinds by the widget used to edit them.
type FieldKind int

const (
	KindOther FieldKind = iota
	KindInt
	KindUint
	KindFloat
	KindBool
	KindString
	KindStruct
)

func kindOf(t reflect.Type) FieldKind {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Bool:
		return KindBool
	case reflect.String:
		return KindString
	case reflect.Struct:
		return KindStruct
	}
	return KindOther
}

var fieldCache sync.Map // reflect.Type -> []Field

// Fields lists the exported fields of struct type t. Results are cached per
// type; non-struct types have no fields.
func Fields(t reflect.Type) []Field {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]Field)
	}

	var fields []Field
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			fields = append(fields, Field{
				Name:  f.Name,
				Index: i,
				Type:  f.Type,
				Kind:  kindOf(f.Type),
			})
		}
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]Field)
}

// setField stores v into dst, converting between numeric kinds. It reports
// whether dst changed. Negative values are refused for unsigned fields.
func setField(dst reflect.Value, v any) bool {
	if !dst.CanSet() {
		return false
	}
	switch kindOf(dst.Type()) {
	case KindInt:
		n, ok := v.(int64)
		if !ok || dst.OverflowInt(n) {
			return false
		}
		dst.SetInt(n)
	case KindUint:
		n, ok := v.(int64)
		if !ok || n < 0 || dst.OverflowUint(uint64(n)) {
			return false
		}
		dst.SetUint(uint64(n))
	case KindFloat:
		f, ok := v.(float64)
		if !ok {
			return false
		}
		dst.SetFloat(f)
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return false
		}
		dst.SetBool(b)
	case KindString:
		s, ok := v.(string)
		if !ok {
			return false
		}
		dst.SetString(s)
	default:
		return false
	}
	return true
}
