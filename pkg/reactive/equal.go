package reactive

import (
	"math"
	"reflect"
)

// sameValue reports whether a and b are the same value. Reference kinds
// compare by identity, NaN equals NaN.
func sameValue(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && (av == bv || math.IsNaN(av) && math.IsNaN(bv))
	case float32:
		bv, ok := b.(float32)
		return ok && (av == bv || av != av && bv != bv)
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case *Object:
		bv, ok := b.(*Object)
		return ok && av == bv
	case *List:
		bv, ok := b.(*List)
		return ok && av == bv
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !vb.IsValid() || va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Func:
		return va.IsNil() && vb.IsNil()
	}
	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return reflect.DeepEqual(a, b)
}

// isObject reports whether v is a reference value that may change without
// changing identity.
func isObject(v any) bool {
	switch v.(type) {
	case nil:
		return false
	case *Object, *List:
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer:
		return !rv.IsNil()
	}
	return false
}
