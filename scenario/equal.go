package scenario

import (
	"reflect"
	"unsafe"
)

// sameValue compares two values that may not be comparable with ==.
// Functions are equal only when they are the same function value: two
// closures of one literal with different captured variables differ.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	if va.Kind() == reflect.Func {
		return funcValue(a) == funcValue(b)
	}

	if va.Comparable() && vb.Comparable() {
		return a == b
	}

	return reflect.DeepEqual(a, b)
}

// funcValue returns the data word of an interface holding a func. It points
// at the closure, not at the code.
func funcValue(v any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1]
}

func sameElements[E any](a, b []E) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !sameValue(a[i], b[i]) {
			return false
		}
	}

	return true
}
