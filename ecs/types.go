package ecs

import (
	"reflect"
	"slices"
	"strings"
	"unsafe"
)

// iface mirrors the runtime layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// dataPointer returns the pointer stored in an interface holding a pointer.
func dataPointer(v any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&v)).data
}

// componentTypeOf resolves the component type of a value, unwrapping one
// level of pointer. Maps, channels, funcs and pointer-to-pointer are rejected.
func componentTypeOf(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("ecs: components cannot be pointers, maps, channels, or functions")
	}
	return t
}

// sortTypes orders component types by name so that the same set always
// hashes to the same archetype.
func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
}

// componentTypes extracts and sorts the component types of a spawn call.
func componentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		types = append(types, componentTypeOf(comp))
	}
	sortTypes(types)
	return types
}

// archetypeHash is FNV-1a over the runtime type pointers of sorted types.
func archetypeHash(types []reflect.Type) uint32 {
	const (
		offset uint32 = 2166136261
		prime  uint32 = 16777619
	)

	h := offset
	for _, t := range types {
		p := uintptr((*iface)(unsafe.Pointer(&t)).data)
		v := uint32(p)
		if unsafe.Sizeof(p) == 8 {
			v ^= uint32(uint64(p) >> 32)
		}
		h ^= v
		h *= prime
	}
	// Zero is reserved so that a zero EntityId never names a live entity.
	if h == 0 {
		h = prime
	}
	return h
}
