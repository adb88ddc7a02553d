package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View matches entities against a struct of component pointers. T must be a
// struct whose fields are all pointers to component types, for example
//
//	struct {
//		*Position
//		*Sprite
//		Tint *Tint `ecs:"optional"`
//	}
//
// Embedded fields are required. Named fields may be tagged optional, in
// which case they are nil for entities that lack the component. A field of
// type EntityId receives the id of the matched entity.
type View[T any] struct {
	storage  *Storage
	types    []reflect.Type
	optional []bool
	offsets  []uintptr

	idOffset uintptr
	hasId    bool
}

var entityIdType = reflect.TypeFor[EntityId]()

// NewView inspects T and returns a view over storage.
func NewView[T any](storage *Storage) *View[T] {
	st := reflect.TypeFor[T]()
	if st.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}
		if field.Type.Kind() != reflect.Pointer {
			panic("ecs: View struct fields must be pointer types")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic(`ecs: invalid ecs tag value "` + tag + `" (only "optional" is supported)`)
			}
			optional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, optional)
		v.offsets = append(v.offsets, field.Offset)
	}
	return v
}

func (v *View[T]) matches(a *Archetype) bool {
	for i, t := range v.types {
		if !v.optional[i] && !a.HasComponent(t) {
			return false
		}
	}
	return true
}

// columnsFor maps each view field to a column of a, or -1 when absent.
func (v *View[T]) columnsFor(a *Archetype) []int {
	cols := make([]int, len(v.types))
	for i, t := range v.types {
		cols[i] = a.columnIndex(t)
	}
	return cols
}

// populate writes component pointers for slot into the struct at dst.
func (v *View[T]) populate(dst unsafe.Pointer, a *Archetype, slot int, cols []int) bool {
	if v.hasId {
		*(*EntityId)(unsafe.Add(dst, v.idOffset)) = NewEntityId(a.id, uint32(slot))
	}
	for i, col := range cols {
		field := (*unsafe.Pointer)(unsafe.Add(dst, v.offsets[i]))

		var comp any
		if col >= 0 {
			comp = a.columns[col].Get(slot)
		}
		if comp == nil {
			if !v.optional[i] {
				return false
			}
			*field = nil
			continue
		}
		*field = dataPointer(comp)
	}
	return true
}

// Fill populates out for id. It returns false when the entity is missing a
// required component.
func (v *View[T]) Fill(id EntityId, out *T) bool {
	a, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return v.populate(unsafe.Pointer(out), a, int(id.Index()), v.columnsFor(a))
}

// Get returns the populated struct for id, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var out T
	if !v.Fill(id, &out) {
		return nil
	}
	return &out
}

// GetRef is Get for an EntityRef.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) iterArchetype(a *Archetype, yield func(T) bool) bool {
	if len(a.columns) == 0 {
		return true
	}
	cols := v.columnsFor(a)

	var out T
	dst := unsafe.Pointer(&out)
	for slot := range a.columns[0].Iter() {
		if !v.populate(dst, a, slot, cols) {
			continue
		}
		if !yield(out) {
			return false
		}
	}
	return true
}

// Iter yields the populated struct of every matching entity.
func (v *View[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, a := range v.storage.archetypes {
			if !v.matches(a) {
				continue
			}
			if !v.iterArchetype(a, yield) {
				return
			}
		}
	}
}
