package ecs

import (
	"iter"
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype holds every entity that has exactly the same set of component
// types. Each type gets its own column; an entity occupies the same slot
// index in all of them.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []componentColumn
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]componentColumn, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](16),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
	}
	return a
}

// ID returns the archetype's hash id.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types of the archetype.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// HasComponent reports whether the archetype stores t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return slices.Contains(a.types, t)
}

// Len is the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	return slices.Index(a.types, t)
}

func (a *Archetype) spawn(components []any) uint32 {
	slot := -1
	for _, comp := range components {
		idx := a.columnIndex(componentTypeOf(comp))
		if idx < 0 {
			continue
		}
		slot = a.columns[idx].Append(comp)
	}
	if slot < 0 {
		panic("ecs: spawn matched no archetype column")
	}
	return uint32(slot)
}

// component returns a pointer to the component of type t at slot, or nil.
func (a *Archetype) component(slot uint32, t reflect.Type) any {
	idx := a.columnIndex(t)
	if idx < 0 {
		return nil
	}
	return a.columns[idx].Get(int(slot))
}

func (a *Archetype) delete(slot uint32) {
	id := NewEntityId(a.id, slot)
	if wp, ok := a.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}
	for _, c := range a.columns {
		c.Delete(int(slot))
	}
}

// Iter yields the ids of all live entities in the archetype.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for slot := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(slot))) {
				return
			}
		}
	}
}
