package ecs

import (
	"iter"
	"reflect"
	"unsafe"
	"weak"
)

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// Storage owns all archetypes and singletons of one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

// NewStorage creates an empty world backed by registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Registry returns the component registry the storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := archetypeHash(types)
	a, ok := s.archetypes[id]
	if !ok {
		a = newArchetype(id, types, s.registry)
		s.archetypes[id] = a
	}
	return a
}

// Spawn creates an entity from the given components. Values and pointers to
// values are both accepted; pointers are copied.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}
	a := s.archetypeFor(componentTypes(components))
	return NewEntityId(a.id, a.spawn(components))
}

// Delete removes the entity and invalidates any EntityRef pointing at it.
func (s *Storage) Delete(id EntityId) {
	if a, ok := s.archetypes[id.ArchetypeId()]; ok {
		a.delete(id.Index())
	}
}

// Exists reports whether id names a live entity.
func (s *Storage) Exists(id EntityId) bool {
	a, ok := s.archetypes[id.ArchetypeId()]
	if !ok || len(a.columns) == 0 {
		return false
	}
	return a.columns[0].Has(int(id.Index()))
}

// GetComponent returns a pointer to the component of type t, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	a, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return a.component(id.Index(), t)
}

// HasComponent reports whether the entity's archetype stores t.
func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	a, ok := s.archetypes[id.ArchetypeId()]
	return ok && a.HasComponent(t)
}

// GetArchetypeById returns the archetype with the given id, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// Archetypes iterates every archetype in unspecified order.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, a := range s.archetypes {
			if !yield(a) {
				return
			}
		}
	}
}

// CreateEntityRef returns the shared ref for id, creating it when needed.
// Returns nil when the entity does not exist.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	if !s.Exists(id) {
		return nil
	}
	a := s.archetypes[id.ArchetypeId()]

	if wp, ok := a.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			return ref
		}
		a.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: a}
	a.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current id of ref and whether it is alive.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Alive() {
		return 0, false
	}
	return ref.Id, true
}

// AddSingleton stores value as the world-wide instance of its type,
// replacing any previous instance.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if t == nil {
		panic("ecs: nil singleton")
	}
	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[t] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton fills out, which must be a **T, with a pointer to the stored
// singleton of type T. It returns false if no such singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton expects a pointer to a pointer")
	}
	entry := s.singletons[v.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	v.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ComponentReader is satisfied by anything that can look up components by id.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent is the typed form of GetComponent. Returns nil when absent.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	comp, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return comp
}
