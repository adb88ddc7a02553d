package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton gives typed access to a world-wide component that does not
// belong to any entity, such as a clock or input state. As a system field it
// is bound by the Scheduler on registration.
type Singleton[T any] struct {
	storage *Storage
	ptr     unsafe.Pointer
}

// NewSingleton returns an accessor for T, storing initializer (or the zero
// value) first if the storage has no T yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.refresh()
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.dataPtr
	}
}

// Get returns the singleton, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	return (*T)(s.ptr)
}

// Exists reports whether the singleton has been added.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
