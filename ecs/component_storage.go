package ecs

import (
	"iter"
	"reflect"
)

// componentColumn is the type-erased storage for one component type within
// one archetype. Slot indices are stable until the slot is deleted.
type componentColumn interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry maps component types to column factories. Each Storage
// owns its registry, so independent worlds never share type state.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentColumn
}

// NewComponentRegistry returns an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentColumn),
	}
}

// RegisterComponent makes T usable as a component in storages built from r.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentColumn {
		return &column[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) componentColumn {
	factory, ok := r.factories[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return factory()
}

const blockSize = 64

type block[T any] struct {
	values [blockSize]T
	filled [blockSize]bool
}

// column stores values of T in fixed-size blocks so that pointers handed out
// by Get stay valid while the column grows.
type column[T any] struct {
	blocks []*block[T]
	free   []int
	next   int
	live   int
}

func (c *column[T]) locate(index int) (*block[T], int, bool) {
	if index < 0 || index >= c.next {
		return nil, 0, false
	}
	b := c.blocks[index/blockSize]
	return b, index % blockSize, true
}

func (c *column[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		index = c.next
		c.next++
		if index/blockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, &block[T]{})
		}
	}

	b, slot, _ := c.locate(index)
	b.values[slot] = value
	b.filled[slot] = true
	c.live++
	return index
}

func (c *column[T]) Get(index int) any {
	b, slot, ok := c.locate(index)
	if !ok || !b.filled[slot] {
		return nil
	}
	return &b.values[slot]
}

func (c *column[T]) Delete(index int) {
	b, slot, ok := c.locate(index)
	if !ok || !b.filled[slot] {
		return
	}
	var zero T
	b.values[slot] = zero
	b.filled[slot] = false
	c.free = append(c.free, index)
	c.live--
}

func (c *column[T]) Has(index int) bool {
	b, slot, ok := c.locate(index)
	return ok && b.filled[slot]
}

func (c *column[T]) Len() int {
	return c.live
}

func (c *column[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.next; i++ {
			b := c.blocks[i/blockSize]
			if !b.filled[i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
