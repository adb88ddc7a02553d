package ecs_test

import (
	"testing"

	"github.com/plus3/spritewalk/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	storage.Spawn(Position{X: 3, Y: 4}, Velocity{DX: 1, DY: 1})
	storage.Spawn(Position{X: 5, Y: 6}, Velocity{DX: 1.5, DY: 1.5}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 7, Y: 8})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	t.Run("panics without execute", func(t *testing.T) {
		assert.Panics(t, func() {
			for range query.Iter() {
			}
		})
		assert.Panics(t, func() { query.First() })
	})

	t.Run("execute builds snapshot", func(t *testing.T) {
		query.Execute()
		assert.Equal(t, 3, query.Len())

		count := 0
		for range query.Iter() {
			count++
		}
		assert.Equal(t, 3, count)
	})

	t.Run("new archetypes are picked up", func(t *testing.T) {
		storage.Spawn(Position{}, Velocity{}, Name("late"))
		query.Execute()
		assert.Equal(t, 4, query.Len())
	})

	t.Run("snapshot holds live pointers", func(t *testing.T) {
		query.Execute()
		for item := range query.Iter() {
			item.Position.X = 42
		}
		query.Execute()
		for item := range query.Iter() {
			assert.Equal(t, float32(42), item.Position.X)
		}
	})
}

func TestQueryFirst(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	query := ecs.NewQuery[struct {
		ecs.EntityId
		*Position
		*Controlled
	}](storage)

	query.Execute()
	_, ok := query.First()
	assert.False(t, ok)

	id := storage.Spawn(Position{X: 4}, Controlled{})
	query.Execute()

	item, ok := query.First()
	require.True(t, ok)
	assert.Equal(t, id, item.EntityId)
	assert.Equal(t, float32(4), item.Position.X)
}
