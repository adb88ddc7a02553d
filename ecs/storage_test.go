package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/spritewalk/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{1, 0},
		{0, 1},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Name("hero"))
	assert.NotZero(t, id.ArchetypeId())
	assert.True(t, storage.Exists(id))

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, float32(3), pos.X)
	assert.Equal(t, float32(4), pos.Y)

	name := ecs.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, Name("hero"), *name)

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
	assert.Nil(t, storage.GetComponent(id, reflect.TypeFor[Velocity]()))
}

func TestSpawnWithoutComponentsPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	assert.Panics(t, func() { storage.Spawn() })
}

func TestSpawnUnregisteredPanics(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	assert.Panics(t, func() { storage.Spawn(Position{}) })
}

func TestSameComponentsShareArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	b := storage.Spawn(Velocity{DX: 2}, Position{X: 2})
	c := storage.Spawn(Position{X: 3})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.ArchetypeId(), c.ArchetypeId())
	assert.NotEqual(t, a.Index(), b.Index())
}

func TestComponentMutation(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1, Y: 1})
	ecs.ReadComponent[Position](storage, id).X = 10

	assert.Equal(t, float32(10), ecs.ReadComponent[Position](storage, id).X)
}

func TestDeleteKeepsOtherIndicesStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ids := make([]ecs.EntityId, 4)
	for i := range ids {
		ids[i] = storage.Spawn(Position{X: float32(i)}, Velocity{})
	}

	storage.Delete(ids[1])
	assert.False(t, storage.Exists(ids[1]))
	assert.Nil(t, ecs.ReadComponent[Position](storage, ids[1]))

	for _, i := range []int{0, 2, 3} {
		pos := ecs.ReadComponent[Position](storage, ids[i])
		require.NotNil(t, pos)
		assert.Equal(t, float32(i), pos.X)
	}

	reused := storage.Spawn(Position{X: 99}, Velocity{})
	assert.Equal(t, ids[1].Index(), reused.Index())
	assert.Equal(t, float32(99), ecs.ReadComponent[Position](storage, reused).X)
}

func TestManyEntitiesCrossBlocks(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var ids []ecs.EntityId
	for i := range 200 {
		ids = append(ids, storage.Spawn(Score(i)))
	}
	first := ecs.ReadComponent[Score](storage, ids[0])

	for i, id := range ids {
		assert.Equal(t, Score(i), *ecs.ReadComponent[Score](storage, id))
	}
	// pointers from earlier blocks survive growth
	assert.Equal(t, Score(0), *first)
}

func TestHasComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{}, Controlled{})

	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Position]()))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Controlled]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Health]()))
}

func TestEntityRefLifecycle(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1, Y: 2})
	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)
	assert.Same(t, ref, storage.CreateEntityRef(id))

	resolved, ok := storage.ResolveEntityRef(ref)
	assert.True(t, ok)
	assert.Equal(t, id, resolved)

	storage.Delete(id)
	assert.False(t, ref.Alive())
	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok)

	assert.Nil(t, storage.CreateEntityRef(id))
	_, ok = storage.ResolveEntityRef(nil)
	assert.False(t, ok)
}

type Clock struct {
	Ticks uint32
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var clock *Clock
	assert.False(t, storage.ReadSingleton(&clock))

	s := ecs.NewSingleton[Clock](storage, Clock{Ticks: 5})
	require.True(t, s.Exists())
	assert.Equal(t, uint32(5), s.Get().Ticks)

	require.True(t, storage.ReadSingleton(&clock))
	clock.Ticks = 9
	assert.Equal(t, uint32(9), s.Get().Ticks)

	// a second accessor does not overwrite the stored value
	again := ecs.NewSingleton[Clock](storage, Clock{Ticks: 100})
	assert.Equal(t, uint32(9), again.Get().Ticks)

	assert.Panics(t, func() { storage.ReadSingleton(clock) })
}

func TestSingletonBeforeAdd(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var s ecs.Singleton[Clock]
	s.Init(storage)
	assert.Nil(t, s.Get())

	storage.AddSingleton(Clock{Ticks: 1})
	require.NotNil(t, s.Get())
	assert.Equal(t, uint32(1), s.Get().Ticks)
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.ArchetypeCount)

	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Health{})
	storage.AddSingleton(Clock{})

	stats = storage.CollectStats()
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Clock"}, stats.SingletonTypes)
	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount)
	assert.Len(t, stats.ArchetypeBreakdown[0].ComponentTypes, 2)
	assert.Equal(t, 1, stats.ArchetypeBreakdown[1].EntityCount)
}
