package ecs

import (
	"cmp"
	"reflect"
	"slices"
)

// StorageStats is a point-in-time census of a storage.
type StorageStats struct {
	TotalEntityCount   int
	ArchetypeCount     int
	SingletonCount     int
	SingletonTypes     []string
	ArchetypeBreakdown []ArchetypeStats
}

// ArchetypeStats describes one archetype.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []reflect.Type
	EntityCount    int
}

// CollectStats counts entities per archetype. The breakdown is sorted by
// entity count, largest first; singleton type names are sorted by name.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		ArchetypeCount: len(s.archetypes),
		SingletonCount: len(s.singletons),
	}
	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	slices.Sort(stats.SingletonTypes)

	for _, a := range s.archetypes {
		n := a.Len()
		stats.TotalEntityCount += n
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             a.id,
			ComponentTypes: a.types,
			EntityCount:    n,
		})
	}
	slices.SortFunc(stats.ArchetypeBreakdown, func(a, b ArchetypeStats) int {
		if c := cmp.Compare(b.EntityCount, a.EntityCount); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return stats
}
