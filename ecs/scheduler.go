package ecs

import (
	"reflect"
	"time"
)

// SchedulerStats summarises execution of every registered system.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats holds timings for one system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// storageBinder is implemented by *Query[T] and *Singleton[T].
type storageBinder interface {
	Init(storage *Storage)
}

// snapshotter is implemented by *Query[T].
type snapshotter interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []snapshotter
	stats   SystemStats
}

// Scheduler runs its systems in registration order against one storage.
type Scheduler struct {
	storage  *Storage
	systems  []*registeredSystem
	commands *Commands
}

// NewScheduler creates a scheduler for storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Register binds the system's Query and Singleton fields and appends it to
// the run order.
func (s *Scheduler) Register(system System) {
	rs := &registeredSystem{
		system: system,
		stats:  SystemStats{MinDuration: time.Duration(1<<63 - 1)},
	}

	v := reflect.ValueOf(system)
	t := v.Type()
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
		t = t.Elem()
	}
	rs.stats.Name = t.Name()

	if v.Kind() == reflect.Struct {
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			if !field.CanSet() || field.Kind() != reflect.Struct {
				continue
			}
			binder, ok := field.Addr().Interface().(storageBinder)
			if !ok {
				continue
			}
			binder.Init(s.storage)
			if q, ok := binder.(snapshotter); ok {
				rs.queries = append(rs.queries, q)
			}
		}
	}

	s.systems = append(s.systems, rs)
}

// Once runs every system a single time with the given delta, then flushes
// the commands they queued.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage, s.commands)

	for _, rs := range s.systems {
		start := time.Now()
		for _, q := range rs.queries {
			q.Execute()
		}
		rs.system.Execute(frame)
		rs.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
}

func (rs *registeredSystem) record(d time.Duration) {
	st := &rs.stats
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	st.MinDuration = min(st.MinDuration, d)
	st.MaxDuration = max(st.MaxDuration, d)
}

// Stats returns a copy of the per-system timings.
func (s *Scheduler) Stats() SchedulerStats {
	out := SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, rs := range s.systems {
		st := rs.stats
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		}
		out.Systems[i] = st
		out.TotalExecutions += st.ExecutionCount
	}
	return out
}
