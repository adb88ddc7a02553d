package ecs

// Commands buffers structural changes requested while systems run. The
// scheduler applies them once every system of the frame has executed.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues removal of an entity.
func (c *Commands) Delete(id EntityId) {
	c.deletes = append(c.deletes, id)
}

// Defer queues fn to run after the structural changes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending is the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies deletes, then spawns, then deferred calls, and resets the
// buffer.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}
	for _, comps := range c.spawns {
		storage.Spawn(comps...)
	}
	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
}
