package ecs

// System is a unit of per-frame behaviour. Query and Singleton fields on the
// system struct are bound automatically by Scheduler.Register; any other
// fields are private state that persists between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
