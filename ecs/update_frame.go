package ecs

// UpdateFrame is handed to every system on each scheduler pass.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  commands,
		Storage:   storage,
	}
}
