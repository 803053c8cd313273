package ecs

// UpdateFrame is what a system sees during one scheduler pass.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		Commands: newCommands(),
		Storage:  storage,
	}
}
