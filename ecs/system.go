package ecs

// System is one unit of per-pass behaviour. Query and Singleton fields of a
// system struct are bound by the Scheduler on registration; other fields are
// the system's own state and persist between passes.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function into a System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) { f(frame) }

// RunCondition gates a system; it is evaluated right before the system would run.
type RunCondition func(storage *Storage) bool
