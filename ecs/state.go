package ecs

// State is a singleton holding the current value of a finite state machine
// (menu, playing, game over...). Set only queues the change; it takes effect
// when the StateTransitions system for S runs.
type State[S comparable] struct {
	current S
	next    S
	pending bool
	entered bool
}

// NewState adds the State[S] singleton with the given initial state.
func NewState[S comparable](storage *Storage, initial S) *Singleton[State[S]] {
	return NewSingleton(storage, State[S]{current: initial})
}

// Current returns the active state.
func (s *State[S]) Current() S {
	return s.current
}

// Set queues a transition to next. The last call before the transition wins.
func (s *State[S]) Set(next S) {
	s.next = next
	s.pending = true
}

// Pending returns the queued state, if any.
func (s *State[S]) Pending() (S, bool) {
	return s.next, s.pending
}

// InState is a RunCondition that holds while State[S] is want.
func InState[S comparable](want S) RunCondition {
	return func(storage *Storage) bool {
		var state *State[S]
		if !storage.ReadSingleton(&state) {
			return false
		}
		return state.current == want
	}
}

// TransitionHook runs inside the StateTransitions pass; structural changes go
// through frame.Commands like in any system.
type TransitionHook func(frame *UpdateFrame)

// StateTransitions applies queued State[S] changes, running the OnExit hooks
// of the old state and then the OnEnter hooks of the new one. On its first
// pass it runs the OnEnter hooks of the initial state. Register it last so
// every system of a pass sees the same state.
type StateTransitions[S comparable] struct {
	State Singleton[State[S]]

	onEnter map[S][]TransitionHook
	onExit  map[S][]TransitionHook
	changes int
}

// NewStateTransitions creates an empty transition table.
func NewStateTransitions[S comparable]() *StateTransitions[S] {
	return &StateTransitions[S]{
		onEnter: make(map[S][]TransitionHook),
		onExit:  make(map[S][]TransitionHook),
	}
}

// OnEnter adds a hook run when state becomes active.
func (t *StateTransitions[S]) OnEnter(state S, hook TransitionHook) *StateTransitions[S] {
	t.onEnter[state] = append(t.onEnter[state], hook)
	return t
}

// OnExit adds a hook run when state stops being active.
func (t *StateTransitions[S]) OnExit(state S, hook TransitionHook) *StateTransitions[S] {
	t.onExit[state] = append(t.onExit[state], hook)
	return t
}

// Changes returns the number of transitions applied so far.
func (t *StateTransitions[S]) Changes() int {
	return t.changes
}

func (t *StateTransitions[S]) Execute(frame *UpdateFrame) {
	state := t.State.Get()
	if state == nil {
		return
	}

	if !state.entered {
		state.entered = true
		for _, hook := range t.onEnter[state.current] {
			hook(frame)
		}
	}

	if !state.pending {
		return
	}
	state.pending = false

	prev, next := state.current, state.next
	if prev == next {
		return
	}

	for _, hook := range t.onExit[prev] {
		hook(frame)
	}
	state.current = next
	t.changes++
	for _, hook := range t.onEnter[next] {
		hook(frame)
	}
}
