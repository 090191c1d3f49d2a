package visibility

import "sync"

// State is the host page's visibility state.
type State string

const (
	// Visible means the host page is currently visible.
	Visible State = "visible"
	// Hidden means the host page is currently hidden.
	Hidden State = "hidden"
)

// Signal is a readable visibility state with change subscription.
// Implementations are provided by the host environment.
type Signal interface {
	// State returns the current visibility state.
	State() State
	// Subscribe registers an observer called on every state change.
	// The returned cancel function removes the observer.
	Subscribe(fn func(State)) (cancel func())
}

// Static is a Signal pinned to a fixed state. It never notifies.
// Use Static(Visible) for hosts without a visibility concept.
type Static State

// State returns the fixed state.
func (s Static) State() State { return State(s) }

// Subscribe registers nothing; the state never changes.
func (s Static) Subscribe(func(State)) (cancel func()) {
	return func() {}
}

// observer pairs a subscription id with its callback so cancellation
// can remove exactly one entry while keeping registration order.
type observer struct {
	id int
	fn func(State)
}

// Simulated is a Signal whose state is driven programmatically.
// It is intended for tests.
type Simulated struct {
	mu        sync.Mutex
	state     State
	nextID    int
	observers []observer
}

// NewSimulated creates a Simulated signal in the given initial state.
func NewSimulated(initial State) *Simulated {
	return &Simulated{state: initial}
}

// State returns the current simulated state.
func (s *Simulated) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set transitions the simulated state, notifying subscribers on change.
func (s *Simulated) Set(state State) {
	s.mu.Lock()
	if s.state == state {
		s.mu.Unlock()
		return
	}
	s.state = state
	observers := make([]func(State), len(s.observers))
	for i, o := range s.observers {
		observers[i] = o.fn
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
}

// Subscribe registers an observer for state transitions. Observers are
// notified in registration order.
func (s *Simulated) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}
}

var (
	_ Signal = Static(Visible)
	_ Signal = (*Simulated)(nil)
)
