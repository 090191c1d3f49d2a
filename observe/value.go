package observe

import "sync"

// observer pairs a subscription id with its callback so cancellation
// can remove exactly one entry while keeping registration order.
type observer[T any] struct {
	id int
	fn func(T)
}

// Value is an observable container for a single piece of state.
// The zero value is not usable; create instances with NewValue.
type Value[T any] struct {
	mu        sync.Mutex
	current   T
	nextID    int
	observers []observer[T]
}

// NewValue creates a Value holding the given initial state.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current state.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set replaces the current state and notifies subscribers in
// registration order. Observers run synchronously on the calling
// goroutine, outside the container's lock; they must not block.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	v.current = val
	observers := make([]func(T), len(v.observers))
	for i, o := range v.observers {
		observers[i] = o.fn
	}
	v.mu.Unlock()

	for _, fn := range observers {
		fn(val)
	}
}

// Subscribe registers an observer called on every Set. The returned
// cancel function removes the observer; calling it more than once is safe.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.observers = append(v.observers, observer[T]{id: id, fn: fn})
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		for i, o := range v.observers {
			if o.id == id {
				v.observers = append(v.observers[:i], v.observers[i+1:]...)
				break
			}
		}
		v.mu.Unlock()
	}
}
