// Package observe provides a minimal observable value container.
//
// A Value holds a single piece of state that consumers can read at any
// time and subscribe to for change notification. It backs the reactive
// surface of the stream client (current value, last error, connected
// flag, retry count).
//
//	v := observe.NewValue(0)
//	cancel := v.Subscribe(func(n int) { fmt.Println("now", n) })
//	defer cancel()
//	v.Set(42)
package observe
