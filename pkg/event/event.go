// Package event is a synchronous dispatcher the repositories use to announce
// committed changes, so the presentation layer can refresh what it shows.
//
//	event.Listen("dish.deleted", func(c event.Change) { reloadDishes() })
package event

import (
	"sync"
)

// Change describes one committed mutation.
type Change struct {
	Entity string // "user", "section", "dish", "menu", "menu_history", "purchase_order"
	Action string // "created", "updated", "deleted"
	ID     uint
}

// Name is the event name a listener subscribes to, e.g. "dish.created".
func (c Change) Name() string { return c.Entity + "." + c.Action }

// Handler receives a change.
type Handler func(Change)

// Wildcard listeners receive every change.
const Wildcard = "*"

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
)

// Listen registers a handler for the given event name, or Wildcard.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire dispatches c synchronously to its listeners, then to wildcard listeners.
func Fire(c Change) {
	mu.RLock()
	hs := make([]Handler, 0, len(handlers[c.Name()])+len(handlers[Wildcard]))
	hs = append(hs, handlers[c.Name()]...)
	hs = append(hs, handlers[Wildcard]...)
	mu.RUnlock()

	for _, h := range hs {
		h(c)
	}
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}
