// Package listeners holds page-wide handlers (outside click, Escape) that
// widgets subscribe to while mounted.
package listeners

import "sync"

// Kind of page-wide event
type Kind int

const (
	MouseDown Kind = iota
	KeyEscape
)

func (k Kind) String() string {
	switch k {
	case MouseDown:
		return "mousedown"
	case KeyEscape:
		return "escape"
	default:
		return "unknown"
	}
}

// Event is delivered to every handler subscribed to its Kind.
// X and Y are screen cells and only meaningful for MouseDown.
type Event struct {
	Kind Kind
	X, Y int
}

// Handler reacts to a page-wide event
type Handler func(Event)

type entry struct {
	id      int
	handler Handler
}

// Registry dispatches page-wide events synchronously, in subscription order
type Registry struct {
	mu       sync.Mutex
	nextID   int
	handlers map[Kind][]entry
}

// New creates an empty registry
func New() *Registry {
	return &Registry{handlers: make(map[Kind][]entry)}
}

// Subscribe registers h for kind. The returned func releases it and may be
// called any number of times.
func (r *Registry) Subscribe(kind Kind, h Handler) func() {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.handlers[kind] = append(r.handlers[kind], entry{id: id, handler: h})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			entries := r.handlers[kind]
			for i, e := range entries {
				if e.id == id {
					r.handlers[kind] = append(entries[:i:i], entries[i+1:]...)
					return
				}
			}
		})
	}
}

// Dispatch calls every handler subscribed to ev.Kind. Handlers may
// subscribe or unsubscribe while being called; such changes apply to the
// next Dispatch.
func (r *Registry) Dispatch(ev Event) {
	r.mu.Lock()
	entries := make([]entry, len(r.handlers[ev.Kind]))
	copy(entries, r.handlers[ev.Kind])
	r.mu.Unlock()

	for _, e := range entries {
		e.handler(ev)
	}
}

// Count returns the number of live subscriptions for kind
func (r *Registry) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers[kind])
}

// Scope groups subscriptions so they can be released together, the way a
// widget releases everything it registered when it unmounts.
type Scope struct {
	registry *Registry
	releases []func()
}

// NewScope creates a scope on r
func (r *Registry) NewScope() *Scope {
	return &Scope{registry: r}
}

// On subscribes h for kind within the scope
func (s *Scope) On(kind Kind, h Handler) {
	s.releases = append(s.releases, s.registry.Subscribe(kind, h))
}

// Release drops every subscription made through the scope
func (s *Scope) Release() {
	for _, release := range s.releases {
		release()
	}
	s.releases = nil
}

// Active reports whether the scope holds subscriptions
func (s *Scope) Active() bool {
	return len(s.releases) > 0
}
