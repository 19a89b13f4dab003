package collider

import (
	"sort"
	"sync"
)

// Shape is a polyline held by a Registry.
type Shape struct {
	Handle Handle
	Key    Key
	Line   Polyline
	Sensor bool
}

// Registry is an in-memory Sink. It backs the debug overlay and anything
// else that wants to inspect the live geometry.
type Registry struct {
	mu     sync.RWMutex
	next   Handle
	shapes map[Handle]Shape
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{shapes: make(map[Handle]Shape)}
}

// Spawn stores line and returns its handle.
func (r *Registry) Spawn(key Key, line Polyline, sensor bool) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	h := r.next
	r.shapes[h] = Shape{Handle: h, Key: key, Line: line, Sensor: sensor}
	return h
}

// Despawn drops the shape behind h. Unknown handles are ignored.
func (r *Registry) Despawn(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shapes, h)
}

// Len returns the number of live shapes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.shapes)
}

// Shapes returns the live shapes ordered by handle.
func (r *Registry) Shapes() []Shape {
	r.mu.RLock()
	out := make([]Shape, 0, len(r.shapes))
	for _, s := range r.shapes {
		out = append(out, s)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// ByKey returns the live shapes for key ordered by handle.
func (r *Registry) ByKey(key Key) []Shape {
	var out []Shape
	for _, s := range r.Shapes() {
		if s.Key == key {
			out = append(out, s)
		}
	}
	return out
}
