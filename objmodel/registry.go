package objmodel

import "sync"

// Handle is a weak, non-owning reference to a registry-managed object.
// It is an index plus a generation counter: destroying an object bumps the
// slot generation, so every outstanding Handle to it starts reporting dead
// instead of dereferencing freed state. The zero Handle is the null
// reference and never resolves (generations start at 1).
type Handle struct {
	index int32
	gen   uint32
}

// IsNil reports whether h is the null reference.
func (h Handle) IsNil() bool {
	return h.gen == 0
}

type slot struct {
	obj any
	gen uint32
}

// Registry owns the handle table for the host's objects. Objects themselves
// stay externally owned; the registry only maps handles to live referents.
// Objects must be comparable (in practice: pointers) so identity lookups work.
type Registry struct {
	mu    sync.Mutex
	slots []slot
	free  []int32
	byObj map[any]Handle
}

// NewRegistry creates an empty handle registry.
func NewRegistry() *Registry {
	return &Registry{
		byObj: make(map[any]Handle),
	}
}

// Attach registers obj and returns its handle. Attaching an already-registered
// object returns the existing handle, so handle identity tracks referent
// identity. Attaching nil returns the null handle.
func (r *Registry) Attach(obj any) Handle {
	if obj == nil {
		return Handle{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.byObj[obj]; ok {
		return h
	}
	var h Handle
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		r.slots[idx].obj = obj
		h = Handle{index: idx, gen: r.slots[idx].gen}
	} else {
		r.slots = append(r.slots, slot{obj: obj, gen: 1})
		h = Handle{index: int32(len(r.slots) - 1), gen: 1}
	}
	r.byObj[obj] = h
	return h
}

// Destroy invalidates the handle slot for obj. Outstanding handles to it
// resolve as dead from this point on; the slot is recycled with a bumped
// generation. Destroying an unknown or nil object is a no-op.
func (r *Registry) Destroy(obj any) {
	if obj == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.byObj[obj]
	if !ok {
		return
	}
	delete(r.byObj, obj)
	r.slots[h.index].obj = nil
	r.slots[h.index].gen++
	r.free = append(r.free, h.index)
}

// Resolve returns the live referent of h, or (nil, false) when h is null,
// stale, or was never issued by this registry.
func (r *Registry) Resolve(h Handle) (any, bool) {
	if h.IsNil() {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if int(h.index) >= len(r.slots) || h.index < 0 {
		return nil, false
	}
	s := r.slots[h.index]
	if s.gen != h.gen || s.obj == nil {
		return nil, false
	}
	return s.obj, true
}

// Alive reports whether h still refers to a live object.
func (r *Registry) Alive(h Handle) bool {
	_, ok := r.Resolve(h)
	return ok
}

// HandleOf returns the handle for a registered object without attaching it.
func (r *Registry) HandleOf(obj any) (Handle, bool) {
	if obj == nil {
		return Handle{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.byObj[obj]
	return h, ok
}

// Len returns the number of live registered objects.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byObj)
}
