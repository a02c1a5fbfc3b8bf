package objmodel

import "testing"

type thing struct{ id int }

func TestAttachResolve(t *testing.T) {
	r := NewRegistry()
	obj := &thing{id: 1}

	h := r.Attach(obj)
	if h.IsNil() {
		t.Fatal("expected non-nil handle")
	}
	got, ok := r.Resolve(h)
	if !ok || got != obj {
		t.Fatalf("expected to resolve registered object, got %v ok=%v", got, ok)
	}
	if !r.Alive(h) {
		t.Fatal("expected handle to be alive")
	}
}

func TestAttachIsIdempotent(t *testing.T) {
	r := NewRegistry()
	obj := &thing{id: 1}

	h1 := r.Attach(obj)
	h2 := r.Attach(obj)
	if h1 != h2 {
		t.Fatalf("expected same handle for same object, got %v and %v", h1, h2)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 registered object, got %d", r.Len())
	}
}

func TestAttachNil(t *testing.T) {
	r := NewRegistry()
	h := r.Attach(nil)
	if !h.IsNil() {
		t.Fatal("attaching nil should return the null handle")
	}
	if _, ok := r.Resolve(h); ok {
		t.Fatal("null handle must not resolve")
	}
}

func TestDestroyInvalidatesHandle(t *testing.T) {
	r := NewRegistry()
	obj := &thing{id: 1}
	h := r.Attach(obj)

	r.Destroy(obj)
	if r.Alive(h) {
		t.Fatal("handle should be dead after Destroy")
	}
	if _, ok := r.Resolve(h); ok {
		t.Fatal("stale handle must not resolve")
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
}

func TestSlotReuseDoesNotReviveStaleHandle(t *testing.T) {
	r := NewRegistry()
	old := &thing{id: 1}
	stale := r.Attach(old)
	r.Destroy(old)

	// The recycled slot must carry a new generation.
	fresh := r.Attach(&thing{id: 2})
	if stale == fresh {
		t.Fatal("recycled slot must not reissue the old generation")
	}
	if _, ok := r.Resolve(stale); ok {
		t.Fatal("stale handle resolved against recycled slot")
	}
	if !r.Alive(fresh) {
		t.Fatal("fresh handle should be alive")
	}
}

func TestDestroyUnknownIsNoOp(t *testing.T) {
	r := NewRegistry()
	r.Destroy(&thing{id: 9})
	r.Destroy(nil)
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
}

func TestHandleOf(t *testing.T) {
	r := NewRegistry()
	obj := &thing{id: 1}
	if _, ok := r.HandleOf(obj); ok {
		t.Fatal("HandleOf should miss before Attach")
	}
	h := r.Attach(obj)
	got, ok := r.HandleOf(obj)
	if !ok || got != h {
		t.Fatalf("HandleOf returned %v ok=%v, want %v", got, ok, h)
	}
}
