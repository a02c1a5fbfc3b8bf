package memtrack

import (
	"testing"

	"objscope/objmodel"
)

func TestRegisterDuplicateKeepsSetAtOne(t *testing.T) {
	reg := objmodel.NewRegistry()
	tr := NewTracker(reg)
	n := newNode("a")

	tr.RegisterObject(n)
	tr.RegisterObject(n)
	if got := tr.TrackedCount(); got != 1 {
		t.Fatalf("expected tracked set of 1 after duplicate register, got %d", got)
	}
}

func TestRegisterNilIsNoOp(t *testing.T) {
	reg := objmodel.NewRegistry()
	tr := NewTracker(reg)
	tr.RegisterObject(nil)
	if got := tr.TrackedCount(); got != 0 {
		t.Fatalf("expected empty tracked set, got %d", got)
	}
}

func TestUnregisterAbsentIsNoOp(t *testing.T) {
	reg := objmodel.NewRegistry()
	tr := NewTracker(reg)
	tr.RegisterObject(newNode("a"))

	tr.UnregisterObject(newNode("b"))
	tr.UnregisterObject(nil)
	if got := tr.TrackedCount(); got != 1 {
		t.Fatalf("expected tracked set unchanged at 1, got %d", got)
	}
}

func TestUnregisterRemovesObject(t *testing.T) {
	reg := objmodel.NewRegistry()
	tr := NewTracker(reg)
	a, b := newNode("a"), newNode("b")
	tr.RegisterObject(a)
	tr.RegisterObject(b)

	tr.UnregisterObject(a)
	if got := tr.TrackedCount(); got != 1 {
		t.Fatalf("expected 1 tracked object, got %d", got)
	}

	tr.StartTracking(0.01)
	tr.Advance(0.01)
	infos := tr.GetTrackedMemoryInfo()
	if len(infos) != 1 || infos[0].ObjectName != "b" {
		t.Fatalf("expected snapshot with only b, got %+v", infos)
	}
}

func TestSamplingProducesSnapshot(t *testing.T) {
	reg := objmodel.NewRegistry()
	tr := NewTracker(reg)
	n := newNode("a")
	n.label = "hello"
	n.data = []int64{1, 2, 3}
	tr.RegisterObject(n)

	if got := tr.GetTrackedMemoryInfo(); len(got) != 0 {
		t.Fatalf("expected empty cache before first pass, got %d records", len(got))
	}

	tr.StartTracking(1.0)
	tr.Advance(0.4)
	if got := tr.GetTrackedMemoryInfo(); len(got) != 0 {
		t.Fatal("no pass should run before the interval elapses")
	}
	tr.Advance(0.6)

	infos := tr.GetTrackedMemoryInfo()
	if len(infos) != 1 {
		t.Fatalf("expected 1 record, got %d", len(infos))
	}
	info := infos[0]
	if info.ObjectName != "a" {
		t.Fatalf("expected name a, got %q", info.ObjectName)
	}
	want := EstimateSize(n)
	if info.MemoryBytes != want {
		t.Fatalf("expected %d bytes, got %d", want, info.MemoryBytes)
	}
	if info.NumReferencedObjects != 1 {
		t.Fatalf("expected 1 referenced object (self), got %d", info.NumReferencedObjects)
	}
	if !reg.Alive(info.Tracked) {
		t.Fatal("record handle should be live at snapshot time")
	}
}

func TestDestroyedReferentIsPruned(t *testing.T) {
	reg := objmodel.NewRegistry()
	tr := NewTracker(reg)
	a, b := newNode("a"), newNode("b")
	tr.RegisterObject(a)
	tr.RegisterObject(b)
	tr.StartTracking(0.01)

	tr.Advance(0.01)
	if got := len(tr.GetTrackedMemoryInfo()); got != 2 {
		t.Fatalf("expected 2 records, got %d", got)
	}

	reg.Destroy(a)
	tr.Advance(0.01)

	infos := tr.GetTrackedMemoryInfo()
	if len(infos) != 1 || infos[0].ObjectName != "b" {
		t.Fatalf("expected only b to survive, got %+v", infos)
	}
	if got := tr.TrackedCount(); got != 1 {
		t.Fatalf("expected dead handle pruned from tracked set, got %d", got)
	}
}

func TestIntervalClampedToFloor(t *testing.T) {
	reg := objmodel.NewRegistry()
	tr := NewTracker(reg)
	tr.RegisterObject(newNode("a"))

	tr.StartTracking(-5)
	tr.Advance(0.005)
	if got := len(tr.GetTrackedMemoryInfo()); got != 0 {
		t.Fatal("interval below floor must not sample every tick")
	}
	tr.Advance(0.005)
	if got := len(tr.GetTrackedMemoryInfo()); got != 1 {
		t.Fatalf("expected pass once floor interval elapsed, got %d records", got)
	}
}

func TestStopTrackingKeepsLastSnapshot(t *testing.T) {
	reg := objmodel.NewRegistry()
	tr := NewTracker(reg)
	tr.RegisterObject(newNode("a"))
	tr.StartTracking(0.01)
	tr.Advance(0.01)

	tr.StopTracking()
	tr.Advance(10)
	if got := len(tr.GetTrackedMemoryInfo()); got != 1 {
		t.Fatalf("stopped tracker should keep last snapshot, got %d records", got)
	}
}
