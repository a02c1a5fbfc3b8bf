// Package memtrack samples the estimated memory footprint and outgoing
// reference counts of registered objects on a periodic interval, driven by
// an external tick loop. It is a heuristic profiler for long-lived processes:
// cheap enough to leave running, never fatal to the host it observes.
package memtrack

import (
	"log"

	"github.com/dustin/go-humanize"

	"objscope/objmodel"
)

// minSampleInterval is the floor applied to StartTracking so a misconfigured
// interval can't turn the sampler into a per-tick busy loop.
const minSampleInterval = 0.01

// MemoryUsageInfo is one tracked object's result from the latest sampling
// pass. The slice holding these is rebuilt from scratch every pass.
type MemoryUsageInfo struct {
	// ObjectName is the display name of the tracked object.
	ObjectName string
	// Tracked is the weak handle of the object this record describes. It is
	// guaranteed live at the moment the pass built the record, nothing more.
	Tracked objmodel.Handle
	// MemoryBytes is the shallow footprint estimate from EstimateSize.
	MemoryBytes int64
	// NumReferencedObjects counts the object plus everything transitively
	// reachable through its reference fields.
	NumReferencedObjects int32
}

// Tracker accumulates tick deltas and runs a sampling pass over the tracked
// set each time the configured interval elapses. It is single-threaded:
// Advance, registration and queries are expected from the goroutine that
// drives the tick loop.
type Tracker struct {
	registry *objmodel.Registry

	sampling bool
	interval float64
	accum    float64

	tracked []objmodel.Handle
	cache   []MemoryUsageInfo
}

// NewTracker creates a tracker resolving handles through reg.
func NewTracker(reg *objmodel.Registry) *Tracker {
	return &Tracker{registry: reg}
}

// StartTracking enables sampling with the given interval in seconds, clamped
// to minSampleInterval. Safe to call again to change the interval.
func (t *Tracker) StartTracking(interval float64) {
	if interval < minSampleInterval {
		interval = minSampleInterval
	}
	t.interval = interval
	t.accum = 0
	t.sampling = true
}

// StopTracking disables sampling. The last completed snapshot stays
// queryable through GetTrackedMemoryInfo.
func (t *Tracker) StopTracking() {
	t.sampling = false
}

// RegisterObject adds obj to the tracked set. Nil objects and objects already
// tracked (by referent identity) are warned about and ignored.
func (t *Tracker) RegisterObject(obj any) {
	if obj == nil {
		log.Printf("memtrack: RegisterObject called with nil object")
		return
	}
	for _, h := range t.tracked {
		if ref, ok := t.registry.Resolve(h); ok && ref == obj {
			log.Printf("memtrack: object %s already tracked", objectName(obj))
			return
		}
	}
	t.tracked = append(t.tracked, t.registry.Attach(obj))
}

// UnregisterObject removes obj from the tracked set. Tracked-set order is not
// meaningful, so removal swaps with the last element. Unknown objects are a
// silent no-op; nil warns.
func (t *Tracker) UnregisterObject(obj any) {
	if obj == nil {
		log.Printf("memtrack: UnregisterObject called with nil object")
		return
	}
	for i := len(t.tracked) - 1; i >= 0; i-- {
		if ref, ok := t.registry.Resolve(t.tracked[i]); ok && ref == obj {
			t.removeAt(i)
			return
		}
	}
}

// Advance feeds the elapsed seconds since the previous call. When the
// accumulated time reaches the sampling interval it resets and runs one
// sampling pass. No-op while stopped or with nothing tracked.
func (t *Tracker) Advance(dt float64) {
	if !t.sampling || t.interval <= 0 || len(t.tracked) == 0 {
		return
	}
	t.accum += dt
	if t.accum >= t.interval {
		t.accum = 0
		t.samplePass()
	}
}

// samplePass rebuilds the snapshot cache. The tracked set is walked backward
// so dead handles can be swap-removed in place without upsetting iteration.
func (t *Tracker) samplePass() {
	infos := make([]MemoryUsageInfo, 0, len(t.tracked))

	for i := len(t.tracked) - 1; i >= 0; i-- {
		h := t.tracked[i]
		obj, ok := t.registry.Resolve(h)
		if !ok {
			// Referent destroyed since the last pass: prune silently.
			t.removeAt(i)
			continue
		}
		visited := make(map[objmodel.Handle]struct{})
		infos = append(infos, MemoryUsageInfo{
			ObjectName:           objectName(obj),
			Tracked:              h,
			MemoryBytes:          EstimateSize(obj),
			NumReferencedObjects: CountReferencedObjects(t.registry, h, visited),
		})
	}
	t.cache = infos
}

// GetTrackedMemoryInfo returns the snapshot from the last completed sampling
// pass, empty before the first one. The slice is the tracker's own cache;
// callers treat it as read-only and must not hold it across passes if they
// need a stable view.
func (t *Tracker) GetTrackedMemoryInfo() []MemoryUsageInfo {
	return t.cache
}

// TrackedCount returns the current size of the tracked set, including handles
// whose referents have died since the last pass.
func (t *Tracker) TrackedCount() int {
	return len(t.tracked)
}

// DumpReport logs the latest snapshot in a bracketed human-readable block.
func (t *Tracker) DumpReport() {
	log.Println("---- Memory Usage Tracker Dump Start ----")
	var total int64
	for _, info := range t.cache {
		log.Printf("Object: %s | Memory: %.2f KB | References: %d",
			info.ObjectName, float64(info.MemoryBytes)/1024.0, info.NumReferencedObjects)
		total += info.MemoryBytes
	}
	log.Printf("Tracked: %s objects | Estimated total: %s",
		humanize.Comma(int64(len(t.cache))), humanize.IBytes(uint64(total)))
	log.Println("---- Memory Usage Tracker Dump End ----")
}

func (t *Tracker) removeAt(i int) {
	last := len(t.tracked) - 1
	t.tracked[i] = t.tracked[last]
	t.tracked = t.tracked[:last]
}

func objectName(obj any) string {
	if n, ok := obj.(objmodel.Named); ok {
		return n.ObjectName()
	}
	if d, ok := obj.(objmodel.Describable); ok {
		if ti := d.Describe(); ti != nil && ti.Name != "" {
			return ti.Name
		}
	}
	return "<unnamed>"
}
