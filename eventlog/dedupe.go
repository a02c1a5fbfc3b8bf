package eventlog

import (
	"fmt"
	"time"

	"github.com/zeebo/xxh3"
)

const defaultDedupeMaxKeys = 512

// deduper rate-limits identical (name, context) pairs. The first occurrence
// passes through and opens a suppression window; repeats inside the window
// are dropped and counted; the first repeat after the window passes through
// carrying a note with the suppressed count. Keys are xxh3 hashes of the
// pair, so the table stores no event text.
//
// Callers hold the Log mutex, so the deduper itself is unsynchronized.
type deduper struct {
	window  time.Duration
	maxKeys int
	entries map[uint64]dedupeEntry
}

type dedupeEntry struct {
	nextEmit   time.Time
	lastSeen   time.Time
	suppressed uint64
}

func newDeduper(window time.Duration, maxKeys int) *deduper {
	if maxKeys <= 0 {
		maxKeys = defaultDedupeMaxKeys
	}
	return &deduper{
		window:  window,
		maxKeys: maxKeys,
		entries: make(map[uint64]dedupeEntry, maxKeys),
	}
}

// observe decides the fate of one event: drop it, or emit it with an optional
// suppression note.
func (d *deduper) observe(name, context string, now time.Time) (note string, drop bool) {
	key := dedupeKey(name, context)

	entry, found := d.entries[key]
	if !found {
		d.evictOneIfNeeded()
		d.entries[key] = dedupeEntry{
			nextEmit: now.Add(d.window),
			lastSeen: now,
		}
		return "", false
	}

	entry.lastSeen = now
	if now.Before(entry.nextEmit) {
		entry.suppressed++
		d.entries[key] = entry
		return "", true
	}

	suppressed := entry.suppressed
	entry.suppressed = 0
	entry.nextEmit = now.Add(d.window)
	d.entries[key] = entry

	if suppressed > 0 {
		return fmt.Sprintf("suppressed %d repeats", suppressed), false
	}
	return "", false
}

func dedupeKey(name, context string) uint64 {
	return xxh3.HashString(name + "\x00" + context)
}

// evictOneIfNeeded drops the stalest key when the table is full. Linear scan:
// the table is small and eviction is rare.
func (d *deduper) evictOneIfNeeded() {
	if len(d.entries) < d.maxKeys {
		return
	}
	var (
		oldestKey  uint64
		oldestSeen time.Time
		first      = true
	)
	for k, e := range d.entries {
		if first || e.lastSeen.Before(oldestSeen) {
			oldestKey = k
			oldestSeen = e.lastSeen
			first = false
		}
	}
	if !first {
		delete(d.entries, oldestKey)
	}
}
