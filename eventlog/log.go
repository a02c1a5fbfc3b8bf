// Package eventlog keeps an append-only, timestamped record of named runtime
// events behind one coarse mutex. It is the second half of the observability
// core: loggers append from any goroutine, queries and exports read
// order-preserving snapshots, and nothing here can fail hard.
package eventlog

import (
	"log"
	"strings"
	"sync"
	"time"

	lev "github.com/agnivade/levenshtein"
)

// TimestampLayout formats wall-clock timestamps in dumps and exports.
const TimestampLayout = "2006-01-02 15:04:05.000"

// Entry is one logged event. Immutable once appended; the slice order is the
// chronological order of arrival.
type Entry struct {
	EventName string    `json:"event_name"`
	Context   string    `json:"context"`
	GameTime  float64   `json:"game_time"`
	Timestamp time.Time `json:"utc_timestamp"`
}

// Options configures a Log. The zero value is usable: wall clock from
// time.Now, simulated time pinned at 0, no echo, no dedupe.
type Options struct {
	// Now supplies wall-clock instants, injectable for tests.
	Now func() time.Time
	// GameTime supplies the current simulated time; 0 when nil.
	GameTime func() float64
	// DebugEcho mirrors every accepted event to the process log.
	DebugEcho bool
	// DedupeWindow suppresses repeats of an identical (name, context) pair
	// for this long after it was last emitted. Zero disables suppression.
	DedupeWindow time.Duration
	// DedupeMaxKeys bounds the suppression table.
	DedupeMaxKeys int
}

// Log is the mutex-guarded event store.
type Log struct {
	mu      sync.Mutex
	entries []Entry

	now       func() time.Time
	gameTime  func() float64
	debugEcho bool
	dedupe    *deduper
}

// NewLog creates an event log with the given options.
func NewLog(opts Options) *Log {
	l := &Log{
		now:       opts.Now,
		gameTime:  opts.GameTime,
		debugEcho: opts.DebugEcho,
	}
	if l.now == nil {
		l.now = func() time.Time { return time.Now().UTC() }
	}
	if opts.DedupeWindow > 0 {
		l.dedupe = newDeduper(opts.DedupeWindow, opts.DedupeMaxKeys)
	}
	return l
}

// LogEvent appends an event with the current simulated and wall-clock times.
// An empty name is rejected with a warning; context may be empty.
func (l *Log) LogEvent(name, context string) {
	if name == "" {
		log.Printf("eventlog: LogEvent called with empty event name")
		return
	}
	var gt float64
	if l.gameTime != nil {
		gt = l.gameTime()
	}
	e := Entry{
		EventName: name,
		Context:   context,
		GameTime:  gt,
		Timestamp: l.now(),
	}

	l.mu.Lock()
	if l.dedupe != nil {
		note, drop := l.dedupe.observe(name, context, e.Timestamp)
		if drop {
			l.mu.Unlock()
			return
		}
		if note != "" {
			e.Context = joinContext(e.Context, note)
		}
	}
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	if l.debugEcho {
		log.Printf("eventlog: '%s' | Context: '%s' | GameTime: %.3f | UTC: %s",
			e.EventName, e.Context, e.GameTime, e.Timestamp.Format(TimestampLayout))
	}
}

// ClearLog removes every entry.
func (l *Log) ClearLog() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}

// GetEventLog returns the underlying entry sequence. The slice is shared with
// the log: treat it as read-only, and expect further appends to extend the
// store rather than the returned header.
func (l *Log) GetEventLog() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries
}

// GetEventCount returns the number of logged events.
func (l *Log) GetEventCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// SearchEventsByName returns, in original order, every entry whose name
// contains term case-insensitively. An empty term matches everything.
func (l *Log) SearchEventsByName(term string) []Entry {
	return l.search(term, func(e Entry) string { return e.EventName })
}

// SearchEventsByContext is SearchEventsByName over the context field.
func (l *Log) SearchEventsByContext(term string) []Entry {
	return l.search(term, func(e Entry) string { return e.Context })
}

func (l *Log) search(term string, field func(Entry) string) []Entry {
	needle := strings.ToLower(term)

	l.mu.Lock()
	defer l.mu.Unlock()

	var results []Entry
	for _, e := range l.entries {
		if strings.Contains(strings.ToLower(field(e)), needle) {
			results = append(results, e)
		}
	}
	return results
}

// SearchEventsFuzzy returns entries whose name is within maxDistance edits of
// term, case-insensitively, in original order. Useful when the caller only
// half-remembers an event name. maxDistance 0 degrades to exact match.
func (l *Log) SearchEventsFuzzy(term string, maxDistance int) []Entry {
	if maxDistance < 0 {
		maxDistance = 0
	}
	needle := strings.ToLower(term)

	l.mu.Lock()
	defer l.mu.Unlock()

	var results []Entry
	for _, e := range l.entries {
		if lev.ComputeDistance(needle, strings.ToLower(e.EventName)) <= maxDistance {
			results = append(results, e)
		}
	}
	return results
}

// DumpToConsole logs every entry in order, bracketed by start/end markers.
func (l *Log) DumpToConsole() {
	l.mu.Lock()
	defer l.mu.Unlock()

	log.Println("---- Event Log Dump Start ----")
	for _, e := range l.entries {
		log.Printf("GameTime: %.3f | Event: %s | Context: %s | UTC: %s",
			e.GameTime, e.EventName, e.Context, e.Timestamp.Format(TimestampLayout))
	}
	log.Println("---- Event Log Dump End ----")
}

// snapshot copies the current entries so exports can write without holding
// the lock across file I/O.
func (l *Log) snapshot() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return nil
	}
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func joinContext(context, note string) string {
	if context == "" {
		return note
	}
	return context + " (" + note + ")"
}
