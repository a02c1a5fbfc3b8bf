package eventlog

import (
	"fmt"
	"log"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ExportToCSV writes every entry to path as one header line plus one row per
// event. Returns false without touching the file when the log is empty, and
// false with a diagnostic when the write fails. The lock is only held while
// snapshotting; concurrent loggers are never stalled on disk.
func (l *Log) ExportToCSV(path string) bool {
	entries := l.snapshot()
	if len(entries) == 0 {
		log.Printf("eventlog: no events to export")
		return false
	}

	var b strings.Builder
	b.WriteString("GameTime,EventName,Context,UTC_Timestamp\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%.3f,%s,%s,%s\n",
			e.GameTime,
			sanitizeCSV(e.EventName),
			sanitizeCSV(e.Context),
			e.Timestamp.UTC().Format(TimestampLayout))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		log.Printf("eventlog: failed to write CSV %s: %v", path, err)
		return false
	}
	return true
}

// ExportToJSON writes every entry to path as an indented JSON array. Same
// empty-log and failure semantics as ExportToCSV.
func (l *Log) ExportToJSON(path string) bool {
	entries := l.snapshot()
	if len(entries) == 0 {
		log.Printf("eventlog: no events to export")
		return false
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("eventlog: failed to marshal entries: %v", err)
		return false
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("eventlog: failed to write JSON %s: %v", path, err)
		return false
	}
	return true
}

// sanitizeCSV quotes a field when it contains the delimiter or a quote,
// doubling internal quotes per RFC 4180.
func sanitizeCSV(s string) string {
	if strings.ContainsAny(s, ",\"") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}
