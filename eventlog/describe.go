package eventlog

import "objscope/objmodel"

// entryFootprint approximates the in-slice size of one Entry: two string
// headers, a float64 and a time.Time.
const entryFootprint = 64

// logType describes the Log to the memory sampler: the entry slice as a
// homogeneous sequence plus the string payload as text storage. The log is a
// natural first customer of its sibling subsystem — a busy process can watch
// its own diagnostic buffer grow.
var logType = &objmodel.TypeInfo{
	Name: "EventLog",
	Fields: []objmodel.FieldInfo{
		{
			Name:      "entries",
			Kind:      objmodel.FieldSequence,
			ElemWidth: entryFootprint,
			SeqLen: func(obj any) int {
				if l, ok := obj.(*Log); ok {
					return l.GetEventCount()
				}
				return 0
			},
		},
		{
			Name: "strings",
			Kind: objmodel.FieldText,
			TextBytes: func(obj any) int64 {
				if l, ok := obj.(*Log); ok {
					return l.stringBytes()
				}
				return 0
			},
		},
	},
}

// Describe implements objmodel.Describable.
func (l *Log) Describe() *objmodel.TypeInfo {
	return logType
}

// ObjectName implements objmodel.Named.
func (l *Log) ObjectName() string {
	return "EventLog"
}

// stringBytes sums the backing bytes of every stored name and context.
func (l *Log) stringBytes() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total int64
	for _, e := range l.entries {
		total += int64(len(e.EventName)) + int64(len(e.Context))
	}
	return total
}
