// Package objmodel defines the contract between the introspection core and
// the host object system: weak, liveness-checked handles to externally owned
// objects, and a closed field-kind variant that wraps whatever reflection the
// host provides. The estimator and the reference walker only ever see these
// five field kinds, so unknown host constructs degrade to "skipped" instead
// of crashing a diagnostic subsystem.
package objmodel

// FieldKind is the closed set of field shapes the core understands.
type FieldKind uint8

const (
	// FieldScalar is a fixed-width POD value (int, float, bool, enum).
	FieldScalar FieldKind = iota
	// FieldText is a string whose backing storage is heap-allocated.
	FieldText
	// FieldSequence is a homogeneous array of non-reference elements.
	FieldSequence
	// FieldReference is a single weak handle to another object.
	FieldReference
	// FieldReferenceSeq is a sequence of weak handles.
	FieldReferenceSeq
)

// FieldInfo describes one reflected field of a runtime type. Only the
// accessors matching Kind are consulted; the rest stay nil/zero. Accessors
// receive the owning object and must tolerate being handed an object of the
// wrong type by returning zero values rather than panicking, since descriptors
// are shared per type and wired up by the host.
type FieldInfo struct {
	Name string
	Kind FieldKind

	// ByteWidth is the declared width of a FieldScalar value.
	ByteWidth int64

	// TextBytes reports the allocated byte size of a FieldText backing store.
	TextBytes func(obj any) int64

	// ElemWidth and SeqLen size a FieldSequence as len * elem.
	ElemWidth int64
	SeqLen    func(obj any) int

	// Ref resolves a FieldReference; Refs a FieldReferenceSeq. A null
	// reference is the zero Handle, which never resolves.
	Ref  func(obj any) Handle
	Refs func(obj any) []Handle
}

// TypeInfo is the ordered field list for one runtime type. Instances are
// shared: one TypeInfo per type, not per object.
type TypeInfo struct {
	Name   string
	Fields []FieldInfo
}

// Describable is implemented by host objects that expose their field layout.
// Objects that don't implement it are still trackable; they just report base
// overhead and no outgoing references.
type Describable interface {
	Describe() *TypeInfo
}

// Named lets an object report a display name for memory reports. Falls back
// to the TypeInfo name, then to the Go type, when absent.
type Named interface {
	ObjectName() string
}
