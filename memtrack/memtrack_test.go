package memtrack

import (
	"objscope/objmodel"
)

// node is the test object graph building block: one field of each kind the
// descriptor contract knows about.
type node struct {
	name  string
	label string
	data  []int64
	next  objmodel.Handle
	kids  []objmodel.Handle
}

var nodeType = &objmodel.TypeInfo{
	Name: "node",
	Fields: []objmodel.FieldInfo{
		{Name: "flags", Kind: objmodel.FieldScalar, ByteWidth: 4},
		{
			Name: "label", Kind: objmodel.FieldText,
			TextBytes: func(o any) int64 { return int64(len(o.(*node).label)) },
		},
		{
			Name: "data", Kind: objmodel.FieldSequence, ElemWidth: 8,
			SeqLen: func(o any) int { return len(o.(*node).data) },
		},
		{
			Name: "next", Kind: objmodel.FieldReference,
			Ref: func(o any) objmodel.Handle { return o.(*node).next },
		},
		{
			Name: "kids", Kind: objmodel.FieldReferenceSeq,
			Refs: func(o any) []objmodel.Handle { return o.(*node).kids },
		},
	},
}

func (n *node) Describe() *objmodel.TypeInfo { return nodeType }
func (n *node) ObjectName() string           { return n.name }

func newNode(name string) *node {
	return &node{name: name}
}
