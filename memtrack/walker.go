package memtrack

import "objscope/objmodel"

// CountReferencedObjects walks the reference graph reachable from h depth
// first and returns the number of distinct live objects found, root included.
// visited carries the identity set across the recursion and must be fresh per
// top-level call: the graph may mutate between sampling passes, so nothing is
// cached across them.
//
// The root is marked visited before its fields are iterated, so a field
// pointing back at the root — or a sequence containing the owner itself —
// adds nothing. Shared referents count once per call regardless of how many
// paths reach them. Dead or null handles and non-reference fields are
// skipped. Cost is O(V+E) over the reachable subgraph; recursion depth is
// bounded by the true graph depth.
func CountReferencedObjects(reg *objmodel.Registry, h objmodel.Handle, visited map[objmodel.Handle]struct{}) int32 {
	obj, ok := reg.Resolve(h)
	if !ok {
		return 0
	}
	if _, seen := visited[h]; seen {
		return 0
	}
	visited[h] = struct{}{}

	var count int32 = 1

	d, ok := obj.(objmodel.Describable)
	if !ok {
		return count
	}
	ti := d.Describe()
	if ti == nil {
		return count
	}
	for _, f := range ti.Fields {
		switch f.Kind {
		case objmodel.FieldReference:
			if f.Ref != nil {
				count += CountReferencedObjects(reg, f.Ref(obj), visited)
			}
		case objmodel.FieldReferenceSeq:
			if f.Refs != nil {
				for _, child := range f.Refs(obj) {
					count += CountReferencedObjects(reg, child, visited)
				}
			}
		}
	}
	return count
}
