package memtrack

import "objscope/objmodel"

// baseObjectOverhead approximates the fixed bookkeeping cost of one live
// object (header, registry slot, allocator rounding). Deliberately coarse:
// this estimator ranks objects against each other, it does not bill bytes.
const baseObjectOverhead = 64

// EstimateSize returns a shallow footprint estimate for obj: base overhead
// plus the declared widths of its own fields. Reference fields contribute
// nothing here — referenced objects may be shared between owners, and billing
// them to every owner would double count; the reference walker reports that
// side separately. Fields with missing accessors or unknown kinds count zero,
// never fail. A nil object is zero bytes.
func EstimateSize(obj any) int64 {
	if obj == nil {
		return 0
	}
	var total int64 = baseObjectOverhead

	d, ok := obj.(objmodel.Describable)
	if !ok {
		return total
	}
	ti := d.Describe()
	if ti == nil {
		return total
	}
	for _, f := range ti.Fields {
		switch f.Kind {
		case objmodel.FieldScalar:
			total += f.ByteWidth
		case objmodel.FieldText:
			if f.TextBytes != nil {
				total += f.TextBytes(obj)
			}
		case objmodel.FieldSequence:
			if f.SeqLen != nil {
				total += int64(f.SeqLen(obj)) * f.ElemWidth
			}
		case objmodel.FieldReference, objmodel.FieldReferenceSeq:
			// Counted by the walker, not summed into the owner.
		}
	}
	return total
}
