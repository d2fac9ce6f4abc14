package vm

import (
	"fortio.org/safecast"
)

// ArrayObjectInfo is the dense backing store of an array-kind object: an
// ordered sequence of property slots. The observable length is always
// len(elems); growth pads with Empty data slots, shrinking truncates.
type ArrayObjectInfo struct {
	elems []Property
}

// Length returns the current element count.
func (a *ArrayObjectInfo) Length() int { return len(a.elems) }

// GetElement returns the slot at idx. Reads past the current length
// yield an absent-style data slot holding Undefined, and the internal
// Empty marker is converted before it can escape.
func (a *ArrayObjectInfo) GetElement(idx int) Property {
	if idx < 0 || idx >= len(a.elems) {
		return NewDataProperty(Undefined)
	}
	if dp, ok := a.elems[idx].(DataProperty); ok {
		dp.Val = undefinedIfEmpty(dp.Val)
		return dp
	}
	return a.elems[idx]
}

// SetElement writes val into the slot at idx, extending the sequence
// first when idx is past the end. A data slot takes the value directly;
// an accessor slot hands its setter back for the resolver to invoke
// (invoke=false when there is no setter).
func (a *ArrayObjectInfo) SetElement(idx int, val Value) (setter Value, invoke bool) {
	if idx >= len(a.elems) {
		a.SetLength(idx + 1)
	}
	switch p := a.elems[idx].(type) {
	case DataProperty:
		p.Val = val
		a.elems[idx] = p
		return Undefined, false
	case AccessorProperty:
		if p.Set.IsUndefined() {
			return Undefined, false
		}
		return p.Set, true
	}
	return Undefined, false
}

// SetLength grows the slot sequence with Empty-valued data slots or
// truncates it, keeping length == len(elems).
func (a *ArrayObjectInfo) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	for len(a.elems) < n {
		a.elems = append(a.elems, NewDataProperty(Empty))
	}
	if len(a.elems) > n {
		a.elems = a.elems[:n]
	}
}

// Push appends a new element slot.
func (a *ArrayObjectInfo) Push(v Value) {
	a.elems = append(a.elems, NewDataProperty(v))
}

// Elements returns the raw values of the element slots, mapping Empty to
// Undefined. Accessor slots read as Undefined here; iteration callers
// that must honor getters go through the resolver instead.
func (a *ArrayObjectInfo) Elements() []Value {
	out := make([]Value, len(a.elems))
	for i, p := range a.elems {
		if dp, ok := p.(DataProperty); ok {
			out[i] = undefinedIfEmpty(dp.Val)
		} else {
			out[i] = Undefined
		}
	}
	return out
}

// NewArray allocates an array-kind object holding the given elements,
// with its prototype link on the registry's Array prototype.
func NewArray(alloc Allocator, protos *Prototypes, elems []Value) Value {
	arr := &ArrayObjectInfo{elems: make([]Property, len(elems))}
	for i, v := range elems {
		arr.elems[i] = NewDataProperty(v)
	}
	info := ObjectInfo{kind: KindArray, property: map[string]Property{}, arr: arr}
	obj := alloc.AllocObject(info)
	obj.SetPrototype(protos.Array)
	return objectValue(obj)
}

// canonicalIndex reports whether key is the canonical string form of an
// array index: a base-10 integer without leading zeros in
// [0, 2^32-2], i.e. a string that round-trips through ToUint32. "02" and
// "4294967295" are not indices and take the ordinary lookup path.
func canonicalIndex(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	if len(key) > 1 && key[0] == '0' {
		return 0, false
	}
	idx := 0
	for _, ch := range key {
		if ch < '0' || ch > '9' {
			return 0, false
		}
		idx = idx*10 + int(ch-'0')
		if idx > 4294967294 {
			return 0, false
		}
	}
	return idx, true
}

// numberIndex reports whether a numeric key selects the element fast
// path: a non-negative integer representable as an in-range int.
func numberIndex(n float64) (int, bool) {
	if !isIntegerNumber(n) || n < 0 {
		return 0, false
	}
	idx, err := safecast.Convert[int](n)
	if err != nil || idx > 4294967294 {
		return 0, false
	}
	return idx, true
}
