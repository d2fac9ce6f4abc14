package vm

// Allocator is the heap capability this core consumes. Allocation is
// assumed infallible at this layer; reclamation belongs entirely to the
// external collector, which must keep a handle dereferenceable for as
// long as any live value holds it.
type Allocator interface {
	// AllocObject moves the record to the heap and returns its handle.
	AllocObject(info ObjectInfo) *ObjectInfo
	// AllocString returns a handle to a (possibly interned) string record.
	AllocString(s string) *StringObject
}

// Arena is the bundled Allocator: growable slice storage for object
// records plus an interning table for strings. Its object list doubles
// as the root set a tracing collector starts from; the arena itself
// never frees anything.
type Arena struct {
	objects []*ObjectInfo
	strings map[string]*StringObject
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		strings: make(map[string]*StringObject),
	}
}

func (a *Arena) AllocObject(info ObjectInfo) *ObjectInfo {
	obj := &info
	if obj.property == nil {
		obj.property = map[string]Property{}
	}
	a.objects = append(a.objects, obj)
	return obj
}

func (a *Arena) AllocString(s string) *StringObject {
	if interned, ok := a.strings[s]; ok {
		return interned
	}
	so := &StringObject{value: s}
	a.strings[s] = so
	return so
}

// NumObjects returns the number of object records allocated so far.
func (a *Arena) NumObjects() int { return len(a.objects) }

// Objects returns the live object records, in allocation order. A
// tracing collector treats these as its scan starting points together
// with the executor's own roots.
func (a *Arena) Objects() []*ObjectInfo {
	out := make([]*ObjectInfo, len(a.objects))
	copy(out, a.objects)
	return out
}
