package vm

// Prototypes is the shared registry of prototype objects, built once at
// startup and passed by reference into every constructor and resolver
// that needs it. There is no process-wide prototype state.
//
// The built-in library collaborator populates these objects with methods
// after construction; this core treats them as opaque lookup targets.
type Prototypes struct {
	Object   Value
	Function Value
	Array    Value
	String   Value
	Number   Value
	Date     Value
}

// NewPrototypes builds the bare registry: Object.prototype terminates
// the chain at Null, every other prototype chains to Object.prototype.
func NewPrototypes(alloc Allocator) *Prototypes {
	object := NewObjectWithProto(alloc, Null)
	return &Prototypes{
		Object:   object,
		Function: NewObjectWithProto(alloc, object),
		Array:    NewObjectWithProto(alloc, object),
		String:   NewObjectWithProto(alloc, object),
		Number:   NewObjectWithProto(alloc, object),
		Date:     NewObjectWithProto(alloc, object),
	}
}
