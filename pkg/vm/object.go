package vm

import (
	"fmt"
	"sort"
)

// protoKey is the reserved property name holding the prototype link. The
// link is an ordinary data property by convention non-enumerable; it is a
// relation, never an ownership edge.
const protoKey = "__proto__"

// ObjectKind distinguishes the exotic behaviors layered over the common
// property map.
type ObjectKind uint8

const (
	KindOrdinary ObjectKind = iota
	KindFunction
	KindArray
	KindArguments
	KindDate
)

func (k ObjectKind) String() string {
	switch k {
	case KindOrdinary:
		return "ordinary"
	case KindFunction:
		return "function"
	case KindArray:
		return "array"
	case KindArguments:
		return "arguments"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// ObjectInfo is the heap record behind every Object value: a property map
// plus a kind tag with the kind-specific payload. Records are created and
// owned by the Allocator; everything else holds non-owning handles. The
// core never frees a record.
type ObjectInfo struct {
	kind     ObjectKind
	property map[string]Property

	// Exactly the payload matching kind is non-nil.
	fn   *FunctionObjectInfo
	arr  *ArrayObjectInfo
	args *ArgumentsObjectInfo
	date *DateObjectInfo
}

// Kind returns the object's kind tag.
func (o *ObjectInfo) Kind() ObjectKind { return o.kind }

// Func narrows to the function payload. Fatal on other kinds: a caller
// treating a non-function as a function is a bug in the executor.
func (o *ObjectInfo) Func() *FunctionObjectInfo {
	if o.kind != KindFunction {
		panic(fmt.Sprintf("vm: object is not a function (kind %s)", o.kind))
	}
	return o.fn
}

// Array narrows to the array payload. Fatal on other kinds.
func (o *ObjectInfo) Array() *ArrayObjectInfo {
	if o.kind != KindArray {
		panic(fmt.Sprintf("vm: object is not an array (kind %s)", o.kind))
	}
	return o.arr
}

// Arguments narrows to the arguments payload. Fatal on other kinds.
func (o *ObjectInfo) Arguments() *ArgumentsObjectInfo {
	if o.kind != KindArguments {
		panic(fmt.Sprintf("vm: object is not an arguments object (kind %s)", o.kind))
	}
	return o.args
}

// Date narrows to the date payload. Fatal on other kinds.
func (o *ObjectInfo) Date() *DateObjectInfo {
	if o.kind != KindDate {
		panic(fmt.Sprintf("vm: object is not a date (kind %s)", o.kind))
	}
	return o.date
}

// GetOwnProperty looks up a direct slot by name.
func (o *ObjectInfo) GetOwnProperty(name string) (Property, bool) {
	p, ok := o.property[name]
	return p, ok
}

// HasOwnProperty reports whether an own slot exists under the key. Array
// element slots count as own properties when the key is a canonical
// index within the current length.
func (o *ObjectInfo) HasOwnProperty(name string) bool {
	if o.kind == KindArray {
		if idx, ok := canonicalIndex(name); ok {
			return idx < o.arr.Length()
		}
	}
	_, ok := o.property[name]
	return ok
}

// Properties returns the own property map. The view is read-only;
// mutation goes through the property operations.
func (o *ObjectInfo) Properties() map[string]Property {
	return o.property
}

// ownKeys returns own string keys, index-like keys first in ascending
// numeric order, then the rest sorted for determinism.
func (o *ObjectInfo) ownKeys() []string {
	var idxKeys []int
	var strKeys []string
	for name := range o.property {
		if idx, ok := canonicalIndex(name); ok {
			idxKeys = append(idxKeys, idx)
		} else {
			strKeys = append(strKeys, name)
		}
	}
	sort.Ints(idxKeys)
	sort.Strings(strKeys)
	keys := make([]string, 0, len(idxKeys)+len(strKeys))
	for _, idx := range idxKeys {
		keys = append(keys, formatNumber(float64(idx)))
	}
	return append(keys, strKeys...)
}

// setOwn applies assignment semantics to an own slot: an existing data
// slot is overwritten in place when writable, an existing accessor slot
// hands back its setter for the resolver to invoke, and an absent key
// materializes a fresh data property with default flags.
func (o *ObjectInfo) setOwn(name string, v Value) (setter Value, invoke bool) {
	if p, ok := o.property[name]; ok {
		switch prop := p.(type) {
		case DataProperty:
			if prop.Writable {
				prop.Val = v
				o.property[name] = prop
			}
			return Undefined, false
		case AccessorProperty:
			if prop.Set.IsUndefined() {
				return Undefined, false
			}
			return prop.Set, true
		}
	}
	o.property[name] = NewDataProperty(v)
	return Undefined, false
}

// DefineOwnProperty installs or replaces a slot with explicit attributes,
// honoring the non-configurable rule: an existing non-configurable slot
// keeps its shape and flags.
func (o *ObjectInfo) DefineOwnProperty(name string, prop Property) bool {
	if existing, ok := o.property[name]; ok && !existing.IsConfigurable() {
		// A non-configurable data slot still accepts value updates while
		// writable.
		if ed, ok := existing.(DataProperty); ok && ed.Writable {
			if nd, ok := prop.(DataProperty); ok {
				ed.Val = nd.Val
				o.property[name] = ed
				return true
			}
		}
		return false
	}
	o.property[name] = prop
	return true
}

// DeleteOwnProperty removes an own slot. Deleting an absent key succeeds;
// deleting a non-configurable slot fails.
func (o *ObjectInfo) DeleteOwnProperty(name string) bool {
	p, ok := o.property[name]
	if !ok {
		return true
	}
	if !p.IsConfigurable() {
		return false
	}
	delete(o.property, name)
	return true
}

// Prototype returns the value of the prototype link, Undefined when the
// link is absent.
func (o *ObjectInfo) Prototype() Value {
	if p, ok := o.property[protoKey]; ok {
		if dp, ok := p.(DataProperty); ok {
			return dp.Val
		}
	}
	return Undefined
}

// SetPrototype stores the prototype link as a non-enumerable data
// property. Lookup does not guard against cycles, so callers must not
// create one.
func (o *ObjectInfo) SetPrototype(proto Value) {
	o.property[protoKey] = NewBuiltinProperty(proto)
}

// SetConstructor installs the own, non-enumerable "constructor" data
// property, overwriting any previous one.
func (o *ObjectInfo) SetConstructor(ctor Value) {
	o.property["constructor"] = DataProperty{Val: ctor, Writable: true, Configurable: true}
}

// clone produces a shallow copy: the property map is duplicated, the
// kind payload is duplicated one level deep, and every held Value still
// references the same heap records.
func (o *ObjectInfo) clone() ObjectInfo {
	dup := ObjectInfo{kind: o.kind, property: make(map[string]Property, len(o.property))}
	for name, p := range o.property {
		dup.property[name] = p
	}
	switch o.kind {
	case KindFunction:
		fn := *o.fn
		if u, ok := fn.Kind.(*UserFunction); ok {
			uc := *u
			fn.Kind = &uc
		}
		dup.fn = &fn
	case KindArray:
		elems := make([]Property, len(o.arr.elems))
		copy(elems, o.arr.elems)
		dup.arr = &ArrayObjectInfo{elems: elems}
	case KindArguments:
		args := *o.args
		dup.args = &args
	case KindDate:
		date := *o.date
		dup.date = &date
	}
	return dup
}

// NewObject allocates an ordinary object whose prototype link points at
// the registry's Object prototype.
func NewObject(alloc Allocator, protos *Prototypes) Value {
	return NewObjectWithProto(alloc, protos.Object)
}

// NewObjectWithProto allocates an ordinary object with an explicit
// prototype link.
func NewObjectWithProto(alloc Allocator, proto Value) Value {
	info := ObjectInfo{kind: KindOrdinary, property: map[string]Property{}}
	obj := alloc.AllocObject(info)
	obj.SetPrototype(proto)
	return objectValue(obj)
}
