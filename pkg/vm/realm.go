package vm

import (
	"unicode/utf16"
)

// Caller invokes user functions on the resolver's behalf. Accessor
// properties may hold script-defined getters and setters; executing
// their bytecode is the executor's job, so the executor hands the realm
// this capability at startup. Builtin functions are called directly and
// never reach the Caller.
type Caller interface {
	Call(fn Value, this Value, args []Value) (Value, error)
}

// Realm bundles the capabilities property resolution needs: the
// allocator, the prototype registry, and the executor's call hook.
// Everything is passed in explicitly; a process can host several realms
// with fully separate prototype graphs.
type Realm struct {
	alloc  Allocator
	protos *Prototypes
	caller Caller
}

// NewRealm wires a realm over an allocator and a prototype registry.
// The Caller is attached separately once the executor exists.
func NewRealm(alloc Allocator, protos *Prototypes) *Realm {
	return &Realm{alloc: alloc, protos: protos}
}

// SetCaller attaches the executor's call hook.
func (r *Realm) SetCaller(c Caller) { r.caller = c }

// Allocator returns the realm's allocator.
func (r *Realm) Allocator() Allocator { return r.alloc }

// Prototypes returns the realm's prototype registry.
func (r *Realm) Prototypes() *Prototypes { return r.protos }

// GetProperty resolves key against v, dispatching on v's runtime type.
// Primitive receivers get fast paths (string char access, number method
// boxing-on-read); object receivers walk the own map and then the
// prototype chain, first match wins. Missing properties read as
// Undefined, never as an error.
func (r *Realm) GetProperty(v, key Value) (Value, error) {
	name, idx, isIdx := r.propertyKey(key)
	return r.getByKey(v, name, idx, isIdx)
}

// GetPropertyByName is the string-keyed entry point used by the
// executor for identifier-shaped accesses.
func (r *Realm) GetPropertyByName(v Value, name string) (Value, error) {
	idx, isIdx := canonicalIndex(name)
	return r.getByKey(v, name, idx, isIdx)
}

func (r *Realm) getByKey(v Value, name string, idx int, isIdx bool) (Value, error) {
	switch v.typ {
	case TypeString:
		return r.getStringProperty(v, name, idx, isIdx)

	case TypeNumber:
		// Boxing-on-read: resolve against the Number prototype and
		// rebind any found function so this is the primitive receiver.
		// No wrapper object is allocated.
		found, err := r.getFromChain(v, r.protos.Number, name)
		if err != nil {
			return Undefined, err
		}
		return r.rebindIfFunction(found, v), nil

	case TypeObject:
		obj := v.AsObject()
		switch obj.kind {
		case KindArray:
			return r.getArrayProperty(v, obj, name, idx, isIdx)
		case KindArguments:
			return r.getArgumentsProperty(obj, name, idx, isIdx)
		default:
			return r.getFromChain(v, v, name)
		}

	default:
		// Booleans and the nullish sentinels resolve nothing.
		return Undefined, nil
	}
}

// SetProperty assigns key = val on v, mirroring the GetProperty
// dispatch. Writes never walk the prototype chain: an absent key on an
// ordinary object creates a fresh own data property. Writes to
// primitive and nullish receivers are silently dropped.
func (r *Realm) SetProperty(v, key, val Value) error {
	name, idx, isIdx := r.propertyKey(key)

	if v.typ != TypeObject {
		return nil
	}

	obj := v.AsObject()
	switch obj.kind {
	case KindArray:
		return r.setArrayProperty(v, obj, name, idx, isIdx, val)
	case KindArguments:
		if isIdx {
			obj.args.bindings.SetNth(idx, val)
		}
		return nil
	default:
		setter, invoke := obj.setOwn(name, val)
		if invoke {
			_, err := r.CallFunction(setter, v, []Value{val})
			return err
		}
		return nil
	}
}

// HasOwnProperty reports whether v is an object with an own slot under
// key, counting array element slots within the current length.
func (r *Realm) HasOwnProperty(v Value, key string) bool {
	return v.HasOwnProperty(key)
}

// CopyObject shallow-clones an object through the realm's allocator.
// Non-objects come back unchanged.
func (r *Realm) CopyObject(v Value) Value {
	return v.CopyObject(r.alloc)
}

// CallFunction invokes fn with the given receiver. A receiver rebound
// by boxing-on-read takes precedence over the one passed here. Builtins
// run in place; user functions go through the attached Caller, and
// invoking one before a Caller is attached is a wiring bug.
func (r *Realm) CallFunction(fn Value, this Value, args []Value) (Value, error) {
	f := fn.AsFunction()
	if bound, ok := f.BoundThis(); ok {
		this = bound
	}
	switch k := f.Kind.(type) {
	case *BuiltinFunction:
		return k.Fn(this, args)
	case *UserFunction:
		if r.caller == nil {
			panic("vm: user function invoked before a Caller was attached")
		}
		return r.caller.Call(fn, this, args)
	default:
		panic("vm: unknown function kind")
	}
}

// propertyKey normalizes a key value into its string name and, when the
// key selects an element slot, its index. A number key is an index iff
// it is a non-negative in-range integer; a string key is an index iff
// it is in canonical form ("2" yes, "02" no).
func (r *Realm) propertyKey(key Value) (name string, idx int, isIdx bool) {
	if key.typ == TypeNumber {
		n := key.AsNumber()
		if i, ok := numberIndex(n); ok {
			return formatNumber(n), i, true
		}
		return formatNumber(n), 0, false
	}
	name = key.ToString()
	idx, isIdx = canonicalIndex(name)
	return name, idx, isIdx
}

// getFromChain walks obj's own map and then its prototype chain for
// name. receiver is the original lookup subject: accessor getters run
// with this bound to it, not to the prototype the slot lives on. The
// walk ends with Undefined at a null or absent prototype link. Chains
// are acyclic by construction; there is no cycle guard.
func (r *Realm) getFromChain(receiver, start Value, name string) (Value, error) {
	cur := start
	for cur.typ == TypeObject {
		obj := cur.AsObject()
		if p, ok := obj.GetOwnProperty(name); ok {
			switch prop := p.(type) {
			case DataProperty:
				return undefinedIfEmpty(prop.Val), nil
			case AccessorProperty:
				if prop.Get.IsUndefined() {
					return Undefined, nil
				}
				return r.CallFunction(prop.Get, receiver, nil)
			}
		}
		cur = obj.Prototype()
	}
	return Undefined, nil
}

// rebindIfFunction shallow-copies a found function with this fixed to
// receiver. Non-functions pass through.
func (r *Realm) rebindIfFunction(found, receiver Value) Value {
	if found.IsCallable() {
		return bindThis(r.alloc, found, receiver)
	}
	return found
}

func (r *Realm) getStringProperty(v Value, name string, idx int, isIdx bool) (Value, error) {
	s := v.AsString()
	units := utf16.Encode([]rune(s))
	if isIdx {
		if idx >= len(units) {
			return Undefined, nil
		}
		// One code unit, not one code point: an unpaired surrogate half
		// decodes to U+FFFD, matching JS charAt semantics.
		return NewString(r.alloc, string(utf16.Decode(units[idx:idx+1]))), nil
	}
	if name == "length" {
		return NumberValue(float64(len(units))), nil
	}
	found, err := r.getFromChain(v, r.protos.String, name)
	if err != nil {
		return Undefined, err
	}
	return r.rebindIfFunction(found, v), nil
}

func (r *Realm) getArrayProperty(v Value, obj *ObjectInfo, name string, idx int, isIdx bool) (Value, error) {
	arr := obj.arr
	if isIdx {
		switch prop := arr.GetElement(idx).(type) {
		case DataProperty:
			return undefinedIfEmpty(prop.Val), nil
		case AccessorProperty:
			if prop.Get.IsUndefined() {
				return Undefined, nil
			}
			return r.CallFunction(prop.Get, v, nil)
		}
		return Undefined, nil
	}
	if name == "length" {
		return NumberValue(float64(arr.Length())), nil
	}
	return r.getFromChain(v, v, name)
}

func (r *Realm) getArgumentsProperty(obj *ObjectInfo, name string, idx int, isIdx bool) (Value, error) {
	src := obj.args.bindings
	if isIdx {
		if val, ok := src.Nth(idx); ok {
			return undefinedIfEmpty(val), nil
		}
		return Undefined, nil
	}
	if name == "length" {
		return NumberValue(float64(src.Len())), nil
	}
	return Undefined, nil
}

func (r *Realm) setArrayProperty(v Value, obj *ObjectInfo, name string, idx int, isIdx bool, val Value) error {
	arr := obj.arr
	if isIdx {
		setter, invoke := arr.SetElement(idx, val)
		if invoke {
			_, err := r.CallFunction(setter, v, []Value{val})
			return err
		}
		return nil
	}
	if name == "length" {
		if val.typ == TypeNumber {
			if n, ok := numberIndex(val.AsNumber()); ok {
				arr.SetLength(n)
			}
		}
		return nil
	}
	setter, invoke := obj.setOwn(name, val)
	if invoke {
		_, err := r.CallFunction(setter, v, []Value{val})
		return err
	}
	return nil
}
