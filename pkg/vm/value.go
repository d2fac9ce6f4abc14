package vm

import (
	"fmt"
	"math"
	"strings"
	"unsafe"
)

// ValueType discriminates the closed variant set of Value. Exactly one
// variant is active for any Value.
type ValueType uint8

const (
	TypeUndefined ValueType = iota
	TypeNull
	TypeEmpty         // Internal marker for reserved-but-unwritten slots (array growth)
	TypeUninitialized // TDZ marker for bindings before initialization
	TypeBoolean
	TypeNumber
	TypeString
	TypeObject
)

// String returns a human-readable name of the type tag.
func (vt ValueType) String() string {
	switch vt {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeEmpty:
		return "empty"
	case TypeUninitialized:
		return "uninitialized"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// StringObject is the heap record behind a String value. Instances are
// handed out by the Allocator, which may intern them.
type StringObject struct {
	value string
}

// Value returns the Go string content.
func (s *StringObject) Value() string { return s.value }

// Value is the universal runtime value: a fixed-size tagged union passed
// by value everywhere. Numbers and booleans live in the payload word;
// strings and objects are non-owning handles into allocator-managed
// storage. The layout permits a NaN-boxed encoding behind the same
// interface, but no caller may depend on that.
type Value struct {
	typ     ValueType
	payload uint64
	obj     unsafe.Pointer
}

var (
	Undefined     = Value{typ: TypeUndefined}
	Null          = Value{typ: TypeNull}
	Empty         = Value{typ: TypeEmpty}
	Uninitialized = Value{typ: TypeUninitialized}
	True          = Value{typ: TypeBoolean, payload: 1}
	False         = Value{typ: TypeBoolean, payload: 0}
	NaN           = Value{typ: TypeNumber, payload: math.Float64bits(math.NaN())}
)

func NumberValue(value float64) Value {
	return Value{typ: TypeNumber, payload: math.Float64bits(value)}
}

func BooleanValue(value bool) Value {
	if value {
		return True
	}
	return False
}

// NewString allocates (or re-uses an interned) string record through the
// allocator and wraps it as a String value.
func NewString(alloc Allocator, value string) Value {
	return Value{typ: TypeString, obj: unsafe.Pointer(alloc.AllocString(value))}
}

func objectValue(info *ObjectInfo) Value {
	return Value{typ: TypeObject, obj: unsafe.Pointer(info)}
}

// ObjectValue wraps an allocator-owned object record as an Object value.
func ObjectValue(info *ObjectInfo) Value {
	if info == nil {
		panic("vm: ObjectValue called with nil object record")
	}
	return objectValue(info)
}

// --- Type predicates ---

func (v Value) Type() ValueType { return v.typ }

func (v Value) IsUndefined() bool { return v.typ == TypeUndefined }
func (v Value) IsNull() bool      { return v.typ == TypeNull }
func (v Value) IsEmpty() bool     { return v.typ == TypeEmpty }
func (v Value) IsBoolean() bool   { return v.typ == TypeBoolean }
func (v Value) IsNumber() bool    { return v.typ == TypeNumber }
func (v Value) IsString() bool    { return v.typ == TypeString }
func (v Value) IsObject() bool    { return v.typ == TypeObject }

// IsSameTypeAs reports variant-tag equality, ignoring payloads. It is
// reflexive and symmetric.
func (v Value) IsSameTypeAs(other Value) bool {
	return v.typ == other.typ
}

// --- Accessors ---
// Calling one on a mismatched variant is a bug in the calling component,
// not malformed script input, so every accessor panics rather than
// recovers.

func (v Value) AsNumber() float64 {
	if v.typ != TypeNumber {
		panic(fmt.Sprintf("vm: value is not a number (got %s)", v.typ))
	}
	return math.Float64frombits(v.payload)
}

func (v Value) AsBoolean() bool {
	if v.typ != TypeBoolean {
		panic(fmt.Sprintf("vm: value is not a boolean (got %s)", v.typ))
	}
	return v.payload == 1
}

func (v Value) AsString() string {
	if v.typ != TypeString {
		panic(fmt.Sprintf("vm: value is not a string (got %s)", v.typ))
	}
	return (*StringObject)(v.obj).value
}

func (v Value) AsObject() *ObjectInfo {
	if v.typ != TypeObject {
		panic(fmt.Sprintf("vm: value is not an object (got %s)", v.typ))
	}
	return (*ObjectInfo)(v.obj)
}

// AsFunction narrows to the function-kind payload. Fatal on any other
// runtime type.
func (v Value) AsFunction() *FunctionObjectInfo {
	return v.AsObject().Func()
}

// SameObject reports handle identity between two Object values.
func (v Value) SameObject(other Value) bool {
	return v.typ == TypeObject && other.typ == TypeObject && v.obj == other.obj
}

// undefinedIfEmpty maps the internal Empty marker to Undefined. Every
// public read path goes through this; Empty must never escape.
func undefinedIfEmpty(v Value) Value {
	if v.typ == TypeEmpty {
		return Undefined
	}
	return v
}

// --- Value-level object operations ---
// These mirror the object-record operations but tolerate any runtime
// type, answering the "not an object" cases the way the resolver does.

// HasOwnProperty reports whether the value is an object carrying an own
// property (map entry or array element) under the given string key.
func (v Value) HasOwnProperty(key string) bool {
	if v.typ != TypeObject {
		return false
	}
	return v.AsObject().HasOwnProperty(key)
}

// GetObjectProperties returns a read-only view of the object's own
// property map, or nil for non-objects. Callers must not mutate it.
func (v Value) GetObjectProperties() map[string]Property {
	if v.typ != TypeObject {
		return nil
	}
	return v.AsObject().Properties()
}

// SetConstructor installs the own, non-enumerable "constructor" data
// property. No-op for non-objects.
func (v Value) SetConstructor(ctor Value) {
	if v.typ != TypeObject {
		return
	}
	v.AsObject().SetConstructor(ctor)
}

// CopyObject shallow-clones an object through the allocator. Primitives
// and sentinels come back unchanged.
func (v Value) CopyObject(alloc Allocator) Value {
	if v.typ != TypeObject {
		return v
	}
	return objectValue(alloc.AllocObject(v.AsObject().clone()))
}

// SetFunctionOuterEnvironment wires the lexical scope a user function
// closed over. The reference is opaque here and settable once; the first
// call fixes it. Fatal when the receiver is not a user function.
func (v Value) SetFunctionOuterEnvironment(env LexicalEnvironmentRef) {
	v.AsFunction().setOuterEnvironment(env)
}

// IsCallable reports whether the value is a function-kind object.
func (v Value) IsCallable() bool {
	return v.typ == TypeObject && v.AsObject().kind == KindFunction
}

// Inspect returns a developer-friendly rendering, for diagnostics only.
func (v Value) Inspect() string {
	return v.inspect(false, 0)
}

func (v Value) inspect(nested bool, depth int) string {
	if depth > 8 {
		return "..."
	}
	switch v.typ {
	case TypeString:
		if nested {
			return fmt.Sprintf("%q", v.AsString())
		}
		return v.AsString()
	case TypeObject:
		obj := v.AsObject()
		switch obj.kind {
		case KindArray:
			arr := obj.arr
			parts := make([]string, len(arr.elems))
			for i, p := range arr.elems {
				if dp, ok := p.(DataProperty); ok {
					parts[i] = undefinedIfEmpty(dp.Val).inspect(true, depth+1)
				} else {
					parts[i] = "<accessor>"
				}
			}
			return "[" + strings.Join(parts, ", ") + "]"
		case KindFunction:
			fn := obj.fn
			if fn.Name != "" {
				return fmt.Sprintf("[Function: %s]", fn.Name)
			}
			return "[Function (anonymous)]"
		default:
			var b strings.Builder
			b.WriteString("{")
			first := true
			for _, name := range obj.ownKeys() {
				if name == protoKey {
					continue
				}
				if !first {
					b.WriteString(", ")
				}
				first = false
				b.WriteString(name)
				b.WriteString(": ")
				if dp, ok := obj.property[name].(DataProperty); ok {
					b.WriteString(undefinedIfEmpty(dp.Val).inspect(true, depth+1))
				} else {
					b.WriteString("<accessor>")
				}
			}
			b.WriteString("}")
			return b.String()
		}
	default:
		return v.ToString()
	}
}
