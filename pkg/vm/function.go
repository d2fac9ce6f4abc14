package vm

import (
	"sync/atomic"
	"unsafe"
)

// FuncID uniquely identifies a function object for the lifetime of the
// process.
type FuncID uint64

var nextFuncID atomic.Uint64

func newFuncID() FuncID {
	return FuncID(nextFuncID.Add(1))
}

// NativeFunc is the callback signature of built-in functions. The
// receiver value arrives as this; args are positional.
type NativeFunc func(this Value, args []Value) (Value, error)

// LexicalEnvironmentRef is an opaque handle to an executor-owned lexical
// environment. This core stores it and hands it back; it never
// dereferences it and the reference takes no part in equality or
// lifetime.
type LexicalEnvironmentRef unsafe.Pointer

// FunctionParameter is one declared parameter of a user function.
type FunctionParameter struct {
	Name string
	Rest bool
}

// ExceptionEntry is one row of a user function's exception table. The
// offsets are bytecode positions whose meaning belongs to the executor.
type ExceptionEntry struct {
	Start   int
	End     int
	Handler int
}

// FunctionKind is the closed variant set of function payloads.
type FunctionKind interface{ functionKind() }

// BuiltinFunction is a function implemented natively.
type BuiltinFunction struct {
	Fn NativeFunc
}

// UserFunction is a function compiled from script source. Code and
// ExceptionTable are produced by the external compiler and treated as
// opaque here. Outer is wired late via SetFunctionOuterEnvironment,
// because a function literal is constructed before its enclosing scope
// exists.
type UserFunction struct {
	Params         []FunctionParameter
	VarNames       []string
	LexNames       []string
	FuncDecls      []Value
	Code           []byte
	ExceptionTable []ExceptionEntry

	outer    LexicalEnvironmentRef
	outerSet bool
}

func (*BuiltinFunction) functionKind() {}
func (*UserFunction) functionKind()    {}

// Outer returns the wired lexical environment, or nil before wiring.
func (u *UserFunction) Outer() LexicalEnvironmentRef { return u.outer }

// FunctionObjectInfo is the payload of a function-kind object.
type FunctionObjectInfo struct {
	ID   FuncID
	Name string // empty for anonymous functions
	Kind FunctionKind

	// boundThis carries the receiver for boxing-on-read lookups
	// (number prototype methods). It is set only on shallow copies made
	// by the resolver, never on the original function object.
	boundThis    Value
	hasBoundThis bool
}

// BoundThis returns the rebound receiver, if any.
func (f *FunctionObjectInfo) BoundThis() (Value, bool) {
	return f.boundThis, f.hasBoundThis
}

// setOuterEnvironment records the closed-over scope. Settable once: the
// first call fixes the reference and later calls are ignored. Fatal when
// the function is a builtin, which has no lexical scope to close over.
func (f *FunctionObjectInfo) setOuterEnvironment(env LexicalEnvironmentRef) {
	user, ok := f.Kind.(*UserFunction)
	if !ok {
		panic("vm: cannot set outer environment on a builtin function")
	}
	if user.outerSet {
		return
	}
	user.outer = env
	user.outerSet = true
}

// NewFunction allocates a user function object. Own properties follow
// the fixed layout: __proto__ (Function.prototype), length (parameter
// count), name, and a fresh prototype object whose constructor points
// back at the function.
func NewFunction(
	alloc Allocator,
	protos *Prototypes,
	name string,
	params []FunctionParameter,
	varNames []string,
	lexNames []string,
	funcDecls []Value,
	code []byte,
	exceptionTable []ExceptionEntry,
) Value {
	info := ObjectInfo{
		kind:     KindFunction,
		property: map[string]Property{},
		fn: &FunctionObjectInfo{
			ID:   newFuncID(),
			Name: name,
			Kind: &UserFunction{
				Params:         params,
				VarNames:       varNames,
				LexNames:       lexNames,
				FuncDecls:      funcDecls,
				Code:           code,
				ExceptionTable: exceptionTable,
			},
		},
	}
	obj := alloc.AllocObject(info)
	fnVal := objectValue(obj)

	prototype := NewObjectWithProto(alloc, protos.Object)
	prototype.SetConstructor(fnVal)

	obj.SetPrototype(protos.Function)
	obj.property["length"] = DataProperty{Val: NumberValue(float64(len(params))), Configurable: true}
	obj.property["name"] = DataProperty{Val: NewString(alloc, name), Configurable: true}
	obj.property["prototype"] = DataProperty{Val: prototype, Writable: true}
	return fnVal
}

// NewBuiltinFunction allocates a builtin function object against the
// shared registry.
func NewBuiltinFunction(alloc Allocator, protos *Prototypes, name string, fn NativeFunc) Value {
	return NewBuiltinFunctionWithPrototype(alloc, protos.Function, protos.Object, name, fn)
}

// NewBuiltinFunctionWithPrototype allocates a builtin function object
// with explicit prototype handles. The registry bootstrap needs this
// form before the registry itself exists.
func NewBuiltinFunctionWithPrototype(alloc Allocator, functionProto, objectProto Value, name string, fn NativeFunc) Value {
	info := ObjectInfo{
		kind:     KindFunction,
		property: map[string]Property{},
		fn: &FunctionObjectInfo{
			ID:   newFuncID(),
			Name: name,
			Kind: &BuiltinFunction{Fn: fn},
		},
	}
	obj := alloc.AllocObject(info)
	fnVal := objectValue(obj)

	prototype := NewObjectWithProto(alloc, objectProto)
	prototype.SetConstructor(fnVal)

	obj.SetPrototype(functionProto)
	obj.property["prototype"] = DataProperty{Val: prototype, Writable: true, Enumerable: true, Configurable: true}
	obj.property["length"] = DataProperty{Val: NumberValue(0), Configurable: true}
	obj.property["name"] = DataProperty{Val: NewString(alloc, name), Configurable: true}
	return fnVal
}

// bindThis returns a shallow copy of fn with this rebound to receiver.
// Used for boxing-on-read: no persistent wrapper object is created and
// the original function is left untouched.
func bindThis(alloc Allocator, fn Value, receiver Value) Value {
	obj := fn.AsObject()
	dup := obj.clone()
	fnCopy := *dup.fn
	fnCopy.boundThis = receiver
	fnCopy.hasBoundThis = true
	dup.fn = &fnCopy
	return objectValue(alloc.AllocObject(dup))
}
