package vm

import (
	"testing"
	"unsafe"
)

func newTestUserFunction(alloc Allocator, protos *Prototypes, name string, paramCount int) Value {
	params := make([]FunctionParameter, paramCount)
	for i := range params {
		params[i] = FunctionParameter{Name: string(rune('a' + i))}
	}
	return NewFunction(alloc, protos, name, params, nil, nil, nil, []byte{0x01}, nil)
}

func TestNewFunctionLayout(t *testing.T) {
	alloc := NewArena()
	protos := NewPrototypes(alloc)
	realm := NewRealm(alloc, protos)

	fn := newTestUserFunction(alloc, protos, "add", 2)
	obj := fn.AsObject()

	if obj.Kind() != KindFunction {
		t.Fatalf("Kind = %v, want %v", obj.Kind(), KindFunction)
	}
	if !obj.Prototype().SameObject(protos.Function) {
		t.Errorf("Expected __proto__ to link to Function.prototype")
	}

	length, _ := realm.GetPropertyByName(fn, "length")
	floatsEqual(t, 2, length.AsNumber(), "length must be the parameter count")

	name, _ := realm.GetPropertyByName(fn, "name")
	if name.AsString() != "add" {
		t.Errorf("name = %q, want %q", name.AsString(), "add")
	}

	// The fresh prototype object points back through constructor
	proto, _ := realm.GetPropertyByName(fn, "prototype")
	if !proto.IsObject() {
		t.Fatalf("Expected a prototype object")
	}
	ctor, _ := realm.GetPropertyByName(proto, "constructor")
	if !ctor.SameObject(fn) {
		t.Errorf("Expected prototype.constructor to reference the function")
	}

	// Flags follow the fixed layout: length and name are neither
	// writable nor enumerable, prototype is writable but not configurable
	lengthProp, _ := obj.GetOwnProperty("length")
	lp := lengthProp.(DataProperty)
	if lp.Writable || lp.Enumerable || !lp.Configurable {
		t.Errorf("length flags = %v/%v/%v", lp.Writable, lp.Enumerable, lp.Configurable)
	}
	protoProp, _ := obj.GetOwnProperty("prototype")
	pp := protoProp.(DataProperty)
	if !pp.Writable || pp.Enumerable || pp.Configurable {
		t.Errorf("prototype flags = %v/%v/%v", pp.Writable, pp.Enumerable, pp.Configurable)
	}
}

func TestFuncIDUnique(t *testing.T) {
	alloc := NewArena()
	protos := NewPrototypes(alloc)

	a := newTestUserFunction(alloc, protos, "a", 0)
	b := newTestUserFunction(alloc, protos, "b", 0)
	if a.AsFunction().ID == b.AsFunction().ID {
		t.Errorf("Expected distinct function IDs")
	}
}

func TestOuterEnvironment(t *testing.T) {
	alloc := NewArena()
	protos := NewPrototypes(alloc)

	fn := newTestUserFunction(alloc, protos, "f", 0)
	user := fn.AsFunction().Kind.(*UserFunction)
	if user.Outer() != nil {
		t.Fatalf("Expected no outer before wiring")
	}

	var envSlot, otherSlot int
	env := LexicalEnvironmentRef(unsafe.Pointer(&envSlot))
	fn.SetFunctionOuterEnvironment(env)
	if user.Outer() != env {
		t.Errorf("Expected the wired environment")
	}

	// Settable once: a second wiring is ignored
	other := LexicalEnvironmentRef(unsafe.Pointer(&otherSlot))
	fn.SetFunctionOuterEnvironment(other)
	if user.Outer() != env {
		t.Errorf("Expected the first wiring to win")
	}

	// Builtins have no scope to close over
	builtin := NewBuiltinFunction(alloc, protos, "b", func(this Value, args []Value) (Value, error) {
		return Undefined, nil
	})
	expectPanic(t, func() { builtin.SetFunctionOuterEnvironment(env) }, "builtin")
}

func TestBuiltinCall(t *testing.T) {
	alloc := NewArena()
	protos := NewPrototypes(alloc)
	realm := NewRealm(alloc, protos)

	double := NewBuiltinFunction(alloc, protos, "double", func(this Value, args []Value) (Value, error) {
		return NumberValue(args[0].AsNumber() * 2), nil
	})
	out, err := realm.CallFunction(double, Undefined, []Value{NumberValue(21)})
	if err != nil {
		t.Fatalf("CallFunction failed: %v", err)
	}
	floatsEqual(t, 42, out.AsNumber())
}

type recordingCaller struct {
	fn   Value
	this Value
	args []Value
}

func (c *recordingCaller) Call(fn Value, this Value, args []Value) (Value, error) {
	c.fn, c.this, c.args = fn, this, args
	return NumberValue(7), nil
}

func TestUserFunctionCallsThroughCaller(t *testing.T) {
	alloc := NewArena()
	protos := NewPrototypes(alloc)
	realm := NewRealm(alloc, protos)

	fn := newTestUserFunction(alloc, protos, "f", 1)

	// Without a caller attached, invoking a user function is fatal
	expectPanic(t, func() { realm.CallFunction(fn, Undefined, nil) }, "Caller")

	rec := &recordingCaller{}
	realm.SetCaller(rec)
	this := NewObject(alloc, protos)
	out, err := realm.CallFunction(fn, this, []Value{NumberValue(1)})
	if err != nil {
		t.Fatalf("CallFunction failed: %v", err)
	}
	floatsEqual(t, 7, out.AsNumber())
	if !rec.fn.SameObject(fn) || !rec.this.SameObject(this) || len(rec.args) != 1 {
		t.Errorf("Caller saw fn=%v this=%v args=%d", rec.fn.Inspect(), rec.this.Inspect(), len(rec.args))
	}
}

func TestUserAccessorThroughCaller(t *testing.T) {
	alloc := NewArena()
	protos := NewPrototypes(alloc)
	realm := NewRealm(alloc, protos)
	rec := &recordingCaller{}
	realm.SetCaller(rec)

	v := NewObject(alloc, protos)
	getter := newTestUserFunction(alloc, protos, "get x", 0)
	v.AsObject().DefineOwnProperty("x", NewAccessorProperty(getter, Undefined, true, true))

	got, err := realm.GetPropertyByName(v, "x")
	if err != nil {
		t.Fatalf("getter failed: %v", err)
	}
	floatsEqual(t, 7, got.AsNumber())
	if !rec.this.SameObject(v) {
		t.Errorf("Expected the getter to run with this = receiver")
	}
}
