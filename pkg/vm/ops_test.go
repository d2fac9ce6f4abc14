package vm

import (
	"math"
	"testing"
)

func TestArithmetic(t *testing.T) {
	alloc := NewArena()

	t.Run("Add numbers", func(t *testing.T) {
		got, err := Add(alloc, NumberValue(2), NumberValue(3))
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		floatsEqual(t, 5, got.AsNumber())
	})

	t.Run("Add strings", func(t *testing.T) {
		got, err := Add(alloc, NewString(alloc, "foo"), NewString(alloc, "bar"))
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if got.AsString() != "foobar" {
			t.Errorf("Add strings = %q", got.AsString())
		}
	})

	t.Run("Add mixed is unimplemented", func(t *testing.T) {
		_, err := Add(alloc, NumberValue(1), NewString(alloc, "a"))
		if !IsUnimplemented(err) {
			t.Errorf("Expected UnimplementedError, got %v", err)
		}
	})

	t.Run("Sub Mul Div", func(t *testing.T) {
		if v, err := Sub(NumberValue(5), NumberValue(2)); err != nil || v.AsNumber() != 3 {
			t.Errorf("Sub = %v, %v", v, err)
		}
		if v, err := Mul(NumberValue(4), NumberValue(2.5)); err != nil || v.AsNumber() != 10 {
			t.Errorf("Mul = %v, %v", v, err)
		}
		if v, err := Div(NumberValue(1), NumberValue(2)); err != nil || v.AsNumber() != 0.5 {
			t.Errorf("Div = %v, %v", v, err)
		}
		// IEEE division by zero
		if v, err := Div(NumberValue(1), NumberValue(0)); err != nil || !math.IsInf(v.AsNumber(), 1) {
			t.Errorf("Div by zero = %v, %v", v, err)
		}
	})

	t.Run("Rem", func(t *testing.T) {
		v, err := Rem(NumberValue(7), NumberValue(3))
		if err != nil {
			t.Fatalf("Rem failed: %v", err)
		}
		floatsEqual(t, 1, v.AsNumber())

		v, err = Rem(NumberValue(-7), NumberValue(3))
		if err != nil {
			t.Fatalf("Rem failed: %v", err)
		}
		floatsEqual(t, -1, v.AsNumber())

		v, err = Rem(NumberValue(1), NumberValue(0))
		if err != nil {
			t.Fatalf("Rem failed: %v", err)
		}
		floatsEqual(t, math.NaN(), v.AsNumber())
	})

	t.Run("Neg", func(t *testing.T) {
		v, err := Neg(NumberValue(3))
		if err != nil {
			t.Fatalf("Neg failed: %v", err)
		}
		floatsEqual(t, -3, v.AsNumber())
		if _, err := Neg(True); !IsUnimplemented(err) {
			t.Errorf("Expected UnimplementedError, got %v", err)
		}
	})
}

func TestStrictEquals(t *testing.T) {
	alloc := NewArena()
	protos := NewPrototypes(alloc)
	obj := NewObject(alloc, protos)

	cases := []struct {
		name string
		x, y Value
		want bool
	}{
		{"undefined vs undefined", Undefined, Undefined, true},
		{"null vs null", Null, Null, true},
		{"undefined vs null", Undefined, Null, false},
		{"empty vs empty", Empty, Empty, true},
		{"empty vs undefined", Empty, Undefined, false},
		{"numbers equal", NumberValue(1), NumberValue(1), true},
		{"NaN vs NaN", NaN, NaN, false},
		{"zero vs negative zero", NumberValue(0), NumberValue(math.Copysign(0, -1)), true},
		{"number vs string", NumberValue(1), NewString(alloc, "1"), false},
		{"strings equal", NewString(alloc, "ab"), NewString(alloc, "ab"), true},
		{"strings differ", NewString(alloc, "ab"), NewString(alloc, "ba"), false},
		{"same object", obj, obj, true},
		{"distinct objects", obj, NewObject(alloc, protos), false},
		{"bool vs number", True, NumberValue(1), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := StrictEquals(c.x, c.y); got != c.want {
				t.Errorf("StrictEquals = %v, want %v", got, c.want)
			}
		})
	}
}

func TestEquals(t *testing.T) {
	alloc := NewArena()
	protos := NewPrototypes(alloc)

	type eqCase struct {
		name string
		x, y Value
		want bool
	}
	cases := []eqCase{
		{"undefined == null", Undefined, Null, true},
		{"null == undefined", Null, Undefined, true},
		{"undefined == 0", Undefined, NumberValue(0), false},
		{"null == 0", Null, NumberValue(0), false},
		{"1 == \"1\"", NumberValue(1), NewString(alloc, "1"), true},
		{"\"1\" == 1", NewString(alloc, "1"), NumberValue(1), true},
		{"1 == \"2\"", NumberValue(1), NewString(alloc, "2"), false},
		{"true == 1", True, NumberValue(1), true},
		{"false == \"\"", False, NewString(alloc, ""), true},
		{"true == \"1\"", True, NewString(alloc, "1"), true},
		{"NaN == NaN", NaN, NaN, false},
		{"same numbers", NumberValue(2), NumberValue(2), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Equals(c.x, c.y)
			if err != nil {
				t.Fatalf("Equals failed: %v", err)
			}
			if got != c.want {
				t.Errorf("Equals = %v, want %v", got, c.want)
			}
		})
	}

	t.Run("object vs primitive is unimplemented", func(t *testing.T) {
		_, err := Equals(NewObject(alloc, protos), NumberValue(1))
		if !IsUnimplemented(err) {
			t.Errorf("Expected UnimplementedError, got %v", err)
		}
	})

	t.Run("object identity", func(t *testing.T) {
		obj := NewObject(alloc, protos)
		got, err := Equals(obj, obj)
		if err != nil || !got {
			t.Errorf("Equals(obj, obj) = %v, %v", got, err)
		}
	})
}

func TestRelational(t *testing.T) {
	check := func(got bool, err error, want bool, label string) {
		t.Helper()
		if err != nil {
			t.Fatalf("%s failed: %v", label, err)
		}
		if got != want {
			t.Errorf("%s = %v, want %v", label, got, want)
		}
	}

	lt, err := LessThan(NumberValue(1), NumberValue(2))
	check(lt, err, true, "1 < 2")
	le, err := LessEq(NumberValue(2), NumberValue(2))
	check(le, err, true, "2 <= 2")
	gt, err := GreaterThan(NumberValue(2), NumberValue(1))
	check(gt, err, true, "2 > 1")
	ge, err := GreaterEq(NumberValue(1), NumberValue(2))
	check(ge, err, false, "1 >= 2")

	// NaN compares false in every direction
	nlt, err := LessThan(NaN, NumberValue(1))
	check(nlt, err, false, "NaN < 1")
	nge, err := GreaterEq(NaN, NaN)
	check(nge, err, false, "NaN >= NaN")

	alloc := NewArena()
	if _, err := LessThan(NewString(alloc, "a"), NewString(alloc, "b")); !IsUnimplemented(err) {
		t.Errorf("Expected UnimplementedError for string comparison, got %v", err)
	}
}
