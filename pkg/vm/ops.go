package vm

import "math"

// Arithmetic and comparison over Values. Operand combinations outside
// the implemented set fail with an UnimplementedError rather than
// answering Undefined, so callers can tell "not yet" from "no value".

// Add evaluates the binary + operator. Two numbers add, two strings
// concatenate (allocating the result through alloc). Mixed operands
// would require ToPrimitive and are flagged.
func Add(alloc Allocator, x, y Value) (Value, error) {
	switch {
	case x.typ == TypeNumber && y.typ == TypeNumber:
		return NumberValue(x.AsNumber() + y.AsNumber()), nil
	case x.typ == TypeString && y.typ == TypeString:
		return NewString(alloc, x.AsString()+y.AsString()), nil
	default:
		return Undefined, unimplemented("Add", x, y)
	}
}

// Sub evaluates the binary - operator on two numbers.
func Sub(x, y Value) (Value, error) {
	if x.typ == TypeNumber && y.typ == TypeNumber {
		return NumberValue(x.AsNumber() - y.AsNumber()), nil
	}
	return Undefined, unimplemented("Sub", x, y)
}

// Mul evaluates the binary * operator on two numbers.
func Mul(x, y Value) (Value, error) {
	if x.typ == TypeNumber && y.typ == TypeNumber {
		return NumberValue(x.AsNumber() * y.AsNumber()), nil
	}
	return Undefined, unimplemented("Mul", x, y)
}

// Div evaluates the binary / operator on two numbers. IEEE division:
// x/0 yields an infinity or NaN, never an error.
func Div(x, y Value) (Value, error) {
	if x.typ == TypeNumber && y.typ == TypeNumber {
		return NumberValue(x.AsNumber() / y.AsNumber()), nil
	}
	return Undefined, unimplemented("Div", x, y)
}

// Rem evaluates the binary % operator on two numbers, with operands
// truncated to 64-bit integers before the modulo. Zero divisor and
// non-finite operands yield NaN.
func Rem(x, y Value) (Value, error) {
	if x.typ != TypeNumber || y.typ != TypeNumber {
		return Undefined, unimplemented("Rem", x, y)
	}
	xf, yf := x.AsNumber(), y.AsNumber()
	if !isIntegerRepresentable(xf) || !isIntegerRepresentable(yf) || int64(yf) == 0 {
		return NaN, nil
	}
	return NumberValue(float64(int64(xf) % int64(yf))), nil
}

// isIntegerRepresentable reports whether f can be truncated to int64
// without undefined conversion behavior.
func isIntegerRepresentable(f float64) bool {
	return !math.IsNaN(f) && f >= math.MinInt64 && f < math.MaxInt64
}

// Neg evaluates unary minus on a number.
func Neg(v Value) (Value, error) {
	if v.typ == TypeNumber {
		return NumberValue(-v.AsNumber()), nil
	}
	return Undefined, unimplemented("Neg", v)
}

// StrictEquals implements === over all variants; it is total. Values of
// different variants are never equal. Sentinels equal their own kind,
// numbers compare by IEEE equality (NaN !== NaN, -0 === 0), strings by
// content, objects by handle identity.
func StrictEquals(x, y Value) bool {
	if x.typ != y.typ {
		return false
	}
	switch x.typ {
	case TypeUndefined, TypeNull, TypeEmpty, TypeUninitialized:
		return true
	case TypeBoolean:
		return x.AsBoolean() == y.AsBoolean()
	case TypeNumber:
		return x.AsNumber() == y.AsNumber()
	case TypeString:
		return x.AsString() == y.AsString()
	case TypeObject:
		return x.obj == y.obj
	default:
		return false
	}
}

// Equals implements == (abstract equality). Same-variant operands fall
// back to strict equality; null and undefined equal each other; number
// and string compare after string-to-number coercion; a boolean operand
// is re-tried as its number. Object-versus-primitive comparison needs
// ToPrimitive and is flagged as unimplemented.
func Equals(x, y Value) (bool, error) {
	// Booleans coerce to numbers first; a single pass suffices since the
	// result is always a number.
	if x.typ == TypeBoolean {
		x = NumberValue(boolToFloat(x.AsBoolean()))
	}
	if y.typ == TypeBoolean {
		y = NumberValue(boolToFloat(y.AsBoolean()))
	}

	if x.typ == y.typ {
		return StrictEquals(x, y), nil
	}

	switch {
	case nullish(x) && nullish(y):
		return true, nil
	case nullish(x) || nullish(y):
		return false, nil
	case x.typ == TypeNumber && y.typ == TypeString:
		return x.AsNumber() == parseStringToNumber(y.AsString()), nil
	case x.typ == TypeString && y.typ == TypeNumber:
		return parseStringToNumber(x.AsString()) == y.AsNumber(), nil
	default:
		return false, unimplemented("Equals", x, y)
	}
}

func nullish(v Value) bool {
	return v.typ == TypeNull || v.typ == TypeUndefined
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// LessThan evaluates x < y on two numbers. Any comparison involving NaN
// is false.
func LessThan(x, y Value) (bool, error) {
	if x.typ == TypeNumber && y.typ == TypeNumber {
		return x.AsNumber() < y.AsNumber(), nil
	}
	return false, unimplemented("LessThan", x, y)
}

// LessEq evaluates x <= y on two numbers.
func LessEq(x, y Value) (bool, error) {
	if x.typ == TypeNumber && y.typ == TypeNumber {
		return x.AsNumber() <= y.AsNumber(), nil
	}
	return false, unimplemented("LessEq", x, y)
}

// GreaterThan evaluates x > y on two numbers.
func GreaterThan(x, y Value) (bool, error) {
	if x.typ == TypeNumber && y.typ == TypeNumber {
		return x.AsNumber() > y.AsNumber(), nil
	}
	return false, unimplemented("GreaterThan", x, y)
}

// GreaterEq evaluates x >= y on two numbers.
func GreaterEq(x, y Value) (bool, error) {
	if x.typ == TypeNumber && y.typ == TypeNumber {
		return x.AsNumber() >= y.AsNumber(), nil
	}
	return false, unimplemented("GreaterEq", x, y)
}
