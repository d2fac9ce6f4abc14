package vm

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// cleanExponentialFormat removes leading zeros from the exponent to match
// JS formatting, e.g. "1e-07" -> "1e-7".
func cleanExponentialFormat(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == 'e' || s[i] == 'E' {
			if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
				sign := s[i+1]
				expStart := i + 2
				j := expStart
				for j < len(s) && s[j] == '0' {
					j++
				}
				if j >= len(s) {
					return s[:i+2] + "0"
				}
				return s[:i+1] + string(sign) + s[j:]
			}
			break
		}
	}
	return s
}

// formatNumber renders a float64 the way JS ToString does: "NaN",
// "Infinity"/"-Infinity", negative zero as "0", fixed notation in the
// [1e-6, 1e21) magnitude band and exponential notation outside it.
func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == 0 {
		// Covers -0 as well.
		return "0"
	}
	absF := f
	if absF < 0 {
		absF = -absF
	}
	if absF < 1e-6 || absF >= 1e21 {
		return cleanExponentialFormat(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// isIntegerNumber reports whether f is a finite mathematical integer.
func isIntegerNumber(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && math.Trunc(f) == f
}

// parseStringToNumber implements the string branch of ToNumber: trimmed
// empty string is 0, hex/binary/octal literal prefixes are honored,
// "Infinity" is case-sensitive, and everything unparseable is NaN.
func parseStringToNumber(s string) float64 {
	str := strings.TrimSpace(s)
	if str == "" {
		return 0
	}

	if len(str) >= 2 && (strings.HasPrefix(str, "0x") || strings.HasPrefix(str, "0X")) {
		if i, err := strconv.ParseInt(str[2:], 16, 64); err == nil {
			return float64(i)
		}
		return math.NaN()
	}
	if len(str) >= 2 && (strings.HasPrefix(str, "0b") || strings.HasPrefix(str, "0B")) {
		if i, err := strconv.ParseInt(str[2:], 2, 64); err == nil {
			return float64(i)
		}
		return math.NaN()
	}
	if len(str) >= 2 && (strings.HasPrefix(str, "0o") || strings.HasPrefix(str, "0O")) {
		if i, err := strconv.ParseInt(str[2:], 8, 64); err == nil {
			return float64(i)
		}
		return math.NaN()
	}

	// Go's ParseFloat accepts "infinity" in any case; JS accepts only the
	// exact spellings below.
	if str == "Infinity" || str == "+Infinity" {
		return math.Inf(1)
	}
	if str == "-Infinity" {
		return math.Inf(-1)
	}
	strLower := strings.ToLower(str)
	if strLower == "infinity" || strLower == "+infinity" || strLower == "-infinity" {
		return math.NaN()
	}

	if f, err := strconv.ParseFloat(str, 64); err == nil {
		return f
	}
	return math.NaN()
}

// ToString renders any value as a string. Total: every variant has a
// rendering, including the internal sentinels, which read as undefined.
func (v Value) ToString() string {
	switch v.typ {
	case TypeUndefined, TypeEmpty, TypeUninitialized:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		if v.AsBoolean() {
			return "true"
		}
		return "false"
	case TypeNumber:
		return formatNumber(v.AsNumber())
	case TypeString:
		return v.AsString()
	case TypeObject:
		obj := v.AsObject()
		switch obj.kind {
		case KindArray:
			arr := obj.arr
			parts := make([]string, len(arr.elems))
			for i, p := range arr.elems {
				dp, ok := p.(DataProperty)
				if !ok {
					parts[i] = "undefined"
					continue
				}
				switch dp.Val.typ {
				case TypeEmpty, TypeUndefined, TypeNull:
					parts[i] = ""
				default:
					parts[i] = dp.Val.ToString()
				}
			}
			return strings.Join(parts, ",")
		case KindFunction:
			fn := obj.fn
			if fn.Name != "" {
				return "<function " + fn.Name + ">"
			}
			return "<function>"
		case KindArguments:
			return "[object Arguments]"
		case KindDate:
			return obj.date.Time.Format(time.RFC3339)
		default:
			return "[object Object]"
		}
	default:
		return "unknown"
	}
}

// ToNumber converts a value to a float64. Arrays coerce through their
// sole element; every other object kind would require ToPrimitive
// machinery this core does not carry, so they fail loudly.
func (v Value) ToNumber() (float64, error) {
	switch v.typ {
	case TypeUndefined, TypeEmpty, TypeUninitialized:
		return math.NaN(), nil
	case TypeNull:
		return 0, nil
	case TypeBoolean:
		if v.AsBoolean() {
			return 1, nil
		}
		return 0, nil
	case TypeNumber:
		return v.AsNumber(), nil
	case TypeString:
		return parseStringToNumber(v.AsString()), nil
	case TypeObject:
		if v.AsObject().kind == KindArray {
			return arrayToNumber(v.AsObject().arr)
		}
		return math.NaN(), unimplemented("ToNumber", v)
	default:
		return math.NaN(), unimplemented("ToNumber", v)
	}
}

// arrayToNumber coerces an array: empty is 0, a single non-boolean
// element coerces on its own (a boolean element is NaN), anything
// longer is NaN.
func arrayToNumber(arr *ArrayObjectInfo) (float64, error) {
	switch arr.Length() {
	case 0:
		return 0, nil
	case 1:
		elems := arr.Elements()
		if elems[0].typ == TypeBoolean {
			return math.NaN(), nil
		}
		return elems[0].ToNumber()
	default:
		return math.NaN(), nil
	}
}

// ToBoolean reports the truthiness of any value. Total, never fails:
// undefined, null, false, NaN, zero and the empty string are false,
// everything else including every object is true.
func (v Value) ToBoolean() bool {
	switch v.typ {
	case TypeUndefined, TypeNull, TypeEmpty, TypeUninitialized:
		return false
	case TypeBoolean:
		return v.AsBoolean()
	case TypeNumber:
		f := v.AsNumber()
		return f != 0 && !math.IsNaN(f)
	case TypeString:
		return v.AsString() != ""
	default:
		return true
	}
}

// ToUint32 converts through ToNumber and wraps modulo 2^32, mapping NaN
// and the infinities to 0. Propagates the ToNumber failure for objects.
func (v Value) ToUint32() (uint32, error) {
	f, err := v.ToNumber()
	if err != nil {
		return 0, err
	}
	return uint32FromFloat(f), nil
}

func uint32FromFloat(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	f = math.Mod(f, 4294967296)
	if f < 0 {
		f += 4294967296
	}
	return uint32(f)
}
