package vm

import (
	"errors"
	"fmt"
	"strings"
)

// UnimplementedError flags an operand-type combination the specification
// defines but this core deliberately does not implement (ToPrimitive
// coercion and friends). Such paths fail loudly and uniformly instead of
// leaking a silent Undefined, so that test failures stay honest.
type UnimplementedError struct {
	Op       string
	Operands []ValueType
}

func (e *UnimplementedError) Error() string {
	if len(e.Operands) == 0 {
		return fmt.Sprintf("vm: %s is not implemented", e.Op)
	}
	names := make([]string, len(e.Operands))
	for i, t := range e.Operands {
		names[i] = t.String()
	}
	return fmt.Sprintf("vm: %s is not implemented for (%s)", e.Op, strings.Join(names, ", "))
}

func unimplemented(op string, operands ...Value) error {
	types := make([]ValueType, len(operands))
	for i, v := range operands {
		types[i] = v.Type()
	}
	return &UnimplementedError{Op: op, Operands: types}
}

// IsUnimplemented reports whether err marks a deliberately unimplemented
// specification path.
func IsUnimplemented(err error) bool {
	var ue *UnimplementedError
	return errors.As(err, &ue)
}
