package vm

// Property describes one named slot on an object record: either a stored
// value with attribute flags (DataProperty) or a getter/setter pair
// (AccessorProperty). A slot is always exactly one of the two.
type Property interface {
	isProperty()
	// IsEnumerable reports the slot's enumerable attribute.
	IsEnumerable() bool
	// IsConfigurable reports the slot's configurable attribute.
	IsConfigurable() bool
}

// DataProperty is a named slot holding a stored value.
type DataProperty struct {
	Val          Value
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// AccessorProperty is a named slot holding getter/setter functions.
// Either side may be Undefined, meaning "no-op" for that direction.
type AccessorProperty struct {
	Get          Value
	Set          Value
	Enumerable   bool
	Configurable bool
}

func (DataProperty) isProperty()     {}
func (AccessorProperty) isProperty() {}

func (p DataProperty) IsEnumerable() bool       { return p.Enumerable }
func (p DataProperty) IsConfigurable() bool     { return p.Configurable }
func (p AccessorProperty) IsEnumerable() bool   { return p.Enumerable }
func (p AccessorProperty) IsConfigurable() bool { return p.Configurable }

// NewDataProperty builds a data slot with the flags of a freshly created
// own property: writable, enumerable and configurable all true.
func NewDataProperty(v Value) DataProperty {
	return DataProperty{Val: v, Writable: true, Enumerable: true, Configurable: true}
}

// NewBuiltinProperty builds a data slot with all flags false, the default
// for properties installed by built-in constructors.
func NewBuiltinProperty(v Value) DataProperty {
	return DataProperty{Val: v}
}

// NewAccessorProperty builds an accessor slot. Pass Undefined for an
// absent getter or setter.
func NewAccessorProperty(get, set Value, enumerable, configurable bool) AccessorProperty {
	return AccessorProperty{Get: get, Set: set, Enumerable: enumerable, Configurable: configurable}
}
