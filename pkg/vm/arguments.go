package vm

// ArgumentsSource is the active call's argument-binding store. The
// executor owns the store; the arguments pseudo-object only delegates
// positional reads and writes into it.
type ArgumentsSource interface {
	Len() int
	Nth(i int) (Value, bool)
	SetNth(i int, v Value)
}

// ArgumentsObjectInfo is the payload of an arguments-kind object.
type ArgumentsObjectInfo struct {
	bindings ArgumentsSource
}

// Source returns the underlying binding store.
func (a *ArgumentsObjectInfo) Source() ArgumentsSource { return a.bindings }

// NewArguments allocates an arguments-kind object delegating to the
// given binding store.
func NewArguments(alloc Allocator, src ArgumentsSource) Value {
	info := ObjectInfo{
		kind:     KindArguments,
		property: map[string]Property{},
		args:     &ArgumentsObjectInfo{bindings: src},
	}
	return objectValue(alloc.AllocObject(info))
}

// SliceArguments is a plain slice-backed binding store, used by the
// executor for calls without mapped parameters and by tests.
type SliceArguments struct {
	values []Value
}

// NewSliceArguments copies args into a fresh binding store.
func NewSliceArguments(args []Value) *SliceArguments {
	values := make([]Value, len(args))
	copy(values, args)
	return &SliceArguments{values: values}
}

func (s *SliceArguments) Len() int { return len(s.values) }

func (s *SliceArguments) Nth(i int) (Value, bool) {
	if i < 0 || i >= len(s.values) {
		return Undefined, false
	}
	return s.values[i], true
}

func (s *SliceArguments) SetNth(i int, v Value) {
	if i < 0 || i >= len(s.values) {
		return
	}
	s.values[i] = v
}
