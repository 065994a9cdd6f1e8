package registry

import "sort"

// TypeTag names the kind of value a socket carries, e.g. "WANVIDLORA".
type TypeTag string

// AnyType is compatible with every other tag.
const AnyType TypeTag = "*"

// Accepts reports whether a value tagged other may connect to a socket
// tagged t.
func (t TypeTag) Accepts(other TypeTag) bool {
	return t == AnyType || other == AnyType || t == other
}

// InputSpec describes one declared input.
type InputSpec struct {
	Type TypeTag
	// ForceInput marks inputs that must be wired from another node rather
	// than edited as a widget.
	ForceInput  bool
	Description string
}

// Inputs is a declared input surface.
type Inputs interface {
	// Lookup returns the spec for name and whether name is accepted.
	Lookup(name string) (InputSpec, bool)
	// Declared returns the explicitly declared input names, sorted.
	Declared() []string
}

// FixedInputs accepts exactly the declared names.
type FixedInputs map[string]InputSpec

// Lookup implements Inputs.
func (f FixedInputs) Lookup(name string) (InputSpec, bool) {
	spec, ok := f[name]
	return spec, ok
}

// Declared implements Inputs.
func (f FixedInputs) Declared() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FlexibleInputs accepts any name. Declared names keep their own spec; every
// other name is described as a forced input of type Type.
type FlexibleInputs struct {
	Type  TypeTag
	Known FixedInputs
}

// Lookup implements Inputs and never reports a name as unknown.
func (f FlexibleInputs) Lookup(name string) (InputSpec, bool) {
	if spec, ok := f.Known[name]; ok {
		return spec, true
	}
	return InputSpec{Type: f.Type, ForceInput: true}, true
}

// Declared implements Inputs.
func (f FlexibleInputs) Declared() []string {
	return f.Known.Declared()
}

// InputTypes groups a node's inputs the way hosts present them.
type InputTypes struct {
	Required FixedInputs
	Optional Inputs
	Hidden   FixedInputs
}

// Lookup finds name in required, optional and hidden inputs, in that order.
func (in InputTypes) Lookup(name string) (InputSpec, bool) {
	if spec, ok := in.Required.Lookup(name); ok {
		return spec, true
	}
	if in.Optional != nil {
		if spec, ok := in.Optional.Lookup(name); ok {
			return spec, true
		}
	}
	return in.Hidden.Lookup(name)
}
