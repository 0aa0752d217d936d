package symtab

import "udbc/types"

// Var is a single named binding in a symbol table: a variable, a constant, or
// a function.
type Var struct {
	Name string

	// The type of the binding.
	Type types.Type

	// Value is the compile-time-known value of the binding.  Present for
	// constants and configuration parameters; nil for general mutable
	// locals.
	Value types.Value

	// Const marks the binding read-only.  Assigning to a constant is a type
	// error.
	Const bool

	// Decode marks a variable that originated from an instruction encoding's
	// decode field.  Decode variables get distinct formatting in generated
	// documentation.
	Decode bool

	// IsType marks a binding that names a type (an enum, bitfield, or struct
	// declaration) rather than a value of that type.
	IsType bool
}

// Clone produces an independent copy of the variable.  If cloneValue is set,
// the value is deep-copied rather than shared.
func (v *Var) Clone(cloneValue bool) *Var {
	clone := &Var{
		Name:   v.Name,
		Type:   v.Type,
		Value:  v.Value,
		Const:  v.Const,
		Decode: v.Decode,
		IsType: v.IsType,
	}

	if cloneValue && v.Value != nil {
		clone.Value = v.Value.Clone()
	}

	return clone
}
