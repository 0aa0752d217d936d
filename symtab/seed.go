package symtab

import (
	"fmt"
	"math/big"

	"udbc/arch"
	"udbc/types"
)

// stringParamWhitelist is the closed set of parameter names that may carry
// string values.  Any other string-valued parameter is a configuration error.
var stringParamWhitelist = map[string]struct{}{
	"NAME":    {},
	"VENDOR":  {},
	"ARCH_ID": {},
}

// FromConfig constructs a symbol table whose global scope is seeded from an
// architecture configuration: the configuration's parameters as typed
// constants, the integer register file and program counter sized to the
// configured register width, the boolean literal constants, the reserved
// "undefined but legal" sentinels, and an enumeration of the active
// extension names.
func FromConfig(cfg *arch.Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := NewTable()
	t.cfg = cfg

	// Configuration parameters become global constants.
	for name, value := range cfg.Params {
		v, err := paramVar(name, value)
		if err != nil {
			return nil, fmt.Errorf("config %s: %s", cfg.Name, err)
		}

		t.Add(v)
	}

	xlenVal := big.NewInt(int64(cfg.XLen))
	t.Add(&Var{
		Name:  "XLEN",
		Type:  &types.BitsType{Width: types.MinWidth(xlenVal)},
		Value: types.NewIntValue(xlenVal),
		Const: true,
	})

	// The integer register file and the program counter.
	xreg := &types.BitsType{Width: cfg.XLen}
	t.Add(&Var{Name: "X", Type: &types.ArrayType{Elem: xreg, Len: 32}})
	t.Add(&Var{Name: "$pc", Type: xreg})
	t.Add(&Var{Name: "$encoding", Type: &types.BitsType{Width: 32}, Decode: true})

	t.Add(&Var{Name: "true", Type: types.BoolType{}, Value: types.BoolValue(true), Const: true})
	t.Add(&Var{Name: "false", Type: types.BoolType{}, Value: types.BoolValue(false), Const: true})

	t.Add(&Var{
		Name:  "UNDEFINED_LEGAL",
		Type:  xreg,
		Value: types.NewIntValue(types.UndefinedLegal),
		Const: true,
	})
	t.Add(&Var{
		Name:  "UNDEFINED_LEGAL_DETERMINISTIC",
		Type:  xreg,
		Value: types.NewIntValue(types.UndefinedLegalDeterministic),
		Const: true,
	})

	// The enumeration of active extensions, used by `implemented?`.
	extEnum := &types.EnumType{Name: "ExtensionName"}
	for i, ext := range cfg.Extensions {
		extEnum.Members = append(extEnum.Members, ext)
		extEnum.Values = append(extEnum.Values, big.NewInt(int64(i)))
	}

	t.Add(&Var{Name: "ExtensionName", Type: extEnum, Const: true, IsType: true})

	return t, nil
}

// paramVar converts a configuration parameter value into a typed constant.
// Integers become bit vectors sized to the value's minimum bit length;
// booleans become boolean constants; arrays become array constants with the
// element width taken as the maximum across all elements.
func paramVar(name string, value interface{}) (*Var, error) {
	switch v := value.(type) {
	case int64:
		bv := big.NewInt(v)
		return &Var{
			Name:  name,
			Type:  &types.BitsType{Width: types.MinWidth(bv)},
			Value: types.NewIntValue(bv),
			Const: true,
		}, nil
	case bool:
		return &Var{
			Name:  name,
			Type:  types.BoolType{},
			Value: types.BoolValue(v),
			Const: true,
		}, nil
	case []int64:
		width := 1
		elems := make(types.ArrayValue, len(v))
		for i, elem := range v {
			bv := big.NewInt(elem)
			if w := types.MinWidth(bv); w > width {
				width = w
			}

			elems[i] = types.NewIntValue(bv)
		}

		return &Var{
			Name:  name,
			Type:  &types.ArrayType{Elem: &types.BitsType{Width: width}, Len: len(v)},
			Value: elems,
			Const: true,
		}, nil
	case []bool:
		elems := make(types.ArrayValue, len(v))
		for i, elem := range v {
			elems[i] = types.BoolValue(elem)
		}

		return &Var{
			Name:  name,
			Type:  &types.ArrayType{Elem: types.BoolType{}, Len: len(v)},
			Value: elems,
			Const: true,
		}, nil
	case string:
		if _, ok := stringParamWhitelist[name]; !ok {
			return nil, fmt.Errorf("param %s: string values are not allowed for this parameter", name)
		}

		return &Var{
			Name:  name,
			Type:  types.StringType{},
			Value: types.StringValue(v),
			Const: true,
		}, nil
	default:
		return nil, fmt.Errorf("param %s: unsupported value type %T", name, value)
	}
}
