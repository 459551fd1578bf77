package action

import "fmt"

// Type is the declared type of one action parameter.
type Type int

const (
	// TypeMissing marks a parameter without a declared type.
	TypeMissing Type = iota
	// TypeString receives the raw input verbatim.
	TypeString
	// TypeInt receives the integer value of the numeric input prefix.
	TypeInt
	// TypeFloat receives the float value of the numeric input prefix.
	TypeFloat
	// TypeBool is false for "" and "0" and true otherwise.
	TypeBool
	// TypeUnsupported marks a declared type the binder cannot produce.
	TypeUnsupported
)

// String returns the declared type name.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeUnsupported:
		return "unsupported"
	case TypeMissing:
		return ""
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Bindable reports whether the binder can produce values of this type.
func (t Type) Bindable() bool {
	switch t {
	case TypeString, TypeInt, TypeFloat, TypeBool:
		return true
	default:
		return false
	}
}

// ParseType maps a declared type name to a Type. Unknown names are unsupported
// and the empty name is missing.
func ParseType(name string) Type {
	switch name {
	case "":
		return TypeMissing
	case "string":
		return TypeString
	case "int":
		return TypeInt
	case "float":
		return TypeFloat
	case "bool":
		return TypeBool
	default:
		return TypeUnsupported
	}
}

// Param describes one positional parameter of an action.
type Param struct {
	// Name identifies the parameter in prompts, form inputs and tool schemas.
	Name string
	// Type is the declared parameter type.
	Type Type
	// TypeName is the declared type name as written at the definition site.
	// It is only meaningful for unsupported types.
	TypeName string
	// HasDefault reports whether Default should be used for empty input.
	HasDefault bool
	// Default is the value used for empty input when HasDefault is set.
	Default any
}

// DeclaredType returns the type name used in validation messages.
func (p Param) DeclaredType() string {
	if p.Type == TypeUnsupported && p.TypeName != "" {
		return p.TypeName
	}
	return p.Type.String()
}

// WithDefault returns a copy of p that falls back to value on empty input.
func (p Param) WithDefault(value any) Param {
	p.HasDefault = true
	p.Default = value
	return p
}

// String declares a string parameter.
func String(name string) Param { return Param{Name: name, Type: TypeString} }

// Int declares an int parameter.
func Int(name string) Param { return Param{Name: name, Type: TypeInt} }

// Float declares a float parameter.
func Float(name string) Param { return Param{Name: name, Type: TypeFloat} }

// Bool declares a bool parameter.
func Bool(name string) Param { return Param{Name: name, Type: TypeBool} }

// Untyped declares a parameter without a type declaration.
func Untyped(name string) Param { return Param{Name: name, Type: TypeMissing} }

// Unsupported declares a parameter whose type the binder cannot produce.
func Unsupported(name, typeName string) Param {
	return Param{Name: name, Type: TypeUnsupported, TypeName: typeName}
}
