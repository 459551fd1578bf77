package action

// Status is the outcome of validating an action signature.
type Status struct {
	valid   bool
	message string
}

// OK returns the valid status.
func OK() Status {
	return Status{valid: true, message: "OK"}
}

// Invalid returns an invalid status carrying reason.
func Invalid(reason string) Status {
	return Status{message: reason}
}

// IsValid reports whether the status is valid.
func (s Status) IsValid() bool { return s.valid }

// IsInvalid reports whether the status is invalid.
func (s Status) IsInvalid() bool { return !s.valid }

// Message returns "OK" for valid statuses and the reason otherwise.
func (s Status) Message() string { return s.message }

// Validator decides whether an action can be invoked through typed inputs.
type Validator interface {
	Validate(a *Action) Status
}

// SignatureValidator accepts actions whose parameters all declare a bindable type.
type SignatureValidator struct{}

// Validate reports the first parameter that is untyped or has an unsupported type.
func (SignatureValidator) Validate(a *Action) Status {
	if a == nil {
		return Invalid("Action is missing")
	}
	for _, param := range a.params {
		switch param.Type {
		case TypeString, TypeInt, TypeFloat, TypeBool:
			continue
		case TypeMissing:
			return Invalid("Parameter type declaration is missing: " + param.Name)
		default:
			return Invalid("Invalid parameter type: " + param.DeclaredType())
		}
	}
	return OK()
}

var _ Validator = SignatureValidator{}
