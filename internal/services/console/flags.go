package console

import "github.com/louisbranch/actionconsole/internal/action"

// Flag is one icon shown in an action card header.
type Flag struct {
	Icon    string
	Classes string
	// LabelKey is the catalog key of the icon title.
	LabelKey string
}

// FlagClassifier derives the header icons of an action.
type FlagClassifier struct {
	Validator action.Validator
}

// Classify returns the flags in display order: anonymous, value, risky, invalid.
func (c FlagClassifier) Classify(a *action.Action) []Flag {
	if a == nil {
		return nil
	}
	var flags []Flag
	if a.Anonymous() {
		flags = append(flags, Flag{Icon: "text", LabelKey: "console.flag.anonymous"})
	}
	if a.JustValue() {
		flags = append(flags, Flag{Icon: "shapes", Classes: "text-blue-500", LabelKey: "console.flag.value"})
	}
	if a.Risky() {
		flags = append(flags, Flag{Icon: "warning", Classes: "text-yellow-500", LabelKey: "console.flag.risky"})
	}
	if c.validator().Validate(a).IsInvalid() {
		flags = append(flags, Flag{Icon: "alert-circle", Classes: "text-red-500", LabelKey: "console.flag.invalid"})
	}
	return flags
}

func (c FlagClassifier) validator() action.Validator {
	if c.Validator == nil {
		return action.SignatureValidator{}
	}
	return c.Validator
}
