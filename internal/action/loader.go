package action

import (
	"fmt"
	"reflect"
	"strconv"
)

// anonymousPrefix prefixes names synthesized for key-less entries.
const anonymousPrefix = "anonymous-"

// Entry is one loader input. An empty Key stands for the next sequential index,
// counted over key-less entries only.
type Entry struct {
	Key   string
	Value any
	// Location overrides the definition site reported for plain values.
	Location string
}

// Named builds a keyed entry.
func Named(key string, value any) Entry {
	return Entry{Key: key, Value: value}
}

// Unnamed builds a key-less entry.
func Unnamed(value any) Entry {
	return Entry{Value: value}
}

// Load normalizes entries into actions and registers them in order.
//
// Pre-built actions are used as-is, funcs become risky actions and anything
// else becomes a non-risky value action. Loading the same entries twice leaves
// the registry with the same contents. An action keeps the first name it is
// given, so a pre-built action loaded again at another position is not renamed.
func Load(registry *Registry, entries ...Entry) error {
	if registry == nil {
		return fmt.Errorf("action registry is required")
	}
	defaultLocation := callerLocation(1)
	index := 0
	for _, entry := range entries {
		a, err := normalize(entry, defaultLocation)
		if err != nil {
			if entry.Key != "" {
				return fmt.Errorf("load %q: %w", entry.Key, err)
			}
			return fmt.Errorf("load entry %d: %w", index, err)
		}

		switch {
		case a.HasName():
			a.anonymous = false
		case a.name != "":
			// Named by an earlier load; names never change once set.
		case entry.Key != "":
			a.assignName(entry.Key, false)
		default:
			a.assignName(anonymousPrefix+strconv.Itoa(index), true)
		}
		if entry.Key == "" {
			index++
		}
		registry.Register(a)
	}
	return nil
}

func normalize(entry Entry, defaultLocation string) (*Action, error) {
	switch value := entry.Value.(type) {
	case *Action:
		if value == nil {
			return nil, fmt.Errorf("nil action")
		}
		return value, nil
	case Func:
		return New(value, WithLocation(entry.Location)), nil
	}

	if v := reflect.ValueOf(entry.Value); v.IsValid() && v.Kind() == reflect.Func && !v.IsNil() {
		return FromFunc(entry.Value)
	}

	location := entry.Location
	if location == "" {
		location = defaultLocation
	}
	return Value(entry.Value, WithLocation(location)), nil
}
