package action

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Lookup returns the raw external value for a parameter name.
type Lookup func(name string) (string, bool)

// Binder turns raw strings into typed arguments using a parameter signature.
type Binder struct{}

// Coerce converts raw according to t. Types the binder cannot produce pass the
// raw string through.
func (Binder) Coerce(t Type, raw string) any {
	switch t {
	case TypeBool:
		return raw != "" && raw != "0"
	case TypeInt:
		return parseIntPrefix(raw)
	case TypeFloat:
		return parseFloatPrefix(raw)
	default:
		return raw
	}
}

// Resolve binds one prompted value. Empty input falls back to the default; it
// is unresolved when there is none, and the caller should ask again.
func (b Binder) Resolve(p Param, raw string) (any, bool) {
	if raw == "" {
		if p.HasDefault {
			return p.Default, true
		}
		return nil, false
	}
	return b.Coerce(p.Type, raw), true
}

// Bind builds the argument list for params in signature order. Empty or absent
// values fall back to the default and otherwise to the type's zero value.
func (b Binder) Bind(params []Param, lookup Lookup) []any {
	args := make([]any, 0, len(params))
	for _, p := range params {
		raw := ""
		if lookup != nil {
			raw, _ = lookup(p.Name)
		}
		if value, ok := b.Resolve(p, raw); ok {
			args = append(args, value)
			continue
		}
		args = append(args, b.Coerce(p.Type, ""))
	}
	return args
}

// FormatDefault renders a default value as the raw input that would reproduce it.
func FormatDefault(p Param) string {
	if !p.HasDefault || p.Default == nil {
		return ""
	}
	switch v := p.Default.(type) {
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

func parseIntPrefix(raw string) int {
	prefix, fractional := numericPrefix(raw)
	if prefix == "" {
		return 0
	}
	if !fractional {
		n, err := strconv.ParseInt(prefix, 10, 64)
		if err == nil {
			return int(n)
		}
		if errors.Is(err, strconv.ErrRange) {
			if strings.HasPrefix(prefix, "-") {
				return math.MinInt
			}
			return math.MaxInt
		}
		return 0
	}
	f, _ := strconv.ParseFloat(prefix, 64)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	default:
		return int(f)
	}
}

func parseFloatPrefix(raw string) float64 {
	prefix, _ := numericPrefix(raw)
	if prefix == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(prefix, 64)
	return f
}

// numericPrefix returns the leading decimal number of raw, skipping leading
// whitespace, and whether it has a fraction or exponent.
func numericPrefix(raw string) (string, bool) {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - start
	fractional := false
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if intDigits > 0 || j > i+1 {
			i = j
			fractional = true
		}
	}
	if i == start {
		return "", false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
			fractional = true
		}
	}
	return s[:i], fractional
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
