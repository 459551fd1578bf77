package luaaction

import (
	"fmt"
	"math"

	"github.com/Shopify/go-lua"
)

// toGo converts the Lua value at index. Integral numbers become int64, other
// numbers float64; sequences become []any and other tables map[string]any.
func toGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeNumber:
		n, _ := state.ToNumber(index)
		return normalizeNumber(n)
	case lua.TypeString:
		s, _ := state.ToString(index)
		return s
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

func normalizeNumber(n float64) any {
	if n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64 {
		return int64(n)
	}
	return n
}

func tableToGo(state *lua.State, index int) any {
	index = state.AbsIndex(index)

	isArray := true
	count, maxIndex := 0, 0
	state.PushNil()
	for state.Next(index) {
		count++
		if isArray {
			i, ok := state.ToInteger(-2)
			if state.TypeOf(-2) != lua.TypeNumber || !ok || i <= 0 {
				isArray = false
			} else if i > maxIndex {
				maxIndex = i
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		list := make([]any, 0, count)
		for i := 1; i <= count; i++ {
			state.RawGetInt(index, i)
			list = append(list, toGo(state, -1))
			state.Pop(1)
		}
		return list
	}

	out := make(map[string]any, count)
	state.PushNil()
	for state.Next(index) {
		out[tableKey(state, -2)] = toGo(state, -1)
		state.Pop(1)
	}
	return out
}

// tableKey renders a key without converting it in place, which would confuse Next.
func tableKey(state *lua.State, index int) string {
	switch state.TypeOf(index) {
	case lua.TypeString:
		s, _ := state.ToString(index)
		return s
	case lua.TypeNumber:
		n, _ := state.ToNumber(index)
		return fmt.Sprint(normalizeNumber(n))
	case lua.TypeBoolean:
		return fmt.Sprint(state.ToBoolean(index))
	default:
		return fmt.Sprintf("<%s>", display(state, index))
	}
}
