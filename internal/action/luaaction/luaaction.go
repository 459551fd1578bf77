// Package luaaction defines console actions in Lua scripts.
//
// A script registers actions by calling the global action function with a
// table:
//
//	action{
//	  name = "greet",
//	  description = "Prints a greeting",
//	  risky = false,
//	  params = { {name = "who", type = "string", default = "world"} },
//	  run = function(who) print("hello " .. who) end,
//	}
//
// name is optional; actions without one are named by the loader. risky
// defaults to true. Inside run, print writes to the invocation's output.
package luaaction

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/Shopify/go-lua"
	"github.com/louisbranch/actionconsole/internal/action"
)

const handlersGlobal = "__actionconsole_handlers"

// script owns one Lua state. Every call into the state holds mu.
type script struct {
	path    string
	mu      sync.Mutex
	state   *lua.State
	out     io.Writer
	actions []*action.Action
	nextID  int
}

// LoadFile runs the script at path and returns the actions it defines, in
// definition order.
func LoadFile(path string) ([]*action.Action, error) {
	s := &script{path: path, out: io.Discard}
	s.state = lua.NewState()
	lua.OpenLibraries(s.state)
	s.install()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := lua.LoadFile(s.state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua %s: %w", path, err)
	}
	if err := s.state.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("run lua %s: %w", path, err)
	}
	return s.actions, nil
}

// LoadDir loads every *.lua file directly inside dir, in lexical order.
func LoadDir(dir string) ([]*action.Action, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return nil, fmt.Errorf("list lua scripts: %w", err)
	}
	var actions []*action.Action
	for _, path := range paths {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		actions = append(actions, loaded...)
	}
	return actions, nil
}

func (s *script) install() {
	s.state.NewTable()
	s.state.SetGlobal(handlersGlobal)

	s.state.PushGoFunction(s.define)
	s.state.SetGlobal("action")

	s.state.PushGoFunction(s.print)
	s.state.SetGlobal("print")
}

// define implements the global action function.
func (s *script) define(state *lua.State) int {
	lua.CheckType(state, 1, lua.TypeTable)
	line := currentLine(state)

	opts := []action.Option{
		action.WithLocation(action.FormatLocation(s.path, line)),
	}
	if name, ok := stringField(state, "name"); ok && name != "" {
		opts = append(opts, action.WithName(name))
	}
	if description, ok := stringField(state, "description"); ok {
		opts = append(opts, action.WithDescription(description))
	}
	state.Field(1, "risky")
	if state.TypeOf(-1) == lua.TypeBoolean {
		opts = append(opts, action.WithRisky(state.ToBoolean(-1)))
	}
	state.Pop(1)

	params, err := readParams(state)
	if err != nil {
		lua.Errorf(state, "%s", err.Error())
		return 0
	}
	opts = append(opts, action.WithParams(params...))

	s.nextID++
	id := s.nextID
	state.Global(handlersGlobal)
	state.Field(1, "run")
	if state.TypeOf(-1) != lua.TypeFunction {
		lua.Errorf(state, "action: run must be a function")
		return 0
	}
	state.RawSetInt(-2, id)
	state.Pop(1)

	s.actions = append(s.actions, action.New(s.invoker(id), opts...))
	return 0
}

// invoker returns the callable for handler id. Lua calls run to completion;
// ctx is only checked before the call starts.
func (s *script) invoker(id int) action.Func {
	return func(ctx context.Context, out io.Writer, args []any) (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s.out = out
		top := s.state.Top()
		defer func() {
			s.state.SetTop(top)
			s.out = io.Discard
		}()

		s.state.Global(handlersGlobal)
		s.state.RawGetInt(-1, id)
		for _, arg := range args {
			pushValue(s.state, arg)
		}
		if err := s.state.ProtectedCall(len(args), 1, 0); err != nil {
			return nil, fmt.Errorf("lua %s: %w", filepath.Base(s.path), err)
		}
		return toGo(s.state, -1), nil
	}
}

// print mirrors Lua's print but writes to the current invocation output.
func (s *script) print(state *lua.State) int {
	n := state.Top()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, display(state, i))
	}
	fmt.Fprintln(s.out, strings.Join(parts, "\t"))
	return 0
}

func readParams(state *lua.State) ([]action.Param, error) {
	state.Field(1, "params")
	defer state.Pop(1)
	switch state.TypeOf(-1) {
	case lua.TypeNil:
		return nil, nil
	case lua.TypeTable:
	default:
		return nil, fmt.Errorf("action: params must be a list")
	}

	var params []action.Param
	for i := 1; ; i++ {
		state.RawGetInt(-1, i)
		if state.TypeOf(-1) == lua.TypeNil {
			state.Pop(1)
			return params, nil
		}
		param, err := readParam(state, i)
		state.Pop(1)
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
}

// readParam reads the param table on top of the stack.
func readParam(state *lua.State, position int) (action.Param, error) {
	if state.TypeOf(-1) != lua.TypeTable {
		return action.Param{}, fmt.Errorf("action: param %d must be a table", position)
	}
	state.Field(-1, "name")
	name, _ := state.ToString(-1)
	state.Pop(1)
	if name == "" {
		return action.Param{}, fmt.Errorf("action: param %d needs a name", position)
	}

	state.Field(-1, "type")
	typeName := ""
	if state.TypeOf(-1) == lua.TypeString {
		typeName, _ = state.ToString(-1)
	}
	state.Pop(1)

	param := action.Param{Name: name, Type: action.ParseType(typeName)}
	if param.Type == action.TypeUnsupported {
		param.TypeName = typeName
	}

	state.Field(-1, "default")
	if state.TypeOf(-1) != lua.TypeNil {
		param = param.WithDefault(defaultFor(param.Type, toGo(state, -1)))
	}
	state.Pop(1)
	return param, nil
}

func defaultFor(t action.Type, v any) any {
	switch t {
	case action.TypeInt:
		switch n := v.(type) {
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	case action.TypeFloat:
		switch n := v.(type) {
		case int64:
			return float64(n)
		case float64:
			return n
		}
	case action.TypeBool:
		if b, ok := v.(bool); ok {
			return b
		}
	case action.TypeString:
		return fmt.Sprint(v)
	}
	return v
}

func stringField(state *lua.State, name string) (string, bool) {
	state.Field(1, name)
	defer state.Pop(1)
	if state.TypeOf(-1) != lua.TypeString {
		return "", false
	}
	return state.ToString(-1)
}

// currentLine returns the line of the Lua code calling the running Go function.
func currentLine(state *lua.State) int {
	lua.Where(state, 1)
	where, _ := state.ToString(-1)
	state.Pop(1)
	where = strings.TrimSuffix(strings.TrimSpace(where), ":")
	idx := strings.LastIndex(where, ":")
	if idx < 0 {
		return 0
	}
	line, err := strconv.Atoi(where[idx+1:])
	if err != nil {
		return 0
	}
	return line
}

func pushValue(state *lua.State, v any) {
	switch value := v.(type) {
	case nil:
		state.PushNil()
	case string:
		state.PushString(value)
	case bool:
		state.PushBoolean(value)
	case int:
		state.PushInteger(value)
	case int64:
		state.PushNumber(float64(value))
	case float64:
		state.PushNumber(value)
	case float32:
		state.PushNumber(float64(value))
	default:
		state.PushString(fmt.Sprint(value))
	}
}

func display(state *lua.State, index int) string {
	switch state.TypeOf(index) {
	case lua.TypeNil:
		return "nil"
	case lua.TypeBoolean:
		return strconv.FormatBool(state.ToBoolean(index))
	case lua.TypeNumber:
		n, _ := state.ToNumber(index)
		return formatNumber(n)
	case lua.TypeString:
		s, _ := state.ToString(index)
		return s
	case lua.TypeTable:
		return "table"
	case lua.TypeFunction:
		return "function"
	default:
		return "userdata"
	}
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', 14, 64)
}
