package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// SurvivorInfo is a snapshot of a participant's state passed to Lua
// precondition functions.
type SurvivorInfo struct {
	Name       string
	Attributes map[string]int
	Skills     map[string]int
	Traits     []string
	Injured    bool
	Stressed   bool
}

// Evaluator runs choice-precondition functions inside one sandboxed VM.
// Scripts are loaded once at startup; each evaluation gets a fresh
// instruction budget.
//
// Evaluator is safe for concurrent use; a mutex serializes access to the
// single LState.
type Evaluator struct {
	mu        sync.Mutex
	state     *lua.LState
	instLimit int
	logger    *zap.Logger
}

// NewEvaluator creates an evaluator with a sandboxed VM.
//
// Precondition: logger must be non-nil. instLimit <= 0 uses the default.
func NewEvaluator(logger *zap.Logger, instLimit int) *Evaluator {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}
	return &Evaluator{
		state:     NewSandboxedState(instLimit),
		instLimit: instLimit,
		logger:    logger,
	}
}

// Close releases the underlying VM.
func (e *Evaluator) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Close()
}

// LoadString executes a script chunk, typically to define precondition
// functions.
func (e *Evaluator) LoadString(src string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.state.DoString(src); err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	return nil
}

// LoadDir executes every *.lua file in dir in lexicographic order.
func (e *Evaluator) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read script dir %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".lua") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, name := range files {
		if err := e.state.DoFile(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("script file %s: %w", name, err)
		}
	}
	return nil
}

// EvalChoicePrecondition calls the named global function with an array of
// participant snapshots and returns its boolean verdict.
//
// Postcondition: Returns an error if the function is missing, raises, runs
// past the instruction budget, or returns a non-boolean.
func (e *Evaluator) EvalChoicePrecondition(fn string, participants []SurvivorInfo) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	target := e.state.GetGlobal(fn)
	if target.Type() != lua.LTFunction {
		return false, fmt.Errorf("precondition %q is not a defined function", fn)
	}

	// Fresh instruction budget per call so earlier evaluations cannot starve
	// later ones.
	ctx, _ := newCountingContext(e.instLimit) //nolint:govet // cancel fires automatically
	e.state.SetContext(ctx)

	arg := e.state.NewTable()
	for i, p := range participants {
		e.state.RawSetInt(arg, i+1, survivorTable(e.state, p))
	}

	if err := e.state.CallByParam(lua.P{Fn: target, NRet: 1, Protect: true}, arg); err != nil {
		return false, fmt.Errorf("precondition %q: %w", fn, err)
	}
	ret := e.state.Get(-1)
	e.state.Pop(1)

	verdict, ok := ret.(lua.LBool)
	if !ok {
		return false, fmt.Errorf("precondition %q returned %s, want boolean", fn, ret.Type())
	}
	return bool(verdict), nil
}

// survivorTable converts a snapshot into a Lua table.
func survivorTable(L *lua.LState, p SurvivorInfo) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "name", lua.LString(p.Name))
	L.SetField(t, "injured", lua.LBool(p.Injured))
	L.SetField(t, "stressed", lua.LBool(p.Stressed))

	attrs := L.NewTable()
	for code, val := range p.Attributes {
		L.SetField(attrs, code, lua.LNumber(val))
	}
	L.SetField(t, "attributes", attrs)

	skills := L.NewTable()
	for name, lvl := range p.Skills {
		L.SetField(skills, name, lua.LNumber(lvl))
	}
	L.SetField(t, "skills", skills)

	traits := L.NewTable()
	for i, name := range p.Traits {
		L.RawSetInt(traits, i+1, lua.LString(name))
	}
	L.SetField(t, "traits", traits)

	return t
}
