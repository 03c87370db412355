package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// AgentInfo is a snapshot of an agent's state passed to Lua hook functions.
type AgentInfo struct {
	ID        string
	Type      string
	X         float64
	Y         float64
	Health    float64
	MaxHealth float64
}

// Manager owns one sandboxed LState for the level's hook scripts and exposes
// hook dispatch for agent on-hit and on-death callbacks.
//
// Manager is safe for concurrent CallHook after Load completes. The LState is
// single-threaded; the mutex serializes all calls into it.
type Manager struct {
	mu     sync.Mutex
	state  *lua.LState
	cancel func()
	logger *zap.Logger

	// Injected after construction. nil = no-op in engine.* modules.
	SpawnAgent func(typeName string, x, y float64) error
	GetAgent   func(id string) *AgentInfo
	HealAgent  func(id string, amount float64) error
}

// NewManager creates a Manager.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no VM loaded.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		logger: logger,
	}
}

// Load creates a sandboxed VM, registers all engine.* modules, then executes
// every *.lua file in scriptDir in lexicographic order. Loading again replaces
// the previous VM.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: The VM is registered; returns error on Lua load failure.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.state != nil {
		if m.cancel != nil {
			m.cancel()
		}
		m.state.Close()
	}
	m.state = L
	m.cancel = cancel
	m.mu.Unlock()
	return nil
}

// Close releases the VM. Safe to call when nothing is loaded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		if m.cancel != nil {
			m.cancel()
		}
		m.state.Close()
		m.state = nil
		m.cancel = nil
	}
}

// CallHook calls the named Lua global function with the agent snapshot as a
// table argument. Returns (LNil, nil) if the hook is not defined or no VM is
// loaded. Lua runtime errors are logged at Warn level and never propagated;
// a script failure must not take down the simulation.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, info AgentInfo) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		m.logger.Info("scripting: no VM loaded",
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}
	L := m.state

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, agentInfoTable(L, info)); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.String("agent", info.ID),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

func agentInfoTable(L *lua.LState, info AgentInfo) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LString(info.ID))
	t.RawSetString("type", lua.LString(info.Type))
	t.RawSetString("x", lua.LNumber(info.X))
	t.RawSetString("y", lua.LNumber(info.Y))
	t.RawSetString("health", lua.LNumber(info.Health))
	t.RawSetString("max_health", lua.LNumber(info.MaxHealth))
	return t
}
