package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers all engine.* Lua tables into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L with log, spawn, get_agent,
// and heal functions.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	L.SetField(engine, "log", L.NewFunction(m.luaLog))
	L.SetField(engine, "spawn", L.NewFunction(m.luaSpawn))
	L.SetField(engine, "get_agent", L.NewFunction(m.luaGetAgent))
	L.SetField(engine, "heal", L.NewFunction(m.luaHeal))

	L.SetGlobal("engine", engine)
}

// luaLog implements engine.log(message). Messages go through the structured
// logger at Info level.
func (m *Manager) luaLog(L *lua.LState) int {
	msg := L.CheckString(1)
	m.logger.Info("script", zap.String("message", msg))
	return 0
}

// luaSpawn implements engine.spawn(type, x, y). Returns true on success, or
// false plus an error message.
func (m *Manager) luaSpawn(L *lua.LState) int {
	typeName := L.CheckString(1)
	x := float64(L.CheckNumber(2))
	y := float64(L.CheckNumber(3))

	if m.SpawnAgent == nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString("spawn not available"))
		return 2
	}
	if err := m.SpawnAgent(typeName, x, y); err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

// luaGetAgent implements engine.get_agent(id). Returns an agent table or nil.
func (m *Manager) luaGetAgent(L *lua.LState) int {
	id := L.CheckString(1)

	if m.GetAgent == nil {
		L.Push(lua.LNil)
		return 1
	}
	info := m.GetAgent(id)
	if info == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(agentInfoTable(L, *info))
	return 1
}

// luaHeal implements engine.heal(id, amount). Returns true on success, or
// false plus an error message.
func (m *Manager) luaHeal(L *lua.LState) int {
	id := L.CheckString(1)
	amount := float64(L.CheckNumber(2))

	if m.HealAgent == nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString("heal not available"))
		return 2
	}
	if err := m.HealAgent(id, amount); err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}
