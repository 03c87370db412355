package agent

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/duskfall/duskfall/internal/game/geom"
)

// Manager tracks all live agents in spawn order. The simulation is
// single-threaded, so Manager is not safe for concurrent use; ticks own it
// exclusively.
type Manager struct {
	defs   map[string]*Definition
	agents map[string]*Agent
	order  []string
}

// NewManager creates a Manager over the given validated definitions table.
//
// Precondition: defs must be non-empty and validated by LoadDefinitions.
func NewManager(defs map[string]*Definition) *Manager {
	return &Manager{
		defs:   defs,
		agents: make(map[string]*Agent),
	}
}

// Definition returns the definition for typeName.
//
// Postcondition: Returns (def, true) if the type exists, (nil, false)
// otherwise.
func (m *Manager) Definition(typeName string) (*Definition, bool) {
	def, ok := m.defs[typeName]
	return def, ok
}

// Spawn creates a live agent of typeName at pos.
//
// Postcondition: Returns an error iff typeName has no definition — a
// configuration error surfaced to the caller, not absorbed.
func (m *Manager) Spawn(typeName string, pos geom.Vec2, elevation float64) (*Agent, error) {
	def, ok := m.defs[typeName]
	if !ok {
		return nil, fmt.Errorf("agent: no definition for type %q", typeName)
	}
	id := fmt.Sprintf("%s-%s", typeName, uuid.NewString())
	a := New(id, typeName, def, pos, elevation)
	m.agents[id] = a
	m.order = append(m.order, id)
	return a, nil
}

// Remove despawns the agent with the given ID. Removing an unknown ID is a
// no-op.
func (m *Manager) Remove(id string) {
	if _, ok := m.agents[id]; !ok {
		return
	}
	delete(m.agents, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Get returns the agent with the given ID.
func (m *Manager) Get(id string) (*Agent, bool) {
	a, ok := m.agents[id]
	return a, ok
}

// All returns the live agents in spawn order. The slice is a fresh
// allocation; the pointed-to agents are the live records.
func (m *Manager) All() []*Agent {
	out := make([]*Agent, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.agents[id])
	}
	return out
}

// Len returns the number of live agents.
func (m *Manager) Len() int { return len(m.agents) }
