// Package sim owns the per-tick orchestration of the simulation core:
// behavior movement for every agent, then attack-phase updates, then hit
// detection and damage, in that fixed order within a tick.
package sim

import (
	"fmt"

	"github.com/duskfall/duskfall/internal/game/agent"
	"github.com/duskfall/duskfall/internal/game/combat"
	"github.com/duskfall/duskfall/internal/game/geom"
	"github.com/duskfall/duskfall/internal/game/grid"
	"github.com/duskfall/duskfall/internal/game/rng"
)

// Player is the simulation's view of the player: position, facing, health,
// and the equipped weapon's swing state. Swing may be nil when no weapon is
// equipped.
type Player struct {
	Position  geom.Vec2
	Elevation float64
	// Facing is the forward direction hit detection projects onto.
	Facing    geom.Vec2
	Health    float64
	MaxHealth float64
	Swing     *combat.Swing
}

// Input is the player's attack intent for one tick.
type Input struct {
	AttackPressed bool
	AttackHeld    bool
}

// World holds everything one simulation tick reads and mutates. It is
// single-threaded: Tick must not be called concurrently, and the grid is
// read-only while a tick runs.
type World struct {
	Grid   *grid.Grid
	Agents *agent.Manager
	// Player is nil when no player is present; agents then only wander and
	// melee never fires. This is a steady state, not an error.
	Player *Player
	Rand   rng.Source

	// OnDeath and OnHit are the external script/event sink. Called with the
	// definition's hook name and the affected agent; nil or an empty hook
	// name means no-op. OnDeath runs exactly once per agent, on the tick
	// health reaches zero.
	OnDeath func(hook string, a *agent.Agent)
	OnHit   func(hook string, a *agent.Agent)
}

// NewWorld creates a World over the given grid and definitions.
//
// Precondition: g and defs must be non-nil; src must be non-nil.
func NewWorld(g *grid.Grid, defs map[string]*agent.Definition, src rng.Source) *World {
	return &World{
		Grid:   g,
		Agents: agent.NewManager(defs),
		Rand:   src,
	}
}

// PopulateFromMap spawns every agent listed in the map file.
//
// Postcondition: Returns an error on the first spawn whose type has no
// definition (a load-time configuration error).
func (w *World) PopulateFromMap(mf *grid.MapFile) error {
	for _, sp := range mf.Agents {
		if _, err := w.Agents.Spawn(sp.Type, geom.Vec2{X: sp.X, Y: sp.Y}, 0); err != nil {
			return fmt.Errorf("populating map: %w", err)
		}
	}
	return nil
}
