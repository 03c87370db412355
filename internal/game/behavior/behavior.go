// Package behavior implements the per-agent movement decision state machines:
// Stand, Wander, and Aggressive. Each agent owns exactly one Behavior; the
// simulation steps it once per tick and applies the resulting movement.
package behavior

import (
	"fmt"

	"github.com/duskfall/duskfall/internal/game/geom"
	"github.com/duskfall/duskfall/internal/game/grid"
	"github.com/duskfall/duskfall/internal/game/rng"
)

// Movement tuning shared by the wander and aggressive machines.
const (
	// MovementSpeed is the base agent speed in world units per second,
	// before the per-agent multiplier.
	MovementSpeed = 10.0
	// arrivalThreshold is how close to a waypoint counts as arrived.
	arrivalThreshold = 0.5
)

// Kind identifies a behavior variant.
type Kind int

const (
	// Stand never moves.
	Stand Kind = iota
	// Wander moves between random reachable destinations.
	Wander
	// Aggressive wanders until the player is detected, then chases and attacks.
	Aggressive
)

// String returns the definition-file name of the kind.
func (k Kind) String() string {
	switch k {
	case Stand:
		return "stand"
	case Wander:
		return "wander"
	case Aggressive:
		return "aggressive"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindFromString parses a behavior name from an agent definition.
//
// Postcondition: Returns an error for any name other than "stand", "wander",
// or "aggressive".
func KindFromString(s string) (Kind, error) {
	switch s {
	case "stand":
		return Stand, nil
	case "wander":
		return Wander, nil
	case "aggressive":
		return Aggressive, nil
	default:
		return Stand, fmt.Errorf("behavior: unknown kind %q", s)
	}
}

// AttackInfo is the read-only slice of an agent's combat state a behavior
// consults: whether its melee phase is back at rest, and how far it reaches.
type AttackInfo struct {
	PhaseIdle bool
	Range     float64
}

// Context carries the per-tick inputs for a behavior update. Player is nil
// when no player position is available; behaviors must never escalate
// without one.
type Context struct {
	Grid   *grid.Grid
	DT     float64
	Speed  float64 // per-agent speed multiplier
	Radius float64 // agent collision half-size for CanOccupy checks
	Player *geom.Vec2
	Attack AttackInfo
	Rand   rng.Source
}

// Behavior is the closed variant set owned by one agent. Exactly one variant
// is active; dispatch is a single switch rather than dynamic dispatch so the
// set of behaviors stays explicit.
type Behavior struct {
	kind       Kind
	wander     wanderState
	aggressive aggressiveState
}

// New creates a Behavior of the given kind in its initial state: wander
// machines begin Planning, aggressive machines begin Wandering/Planning.
func New(kind Kind) *Behavior {
	b := &Behavior{kind: kind}
	b.wander = newWanderState(false)
	b.aggressive = newAggressiveState()
	return b
}

// Kind returns the behavior's variant tag.
func (b *Behavior) Kind() Kind { return b.kind }

// Update advances the behavior one tick, possibly mutating pos.
//
// Postcondition: Returns true iff the agent moved this tick (drives the
// cosmetic wiggle animation). Never panics: every decision failure degrades
// to a waiting or planning state.
func (b *Behavior) Update(pos *geom.Vec2, ctx Context) bool {
	switch b.kind {
	case Stand:
		return false
	case Wander:
		return b.wander.update(pos, ctx)
	case Aggressive:
		return b.aggressive.update(pos, ctx)
	default:
		return false
	}
}
