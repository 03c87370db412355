package agent

import (
	"github.com/duskfall/duskfall/internal/game/behavior"
	"github.com/duskfall/duskfall/internal/game/combat"
	"github.com/duskfall/duskfall/internal/game/geom"
	"github.com/duskfall/duskfall/internal/game/status"
)

// Agent is one live NPC. Its behavior and melee state are owned exclusively
// by the agent and mutated only during its own update; the single exception
// is hit resolution, which writes Health and StunTimer from the attacker's
// step.
type Agent struct {
	// ID uniquely identifies this instance.
	ID string
	// Type is the definition key this agent was spawned from.
	Type string

	Position geom.Vec2
	// Elevation is the fixed base height; the wiggle animation offsets it
	// cosmetically but the simulation value never changes.
	Elevation float64

	Health    float64
	MaxHealth float64
	// Armor is flat damage reduction.
	Armor int
	// Resistance is the physical damage fraction ignored, clamped 0–1 at
	// load time.
	Resistance float64
	// Radius is the collision half-size for movement queries.
	Radius float64
	// Scale is the hit-target radius used by weapon hit detection.
	Scale float64
	// Speed is the movement speed multiplier.
	Speed float64

	// Behavior decides movement each tick.
	Behavior *behavior.Behavior
	// IsMoving drives the cosmetic wiggle animation.
	IsMoving bool

	// Melee is the agent's innate attack machine.
	Melee combat.Melee
	// StunTimer counts down to zero; movement and attacks are frozen while
	// it is positive.
	StunTimer float64

	// Per-type attack stats, fixed at spawn.
	AttackDamage   int
	AttackRange    float64
	AttackCooldown float64

	// Effects tracks active status effects.
	Effects *status.ActiveSet

	// OnHit and OnDeath are script hook names from the definition.
	OnHit   string
	OnDeath string
}

// New creates a live Agent of the given type at pos.
//
// Precondition: def must be validated; id must be unique among live agents.
// Postcondition: Health equals def.MaxHealth and the behavior machine is in
// its initial state.
func New(id, typeName string, def *Definition, pos geom.Vec2, elevation float64) *Agent {
	kind, _ := behavior.KindFromString(def.Behavior)
	return &Agent{
		ID:             id,
		Type:           typeName,
		Position:       pos,
		Elevation:      elevation,
		Health:         def.MaxHealth,
		MaxHealth:      def.MaxHealth,
		Armor:          def.Armor,
		Resistance:     def.PhysicalResistance,
		Radius:         def.Radius,
		Scale:          def.Scale,
		Speed:          def.Speed,
		Behavior:       behavior.New(kind),
		AttackDamage:   def.AttackDamage,
		AttackRange:    def.AttackRange,
		AttackCooldown: def.AttackCooldown,
		Effects:        status.NewActiveSet(),
		OnHit:          def.OnHit,
		OnDeath:        def.OnDeath,
	}
}

// IsDead reports whether the agent's health has reached zero.
func (a *Agent) IsDead() bool { return a.Health <= 0 }

// IsStunned reports whether the agent is currently stun-frozen.
func (a *Agent) IsStunned() bool { return a.StunTimer > 0 }

// TakeHit applies damage from a weapon strike: health drops, a fixed stun
// lands, and any in-flight swing of the agent's own is cancelled.
func (a *Agent) TakeHit(amount int) {
	a.Health -= float64(amount)
	a.StunTimer = combat.StunDuration
	if a.Melee.Phase != combat.MeleeIdle {
		a.Melee.Interrupt()
	}
}

// TickStun counts the stun timer down, clamping at zero.
func (a *Agent) TickStun(dt float64) {
	if a.StunTimer > 0 {
		a.StunTimer -= dt
		if a.StunTimer < 0 {
			a.StunTimer = 0
		}
	}
}
