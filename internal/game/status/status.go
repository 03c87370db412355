// Package status tracks temporary effects applied to agents by combat.
// Damage-type-driven attachment is the extension point: physical damage
// currently applies nothing, and Frozen exists as the first concrete effect.
package status

import (
	"github.com/duskfall/duskfall/internal/game/combat"
)

// EffectType identifies an effect kind.
type EffectType string

// TypeFrozen slows movement while active. It deals no tick damage.
const TypeFrozen EffectType = "frozen"

// Effect describes one applied effect instance.
type Effect struct {
	// Type determines the effect's behavior.
	Type EffectType
	// Duration is the remaining lifetime in seconds.
	Duration float64
	// TickInterval is the period between damage ticks; 0 means no ticking.
	TickInterval float64
	// DamagePerTick applies each interval for damage-over-time effects.
	DamagePerTick int

	sinceTick float64
}

// Frozen returns a Frozen effect lasting the given seconds.
func Frozen(duration float64) Effect {
	return Effect{Type: TypeFrozen, Duration: duration}
}

// ForDamageType returns the effect a hit of the given damage type attaches,
// if any. Physical damage attaches none.
func ForDamageType(t combat.DamageType) (Effect, bool) {
	switch t {
	case combat.DamageTypePhysical:
		return Effect{}, false
	default:
		return Effect{}, false
	}
}

// TickDamage is one damage-over-time pulse produced by Tick.
type TickDamage struct {
	Type   EffectType
	Amount int
}

// ActiveSet tracks the effects currently applied to one agent. Re-applying
// an effect type refreshes its duration to the longer of the two. It is not
// safe for concurrent use; each agent's set is mutated only by that agent's
// update.
type ActiveSet struct {
	effects map[EffectType]*Effect
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{effects: make(map[EffectType]*Effect)}
}

// Apply adds the effect or extends the existing one of the same type.
//
// Postcondition: Has(e.Type) is true; the stored duration is the max of the
// existing and incoming durations.
func (s *ActiveSet) Apply(e Effect) {
	if existing, ok := s.effects[e.Type]; ok {
		if e.Duration > existing.Duration {
			existing.Duration = e.Duration
		}
		return
	}
	applied := e
	s.effects[e.Type] = &applied
}

// Has reports whether an effect of type t is active.
func (s *ActiveSet) Has(t EffectType) bool {
	_, ok := s.effects[t]
	return ok
}

// Tick advances all effects by dt seconds, returning any damage pulses due
// this frame and the types that expired.
//
// Postcondition: For every returned expired type t, Has(t) is false.
func (s *ActiveSet) Tick(dt float64) (damage []TickDamage, expired []EffectType) {
	for t, e := range s.effects {
		e.Duration -= dt

		if e.TickInterval > 0 {
			e.sinceTick += dt
			if e.sinceTick >= e.TickInterval {
				e.sinceTick = 0
				damage = append(damage, TickDamage{Type: t, Amount: e.DamagePerTick})
			}
		}

		if e.Duration <= 0 {
			expired = append(expired, t)
			delete(s.effects, t)
		}
	}
	return damage, expired
}

// All returns the active effects. The slice is a fresh allocation; the
// pointed-to effects are shared and must not be mutated by callers.
func (s *ActiveSet) All() []*Effect {
	out := make([]*Effect, 0, len(s.effects))
	for _, e := range s.effects {
		out = append(out, e)
	}
	return out
}
