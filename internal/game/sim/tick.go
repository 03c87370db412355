package sim

import (
	"github.com/duskfall/duskfall/internal/game/behavior"
	"github.com/duskfall/duskfall/internal/game/combat"
	"github.com/duskfall/duskfall/internal/game/status"
)

// Tick advances the simulation by dt seconds and returns the tick's events.
// Order within a tick is fixed: timers, then every agent's behavior
// (movement), then every agent's melee phase, then the player's weapon swing
// and hit detection, then the death sweep. An agent's attack range check
// therefore always sees post-movement positions.
//
// Postcondition: Never panics in steady state; every per-tick decision
// failure is absorbed by a state-machine fallback.
func (w *World) Tick(dt float64, input Input) []Event {
	var events []Event

	events = w.tickTimers(dt, events)
	w.tickBehaviors(dt)
	events = w.tickMelee(dt, events)
	events = w.tickPlayerSwing(dt, input, events)
	events = w.sweepDead(events)

	return events
}

// tickTimers counts down stun and status effects for every agent.
func (w *World) tickTimers(dt float64, events []Event) []Event {
	for _, a := range w.Agents.All() {
		a.TickStun(dt)

		pulses, expired := a.Effects.Tick(dt)
		for _, p := range pulses {
			a.Health -= float64(p.Amount)
			events = append(events, Event{
				Kind:      EventStatusDamage,
				AgentID:   a.ID,
				AgentType: a.Type,
				Damage:    p.Amount,
				Effect:    p.Type,
				Health:    a.Health,
			})
		}
		for _, t := range expired {
			events = append(events, Event{
				Kind:      EventStatusExpired,
				AgentID:   a.ID,
				AgentType: a.Type,
				Effect:    t,
			})
		}
	}
	return events
}

// tickBehaviors runs every agent's movement decision. Stunned agents are
// frozen in place.
func (w *World) tickBehaviors(dt float64) {
	for _, a := range w.Agents.All() {
		if a.IsStunned() {
			a.IsMoving = false
			continue
		}
		ctx := behavior.Context{
			Grid:   w.Grid,
			DT:     dt,
			Speed:  a.Speed,
			Radius: a.Radius,
			Attack: behavior.AttackInfo{
				PhaseIdle: a.Melee.Phase == combat.MeleeIdle,
				Range:     a.AttackRange,
			},
			Rand: w.Rand,
		}
		if w.Player != nil {
			p := w.Player.Position
			ctx.Player = &p
		}
		a.IsMoving = a.Behavior.Update(&a.Position, ctx)
	}
}

// tickMelee advances every agent's innate attack machine against the player.
// Without a player there is no melee target and the machines stay put.
func (w *World) tickMelee(dt float64, events []Event) []Event {
	if w.Player == nil {
		return events
	}
	for _, a := range w.Agents.All() {
		if a.IsStunned() {
			continue
		}
		distance := a.Position.Distance(w.Player.Position)
		inRange := distance <= a.AttackRange

		switch a.Melee.Update(dt, inRange, a.AttackCooldown) {
		case combat.MeleeSwingStarted:
			events = append(events, Event{
				Kind:      EventAgentSwing,
				AgentID:   a.ID,
				AgentType: a.Type,
			})
		case combat.MeleeStrike:
			// Range is re-checked at the damage instant: the player may
			// have stepped out during the windup.
			if inRange {
				w.Player.Health -= float64(a.AttackDamage)
				if w.Player.Health < 0 {
					w.Player.Health = 0
				}
				events = append(events, Event{
					Kind:      EventPlayerHit,
					AgentID:   a.ID,
					AgentType: a.Type,
					Damage:    a.AttackDamage,
					Health:    w.Player.Health,
				})
			}
		}
	}
	return events
}

// tickPlayerSwing advances the equipped weapon and, on the frame its hit
// window opens, resolves hits against every live agent.
func (w *World) tickPlayerSwing(dt float64, input Input, events []Event) []Event {
	if w.Player == nil || w.Player.Swing == nil {
		return events
	}
	swing := w.Player.Swing

	switch swing.Update(dt, combat.Input{Pressed: input.AttackPressed, Held: input.AttackHeld}) {
	case combat.SignalWindupStarted:
		events = append(events, Event{Kind: EventPlayerSwing})
	case combat.SignalTriggerHit:
		events = w.resolveHits(swing, events)
	}
	return events
}

func (w *World) resolveHits(swing *combat.Swing, events []Event) []Event {
	agents := w.Agents.All()
	candidates := make([]combat.Candidate, 0, len(agents))
	for _, a := range agents {
		candidates = append(candidates, combat.Candidate{
			ID:        a.ID,
			Position:  a.Position,
			Elevation: a.Elevation,
			Radius:    a.Scale,
		})
	}

	hits := swing.DetectHits(w.Player.Position, w.Player.Elevation, w.Player.Facing, candidates)
	for _, hit := range hits {
		target, ok := w.Agents.Get(hit.ID)
		if !ok {
			continue
		}
		result := combat.CalculateDamage(
			swing.Definition(), swing.ChargeRatio(), target.Armor, target.Resistance, w.Rand,
		)
		target.TakeHit(result.Amount)

		events = append(events, Event{
			Kind:       EventAgentHit,
			AgentID:    target.ID,
			AgentType:  target.Type,
			Damage:     result.Amount,
			Critical:   result.Critical,
			DamageType: result.Type,
			Health:     target.Health,
		})

		if effect, ok := status.ForDamageType(result.Type); ok {
			target.Effects.Apply(effect)
			events = append(events, Event{
				Kind:      EventStatusApplied,
				AgentID:   target.ID,
				AgentType: target.Type,
				Effect:    effect.Type,
			})
		}

		if w.OnHit != nil && target.OnHit != "" {
			w.OnHit(target.OnHit, target)
		}
	}
	return events
}

// sweepDead despawns every agent whose health reached zero, invoking the
// on-death hook exactly once before deregistration.
func (w *World) sweepDead(events []Event) []Event {
	for _, a := range w.Agents.All() {
		if !a.IsDead() {
			continue
		}
		if w.OnDeath != nil && a.OnDeath != "" {
			w.OnDeath(a.OnDeath, a)
		}
		events = append(events, Event{
			Kind:      EventAgentDied,
			AgentID:   a.ID,
			AgentType: a.Type,
		})
		w.Agents.Remove(a.ID)
	}
	return events
}
