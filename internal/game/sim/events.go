package sim

import (
	"github.com/duskfall/duskfall/internal/game/combat"
	"github.com/duskfall/duskfall/internal/game/status"
)

// EventKind discriminates the tick event variants.
type EventKind int

const (
	// EventAgentSwing: an agent began winding up a melee attack.
	EventAgentSwing EventKind = iota
	// EventPlayerSwing: the player's weapon began a swing.
	EventPlayerSwing
	// EventAgentHit: the player's weapon struck an agent.
	EventAgentHit
	// EventPlayerHit: an agent's melee strike landed on the player.
	EventPlayerHit
	// EventStatusApplied: a status effect attached to an agent.
	EventStatusApplied
	// EventStatusExpired: a status effect ran out.
	EventStatusExpired
	// EventStatusDamage: a damage-over-time pulse applied.
	EventStatusDamage
	// EventAgentDied: an agent's health reached zero; it despawns this tick.
	EventAgentDied
)

// String returns the event name for structured logging.
func (k EventKind) String() string {
	switch k {
	case EventAgentSwing:
		return "agent_swing"
	case EventPlayerSwing:
		return "player_swing"
	case EventAgentHit:
		return "agent_hit"
	case EventPlayerHit:
		return "player_hit"
	case EventStatusApplied:
		return "status_applied"
	case EventStatusExpired:
		return "status_expired"
	case EventStatusDamage:
		return "status_damage"
	case EventAgentDied:
		return "agent_died"
	default:
		return "unknown"
	}
}

// Event is one observable outcome of a tick. The core performs no I/O;
// callers (logger, renderer, audio) consume these instead.
type Event struct {
	Kind EventKind
	// AgentID identifies the affected agent, empty for player-only events.
	AgentID string
	// AgentType is the affected agent's definition key.
	AgentType string
	// Damage is the applied damage for hit and DoT events.
	Damage int
	// Critical marks a critical weapon strike.
	Critical bool
	// DamageType is set on weapon hit events.
	DamageType combat.DamageType
	// Effect is set on status events.
	Effect status.EffectType
	// Health is the target's health after the event applied.
	Health float64
}
