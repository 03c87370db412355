package sim

import "github.com/duskfall/duskfall/internal/game/combat"

// AgentSnapshot is the pure presentation data for one agent: where it is,
// what it is doing, and how far through its attack animation it is. The
// renderer and audio layers consume snapshots; the core never calls them.
type AgentSnapshot struct {
	ID        string
	Type      string
	X         float64
	Y         float64
	Elevation float64
	Health    float64
	MaxHealth float64
	Phase     combat.MeleePhase
	// Progress is the normalized 0..1 progress within Phase.
	Progress float64
	Stunned  bool
	Moving   bool
}

// WeaponSnapshot is the presentation data for the player's equipped weapon.
type WeaponSnapshot struct {
	Phase combat.AttackPhase
	// Progress is the 0..1 overall animation timeline position.
	Progress float64
	Pose     combat.Pose
	// ChargeRatio drives the charge vibration cue.
	ChargeRatio float64
}

// Snapshot captures the agents' presentation state after a tick.
func (w *World) Snapshot() []AgentSnapshot {
	agents := w.Agents.All()
	out := make([]AgentSnapshot, 0, len(agents))
	for _, a := range agents {
		out = append(out, AgentSnapshot{
			ID:        a.ID,
			Type:      a.Type,
			X:         a.Position.X,
			Y:         a.Position.Y,
			Elevation: a.Elevation,
			Health:    a.Health,
			MaxHealth: a.MaxHealth,
			Phase:     a.Melee.Phase,
			Progress:  a.Melee.Progress(),
			Stunned:   a.IsStunned(),
			Moving:    a.IsMoving,
		})
	}
	return out
}

// WeaponState captures the equipped weapon's presentation state, or false
// when no weapon is equipped.
func (w *World) WeaponState() (WeaponSnapshot, bool) {
	if w.Player == nil || w.Player.Swing == nil {
		return WeaponSnapshot{}, false
	}
	s := w.Player.Swing
	return WeaponSnapshot{
		Phase:       s.Phase(),
		Progress:    s.OverallProgress(),
		Pose:        s.Pose(),
		ChargeRatio: s.ChargeRatio(),
	}, true
}
