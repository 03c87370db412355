package combat

// Swing is the live attack state of one equipped weapon: the phase machine,
// charge accumulation, and the per-swing set of targets already struck.
// One Swing exists per attacker; it is owned exclusively by its attacker and
// is not safe for concurrent use.
type Swing struct {
	def            *WeaponDefinition
	state          AttackState
	chargeProgress float64
	hitTargets     map[string]struct{}
}

// NewSwing creates an idle Swing for the given weapon definition.
//
// Precondition: def must be non-nil and validated.
func NewSwing(def *WeaponDefinition) *Swing {
	return &Swing{
		def:        def,
		hitTargets: make(map[string]struct{}),
	}
}

// Definition returns the weapon definition driving this swing.
func (s *Swing) Definition() *WeaponDefinition { return s.def }

// Phase returns the active attack phase.
func (s *Swing) Phase() AttackPhase { return s.state.Phase() }

// OverallProgress returns the 0..1 animation timeline position.
func (s *Swing) OverallProgress() float64 { return s.state.OverallProgress() }

// Pose returns the weapon sprite pose for the current instant.
func (s *Swing) Pose() Pose { return s.def.PoseAt(s.state.OverallProgress()) }

// IsHitActive reports whether this swing's hit window is open.
func (s *Swing) IsHitActive() bool { return s.state.IsHitActive() }

// ChargeRatio is the accumulated charge as a fraction of the weapon's max
// charge time, capped at 1.
func (s *Swing) ChargeRatio() float64 {
	ratio := s.chargeProgress / s.def.MaxChargeTime
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// Update advances the swing by dt under the given input. Holding the attack
// input while idle accumulates charge; the charge and the per-swing hit set
// are cleared when the machine returns to Idle.
func (s *Swing) Update(dt float64, input Input) Signal {
	if s.state.Phase() == PhaseIdle && input.Held {
		s.chargeProgress += dt
		if s.chargeProgress > s.def.MaxChargeTime {
			s.chargeProgress = s.def.MaxChargeTime
		}
	}

	sig := s.state.Update(dt, input, s.def)
	if sig == SignalReturnedToIdle {
		s.clearSwing()
	}
	return sig
}

func (s *Swing) clearSwing() {
	s.hitTargets = make(map[string]struct{})
	s.chargeProgress = 0
}

// HasHit reports whether targetID was already struck during this swing.
func (s *Swing) HasHit(targetID string) bool {
	_, ok := s.hitTargets[targetID]
	return ok
}

// MarkHit records targetID as struck for the remainder of this swing.
func (s *Swing) MarkHit(targetID string) {
	s.hitTargets[targetID] = struct{}{}
}
