package combat

// Normalized phase boundaries of the full swing animation. The recovery
// phase ends at 1.0.
const (
	windupEnd = 0.15
	swingEnd  = 0.50
	thrustEnd = 0.80
)

// AttackPhase identifies the active variant of an AttackState.
type AttackPhase int

const (
	// PhaseIdle is the weapon at rest, ready to attack.
	PhaseIdle AttackPhase = iota
	// PhaseWindup pulls the weapon back in preparation.
	PhaseWindup
	// PhaseSwing is the horizontal arc; its hit window opens mid-phase.
	PhaseSwing
	// PhaseThrust is the forward strike; its hit window opens mid-phase.
	PhaseThrust
	// PhaseRecovery returns the weapon to rest.
	PhaseRecovery
)

// String returns the phase name for logs and events.
func (p AttackPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWindup:
		return "windup"
	case PhaseSwing:
		return "swing"
	case PhaseThrust:
		return "thrust"
	case PhaseRecovery:
		return "recovery"
	default:
		return "unknown"
	}
}

// Input is the attack intent sampled for one tick.
type Input struct {
	// Pressed is true only on the frame the attack input went down.
	Pressed bool
	// Held is true while the attack input remains down.
	Held bool
}

// Signal reports what an Update produced beyond internal progress.
type Signal int

const (
	// SignalNone: no externally visible change.
	SignalNone Signal = iota
	// SignalWindupStarted: a new swing just began (play the swing cue).
	SignalWindupStarted
	// SignalTriggerHit: run hit detection this frame, exactly once per
	// Swing and once per Thrust phase instance.
	SignalTriggerHit
	// SignalReturnedToIdle: the swing finished; per-swing state (hit set,
	// charge) must be cleared by the owner.
	SignalReturnedToIdle
)

// AttackState is the weapon swing state machine: a tagged union over
// {Idle, Windup, Swing, Thrust, Recovery} with normalized progress inside
// each timed phase. The zero value is Idle.
type AttackState struct {
	phase     AttackPhase
	progress  float64
	hitActive bool
}

// Phase returns the active variant.
func (s *AttackState) Phase() AttackPhase { return s.phase }

// IsHitActive reports whether the hit window of the current phase is open.
// Only Swing and Thrust ever open a hit window.
func (s *AttackState) IsHitActive() bool {
	return (s.phase == PhaseSwing || s.phase == PhaseThrust) && s.hitActive
}

// Update advances the state machine by dt seconds. Phase durations are the
// weapon's SwingDuration split at the normalized boundaries; progress within
// a phase advances by dt / phaseDuration.
//
// Postcondition: Phases are visited in the strict order
// Idle→Windup→Swing→Thrust→Recovery→Idle; hitActive flips at most once per
// Swing/Thrust instance, on the frame progress crosses 0.5, and only that
// frame returns SignalTriggerHit.
func (s *AttackState) Update(dt float64, input Input, weapon *WeaponDefinition) Signal {
	switch s.phase {
	case PhaseIdle:
		if input.Pressed {
			s.enter(PhaseWindup)
			return SignalWindupStarted
		}
		return SignalNone

	case PhaseWindup:
		s.progress += dt / (weapon.SwingDuration * windupEnd)
		if s.progress >= 1.0 {
			s.enter(PhaseSwing)
		}
		return SignalNone

	case PhaseSwing:
		s.progress += dt / (weapon.SwingDuration * (swingEnd - windupEnd))
		if s.progress >= 0.5 && !s.hitActive {
			s.hitActive = true
			return SignalTriggerHit
		}
		if s.progress >= 1.0 {
			s.enter(PhaseThrust)
		}
		return SignalNone

	case PhaseThrust:
		s.progress += dt / (weapon.SwingDuration * (thrustEnd - swingEnd))
		if s.progress >= 0.5 && !s.hitActive {
			s.hitActive = true
			return SignalTriggerHit
		}
		if s.progress >= 1.0 {
			s.enter(PhaseRecovery)
		}
		return SignalNone

	case PhaseRecovery:
		s.progress += dt / (weapon.SwingDuration * (1.0 - thrustEnd))
		if s.progress >= 1.0 {
			s.enter(PhaseIdle)
			return SignalReturnedToIdle
		}
		return SignalNone

	default:
		return SignalNone
	}
}

func (s *AttackState) enter(p AttackPhase) {
	s.phase = p
	s.progress = 0
	s.hitActive = false
}

// Reset forces the state back to Idle immediately, bypassing the normal
// progress rules. Used for stun interrupts.
func (s *AttackState) Reset() { s.enter(PhaseIdle) }

// OverallProgress maps the current state onto the full 0..1 animation
// timeline for keyframe interpolation.
func (s *AttackState) OverallProgress() float64 {
	p := s.progress
	if p > 1 {
		p = 1
	}
	switch s.phase {
	case PhaseWindup:
		return p * windupEnd
	case PhaseSwing:
		return windupEnd + p*(swingEnd-windupEnd)
	case PhaseThrust:
		return swingEnd + p*(thrustEnd-swingEnd)
	case PhaseRecovery:
		return thrustEnd + p*(1.0-thrustEnd)
	default:
		return 0
	}
}
