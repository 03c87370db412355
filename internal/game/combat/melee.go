package combat

// NPC melee timing. Unlike the weapon swing machine, which splits a
// configurable SwingDuration into normalized fractions, NPC melee uses fixed
// per-phase seconds. The two are deliberately separate parameterizations of
// the same shape of machine.
const (
	// MeleeWindupDuration is the telegraph before the strike.
	MeleeWindupDuration = 0.2
	// MeleeStrikeDuration is the active strike phase.
	MeleeStrikeDuration = 0.2
	// MeleeRecoveryDuration returns the agent to rest.
	MeleeRecoveryDuration = 0.2
	// MeleeTotalDuration is the full windup+strike+recovery span.
	MeleeTotalDuration = MeleeWindupDuration + MeleeStrikeDuration + MeleeRecoveryDuration
	// MeleeDamageInstant is the elapsed time at which damage applies:
	// the midpoint of the strike phase.
	MeleeDamageInstant = MeleeWindupDuration + MeleeStrikeDuration*0.5

	// StunDuration is imposed on any agent that takes a hit; while stunned
	// the agent neither moves nor attacks, and its melee phase is forced
	// back to Idle.
	StunDuration = 0.3
)

// MeleePhase identifies the active variant of a Melee machine.
type MeleePhase int

const (
	// MeleeIdle waits for range and cooldown.
	MeleeIdle MeleePhase = iota
	// MeleeWindingUp telegraphs the strike.
	MeleeWindingUp
	// MeleeStriking is the phase during which damage lands.
	MeleeStriking
	// MeleeRecovering returns to Idle.
	MeleeRecovering
)

// String returns the phase name for snapshots and events.
func (p MeleePhase) String() string {
	switch p {
	case MeleeIdle:
		return "idle"
	case MeleeWindingUp:
		return "winding_up"
	case MeleeStriking:
		return "striking"
	case MeleeRecovering:
		return "recovering"
	default:
		return "unknown"
	}
}

// MeleeSignal reports the externally visible result of a Melee update.
type MeleeSignal int

const (
	// MeleeNone: no externally visible change.
	MeleeNone MeleeSignal = iota
	// MeleeSwingStarted: the agent just began winding up.
	MeleeSwingStarted
	// MeleeStrike: damage applies this frame, exactly once per swing.
	MeleeStrike
)

// Melee is an agent's innate attack machine. The shared Timer doubles as the
// cooldown accumulator while Idle: a swing may begin only once Timer reaches
// the agent's attack cooldown, and Timer resets to zero when a swing starts
// and again when recovery completes.
type Melee struct {
	Phase MeleePhase
	Timer float64
}

// Update advances the machine by dt. inRange reports whether the target is
// within the agent's attack range this tick; cooldown is the agent's
// per-type attack cooldown in seconds.
//
// Postcondition: MeleeStrike is returned on exactly the frame Timer crosses
// MeleeDamageInstant within Striking, and on no other frame of the swing.
func (m *Melee) Update(dt float64, inRange bool, cooldown float64) MeleeSignal {
	m.Timer += dt

	switch m.Phase {
	case MeleeIdle:
		if inRange && m.Timer >= cooldown {
			m.Phase = MeleeWindingUp
			m.Timer = 0
			return MeleeSwingStarted
		}

	case MeleeWindingUp:
		if m.Timer >= MeleeWindupDuration {
			m.Phase = MeleeStriking
		}

	case MeleeStriking:
		if m.Timer >= MeleeDamageInstant && m.Timer < MeleeDamageInstant+dt {
			if m.Timer >= MeleeWindupDuration+MeleeStrikeDuration {
				m.Phase = MeleeRecovering
			}
			return MeleeStrike
		}
		if m.Timer >= MeleeWindupDuration+MeleeStrikeDuration {
			m.Phase = MeleeRecovering
		}

	case MeleeRecovering:
		if m.Timer >= MeleeTotalDuration {
			m.Phase = MeleeIdle
			m.Timer = 0
		}
	}
	return MeleeNone
}

// Interrupt forces the machine back to Idle with the timer reset. A stunned
// agent's swing is cancelled unconditionally, outside the normal progress
// rules.
func (m *Melee) Interrupt() {
	m.Phase = MeleeIdle
	m.Timer = 0
}

// Progress returns the normalized 0..1 progress within the current phase,
// for the presentation layer's attack animation.
func (m *Melee) Progress() float64 {
	var p float64
	switch m.Phase {
	case MeleeWindingUp:
		p = m.Timer / MeleeWindupDuration
	case MeleeStriking:
		p = (m.Timer - MeleeWindupDuration) / MeleeStrikeDuration
	case MeleeRecovering:
		p = (m.Timer - MeleeWindupDuration - MeleeStrikeDuration) / MeleeRecoveryDuration
	default:
		return 0
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
