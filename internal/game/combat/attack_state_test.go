package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/duskfall/duskfall/internal/game/combat"
)

func testWeapon() *combat.WeaponDefinition {
	return &combat.WeaponDefinition{
		AttackPower:   10,
		SwingDuration: 0.4,
		MaxChargeTime: 1.5,
		ChargeBonus:   0.5,
		Range:         6,
		HitboxWidth:   4,
		HitboxHeight:  4,
		DamageType:    combat.DamageTypePhysical,
	}
}

func TestAttackState_IdleUntilPressed(t *testing.T) {
	var s combat.AttackState
	w := testWeapon()

	for i := 0; i < 10; i++ {
		sig := s.Update(0.016, combat.Input{}, w)
		assert.Equal(t, combat.SignalNone, sig)
		assert.Equal(t, combat.PhaseIdle, s.Phase())
	}

	sig := s.Update(0.016, combat.Input{Pressed: true}, w)
	assert.Equal(t, combat.SignalWindupStarted, sig)
	assert.Equal(t, combat.PhaseWindup, s.Phase())
}

func TestAttackState_HeldAloneDoesNotStart(t *testing.T) {
	var s combat.AttackState
	w := testWeapon()
	sig := s.Update(0.016, combat.Input{Held: true}, w)
	assert.Equal(t, combat.SignalNone, sig)
	assert.Equal(t, combat.PhaseIdle, s.Phase())
}

// runFullSwing steps a pressed swing to completion, returning the visited
// phase sequence and the per-signal counts.
func runFullSwing(t *testing.T, s *combat.AttackState, w *combat.WeaponDefinition, dt float64) ([]combat.AttackPhase, map[combat.Signal]int) {
	t.Helper()
	signals := map[combat.Signal]int{}
	phases := []combat.AttackPhase{s.Phase()}

	sig := s.Update(dt, combat.Input{Pressed: true}, w)
	signals[sig]++
	phases = append(phases, s.Phase())

	for i := 0; i < 10000; i++ {
		sig := s.Update(dt, combat.Input{}, w)
		signals[sig]++
		if last := phases[len(phases)-1]; s.Phase() != last {
			phases = append(phases, s.Phase())
		}
		if sig == combat.SignalReturnedToIdle {
			return phases, signals
		}
	}
	t.Fatal("swing never returned to idle")
	return nil, nil
}

func TestAttackState_FullSwingPhaseOrder(t *testing.T) {
	var s combat.AttackState
	phases, signals := runFullSwing(t, &s, testWeapon(), 1.0/60)

	assert.Equal(t, []combat.AttackPhase{
		combat.PhaseIdle,
		combat.PhaseWindup,
		combat.PhaseSwing,
		combat.PhaseThrust,
		combat.PhaseRecovery,
		combat.PhaseIdle,
	}, phases)

	assert.Equal(t, 1, signals[combat.SignalWindupStarted])
	assert.Equal(t, 2, signals[combat.SignalTriggerHit], "one hit window per Swing and per Thrust")
	assert.Equal(t, 1, signals[combat.SignalReturnedToIdle])
}

func TestAttackState_InputIgnoredMidSwing(t *testing.T) {
	var s combat.AttackState
	w := testWeapon()
	s.Update(0.016, combat.Input{Pressed: true}, w)
	require.Equal(t, combat.PhaseWindup, s.Phase())

	// Pressing again mid-swing neither restarts nor signals.
	sig := s.Update(0.016, combat.Input{Pressed: true, Held: true}, w)
	assert.Equal(t, combat.SignalNone, sig)
	assert.NotEqual(t, combat.PhaseIdle, s.Phase())
}

func TestAttackState_Reset(t *testing.T) {
	var s combat.AttackState
	w := testWeapon()
	s.Update(0.016, combat.Input{Pressed: true}, w)
	require.NotEqual(t, combat.PhaseIdle, s.Phase())

	s.Reset()
	assert.Equal(t, combat.PhaseIdle, s.Phase())
	assert.False(t, s.IsHitActive())
	assert.Equal(t, 0.0, s.OverallProgress())
}

func TestAttackState_OverallProgressMonotone(t *testing.T) {
	var s combat.AttackState
	w := testWeapon()
	s.Update(0.005, combat.Input{Pressed: true}, w)

	prev := 0.0
	for s.Phase() != combat.PhaseIdle {
		p := s.OverallProgress()
		assert.GreaterOrEqual(t, p, prev)
		assert.LessOrEqual(t, p, 1.0)
		prev = p
		s.Update(0.005, combat.Input{}, w)
	}
}

func TestProperty_SwingAlwaysCompletesInOrder(t *testing.T) {
	order := map[combat.AttackPhase]int{
		combat.PhaseIdle:     0,
		combat.PhaseWindup:   1,
		combat.PhaseSwing:    2,
		combat.PhaseThrust:   3,
		combat.PhaseRecovery: 4,
	}
	rapid.Check(t, func(rt *rapid.T) {
		w := testWeapon()
		w.SwingDuration = rapid.Float64Range(0.1, 2.0).Draw(rt, "duration")
		dt := rapid.Float64Range(0.001, 0.05).Draw(rt, "dt")

		var s combat.AttackState
		s.Update(dt, combat.Input{Pressed: true}, w)
		prev := combat.PhaseWindup
		hits := 0
		for i := 0; i < 100000; i++ {
			sig := s.Update(dt, combat.Input{}, w)
			if sig == combat.SignalTriggerHit {
				hits++
			}
			cur := s.Phase()
			if cur != prev {
				if cur == combat.PhaseIdle {
					if prev != combat.PhaseRecovery {
						rt.Fatalf("returned to idle from %v", prev)
					}
					if hits != 2 {
						rt.Fatalf("swing produced %d hit windows, want 2", hits)
					}
					return
				}
				if order[cur] != order[prev]+1 {
					rt.Fatalf("phase jumped %v -> %v", prev, cur)
				}
				prev = cur
			}
		}
		rt.Fatal("swing never completed")
	})
}
