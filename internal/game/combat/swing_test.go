package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskfall/duskfall/internal/game/combat"
)

func TestSwing_ChargeAccumulatesWhileHeldIdle(t *testing.T) {
	s := combat.NewSwing(testWeapon())

	assert.Equal(t, 0.0, s.ChargeRatio())
	for i := 0; i < 30; i++ { // 0.48s held
		s.Update(0.016, combat.Input{Held: true})
	}
	assert.InDelta(t, 0.48/1.5, s.ChargeRatio(), 1e-9)
}

func TestSwing_ChargeCapsAtOne(t *testing.T) {
	s := combat.NewSwing(testWeapon())
	for i := 0; i < 300; i++ { // 4.8s held, far past max charge
		s.Update(0.016, combat.Input{Held: true})
	}
	assert.Equal(t, 1.0, s.ChargeRatio())
}

func TestSwing_ChargeClearedAfterSwingCompletes(t *testing.T) {
	s := combat.NewSwing(testWeapon())
	for i := 0; i < 100; i++ {
		s.Update(0.016, combat.Input{Held: true})
	}
	require.Greater(t, s.ChargeRatio(), 0.5)

	// Release into a swing and run it to completion.
	sig := s.Update(0.016, combat.Input{Pressed: true})
	require.Equal(t, combat.SignalWindupStarted, sig)
	for i := 0; i < 1000; i++ {
		if s.Update(0.016, combat.Input{}) == combat.SignalReturnedToIdle {
			break
		}
	}
	require.Equal(t, combat.PhaseIdle, s.Phase())
	assert.Equal(t, 0.0, s.ChargeRatio())
}

func TestSwing_HitSetDeduplicatesAndClears(t *testing.T) {
	s := combat.NewSwing(testWeapon())

	assert.False(t, s.HasHit("a"))
	s.MarkHit("a")
	assert.True(t, s.HasHit("a"))
	assert.False(t, s.HasHit("b"))

	// Run one full swing; the hit set resets on return to idle.
	s.Update(0.016, combat.Input{Pressed: true})
	for i := 0; i < 1000; i++ {
		if s.Update(0.016, combat.Input{}) == combat.SignalReturnedToIdle {
			break
		}
	}
	assert.False(t, s.HasHit("a"))
}

func TestSwing_PoseTracksPhase(t *testing.T) {
	w := testWeapon()
	w.Rest.Position.X = 0.35
	w.Windup.Position.X = 0.5
	s := combat.NewSwing(w)

	assert.Equal(t, 0.35, s.Pose().Position.X, "idle pose is the rest keyframe")

	s.Update(0.016, combat.Input{Pressed: true})
	s.Update(0.016, combat.Input{})
	assert.NotEqual(t, 0.35, s.Pose().Position.X, "windup pose departs from rest")
}
