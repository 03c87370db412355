package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/duskfall/duskfall/internal/game/combat"
)

func posedWeapon() *combat.WeaponDefinition {
	w := testWeapon()
	w.Rest = combat.AnimationKeyframe{Position: combat.KeyframePosition{X: 0.35, Y: -0.3, Z: -0.6}}
	w.Windup = combat.AnimationKeyframe{Position: combat.KeyframePosition{X: 0.5, Y: -0.1, Z: -0.55}, RotationZ: -0.9}
	w.Swing = combat.AnimationKeyframe{Position: combat.KeyframePosition{X: -0.25, Y: -0.35, Z: -0.5}, RotationZ: 1.2}
	w.Thrust = combat.AnimationKeyframe{Position: combat.KeyframePosition{X: -0.1, Y: -0.3, Z: -0.8}, RotationZ: 0.6}
	return w
}

func TestPoseAt_StartIsRest(t *testing.T) {
	w := posedWeapon()
	p := w.PoseAt(0)
	assert.Equal(t, w.Rest.Position.X, p.Position.X)
	assert.Equal(t, w.Rest.RotationZ, p.RotationZ)
}

func TestPoseAt_EndReturnsToRest(t *testing.T) {
	w := posedWeapon()
	p := w.PoseAt(1)
	assert.InDelta(t, w.Rest.Position.X, p.Position.X, 1e-9)
	assert.InDelta(t, w.Rest.RotationZ, p.RotationZ, 1e-9)
}

func TestPoseAt_SegmentTargets(t *testing.T) {
	w := posedWeapon()

	// Just below each boundary the pose is approaching the segment's target.
	nearWindup := w.PoseAt(0.1499)
	assert.InDelta(t, w.Windup.Position.X, nearWindup.Position.X, 0.01)

	nearSwing := w.PoseAt(0.4999)
	assert.InDelta(t, w.Swing.Position.X, nearSwing.Position.X, 0.01)

	nearThrust := w.PoseAt(0.7999)
	assert.InDelta(t, w.Thrust.Position.X, nearThrust.Position.X, 0.01)
}

func TestProperty_PoseStaysWithinKeyframeBounds(t *testing.T) {
	w := posedWeapon()
	minX, maxX := -0.25, 0.5 // extremes across the four keyframes
	rapid.Check(t, func(t *rapid.T) {
		p := rapid.Float64Range(0, 1).Draw(t, "p")
		pose := w.PoseAt(p)
		// Eased interpolation never overshoots its endpoints.
		if pose.Position.X < minX-1e-9 || pose.Position.X > maxX+1e-9 {
			t.Fatalf("PoseAt(%g).Position.X = %g outside [%g, %g]", p, pose.Position.X, minX, maxX)
		}
	})
}
