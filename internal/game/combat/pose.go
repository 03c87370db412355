package combat

import "math"

// easeOutQuad decelerates toward the end of the interval.
func easeOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// easeInOutCubic accelerates then decelerates.
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Pose is the interpolated weapon sprite placement for the current animation
// instant. It is pure presentation data; the renderer consumes it.
type Pose struct {
	Position  KeyframePosition
	RotationZ float64
	RotationY float64
}

func lerpKeyframe(a, b AnimationKeyframe, t float64) Pose {
	return Pose{
		Position: KeyframePosition{
			X: a.Position.X + (b.Position.X-a.Position.X)*t,
			Y: a.Position.Y + (b.Position.Y-a.Position.Y)*t,
			Z: a.Position.Z + (b.Position.Z-a.Position.Z)*t,
		},
		RotationZ: a.RotationZ + (b.RotationZ-a.RotationZ)*t,
		RotationY: a.RotationY + (b.RotationY-a.RotationY)*t,
	}
}

// PoseAt samples the weapon's keyframe track at overall progress p (0..1):
// rest→windup→swing→thrust→rest, eased per segment.
func (w *WeaponDefinition) PoseAt(p float64) Pose {
	switch {
	case p < windupEnd:
		t := easeOutQuad(p / windupEnd)
		return lerpKeyframe(w.Rest, w.Windup, t)
	case p < swingEnd:
		t := easeInOutCubic((p - windupEnd) / (swingEnd - windupEnd))
		return lerpKeyframe(w.Windup, w.Swing, t)
	case p < thrustEnd:
		t := easeInOutCubic((p - swingEnd) / (thrustEnd - swingEnd))
		return lerpKeyframe(w.Swing, w.Thrust, t)
	default:
		t := easeOutQuad((p - thrustEnd) / (1 - thrustEnd))
		return lerpKeyframe(w.Thrust, w.Rest, t)
	}
}
