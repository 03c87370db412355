package combat

import (
	"math"

	"github.com/duskfall/duskfall/internal/game/geom"
)

// Candidate is a potential hit target snapshot: where it stands and how big
// it is. ID must be stable across the swing so the per-swing hit set can
// deduplicate.
type Candidate struct {
	ID        string
	Position  geom.Vec2
	Elevation float64
	Radius    float64
}

// DetectHits returns the candidates inside this swing's hit volume, marking
// each so it cannot be struck twice in the same swing. Call it only on the
// frame the swing signals TriggerHit; calling with the hit window closed is
// a harmless no-op.
//
// The volume is anchored at origin (elevation originZ) facing forward:
// a candidate hits when its projection on forward is in [0, range+radius],
// its lateral offset is within half the hitbox width plus its radius, and
// its vertical separation is within the hitbox height.
func (s *Swing) DetectHits(origin geom.Vec2, originZ float64, forward geom.Vec2, candidates []Candidate) []Candidate {
	if !s.IsHitActive() {
		return nil
	}

	fwd := forward.Normalized()
	if fwd == (geom.Vec2{}) {
		return nil
	}
	right := fwd.Perp()
	halfWidth := s.def.HitboxWidth / 2

	var hits []Candidate
	for _, c := range candidates {
		if s.HasHit(c.ID) {
			continue
		}
		to := c.Position.Sub(origin)

		forwardDist := to.Dot(fwd)
		if forwardDist < 0 {
			continue // behind the attacker
		}
		if forwardDist > s.def.Range+c.Radius {
			continue
		}
		if math.Abs(to.Dot(right)) > halfWidth+c.Radius {
			continue
		}
		if math.Abs(c.Elevation-originZ) > s.def.HitboxHeight {
			continue
		}

		s.MarkHit(c.ID)
		hits = append(hits, c)
	}
	return hits
}
