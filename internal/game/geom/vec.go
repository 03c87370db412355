// Package geom provides the small 2D vector math used by movement,
// pathfinding, and hit detection.
package geom

import "math"

// Vec2 is a 2D point or direction in world units.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

// Distance returns the Euclidean distance from v to o.
func (v Vec2) Distance(o Vec2) float64 { return v.Sub(o).Length() }

// Normalized returns v scaled to unit length, or the zero vector when v is
// too short to normalize safely.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l < 1e-9 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns the vector perpendicular to v (rotated 90° counter-clockwise).
// For a forward direction this is the "right" axis used by lateral hit checks.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }
