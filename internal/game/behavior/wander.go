package behavior

import (
	"github.com/duskfall/duskfall/internal/game/geom"
	"github.com/duskfall/duskfall/internal/game/grid"
	"github.com/duskfall/duskfall/internal/game/path"
	"github.com/duskfall/duskfall/internal/game/rng"
)

// Destination sampling limits. Bounding attempts keeps Planning total even on
// degenerate maps where no cell can host the agent.
const (
	minDestinations     = 2
	maxDestinations     = 3
	maxSampleAttempts   = 20
	minWaitSeconds      = 1.0
	maxWaitSeconds      = 3.0
	replanInsteadOfWait = 0.7
)

type wanderPhase int

const (
	wanderWaiting wanderPhase = iota
	wanderPlanning
	wanderMoving
)

// wanderState is the Wander state machine. It is also embedded by value as
// the Aggressive machine's Wandering sub-state; the nested flag selects the
// simpler fallback the composite machine uses when re-pathing to the next
// destination fails.
type wanderState struct {
	phase        wanderPhase
	timer        float64
	duration     float64
	path         []geom.Vec2
	index        int
	destinations []geom.Vec2
	nested       bool
}

func newWanderState(nested bool) wanderState {
	return wanderState{phase: wanderPlanning, nested: nested}
}

// update advances the wander machine one tick and reports whether the agent
// moved.
func (w *wanderState) update(pos *geom.Vec2, ctx Context) bool {
	switch w.phase {
	case wanderWaiting:
		w.timer += ctx.DT
		if w.timer >= w.duration {
			w.toPlanning()
		}
		return false

	case wanderPlanning:
		w.plan(*pos, ctx)
		return false

	case wanderMoving:
		return w.move(pos, ctx)

	default:
		return false
	}
}

func (w *wanderState) toPlanning() {
	*w = wanderState{phase: wanderPlanning, nested: w.nested}
}

func (w *wanderState) toWaiting(src rng.Source) {
	*w = wanderState{
		phase:    wanderWaiting,
		duration: rng.Range(src, minWaitSeconds, maxWaitSeconds),
		nested:   w.nested,
	}
}

// plan samples 2–3 random in-bounds destinations the agent could stand on,
// then paths to the first. No destinations or no path degrades to Waiting.
func (w *wanderState) plan(pos geom.Vec2, ctx Context) {
	count := minDestinations + ctx.Rand.Intn(maxDestinations-minDestinations+1)
	var destinations []geom.Vec2

	worldW := float64(ctx.Grid.Width) * grid.CellSize
	worldH := float64(ctx.Grid.Height) * grid.CellSize
	for i := 0; i < count; i++ {
		for attempt := 0; attempt < maxSampleAttempts; attempt++ {
			dest := geom.Vec2{
				X: rng.Range(ctx.Rand, 0, worldW),
				Y: rng.Range(ctx.Rand, 0, worldH),
			}
			if ctx.Grid.CanOccupy(dest.X, dest.Y, ctx.Radius) {
				destinations = append(destinations, dest)
				break
			}
		}
	}

	if len(destinations) == 0 {
		w.toWaiting(ctx.Rand)
		return
	}

	waypoints, ok := path.Find(ctx.Grid, pos, destinations[0])
	if !ok {
		w.toWaiting(ctx.Rand)
		return
	}
	w.phase = wanderMoving
	w.path = waypoints
	w.index = 0
	w.destinations = destinations
}

// move walks the current waypoint list, advancing to the next destination
// when the list is exhausted.
func (w *wanderState) move(pos *geom.Vec2, ctx Context) bool {
	if w.index >= len(w.path) {
		w.nextDestination(*pos, ctx)
		return true
	}

	target := w.path[w.index]
	delta := target.Sub(*pos)
	distance := delta.Length()

	if distance <= arrivalThreshold {
		w.index++
		return true
	}

	step := MovementSpeed * ctx.Speed * ctx.DT
	if step > distance {
		step = distance
	}
	next := pos.Add(delta.Normalized().Scale(step))
	if ctx.Grid.CanOccupy(next.X, next.Y, ctx.Radius) {
		*pos = next
	} else {
		// Stale path walked into a wall (e.g. after an external map edit).
		w.toPlanning()
	}
	return true
}

// nextDestination drops the destination just reached and paths to the next,
// or decides what to do once every destination has been visited.
func (w *wanderState) nextDestination(pos geom.Vec2, ctx Context) {
	if len(w.destinations) > 1 {
		w.destinations = w.destinations[1:]
		waypoints, ok := path.Find(ctx.Grid, pos, w.destinations[0])
		if ok {
			w.path = waypoints
			w.index = 0
			return
		}
		if w.nested {
			w.toPlanning()
			return
		}
		if rng.Chance(ctx.Rand, replanInsteadOfWait) {
			w.toPlanning()
		} else {
			w.toWaiting(ctx.Rand)
		}
		return
	}

	// All destinations visited: usually plan a fresh route, sometimes linger.
	if rng.Chance(ctx.Rand, replanInsteadOfWait) {
		w.toPlanning()
	} else {
		w.toWaiting(ctx.Rand)
	}
}
