package behavior

import (
	"github.com/duskfall/duskfall/internal/game/geom"
	"github.com/duskfall/duskfall/internal/game/path"
)

// Combat escalation ranges, in world units.
const (
	// DetectionRange is how close the player must be before a wandering
	// agent gives chase.
	DetectionRange = 25.0
	// ChaseRange is how far the player may flee before the agent gives up.
	ChaseRange = 40.0
	// AttackRangeBuffer is hysteresis added to the agent's attack range so
	// small player movements do not bounce the machine between Attacking
	// and Chasing.
	AttackRangeBuffer = 1.5
	// DirectMovementRange is the distance inside which the agent steers
	// straight at the player instead of following a computed path.
	DirectMovementRange = 12.0
	// pathReplanInterval is how often a chasing agent recomputes its path
	// to track a moving target.
	pathReplanInterval = 0.5
)

type aggressivePhase int

const (
	aggWandering aggressivePhase = iota
	aggChasing
	aggAttacking
	aggCooldown
)

// aggressiveState composes the wander machine with combat escalation. The
// Wandering phase owns a full wander sub-state by value.
//
// Cooldown is a reserved phase: it accumulates its timer but nothing
// transitions into or out of it. Post-attack pacing currently lives in the
// melee cooldown gate instead, which also owns the once-per-swing damage
// guarantee hasDealtDamage reserves a slot for.
type aggressiveState struct {
	phase          aggressivePhase
	wander         wanderState
	path           []geom.Vec2
	index          int
	replanTimer    float64
	attackTimer    float64
	hasDealtDamage bool
	cooldownTimer  float64
}

func newAggressiveState() aggressiveState {
	return aggressiveState{phase: aggWandering, wander: newWanderState(true)}
}

func (a *aggressiveState) toWandering() {
	*a = aggressiveState{phase: aggWandering, wander: newWanderState(true)}
}

func (a *aggressiveState) toChasing(waypoints []geom.Vec2) {
	*a = aggressiveState{phase: aggChasing, path: waypoints}
}

func (a *aggressiveState) toAttacking() {
	*a = aggressiveState{phase: aggAttacking}
}

// update advances the aggressive machine one tick.
func (a *aggressiveState) update(pos *geom.Vec2, ctx Context) bool {
	// Without a player position the agent can only wander; it never escalates.
	if ctx.Player == nil {
		if a.phase == aggWandering {
			return a.wander.update(pos, ctx)
		}
		a.toWandering()
		return false
	}
	player := *ctx.Player

	switch a.phase {
	case aggWandering:
		if pos.Distance(player) <= DetectionRange {
			if waypoints, ok := path.Find(ctx.Grid, *pos, player); ok {
				a.toChasing(waypoints)
			}
			// No route to the player: keep wandering next tick.
			return false
		}
		return a.wander.update(pos, ctx)

	case aggChasing:
		return a.chase(pos, player, ctx)

	case aggAttacking:
		a.attackTimer += ctx.DT
		a.reassessAttack(*pos, player, ctx)
		return false

	case aggCooldown:
		a.cooldownTimer += ctx.DT
		return false

	default:
		return false
	}
}

// chase closes distance on the player: straight-line steering when close,
// path following with periodic replans when far.
func (a *aggressiveState) chase(pos *geom.Vec2, player geom.Vec2, ctx Context) bool {
	distance := pos.Distance(player)

	if distance > ChaseRange {
		a.toWandering()
		return false
	}
	if distance <= ctx.Attack.Range {
		a.toAttacking()
		return false
	}

	if distance <= DirectMovementRange {
		a.moveDirect(pos, player, ctx)
		return true
	}

	a.replanTimer += ctx.DT
	if a.replanTimer >= pathReplanInterval {
		a.replanTimer = 0
		if waypoints, ok := path.Find(ctx.Grid, *pos, player); ok {
			a.path = waypoints
			a.index = 0
		}
	}

	if a.index >= len(a.path) {
		waypoints, ok := path.Find(ctx.Grid, *pos, player)
		if !ok {
			a.toWandering()
			return false
		}
		a.path = waypoints
		a.index = 0
		return true
	}

	target := a.path[a.index]
	delta := target.Sub(*pos)
	distToWaypoint := delta.Length()
	if distToWaypoint <= arrivalThreshold {
		a.index++
		return true
	}
	step := MovementSpeed * ctx.Speed * ctx.DT
	if step > distToWaypoint {
		step = distToWaypoint
	}
	next := pos.Add(delta.Normalized().Scale(step))
	if ctx.Grid.CanOccupy(next.X, next.Y, ctx.Radius) {
		*pos = next
	}
	return true
}

// moveDirect steps straight toward the player, falling back to a fresh path
// when the direct step would enter a wall.
func (a *aggressiveState) moveDirect(pos *geom.Vec2, player geom.Vec2, ctx Context) {
	delta := player.Sub(*pos)
	distance := delta.Length()
	if distance <= 0.1 {
		return
	}
	step := MovementSpeed * ctx.Speed * ctx.DT
	if step > distance {
		step = distance
	}
	next := pos.Add(delta.Normalized().Scale(step))
	if ctx.Grid.CanOccupy(next.X, next.Y, ctx.Radius) {
		*pos = next
		return
	}
	if waypoints, ok := path.Find(ctx.Grid, *pos, player); ok {
		a.path = waypoints
		a.index = 0
		a.replanTimer = 0
	}
}

// reassessAttack decides, once the agent's own swing has finished, whether to
// keep attacking, resume the chase, or give up. The buffered range keeps the
// agent committed while the player hovers near the edge of reach.
func (a *aggressiveState) reassessAttack(pos, player geom.Vec2, ctx Context) {
	if !ctx.Attack.PhaseIdle {
		return
	}
	buffered := ctx.Attack.Range + AttackRangeBuffer
	if pos.Distance(player) <= buffered {
		// Still in reach: stay Attacking; the melee system retriggers the
		// next swing once its cooldown elapses.
		return
	}
	if pos.Distance(player) <= ChaseRange {
		if waypoints, ok := path.Find(ctx.Grid, pos, player); ok {
			a.toChasing(waypoints)
		}
		return
	}
	a.toWandering()
}
