package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskfall/duskfall/internal/game/agent"
	"github.com/duskfall/duskfall/internal/game/combat"
	"github.com/duskfall/duskfall/internal/game/geom"
	"github.com/duskfall/duskfall/internal/game/grid"
	"github.com/duskfall/duskfall/internal/game/sim"
	"github.com/duskfall/duskfall/internal/game/status"
)

// fixedSource pins Float64 so criticals can be forced or forbidden.
type fixedSource struct {
	f float64
}

func (s fixedSource) Intn(n int) int   { return 0 }
func (s fixedSource) Float64() float64 { return s.f }

func simWeapon() *combat.WeaponDefinition {
	return &combat.WeaponDefinition{
		AttackPower:   10,
		SwingDuration: 0.4,
		MaxChargeTime: 1.5,
		ChargeBonus:   0.5,
		Range:         6.0,
		HitboxWidth:   4.0,
		HitboxHeight:  4.0,
		DamageType:    combat.DamageTypePhysical,
	}
}

func simDefs() map[string]*agent.Definition {
	return map[string]*agent.Definition{
		"dummy": {
			Sprite:         "dummy",
			Scale:          1.5,
			MaxHealth:      25,
			Radius:         1.2,
			Speed:          1.0,
			Behavior:       "stand",
			AttackRange:    4.0,
			AttackCooldown: 1.2,
			OnHit:          "on_dummy_hit",
			OnDeath:        "on_dummy_death",
		},
		"skeleton": {
			Sprite:         "skeleton",
			Scale:          1.5,
			MaxHealth:      30,
			Radius:         1.2,
			Speed:          1.0,
			Behavior:       "aggressive",
			AttackDamage:   8,
			AttackRange:    4.0,
			AttackCooldown: 0.5,
		},
	}
}

// newTestWorld builds an open 10x10 world with a player at (40,40) facing +X,
// criticals forbidden.
func newTestWorld(t *testing.T) *sim.World {
	t.Helper()
	w := sim.NewWorld(grid.New(10, 10), simDefs(), fixedSource{f: 0.99})
	w.Player = &sim.Player{
		Position:  geom.Vec2{X: 40, Y: 40},
		Facing:    geom.Vec2{X: 1, Y: 0},
		Health:    100,
		MaxHealth: 100,
		Swing:     combat.NewSwing(simWeapon()),
	}
	return w
}

func eventsOfKind(events []sim.Event, kind sim.EventKind) []sim.Event {
	var out []sim.Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func TestTick_PlayerSwingHitsAgent(t *testing.T) {
	w := newTestWorld(t)
	dummy, err := w.Agents.Spawn("dummy", geom.Vec2{X: 43, Y: 40}, 0)
	require.NoError(t, err)

	const dt = 0.02

	events := w.Tick(dt, sim.Input{AttackPressed: true})
	require.Len(t, eventsOfKind(events, sim.EventPlayerSwing), 1)

	var hits []sim.Event
	for i := 0; i < 40; i++ {
		events = w.Tick(dt, sim.Input{})
		hits = append(hits, eventsOfKind(events, sim.EventAgentHit)...)
	}

	require.Len(t, hits, 1, "one swing strikes a target exactly once")
	hit := hits[0]
	assert.Equal(t, dummy.ID, hit.AgentID)
	assert.Equal(t, "dummy", hit.AgentType)
	assert.Equal(t, 10, hit.Damage)
	assert.False(t, hit.Critical)
	assert.Equal(t, combat.DamageTypePhysical, hit.DamageType)
	assert.Equal(t, 15.0, hit.Health)
	assert.Equal(t, 15.0, dummy.Health)
}

func TestTick_HitStunsTarget(t *testing.T) {
	w := newTestWorld(t)
	dummy, err := w.Agents.Spawn("dummy", geom.Vec2{X: 43, Y: 40}, 0)
	require.NoError(t, err)

	const dt = 0.02
	events := w.Tick(dt, sim.Input{AttackPressed: true})
	for i := 0; i < 40 && len(eventsOfKind(events, sim.EventAgentHit)) == 0; i++ {
		events = w.Tick(dt, sim.Input{})
	}
	require.NotEmpty(t, eventsOfKind(events, sim.EventAgentHit))
	assert.True(t, dummy.IsStunned())

	// The stun wears off over subsequent ticks.
	for i := 0; i < 40; i++ {
		w.Tick(dt, sim.Input{})
	}
	assert.False(t, dummy.IsStunned())
}

func TestTick_DeathFiresHookExactlyOnce(t *testing.T) {
	w := newTestWorld(t)
	dummy, err := w.Agents.Spawn("dummy", geom.Vec2{X: 43, Y: 40}, 0)
	require.NoError(t, err)

	var deathHooks, hitHooks []string
	w.OnDeath = func(hook string, a *agent.Agent) {
		deathHooks = append(deathHooks, hook)
		assert.Equal(t, dummy.ID, a.ID)
	}
	w.OnHit = func(hook string, a *agent.Agent) {
		hitHooks = append(hitHooks, hook)
	}

	// Swing repeatedly until the dummy is gone: 25 health, 10 per hit.
	const dt = 0.02
	died := 0
	for i := 0; i < 400 && w.Agents.Len() > 0; i++ {
		in := sim.Input{AttackPressed: w.Player.Swing.Phase() == combat.PhaseIdle}
		events := w.Tick(dt, in)
		died += len(eventsOfKind(events, sim.EventAgentDied))
	}

	assert.Equal(t, 0, w.Agents.Len())
	assert.Equal(t, 1, died)
	assert.Equal(t, []string{"on_dummy_death"}, deathHooks)
	assert.Equal(t, []string{"on_dummy_hit", "on_dummy_hit", "on_dummy_hit"}, hitHooks)

	// Nothing left to kill: later ticks stay quiet.
	events := w.Tick(dt, sim.Input{})
	assert.Empty(t, eventsOfKind(events, sim.EventAgentDied))
}

func TestTick_AgentMeleeHitsPlayer(t *testing.T) {
	w := newTestWorld(t)
	skeleton, err := w.Agents.Spawn("skeleton", geom.Vec2{X: 43, Y: 40}, 0)
	require.NoError(t, err)

	const dt = 0.05
	swingSeen := false
	var hit *sim.Event
	for i := 0; i < 60 && hit == nil; i++ {
		events := w.Tick(dt, sim.Input{})
		if len(eventsOfKind(events, sim.EventAgentSwing)) > 0 {
			swingSeen = true
		}
		if hits := eventsOfKind(events, sim.EventPlayerHit); len(hits) > 0 {
			require.True(t, swingSeen, "a strike is always preceded by its windup")
			hit = &hits[0]
		}
	}

	require.NotNil(t, hit)
	assert.Equal(t, skeleton.ID, hit.AgentID)
	assert.Equal(t, 8, hit.Damage)
	assert.Equal(t, 92.0, hit.Health)
	assert.Equal(t, 92.0, w.Player.Health)
}

func TestTick_StrikeMissesWhenPlayerLeftRange(t *testing.T) {
	w := newTestWorld(t)
	_, err := w.Agents.Spawn("skeleton", geom.Vec2{X: 43, Y: 40}, 0)
	require.NoError(t, err)

	const dt = 0.05
	for i := 0; i < 30; i++ {
		events := w.Tick(dt, sim.Input{})
		if len(eventsOfKind(events, sim.EventAgentSwing)) > 0 {
			// Step out during the windup; the strike must whiff.
			w.Player.Position = geom.Vec2{X: 70, Y: 40}
		}
		assert.Empty(t, eventsOfKind(events, sim.EventPlayerHit))
	}
	assert.Equal(t, 100.0, w.Player.Health)
}

func TestTick_NilPlayer(t *testing.T) {
	w := sim.NewWorld(grid.New(10, 10), simDefs(), fixedSource{f: 0.99})
	_, err := w.Agents.Spawn("skeleton", geom.Vec2{X: 43, Y: 40}, 0)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		events := w.Tick(0.05, sim.Input{AttackPressed: true})
		assert.Empty(t, eventsOfKind(events, sim.EventAgentSwing))
		assert.Empty(t, eventsOfKind(events, sim.EventPlayerHit))
		assert.Empty(t, eventsOfKind(events, sim.EventPlayerSwing))
	}
}

func TestTick_StunnedAgentIsFrozen(t *testing.T) {
	w := newTestWorld(t)
	skeleton, err := w.Agents.Spawn("skeleton", geom.Vec2{X: 60, Y: 40}, 0)
	require.NoError(t, err)
	skeleton.StunTimer = 0.5

	const dt = 0.05
	start := skeleton.Position
	for i := 0; i < 9; i++ {
		events := w.Tick(dt, sim.Input{})
		assert.Equal(t, start, skeleton.Position)
		assert.False(t, skeleton.IsMoving)
		assert.Empty(t, eventsOfKind(events, sim.EventAgentSwing))
	}

	// Stun over: the chase toward the player resumes.
	for i := 0; i < 40; i++ {
		w.Tick(dt, sim.Input{})
	}
	assert.NotEqual(t, start, skeleton.Position)
}

func TestTick_StatusDamageCanKill(t *testing.T) {
	w := newTestWorld(t)
	dummy, err := w.Agents.Spawn("dummy", geom.Vec2{X: 43, Y: 40}, 0)
	require.NoError(t, err)

	deaths := 0
	w.OnDeath = func(hook string, a *agent.Agent) { deaths++ }

	dummy.Effects.Apply(status.Effect{
		Type:          "burning",
		Duration:      0.5,
		TickInterval:  0.1,
		DamagePerTick: 30,
	})

	events := w.Tick(0.1, sim.Input{})
	pulses := eventsOfKind(events, sim.EventStatusDamage)
	require.Len(t, pulses, 1)
	assert.Equal(t, 30, pulses[0].Damage)
	assert.Equal(t, status.EffectType("burning"), pulses[0].Effect)

	require.Len(t, eventsOfKind(events, sim.EventAgentDied), 1,
		"a lethal pulse despawns the agent the same tick")
	assert.Equal(t, 1, deaths)
	assert.Equal(t, 0, w.Agents.Len())
}

func TestTick_StatusExpiry(t *testing.T) {
	w := newTestWorld(t)
	dummy, err := w.Agents.Spawn("dummy", geom.Vec2{X: 43, Y: 40}, 0)
	require.NoError(t, err)
	dummy.Effects.Apply(status.Frozen(0.15))

	events := w.Tick(0.1, sim.Input{})
	assert.Empty(t, eventsOfKind(events, sim.EventStatusExpired))

	events = w.Tick(0.1, sim.Input{})
	expired := eventsOfKind(events, sim.EventStatusExpired)
	require.Len(t, expired, 1)
	assert.Equal(t, status.TypeFrozen, expired[0].Effect)
	assert.False(t, dummy.Effects.Has(status.TypeFrozen))
}

func TestPopulateFromMap(t *testing.T) {
	w := sim.NewWorld(grid.New(10, 10), simDefs(), fixedSource{f: 0.99})

	err := w.PopulateFromMap(&grid.MapFile{
		Agents: []grid.SpawnPoint{
			{X: 20, Y: 20, Type: "dummy"},
			{X: 60, Y: 60, Type: "skeleton"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, w.Agents.Len())
}

func TestPopulateFromMap_UnknownType(t *testing.T) {
	w := sim.NewWorld(grid.New(10, 10), simDefs(), fixedSource{f: 0.99})
	err := w.PopulateFromMap(&grid.MapFile{
		Agents: []grid.SpawnPoint{{X: 20, Y: 20, Type: "dragon"}},
	})
	assert.ErrorContains(t, err, "dragon")
	assert.Equal(t, 0, w.Agents.Len())
}
