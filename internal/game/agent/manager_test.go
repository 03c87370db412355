package agent_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskfall/duskfall/internal/game/agent"
	"github.com/duskfall/duskfall/internal/game/geom"
)

func testManager() *agent.Manager {
	return agent.NewManager(map[string]*agent.Definition{
		"skeleton": testDefinition(),
	})
}

func TestManagerSpawn(t *testing.T) {
	m := testManager()

	a, err := m.Spawn("skeleton", geom.Vec2{X: 5, Y: 5}, 8)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(a.ID, "skeleton-"))
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)
}

func TestManagerSpawn_UnknownType(t *testing.T) {
	m := testManager()
	_, err := m.Spawn("dragon", geom.Vec2{}, 0)
	assert.ErrorContains(t, err, "dragon")
	assert.Equal(t, 0, m.Len())
}

func TestManagerAll_SpawnOrder(t *testing.T) {
	m := testManager()
	first, err := m.Spawn("skeleton", geom.Vec2{X: 1}, 0)
	require.NoError(t, err)
	second, err := m.Spawn("skeleton", geom.Vec2{X: 2}, 0)
	require.NoError(t, err)
	third, err := m.Spawn("skeleton", geom.Vec2{X: 3}, 0)
	require.NoError(t, err)

	all := m.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID},
		[]string{all[0].ID, all[1].ID, all[2].ID})

	m.Remove(second.ID)
	all = m.All()
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, third.ID, all[1].ID)
}

func TestManagerRemove_UnknownIsNoOp(t *testing.T) {
	m := testManager()
	a, err := m.Spawn("skeleton", geom.Vec2{}, 0)
	require.NoError(t, err)

	m.Remove("skeleton-not-a-real-id")
	assert.Equal(t, 1, m.Len())

	m.Remove(a.ID)
	assert.Equal(t, 0, m.Len())
	_, ok := m.Get(a.ID)
	assert.False(t, ok)
}

func TestManagerDefinition(t *testing.T) {
	m := testManager()

	def, ok := m.Definition("skeleton")
	require.True(t, ok)
	assert.Equal(t, 30.0, def.MaxHealth)

	_, ok = m.Definition("dragon")
	assert.False(t, ok)
}
