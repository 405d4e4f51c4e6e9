package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/pipenet/pkg/config"
	"github.com/dd0wney/pipenet/pkg/grid"
	"github.com/dd0wney/pipenet/pkg/pipenet"
)

const scenarioYAML = `
scenario:
  segments:
    a: {x: 0, y: 0, facing: east}
    b: {x: 1, y: 0, facing: east}
    c: {x: 2, y: 0, facing: west}
    d: {x: 2, y: 0, facing: east}
    e: {x: 7, y: 7, facing: north}
  anchored: [a, b, c, d]
  steps:
    - {op: unanchor, segment: b}
    - {op: rotate, segment: e}
    - {op: move, segment: e, to: {x: 3, y: 0}}
    - {op: anchor, segment: e}
    - {op: unanchor, segment: b}
`

func TestRunScenario(t *testing.T) {
	cfg, err := config.Parse([]byte(scenarioYAML))
	require.NoError(t, err)

	c, _ := setupController(t)
	res, err := c.RunScenario(cfg.Scenario)
	require.NoError(t, err)

	require.Len(t, res.IDs, 5)
	// d collides with c; the second unanchor of b finds it loose.
	require.Len(t, res.Rejected, 2)
	assert.Contains(t, res.Rejected[0].Error(), `anchor "d"`)
	assert.True(t, pipenet.IsCollision(res.Rejected[0]))
	assert.Contains(t, res.Rejected[1].Error(), `step 4: unanchor "b"`)
	assert.True(t, pipenet.IsInvalidState(res.Rejected[1]))

	e, err := c.Segment(res.IDs["e"])
	require.NoError(t, err)
	assert.Equal(t, grid.East, e.Facing)
	assert.Equal(t, grid.Pt(3, 0), e.Position)
	assert.True(t, e.Anchored)

	cv, _ := c.Segment(res.IDs["c"])
	assert.Equal(t, cv.Network, e.Network)

	snap := c.Snapshot()
	assert.Len(t, snap.Networks, 2)
	assert.NoError(t, c.CheckInvariants())
}

func TestRunScenario_Invalid(t *testing.T) {
	c, _ := setupController(t)
	_, err := c.RunScenario(&config.Scenario{
		Anchored: []string{"ghost"},
	})
	assert.Error(t, err)
}
