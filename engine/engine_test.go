package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coord(x, y int) SnapshotCoord { return SnapshotCoord{X: x, Y: y} }

func snapshotBoard(width, height int, snakes []SnapshotSnake, food []SnapshotCoord) Snapshot {
	return Snapshot{
		Board: SnapshotBoard{
			Width:  width,
			Height: height,
			Snakes: snakes,
			Food:   food,
		},
		You: snakes[0],
	}
}

func TestFromSnapshotTripleStackSpawn(t *testing.T) {
	snap := snapshotBoard(11, 11, []SnapshotSnake{
		{ID: "you", Health: 100, Body: []SnapshotCoord{coord(5, 5), coord(5, 5), coord(5, 5)}},
	}, nil)

	b, ids, err := FromSnapshot(snap, ModeStandard)
	require.NoError(t, err)

	you := ids["you"]
	assert.Equal(t, AgentID(0), you)
	assert.Equal(t, 3, b.Length(you))
	assert.True(t, b.IsAlive(you))

	idx := b.Dimensions.IndexFromPosition(Position{X: 5, Y: 5})
	assert.Equal(t, CellTripleStacked, b.Cells[idx].Kind)
	assert.True(t, b.AssertConsistency())
}

func TestFromSnapshotWrongModeRejected(t *testing.T) {
	snap := snapshotBoard(11, 11, []SnapshotSnake{
		{ID: "you", Health: 100, Body: []SnapshotCoord{coord(5, 5), coord(5, 5), coord(5, 5)}},
	}, nil)
	snap.Game.Ruleset.Name = "wrapped"

	_, _, err := FromSnapshot(snap, ModeStandard)
	assert.ErrorIs(t, err, ErrWrongMode)

	_, _, err = FromSnapshot(snap, ModeWrapped)
	assert.NoError(t, err)
}

func TestFromSnapshotMalformedBodyRejected(t *testing.T) {
	snap := snapshotBoard(11, 11, []SnapshotSnake{
		{ID: "you", Health: 100, Body: []SnapshotCoord{coord(5, 5), coord(5, 5), coord(4, 5)}},
	}, nil)

	_, _, err := FromSnapshot(snap, ModeStandard)
	assert.ErrorIs(t, err, ErrMalformedBody)
}

func TestStarvationKillsAgent(t *testing.T) {
	snap := snapshotBoard(11, 11, []SnapshotSnake{
		{ID: "you", Health: 1, Body: []SnapshotCoord{coord(5, 5), coord(5, 4), coord(5, 3)}},
	}, nil)
	b, ids, err := FromSnapshot(snap, ModeStandard)
	require.NoError(t, err)
	you := ids["you"]

	table := GenerateState(&b, ModeStandard, []AgentID{you})
	nb := EvaluateMovesWithState(b, map[AgentID]Direction{you: Up}, table)

	assert.False(t, nb.IsAlive(you))
}

func TestFoodGrowthIncreasesLengthAndRestoresHealth(t *testing.T) {
	snap := snapshotBoard(11, 11, []SnapshotSnake{
		{ID: "you", Health: 50, Body: []SnapshotCoord{coord(5, 5), coord(5, 4), coord(5, 3)}},
	}, []SnapshotCoord{coord(5, 6)})
	b, ids, err := FromSnapshot(snap, ModeStandard)
	require.NoError(t, err)
	you := ids["you"]

	table := GenerateState(&b, ModeStandard, []AgentID{you})
	nb := EvaluateMovesWithState(b, map[AgentID]Direction{you: Up}, table)

	require.True(t, nb.IsAlive(you))
	assert.Equal(t, 4, nb.Length(you))
	assert.Equal(t, StartingHealth, nb.Health(you))
	assert.True(t, nb.AssertConsistency())
}

func TestHeadToHeadUnequalLengthLongerSurvives(t *testing.T) {
	snap := snapshotBoard(11, 11, []SnapshotSnake{
		{ID: "you", Health: 100, Body: []SnapshotCoord{coord(4, 5), coord(3, 5), coord(2, 5)}},
		{ID: "rival", Health: 100, Body: []SnapshotCoord{coord(6, 5), coord(7, 5), coord(8, 5), coord(9, 5)}},
	}, nil)
	b, ids, err := FromSnapshot(snap, ModeStandard)
	require.NoError(t, err)
	you, rival := ids["you"], ids["rival"]

	table := GenerateState(&b, ModeStandard, []AgentID{you, rival})
	moves := map[AgentID]Direction{you: Right, rival: Left}
	nb := EvaluateMovesWithState(b, moves, table)

	assert.False(t, nb.IsAlive(you))
	assert.True(t, nb.IsAlive(rival))
}

func TestHeadToHeadEqualLengthBothDie(t *testing.T) {
	snap := snapshotBoard(11, 11, []SnapshotSnake{
		{ID: "you", Health: 100, Body: []SnapshotCoord{coord(4, 5), coord(3, 5), coord(2, 5)}},
		{ID: "rival", Health: 100, Body: []SnapshotCoord{coord(6, 5), coord(7, 5), coord(8, 5)}},
	}, nil)
	b, ids, err := FromSnapshot(snap, ModeStandard)
	require.NoError(t, err)
	you, rival := ids["you"], ids["rival"]

	table := GenerateState(&b, ModeStandard, []AgentID{you, rival})
	moves := map[AgentID]Direction{you: Right, rival: Left}
	nb := EvaluateMovesWithState(b, moves, table)

	assert.False(t, nb.IsAlive(you))
	assert.False(t, nb.IsAlive(rival))
}

func TestSurvivorLandingOnLocallyDeadAgentsVacatedBodySurvives(t *testing.T) {
	// "you" starves this turn regardless of direction (health 1, no food in
	// reach) and must be killed and removed before "rival"'s body-collision
	// check runs. rival's chosen move lands its new head on (5,3), which is
	// "you"'s tail cell: since the tail fully vacates (occupancy 1) and
	// "you" is dead from GenerateState's own result, that cell must already
	// be empty by the time rival's landing cell is inspected.
	snap := snapshotBoard(11, 11, []SnapshotSnake{
		{ID: "you", Health: 1, Body: []SnapshotCoord{coord(5, 5), coord(5, 4), coord(5, 3)}},
		{ID: "rival", Health: 100, Body: []SnapshotCoord{coord(6, 3), coord(7, 3), coord(8, 3)}},
	}, nil)
	b, ids, err := FromSnapshot(snap, ModeStandard)
	require.NoError(t, err)
	you, rival := ids["you"], ids["rival"]

	table := GenerateState(&b, ModeStandard, []AgentID{you, rival})
	moves := map[AgentID]Direction{you: Up, rival: Left}
	nb := EvaluateMovesWithState(b, moves, table)

	assert.False(t, nb.IsAlive(you))
	assert.True(t, nb.IsAlive(rival))
	assert.True(t, nb.AssertConsistency())
}

func TestWrappedModeMoveWrapsAroundEdge(t *testing.T) {
	dim := SquareDimensions(11)
	b := NewBoard(dim)
	headIdx := dim.IndexFromPosition(Position{X: 0, Y: 5})
	tailIdx := dim.IndexFromPosition(Position{X: 1, Y: 5})
	b.Cells[headIdx].MakeHead(0, tailIdx)
	b.Cells[tailIdx].MakeBody(0, headIdx)
	b.Healths[0] = 100
	b.Lengths[0] = 2
	b.Heads[0] = headIdx

	table := GenerateState(&b, ModeWrapped, []AgentID{0})
	nb := EvaluateMovesWithState(b, map[AgentID]Direction{0: Left}, table)

	require.True(t, nb.IsAlive(0))
	wrappedHeadPos := nb.Dimensions.PositionFromIndex(nb.Heads[0])
	assert.Equal(t, Position{X: 10, Y: 5}, wrappedHeadPos)
}

func TestStandardModeMoveOffBoardKills(t *testing.T) {
	dim := SquareDimensions(11)
	b := NewBoard(dim)
	headIdx := dim.IndexFromPosition(Position{X: 0, Y: 5})
	tailIdx := dim.IndexFromPosition(Position{X: 1, Y: 5})
	b.Cells[headIdx].MakeHead(0, tailIdx)
	b.Cells[tailIdx].MakeBody(0, headIdx)
	b.Healths[0] = 100
	b.Lengths[0] = 2
	b.Heads[0] = headIdx

	table := GenerateState(&b, ModeStandard, []AgentID{0})
	nb := EvaluateMovesWithState(b, map[AgentID]Direction{0: Left}, table)

	assert.False(t, nb.IsAlive(0))
}

func TestTailChaseIsLegal(t *testing.T) {
	// A snake whose head moves into the cell its own tail is vacating
	// must survive: the tail-chase case.
	snap := snapshotBoard(11, 11, []SnapshotSnake{
		{ID: "you", Health: 100, Body: []SnapshotCoord{
			coord(5, 5), coord(5, 6), coord(6, 6), coord(6, 5),
		}},
	}, nil)
	b, ids, err := FromSnapshot(snap, ModeStandard)
	require.NoError(t, err)
	you := ids["you"]
	require.True(t, b.AssertConsistency())

	table := GenerateState(&b, ModeStandard, []AgentID{you})
	nb := EvaluateMovesWithState(b, map[AgentID]Direction{you: Right}, table)

	assert.True(t, nb.IsAlive(you))
}

func TestNeckSuicideIsFatal(t *testing.T) {
	snap := snapshotBoard(11, 11, []SnapshotSnake{
		{ID: "you", Health: 100, Body: []SnapshotCoord{coord(5, 5), coord(5, 4), coord(5, 3)}},
	}, nil)
	b, ids, err := FromSnapshot(snap, ModeStandard)
	require.NoError(t, err)
	you := ids["you"]

	table := GenerateState(&b, ModeStandard, []AgentID{you})
	out := table.Lookup(you, Down)
	assert.True(t, out.Dead)
	assert.Equal(t, DeathNeck, out.Reason)
}

func TestHazardDamageAppliedOnTopOfMoveCost(t *testing.T) {
	snap := snapshotBoard(11, 11, []SnapshotSnake{
		{ID: "you", Health: 100, Body: []SnapshotCoord{coord(5, 5), coord(5, 4), coord(5, 3)}},
	}, nil)
	b, ids, err := FromSnapshot(snap, ModeStandard)
	require.NoError(t, err)
	you := ids["you"]
	b.HazardDamage = 15

	hazardIdx := b.Dimensions.IndexFromPosition(Position{X: 5, Y: 6})
	b.SetHazard(hazardIdx)

	table := GenerateState(&b, ModeStandard, []AgentID{you})
	nb := EvaluateMovesWithState(b, map[AgentID]Direction{you: Up}, table)

	require.True(t, nb.IsAlive(you))
	assert.Equal(t, 100-1-15, nb.Health(you))
}

func TestPackAsMapRoundTrip(t *testing.T) {
	snap := snapshotBoard(11, 11, []SnapshotSnake{
		{ID: "you", Health: 77, Body: []SnapshotCoord{coord(5, 5), coord(5, 4), coord(5, 3)}},
	}, []SnapshotCoord{coord(1, 1)})
	b, _, err := FromSnapshot(snap, ModeStandard)
	require.NoError(t, err)

	packed := b.PackAsMap()
	restored, err := FromPackedMap(packed)
	require.NoError(t, err)

	assert.Equal(t, b.Healths, restored.Healths)
	assert.Equal(t, b.Lengths, restored.Lengths)
	assert.Equal(t, b.Heads, restored.Heads)
}
