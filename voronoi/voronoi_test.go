package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/snakecore/engine"
)

func buildTwoSnakeBoard(t *testing.T) (engine.Board, engine.AgentID, engine.AgentID) {
	t.Helper()
	snap := engine.Snapshot{
		Board: engine.SnapshotBoard{
			Width:  7,
			Height: 7,
			Snakes: []engine.SnapshotSnake{
				{ID: "left", Health: 100, Body: []engine.SnapshotCoord{{X: 1, Y: 3}, {X: 0, Y: 3}, {X: 0, Y: 2}}},
				{ID: "right", Health: 100, Body: []engine.SnapshotCoord{{X: 5, Y: 3}, {X: 6, Y: 3}, {X: 6, Y: 2}}},
			},
		},
	}
	snap.You = snap.Board.Snakes[0]
	b, ids, err := engine.FromSnapshot(snap, engine.ModeStandard)
	require.NoError(t, err)
	return b, ids["left"], ids["right"]
}

func TestFloodFillSplitsEvenBoardDownTheMiddle(t *testing.T) {
	b, left, right := buildTwoSnakeBoard(t)

	cells := FloodFill(b, engine.ModeStandard)
	counts := Count(cells)

	assert.Greater(t, counts[left], 0)
	assert.Greater(t, counts[right], 0)
	assert.InDelta(t, counts[left], counts[right], 8)
}

func TestFloodFillHeadCellOwnedByItsOwnSnake(t *testing.T) {
	b, left, _ := buildTwoSnakeBoard(t)

	cells := FloodFill(b, engine.ModeStandard)
	headCell := cells[b.Head(left)]
	assert.Equal(t, left, headCell.Owner)
	assert.Equal(t, 0, headCell.Distance)
}

func TestShortestPathOwnershipAgreesWithFloodFillOnHeads(t *testing.T) {
	b, left, right := buildTwoSnakeBoard(t)

	flood := FloodFill(b, engine.ModeStandard)
	dijkstra := ShortestPathOwnership(b, engine.ModeStandard)

	assert.Equal(t, flood[b.Head(left)].Owner, dijkstra[b.Head(left)].Owner)
	assert.Equal(t, flood[b.Head(right)].Owner, dijkstra[b.Head(right)].Owner)
}
