package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/snakecore/engine"
)

func coord(x, y int) engine.SnapshotCoord { return engine.SnapshotCoord{X: x, Y: y} }

func TestFindBestMoveAvoidsImmediateDeath(t *testing.T) {
	snap := engine.Snapshot{
		Board: engine.SnapshotBoard{
			Width:  7,
			Height: 7,
			Snakes: []engine.SnapshotSnake{
				{ID: "you", Health: 100, Body: []engine.SnapshotCoord{coord(0, 3), coord(0, 2), coord(0, 1)}},
				{ID: "other", Health: 100, Body: []engine.SnapshotCoord{coord(6, 3), coord(6, 2), coord(6, 1)}},
			},
		},
	}
	snap.You = snap.Board.Snakes[0]
	b, ids, err := engine.FromSnapshot(snap, engine.ModeStandard)
	require.NoError(t, err)
	me := ids["you"]

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	dir, err := FindBestMove(ctx, b, engine.ModeStandard, me, 2, nil)
	require.NoError(t, err)

	// Moving Left runs the snake off the board; every other direction is
	// safe this turn, so the search must not pick Left.
	assert.NotEqual(t, engine.Left, dir)
}

func TestFindBestMoveReturnsQuicklyWhenTrapped(t *testing.T) {
	snap := engine.Snapshot{
		Board: engine.SnapshotBoard{
			Width:  3,
			Height: 3,
			Snakes: []engine.SnapshotSnake{
				{ID: "you", Health: 100, Body: []engine.SnapshotCoord{coord(0, 0), coord(0, 1), coord(1, 1), coord(1, 0)}},
			},
		},
	}
	snap.You = snap.Board.Snakes[0]
	b, ids, err := engine.FromSnapshot(snap, engine.ModeStandard)
	require.NoError(t, err)
	me := ids["you"]

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = FindBestMove(ctx, b, engine.ModeStandard, me, 1, nil)
	require.NoError(t, err)
}

func TestFindBestMoveRejectsDeadAgent(t *testing.T) {
	b := engine.NewBoard(engine.SquareDimensions(5))
	_, err := FindBestMove(context.Background(), b, engine.ModeStandard, 0, 1, nil)
	assert.Error(t, err)
}
