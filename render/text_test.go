package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/snakecore/engine"
)

func TestTextRendersHeadFoodAndHazard(t *testing.T) {
	snap := engine.Snapshot{
		Board: engine.SnapshotBoard{
			Width:  5,
			Height: 5,
			Food:   []engine.SnapshotCoord{{X: 2, Y: 2}},
			Snakes: []engine.SnapshotSnake{
				{ID: "you", Health: 100, Body: []engine.SnapshotCoord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}},
			},
		},
	}
	snap.You = snap.Board.Snakes[0]
	b, _, err := engine.FromSnapshot(snap, engine.ModeStandard)
	require.NoError(t, err)
	b.SetHazard(b.Dimensions.IndexFromPosition(engine.Position{X: 3, Y: 2}))

	out := Text(b)
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "♥")
	assert.Contains(t, out, "H")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestTextIndentAppliesToEveryLine(t *testing.T) {
	b := engine.NewBoard(engine.SquareDimensions(3))
	out := Text(b, WithIndent("  "))
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, "  "))
	}
}
