// Package render draws an engine.Board as either a text grid for logs
// and debugging, or as a replayable GIF for a finished game, matching
// what the teacher's visuals.go and renderer.go produce.
package render

import (
	"strings"
	"unicode"

	"github.com/brensch/snakecore/engine"
)

// textOptions holds the customizable parameters for Text, mirroring
// boardOptions.
type textOptions struct {
	indent           string
	newlineCharacter string
	move             engine.Direction
	moveAgent        engine.AgentID
	hasMove          bool
}

// Option configures Text.
type Option func(*textOptions)

// WithIndent sets the per-line prefix.
func WithIndent(indent string) Option {
	return func(o *textOptions) { o.indent = indent }
}

// WithNewlineCharacter sets the line terminator (e.g. "\n" or "<br/>" for
// an HTML-embedded render).
func WithNewlineCharacter(c string) Option {
	return func(o *textOptions) { o.newlineCharacter = c }
}

// WithMove overlays the arrow a given agent's candidate move would land
// on, in addition to the board's current state.
func WithMove(d engine.Direction, agent engine.AgentID) Option {
	return func(o *textOptions) {
		o.move = d
		o.moveAgent = agent
		o.hasMove = true
	}
}

var arrows = map[engine.Direction]rune{
	engine.Up:    '^',
	engine.Down:  'v',
	engine.Left:  '<',
	engine.Right: '>',
}

// Text renders board as a bordered grid: 'x' walls, '.' empty cells,
// '♥' food, 'H' hazards, and a per-agent letter (uppercase at the head,
// lowercase along the body), grounded on visualizeBoard.
func Text(board engine.Board, opts ...Option) string {
	o := &textOptions{indent: "", newlineCharacter: "\n"}
	for _, opt := range opts {
		opt(o)
	}

	width := board.Width()
	height := board.Height()
	if width <= 0 || height <= 0 {
		return o.indent + "invalid board dimensions"
	}

	var sb strings.Builder
	if o.hasMove {
		sb.WriteString(o.indent)
		sb.WriteRune(rune('a' + int(o.moveAgent)))
		if a, ok := arrows[o.move]; ok {
			sb.WriteRune(a)
		}
		sb.WriteString(o.newlineCharacter)
	}

	extH, extW := height+2, width+2
	grid := make([][]rune, extH)
	for i := range grid {
		grid[i] = make([]rune, extW)
		for j := range grid[i] {
			if i == 0 || i == extH-1 || j == 0 || j == extW-1 {
				grid[i][j] = 'x'
			} else {
				grid[i][j] = '.'
			}
		}
	}

	adjustY := func(y int) int {
		if y < 0 || y >= height {
			return -1
		}
		return extH - 1 - (y + 1)
	}
	place := func(x, y int, r rune) {
		ay := adjustY(y)
		if ay != -1 && x+1 < extW {
			grid[ay][x+1] = r
		}
	}

	for _, idx := range board.FoodCells() {
		pos := board.Dimensions.PositionFromIndex(idx)
		place(pos.X, pos.Y, '♥')
	}
	for i := 0; i < board.Dimensions.Cells(); i++ {
		if board.IsHazard(engine.CellIndex(i)) {
			pos := board.Dimensions.PositionFromIndex(engine.CellIndex(i))
			place(pos.X, pos.Y, 'H')
		}
	}

	for _, id := range board.AgentIDs() {
		letter := rune('a' + int(id))
		if letter > 'z' {
			letter = '?'
		}
		headPos := board.Dimensions.PositionFromIndex(board.Head(id))
		place(headPos.X, headPos.Y, unicode.ToUpper(letter))
		for _, idx := range board.Body(id) {
			if idx == board.Head(id) {
				continue
			}
			pos := board.Dimensions.PositionFromIndex(idx)
			place(pos.X, pos.Y, letter)
		}
	}

	if o.hasMove {
		headPos := board.Dimensions.PositionFromIndex(board.Head(o.moveAgent))
		next := headPos.Translate(o.move)
		if a, ok := arrows[o.move]; ok {
			place(next.X, next.Y, a)
		}
	}

	for _, row := range grid {
		sb.WriteString(o.indent)
		for _, cell := range row {
			sb.WriteRune(cell)
			sb.WriteString("  ")
		}
		sb.WriteString(o.newlineCharacter)
	}
	return sb.String()
}

// TerritoryText renders a voronoi.FloodFill result as a letter grid, one
// letter per owning agent and '.' for unassigned cells, grounded on
// VisualizeVoronoi.
func TerritoryText(width, height int, owner func(x, y int) (engine.AgentID, bool), opts ...Option) string {
	o := &textOptions{indent: "", newlineCharacter: "\n"}
	for _, opt := range opts {
		opt(o)
	}

	var sb strings.Builder
	for y := height - 1; y >= 0; y-- {
		sb.WriteString(o.indent)
		for x := 0; x < width; x++ {
			id, ok := owner(x, y)
			if !ok {
				sb.WriteString(".")
			} else {
				sb.WriteRune(rune('A' + int(id)))
			}
			sb.WriteString("  ")
		}
		sb.WriteString(o.newlineCharacter)
	}
	return sb.String()
}
