package render

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/brensch/snakecore/engine"
)

// FrameSnake is one snake's state within a single websocket game-frame
// event, matching the Battlesnake engine's public event schema.
type FrameSnake struct {
	ID     string                `json:"ID"`
	Name   string                `json:"Name"`
	Body   []engine.SnapshotCoord `json:"Body"`
	Health int                   `json:"Health"`
	Color  string                `json:"Color"`
	Death  *FrameDeath           `json:"Death"`
}

// FrameDeath describes why and when a snake died within a replayed game.
type FrameDeath struct {
	Cause        string `json:"Cause"`
	Turn         int    `json:"Turn"`
	EliminatedBy string `json:"EliminatedBy"`
}

// FrameEvent is one message from the game engine's websocket event
// stream: either a per-turn "frame" or the terminal "game_end".
type FrameEvent struct {
	Type string `json:"Type"`
	Data struct {
		Turn   int                     `json:"Turn"`
		Snakes []FrameSnake            `json:"Snakes"`
		Food   []engine.SnapshotCoord  `json:"Food"`
		Width  int                     `json:"Width"`
		Height int                     `json:"Height"`
	} `json:"Data"`
}

// CollectFrames dials wsURL and replays every "frame" event into an
// engine.Board, stopping at "game_end". It reports whom won (the name of
// whichever snake is alive at the final observed frame, or "" on a draw)
// alongside the boards, grounded on collectGameFrames.
func CollectFrames(ctx context.Context, wsURL string) (boards []engine.Board, winnerName string, err error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, wsURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("render: dial game websocket: %w", err)
	}
	defer conn.Close()

	var width, height int
	var lastFrame FrameEvent

	for {
		_, message, readErr := conn.ReadMessage()
		if readErr != nil {
			if websocket.IsCloseError(readErr, websocket.CloseNormalClosure) {
				break
			}
			return nil, "", fmt.Errorf("render: read game frame: %w", readErr)
		}

		var event FrameEvent
		if err := json.Unmarshal(message, &event); err != nil {
			continue
		}

		if event.Type == "game_end" {
			width, height = event.Data.Width, event.Data.Height
			break
		}
		lastFrame = event

		b, convErr := frameToBoard(event)
		if convErr != nil {
			continue
		}
		boards = append(boards, b)
	}

	for _, s := range lastFrame.Data.Snakes {
		if s.Death == nil {
			winnerName = s.Name
			break
		}
	}

	if width > 0 && height > 0 {
		dim := engine.FixedDimensions(width, height)
		for i := range boards {
			boards[i].Dimensions = dim
		}
	}

	return boards, winnerName, nil
}

// frameToBoard converts one FrameEvent into an engine.Board via the
// shared Battlesnake wire decoder, treating the event's own width/height
// as authoritative for this frame (game_end reports the true dimensions
// separately, patched in by the caller).
func frameToBoard(event FrameEvent) (engine.Board, error) {
	snap := engine.Snapshot{
		Board: engine.SnapshotBoard{
			Width:  event.Data.Width,
			Height: event.Data.Height,
			Food:   event.Data.Food,
		},
	}
	if snap.Board.Width == 0 {
		snap.Board.Width = 11
	}
	if snap.Board.Height == 0 {
		snap.Board.Height = 11
	}
	for _, s := range event.Data.Snakes {
		if s.Death != nil {
			continue
		}
		snap.Board.Snakes = append(snap.Board.Snakes, engine.SnapshotSnake{
			ID:     s.ID,
			Name:   s.Name,
			Health: s.Health,
			Body:   s.Body,
		})
	}
	if len(snap.Board.Snakes) == 0 {
		return engine.Board{}, fmt.Errorf("render: frame has no living snakes")
	}
	snap.You = snap.Board.Snakes[0]

	b, _, err := engine.FromSnapshot(snap, engine.ModeStandard)
	return b, err
}
