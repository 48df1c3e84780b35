package engine

import "strings"

// Snapshot mirrors the Battlesnake wire format (§6.1): the payload body
// a game server POSTs to /start, /move and /end. JSON tags follow the
// official API field names.
type Snapshot struct {
	Game  SnapshotGame  `json:"game"`
	Turn  int           `json:"turn"`
	Board SnapshotBoard `json:"board"`
	You   SnapshotSnake `json:"you"`
}

// Map and Source are optional and may arrive as empty strings; per §6.1
// that's equivalent to absent, which `omitempty` reflects symmetrically
// on the way back out.
type SnapshotGame struct {
	ID      string          `json:"id"`
	Ruleset SnapshotRuleset `json:"ruleset"`
	Timeout int             `json:"timeout"`
	Map     string          `json:"map,omitempty"`
	Source  string          `json:"source,omitempty"`
}

type SnapshotRuleset struct {
	Name     string           `json:"name"`
	Version  string           `json:"version"`
	Settings SnapshotSettings `json:"settings"`
}

// HazardMap and HazardMapAuthor are optional, same empty-string-is-absent
// rule as SnapshotGame's Map/Source. Royale is only present for the
// royale ruleset, hence the pointer: a missing object is distinct from a
// present-but-zero one.
type SnapshotSettings struct {
	FoodSpawnChance     int             `json:"foodSpawnChance"`
	MinimumFood         int             `json:"minimumFood"`
	HazardDamagePerTurn int             `json:"hazardDamagePerTurn"`
	HazardMap           string          `json:"hazardMap,omitempty"`
	HazardMapAuthor     string          `json:"hazardMapAuthor,omitempty"`
	Royale              *SnapshotRoyale `json:"royale,omitempty"`
}

type SnapshotRoyale struct {
	ShrinkEveryNTurns int `json:"shrinkEveryNTurns"`
}

type SnapshotBoard struct {
	Height  int               `json:"height"`
	Width   int               `json:"width"`
	Food    []SnapshotCoord   `json:"food"`
	Hazards []SnapshotCoord   `json:"hazards"`
	Snakes  []SnapshotSnake   `json:"snakes"`
}

type SnapshotCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type SnapshotSnake struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Health int             `json:"health"`
	Body   []SnapshotCoord `json:"body"`
	Head   SnapshotCoord   `json:"head"`
	Length int             `json:"length"`
}

// FromSnapshot decodes a wire Snapshot into a Board plus the stable
// external-id -> AgentID mapping the caller should retain across turns
// (ids are assigned by iteration order: "you" is always id 0, §3). mode
// selects geometry; callers typically derive it from s.Game.Ruleset.Name
// themselves (the decoder has no opinion about ruleset names, §1
// non-goal), but FromSnapshot still rejects a mode that disagrees with
// the snapshot's own ruleset, since building a wrapped board from a
// standard-ruleset snapshot (or vice versa) silently produces a Board
// with the wrong edge behavior rather than failing loudly.
//
// Returns ErrSizeMismatch if the board exceeds MaxBoardCells/MaxAgents,
// ErrMalformedBody if a snake's body mixes a three-way duplicate
// position with any other distinct position, and ErrWrongMode if mode
// doesn't match s.Game.Ruleset.Name.
func FromSnapshot(s Snapshot, mode Mode) (Board, map[string]AgentID, error) {
	if !modeMatchesRuleset(mode, s.Game.Ruleset.Name) {
		return Board{}, nil, ErrWrongMode
	}
	if s.Board.Width*s.Board.Height > MaxBoardCells {
		return Board{}, nil, ErrSizeMismatch
	}
	if len(s.Board.Snakes) > MaxAgents {
		return Board{}, nil, ErrSizeMismatch
	}

	dim := FixedDimensions(s.Board.Width, s.Board.Height)
	b := NewBoard(dim)

	ids := make(map[string]AgentID, len(s.Board.Snakes))
	ids[s.You.ID] = 0
	next := AgentID(1)
	for _, sn := range s.Board.Snakes {
		if sn.ID == s.You.ID {
			continue
		}
		ids[sn.ID] = next
		next++
	}

	for _, sn := range s.Board.Snakes {
		id := ids[sn.ID]
		if err := placeSnake(&b, id, sn, dim); err != nil {
			return Board{}, nil, err
		}
	}

	for _, f := range s.Board.Food {
		idx := dim.IndexFromPosition(Position{X: f.X, Y: f.Y})
		b.Cells[idx].SetFood()
	}
	for _, h := range s.Board.Hazards {
		idx := dim.IndexFromPosition(Position{X: h.X, Y: h.Y})
		b.SetHazard(idx)
	}
	if s.Game.Ruleset.Settings.HazardDamagePerTurn > 0 {
		b.HazardDamage = s.Game.Ruleset.Settings.HazardDamagePerTurn
	}

	return b, ids, nil
}

// modeMatchesRuleset reports whether mode is the geometry §6.1 says
// rulesetName selects: "wrapped" (case-insensitive) selects ModeWrapped,
// anything else selects ModeStandard.
func modeMatchesRuleset(mode Mode, rulesetName string) bool {
	wrapped := strings.EqualFold(rulesetName, "wrapped")
	if mode == ModeWrapped {
		return wrapped
	}
	return !wrapped
}

// placeSnake builds the cell ring for one snake's body, detecting the
// spawn triple-stack (all three positions identical) as the sole
// legal form of duplicate positions; any other repeat is malformed.
func placeSnake(b *Board, id AgentID, sn SnapshotSnake, dim Dimensions) error {
	body := sn.Body
	if len(body) == 0 {
		return ErrMalformedBody
	}

	allSame := true
	for _, c := range body {
		if c != body[0] {
			allSame = false
			break
		}
	}

	b.Healths[id] = sn.Health
	b.Lengths[id] = len(body)

	if allSame {
		if len(body) != 3 {
			return ErrMalformedBody
		}
		idx := dim.IndexFromPosition(Position{X: body[0].X, Y: body[0].Y})
		b.Cells[idx].MakeTriple(id)
		b.Heads[id] = idx
		return nil
	}

	// A growth-turn duplicate tail is the only other legal repeat: the
	// final two positions identical, collapsing onto one stacked cell.
	doubleTail := len(body) >= 3 && body[len(body)-1] == body[len(body)-2]

	uniqueBody := body
	if doubleTail {
		uniqueBody = body[:len(body)-1]
	}
	seen := make(map[Position]bool, len(uniqueBody))
	for _, c := range uniqueBody {
		pos := Position{X: c.X, Y: c.Y}
		if seen[pos] {
			return ErrMalformedBody
		}
		seen[pos] = true
	}

	headPos := Position{X: uniqueBody[0].X, Y: uniqueBody[0].Y}
	tailPos := Position{X: uniqueBody[len(uniqueBody)-1].X, Y: uniqueBody[len(uniqueBody)-1].Y}
	headIdx := dim.IndexFromPosition(headPos)
	tailIdx := dim.IndexFromPosition(tailPos)

	b.Cells[headIdx].MakeHead(id, tailIdx)
	b.Heads[id] = headIdx

	// uniqueBody[i] links toward uniqueBody[i-1] (toward the head),
	// walking from the tail forward.
	for i := len(uniqueBody) - 1; i > 0; i-- {
		cur := Position{X: uniqueBody[i].X, Y: uniqueBody[i].Y}
		prev := Position{X: uniqueBody[i-1].X, Y: uniqueBody[i-1].Y}
		curIdx := dim.IndexFromPosition(cur)
		prevIdx := dim.IndexFromPosition(prev)
		if curIdx == headIdx {
			continue
		}
		b.Cells[curIdx].MakeBody(id, prevIdx)
	}

	if doubleTail {
		link := b.Cells[tailIdx].Link
		b.Cells[tailIdx].MakeDouble(id, link)
	}

	return nil
}
