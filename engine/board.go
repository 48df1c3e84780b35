package engine

import (
	"fmt"
	"iter"
	"math/rand"
)

// MaxBoardWidth and MaxBoardHeight bound the largest board preset
// (Massive50, §4.7); MaxBoardCells is the fixed capacity of Board.Cells.
// A Board is a plain value of this fixed size regardless of the actual
// board it represents, copied cheaply like the spec's stack-allocable
// board (§3 Ownership/lifecycle).
const (
	MaxBoardWidth  = 50
	MaxBoardHeight = 50
	MaxBoardCells  = MaxBoardWidth * MaxBoardHeight
)

// DefaultHazardDamage is the per-turn health loss for a head on a hazard
// cell, unless a game overrides it (§6.4).
const DefaultHazardDamage = 15

// StartingHealth is every agent's health at game start (§6.4).
const StartingHealth = 100

// Board owns the cell array and per-agent state for one game position.
// It is a value type: copying a Board copies plain bytes, and no Board
// ever aliases another (§3 Ownership/lifecycle).
type Board struct {
	Cells        [MaxBoardCells]Cell
	Healths      [MaxAgents]int
	Lengths      [MaxAgents]int
	Heads        [MaxAgents]CellIndex
	Dimensions   Dimensions
	HazardDamage int
}

// NewBoard returns an empty board of the given dimensions with the
// default hazard damage and every agent slot dead (health 0).
func NewBoard(dim Dimensions) Board {
	b := Board{Dimensions: dim, HazardDamage: DefaultHazardDamage}
	for i := range b.Cells {
		b.Cells[i] = EmptyCell()
	}
	return b
}

func (b *Board) Width() int  { return b.Dimensions.ActualWidth }
func (b *Board) Height() int { return b.Dimensions.ActualHeight }

// IsAlive reports whether id has positive health.
func (b *Board) IsAlive(id AgentID) bool {
	return id >= 0 && int(id) < MaxAgents && b.Healths[id] > 0
}

// IsYou reports whether id is the "you" agent, always id 0 (§3).
func (b *Board) IsYou(id AgentID) bool { return id == 0 }

func (b *Board) Head(id AgentID) CellIndex { return b.Heads[id] }
func (b *Board) Length(id AgentID) int     { return b.Lengths[id] }
func (b *Board) Health(id AgentID) int     { return b.Healths[id] }

// AgentIDs returns the ids of every currently alive agent, ascending.
func (b *Board) AgentIDs() []AgentID {
	var ids []AgentID
	for i := 0; i < MaxAgents; i++ {
		if b.Healths[i] > 0 {
			ids = append(ids, AgentID(i))
		}
	}
	return ids
}

// AliveCount returns the number of agents with positive health.
func (b *Board) AliveCount() int {
	n := 0
	for i := 0; i < MaxAgents; i++ {
		if b.Healths[i] > 0 {
			n++
		}
	}
	return n
}

// IsOver reports whether the game has ended. Per the simplified rule in
// §8 Testable Properties, it is also true whenever the "you" agent
// (id 0) is dead, regardless of how many opponents remain.
func (b *Board) IsOver() bool {
	if b.Healths[0] <= 0 {
		return true
	}
	return b.AliveCount() <= 1
}

// Winner returns the sole remaining agent, if any. It never reports a
// winner once the "you" agent is dead, matching IsOver's simplification.
func (b *Board) Winner() (AgentID, bool) {
	if b.Healths[0] <= 0 {
		return NoAgent, false
	}
	winner := NoAgent
	count := 0
	for i := 0; i < MaxAgents; i++ {
		if b.Healths[i] > 0 {
			winner = AgentID(i)
			count++
		}
	}
	if count == 1 {
		return winner, true
	}
	return NoAgent, false
}

// SetHazard and ClearHazard mutate the hazard flag of a single cell
// without touching its kind.
func (b *Board) SetHazard(idx CellIndex)   { b.Cells[idx].Hazard = true }
func (b *Board) ClearHazard(idx CellIndex) { b.Cells[idx].Hazard = false }

// IsHazard reports whether the cell at idx carries the hazard flag.
func (b *Board) IsHazard(idx CellIndex) bool { return b.Cells[idx].Hazard }

// OffBoard reports whether pos lies outside the board's actual extents.
func (b *Board) OffBoard(pos Position) bool { return !b.Dimensions.InBounds(pos) }

// FoodCells returns the indices of every Food cell.
func (b *Board) FoodCells() []CellIndex {
	var out []CellIndex
	n := b.Dimensions.Cells()
	for i := 0; i < n; i++ {
		if b.Cells[i].IsFood() {
			out = append(out, CellIndex(i))
		}
	}
	return out
}

// EmptyCells lazily yields every Empty cell's index, in ascending order.
func (b *Board) EmptyCells() iter.Seq[CellIndex] {
	return func(yield func(CellIndex) bool) {
		n := b.Dimensions.Cells()
		for i := 0; i < n; i++ {
			if b.Cells[i].IsEmpty() {
				if !yield(CellIndex(i)) {
					return
				}
			}
		}
	}
}

// Neck returns the cell index immediately behind id's head: the
// predecessor of the head when walking the ring from the tail forward.
func (b *Board) Neck(id AgentID) (CellIndex, bool) {
	ring, ok := b.ring(id)
	if !ok || len(ring) < 2 {
		return 0, false
	}
	return ring[len(ring)-2], true
}

// Body returns the unique cell indices of id's body, tail-first,
// head-last. Stacked cells appear once even though they hold multiple
// segments (see Length for the segment count).
func (b *Board) Body(id AgentID) []CellIndex {
	ring, _ := b.ring(id)
	return ring
}

// ring walks id's body from tail to head following Link, returning the
// unique cell indices visited (tail-first). It reports false if the walk
// could not reach the head (a malformed board).
func (b *Board) ring(id AgentID) ([]CellIndex, bool) {
	headIdx := b.Heads[id]
	headCell := b.Cells[headIdx]
	tailIdx, ok := headCell.TailLink(headIdx)
	if !ok {
		return nil, false
	}
	if headCell.Kind == CellTripleStacked {
		return []CellIndex{headIdx}, true
	}
	indices := make([]CellIndex, 0, 8)
	cur := tailIdx
	for {
		indices = append(indices, cur)
		if cur == headIdx {
			return indices, true
		}
		next, ok := b.Cells[cur].NextLink()
		if !ok {
			return indices, false
		}
		cur = next
	}
}

// occupiedCount returns how many body segments id's ring represents,
// counting stacked cells multiply (Double = 2, Triple = 3).
func (b *Board) occupiedCount(id AgentID) int {
	ring, _ := b.ring(id)
	count := 0
	for _, idx := range ring {
		switch b.Cells[idx].Kind {
		case CellTripleStacked:
			count += 3
		case CellDoubleStacked:
			count += 2
		default:
			count++
		}
	}
	return count
}

// AssertConsistency verifies invariant (1) of §3 for every alive agent:
// walking the ring from the tail via Link reaches the head, every
// visited cell is owned by the agent, and the walk's segment count
// equals the agent's recorded length. It never panics; it is a pure
// boolean check used by tests and, when built with snakecoredebug, by
// the simulator after every successor.
func (b *Board) AssertConsistency() bool {
	for i := 0; i < MaxAgents; i++ {
		id := AgentID(i)
		if !b.IsAlive(id) {
			continue
		}
		ring, ok := b.ring(id)
		if !ok {
			return false
		}
		for _, idx := range ring {
			owner, present := b.Cells[idx].Owner()
			if !present || owner != id {
				return false
			}
		}
		if b.occupiedCount(id) != b.Lengths[id] {
			return false
		}
	}
	return true
}

// cellRemove clears the cell at idx to Empty, preserving its hazard flag.
func (b *Board) cellRemove(idx CellIndex) {
	hazard := b.Cells[idx].Hazard
	b.Cells[idx].Remove()
	b.Cells[idx].Hazard = hazard
}

func (b *Board) setCellHead(idx CellIndex, owner AgentID, tailLink CellIndex) {
	b.Cells[idx].MakeHead(owner, tailLink)
}

func (b *Board) setCellBodyPiece(idx CellIndex, owner AgentID, nextLink CellIndex) {
	b.Cells[idx].MakeBody(owner, nextLink)
}

func (b *Board) setCellDoubleStacked(idx CellIndex, owner AgentID, nextLink CellIndex) {
	b.Cells[idx].MakeDouble(owner, nextLink)
}

func (b *Board) setCellTripleStacked(idx CellIndex, owner AgentID) {
	b.Cells[idx].MakeTriple(owner)
}

// KillAndRemove walks id's current ring and resets every visited cell to
// Empty (preserving hazard), then zeroes the agent's per-agent slots.
// Callers outside the evaluator (§4.5, which snapshots rings before any
// mutation — see evaluate.go) should use this directly; it relies on the
// board's link chain being intact, which only holds for boards that
// haven't been partially mutated mid-evaluation.
func (b *Board) KillAndRemove(id AgentID) {
	ring, _ := b.ring(id)
	for _, idx := range ring {
		b.cellRemove(idx)
	}
	b.Healths[id] = 0
	b.Lengths[id] = 0
	b.Heads[id] = 0
}

// killRing clears exactly the cells in ring (a snapshot taken before any
// mutation) and zeroes id's slots. Used internally by the evaluator,
// which must kill agents whose head/tail cells it has already rewritten
// provisionally (Phase A) before the kill decision is known (Phase B/C).
func (b *Board) killRing(id AgentID, ring []CellIndex) {
	for _, idx := range ring {
		b.cellRemove(idx)
	}
	b.Healths[id] = 0
	b.Lengths[id] = 0
	b.Heads[id] = 0
}

// PlaceFood is an external rollout helper, never invoked by
// EvaluateMovesWithState (§1 Non-goals, §4.3). If no food exists it adds
// one at a uniformly chosen empty cell; otherwise, with probability
// 0.15, it adds one additional food. Callers seed rng explicitly for
// reproducible rollouts (§5 Determinism).
func (b *Board) PlaceFood(rng *rand.Rand) {
	existing := b.FoodCells()
	if len(existing) == 0 {
		b.addRandomFood(rng)
		return
	}
	if rng.Float64() < 0.15 {
		b.addRandomFood(rng)
	}
}

func (b *Board) addRandomFood(rng *rand.Rand) {
	var empty []CellIndex
	for idx := range b.EmptyCells() {
		empty = append(empty, idx)
	}
	if len(empty) == 0 {
		return
	}
	idx := empty[rng.Intn(len(empty))]
	b.Cells[idx].SetFood()
}

// PackAsMap and FromPackedMap implement the §6.3 debug fixture format: a
// stable dict-of-arrays representation, not a wire format. Cells are
// encoded with Cell.Pack.
func (b *Board) PackAsMap() map[string][]uint64 {
	out := map[string][]uint64{
		"hazard_damage": {uint64(b.HazardDamage)},
		"actual_width":  {uint64(b.Dimensions.ActualWidth)},
		"actual_height": {uint64(b.Dimensions.ActualHeight)},
	}
	healths := make([]uint64, MaxAgents)
	lengths := make([]uint64, MaxAgents)
	heads := make([]uint64, MaxAgents)
	for i := 0; i < MaxAgents; i++ {
		healths[i] = uint64(b.Healths[i])
		lengths[i] = uint64(b.Lengths[i])
		heads[i] = uint64(b.Heads[i])
	}
	out["healths"] = healths
	out["lengths"] = lengths
	out["heads"] = heads

	n := b.Dimensions.Cells()
	cells := make([]uint64, n)
	for i := 0; i < n; i++ {
		cells[i] = uint64(b.Cells[i].Pack())
	}
	out["cells"] = cells
	return out
}

// FromPackedMap rebuilds a Board from PackAsMap's representation. Cells
// packed without hazard state (the format's only lossy field) come back
// with Hazard == false.
func FromPackedMap(h map[string][]uint64) (Board, error) {
	var b Board
	get1 := func(key string) (int, error) {
		v, ok := h[key]
		if !ok || len(v) == 0 {
			return 0, fmt.Errorf("engine: packed map missing %q", key)
		}
		return int(v[0]), nil
	}
	hazardDamage, err := get1("hazard_damage")
	if err != nil {
		return Board{}, err
	}
	width, err := get1("actual_width")
	if err != nil {
		return Board{}, err
	}
	height := width
	if v, ok := h["actual_height"]; ok && len(v) > 0 {
		height = int(v[0])
	}
	b.HazardDamage = hazardDamage
	b.Dimensions = FixedDimensions(width, height)

	healths, ok := h["healths"]
	if !ok {
		return Board{}, fmt.Errorf("engine: packed map missing healths")
	}
	lengths, ok := h["lengths"]
	if !ok {
		return Board{}, fmt.Errorf("engine: packed map missing lengths")
	}
	heads, ok := h["heads"]
	if !ok {
		return Board{}, fmt.Errorf("engine: packed map missing heads")
	}
	for i := 0; i < MaxAgents && i < len(healths); i++ {
		b.Healths[i] = int(healths[i])
		b.Lengths[i] = int(lengths[i])
		b.Heads[i] = CellIndex(heads[i])
	}

	cells, ok := h["cells"]
	if !ok {
		return Board{}, fmt.Errorf("engine: packed map missing cells")
	}
	for i := range b.Cells {
		b.Cells[i] = EmptyCell()
	}
	for i, v := range cells {
		if i >= len(b.Cells) {
			break
		}
		b.Cells[i] = UnpackCell(uint32(v))
	}
	return b, nil
}
