package engine

// MoveOutcome is the agent-local, direction-local result of simulating a
// single candidate move in isolation: where the head would land, what it
// would cost, and whether the move is already known-dead before any
// cross-agent interaction is considered (§4.3).
type MoveOutcome struct {
	AgentID    AgentID
	Direction  Direction
	NewHead    Position
	NewHeadIdx CellIndex
	NewTailIdx CellIndex
	AteFood    bool
	NewLength  int
	NewHealth  int
	Dead       bool
	Reason     DeathReason
}

// MoveTable is the full Cartesian product of per-agent, per-direction
// outcomes computed by GenerateState, keyed by agent then direction.
// EvaluateMovesWithState indexes into it once per agent per call instead
// of recomputing geometry, which is the whole point of separating the
// two phases (§4.3, §4.4: "amortized across the joint move space").
type MoveTable struct {
	byAgent map[AgentID]*[numDirections]MoveOutcome
}

// Lookup returns the precomputed outcome for id moving in d. It panics if
// id was never passed to GenerateState, which indicates a caller bug.
func (t MoveTable) Lookup(id AgentID, d Direction) MoveOutcome {
	row, ok := t.byAgent[id]
	if !ok {
		panic("engine: move table has no entry for agent")
	}
	return row[d]
}

// GenerateState computes, for every agent in agents and every direction,
// the single-agent outcome of moving that way: the landing cell, whether
// it eats food, the resulting tail index, health and length, and whether
// it is already dead from an off-board move, wrap-disabled border, a
// neck reversal, or starvation — all decisions that never depend on any
// other agent's simultaneous move (§4.3).
//
// board is read-only here; no cell is mutated. The result amortizes this
// per-agent work across every joint combination of moves evaluated later
// by EvaluateMovesWithState.
func GenerateState(board *Board, mode Mode, agents []AgentID) MoveTable {
	table := MoveTable{byAgent: make(map[AgentID]*[numDirections]MoveOutcome, len(agents))}
	for _, id := range agents {
		row := &[numDirections]MoveOutcome{}
		head := board.Heads[id]
		headPos := board.Dimensions.PositionFromIndex(head)
		neckIdx, hasNeck := board.Neck(id)

		for _, d := range AllDirections {
			out := MoveOutcome{AgentID: id, Direction: d}
			rawPos := headPos.Translate(d)

			var newHeadPos Position
			var offBoard bool
			switch mode {
			case ModeWrapped:
				newHeadPos = board.Dimensions.wrapped(rawPos)
			default:
				newHeadPos = rawPos
				offBoard = board.OffBoard(rawPos)
			}

			if offBoard {
				out.Dead = true
				out.Reason = DeathOffBoard
				row[d] = out
				continue
			}

			newHeadIdx := board.Dimensions.IndexFromPosition(newHeadPos)

			if hasNeck && newHeadIdx == neckIdx && board.Lengths[id] > 1 {
				out.Dead = true
				out.Reason = DeathNeck
				row[d] = out
				continue
			}

			ateFood := board.Cells[newHeadIdx].IsFood()

			newHealth := board.Healths[id] - 1
			if board.Cells[newHeadIdx].IsHazard() {
				newHealth -= board.HazardDamage
			}
			if ateFood {
				newHealth = StartingHealth
			}

			newLength := board.Lengths[id]
			if ateFood {
				newLength++
			}

			newTailIdx := nextTailIndex(board, id)

			out.NewHead = newHeadPos
			out.NewHeadIdx = newHeadIdx
			out.NewTailIdx = newTailIdx
			out.AteFood = ateFood
			out.NewLength = newLength
			out.NewHealth = newHealth

			if newHealth <= 0 {
				out.Dead = true
				out.Reason = DeathStarvation
			}

			row[d] = out
		}

		table.byAgent[id] = row
	}
	return table
}

// nextTailIndex computes where id's tail would sit after advancing one
// turn, under the ordinary (non-growth) shrink rule: the current
// second-from-tail cell becomes the new tail. Food-driven growth is
// applied later, in EvaluateMovesWithState, by promoting this same cell
// instead of demoting it (§4.4) — GenerateState never special-cases
// AteFood when computing the tail index.
func nextTailIndex(board *Board, id AgentID) CellIndex {
	ring, _ := board.ring(id)
	if len(ring) == 0 {
		return board.Heads[id]
	}
	if len(ring) == 1 {
		return ring[0]
	}
	return ring[1]
}
