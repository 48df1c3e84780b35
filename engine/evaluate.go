package engine

// tailPlan is the per-agent bookkeeping captured before any mutation:
// the original ring (tail-first) and where the tail will sit after an
// ordinary, non-growth shed.
type tailPlan struct {
	ring       []CellIndex
	oldTailIdx CellIndex
	oldHeadIdx CellIndex
	newTailIdx CellIndex
	vacated    bool // true if the old tail cell is fully vacated (occupancy was 1)
}

// EvaluateMovesWithState commits one simultaneous joint move against
// board, using table (from GenerateState) to avoid recomputing
// per-agent geometry. moves supplies each alive agent's chosen
// direction; an alive agent absent from moves is treated as a forced
// elimination (§4.4).
//
// Agents already dead from their own single-agent result (a forced
// elimination, or GenerateState's off-board/neck/starvation) are
// killed and removed first, before any other agent's move is
// committed. The remaining phases then run in order: (A) per-agent
// local mutation — tail shedding, old-head-to-body conversion,
// new-head placement, growth promotion; (B) body-collision detection
// against the post-shed board; (C) head-to-head resolution by
// comparing this turn's resulting length; (D) removal of every agent
// killed by B or C, using each agent's pre-mutation ring snapshot
// rather than the (possibly partially mutated) live board, since Phase
// A has already rewritten the tail and head cells of agents later
// found to have died in Phase B or C.
func EvaluateMovesWithState(board Board, moves map[AgentID]Direction, table MoveTable) Board {
	nb := board

	rings := make(map[AgentID][]CellIndex)
	for i := 0; i < MaxAgents; i++ {
		id := AgentID(i)
		if !board.IsAlive(id) {
			continue
		}
		ring, _ := board.ring(id)
		rings[id] = ring
	}

	// Agents dead from their own single-agent result (forced elimination,
	// or GenerateState's off-board/neck/starvation) are removed here,
	// immediately, before Phase B/C ever inspect the board — matching
	// spec's Phase A, which applies kill_and_remove as the very first
	// per-agent action. Deferring this to Phase D would leave a dead
	// agent's ring intact through the collision checks below, so a
	// survivor whose new head lands on that now-should-be-empty cell
	// would wrongly be ruled a body collision.
	toKill := make(map[AgentID]DeathReason)
	outcomes := make(map[AgentID]MoveOutcome)
	plans := make(map[AgentID]tailPlan)

	for id := range rings {
		d, chose := moves[id]
		if !chose {
			nb.killRing(id, rings[id])
			continue
		}
		out := table.Lookup(id, d)
		if out.Dead {
			nb.killRing(id, rings[id])
			continue
		}
		outcomes[id] = out
	}

	// Phase A, part 1: shed the old tail and convert the old head to a
	// body piece, for every agent whose move survived GenerateState.
	for id, out := range outcomes {
		ring := rings[id]
		plan := tailPlan{
			ring:       ring,
			oldTailIdx: ring[0],
			oldHeadIdx: ring[len(ring)-1],
		}

		if len(ring) == 1 {
			// Single-cell spawn snake: the cell sheds from triple- to
			// double-stacked and becomes tail-only; the new head cell is
			// written in part 3 below.
			nb.Cells[plan.oldTailIdx].MakeDouble(id, out.NewHeadIdx)
			plan.newTailIdx = plan.oldTailIdx
			plans[id] = plan
			continue
		}

		oldTailCell := board.Cells[plan.oldTailIdx]
		if oldTailCell.IsStacked() {
			// Occupancy > 1: shed one layer in place, tail doesn't move.
			nb.Cells[plan.oldTailIdx].MakeBody(id, oldTailCell.Link)
			plan.newTailIdx = plan.oldTailIdx
		} else {
			// Plain single-occupancy tail: it vacates entirely.
			nb.cellRemove(plan.oldTailIdx)
			plan.newTailIdx = ring[1]
			plan.vacated = true
		}

		nb.Cells[plan.oldHeadIdx].MakeBody(id, out.NewHeadIdx)
		plans[id] = plan
	}

	// Phase B: body-collision detection against the board as shed above,
	// before any new head is written.
	bodyCollision := make(map[AgentID]bool)
	for id, out := range outcomes {
		if nb.Cells[out.NewHeadIdx].IsBodySegment() {
			bodyCollision[id] = true
		}
	}

	// Phase C: head-to-head resolution among agents that didn't already
	// lose to a body collision. Current length for comparison is each
	// agent's NewLength for this turn, reflecting growth already applied.
	groups := make(map[CellIndex][]AgentID)
	for id, out := range outcomes {
		if bodyCollision[id] {
			continue
		}
		groups[out.NewHeadIdx] = append(groups[out.NewHeadIdx], id)
	}
	headToHeadLoser := make(map[AgentID]bool)
	for _, ids := range groups {
		if len(ids) < 2 {
			continue
		}
		maxLen := -1
		for _, id := range ids {
			if l := outcomes[id].NewLength; l > maxLen {
				maxLen = l
			}
		}
		winners := 0
		for _, id := range ids {
			if outcomes[id].NewLength == maxLen {
				winners++
			}
		}
		for _, id := range ids {
			if winners != 1 || outcomes[id].NewLength != maxLen {
				headToHeadLoser[id] = true
			}
		}
	}

	for id := range outcomes {
		if bodyCollision[id] {
			toKill[id] = DeathBodyCollision
		} else if headToHeadLoser[id] {
			toKill[id] = DeathHeadToHead
		}
	}

	// Phase A, part 3: place the new head and apply growth for every
	// agent that survived Phases B and C.
	for id, out := range outcomes {
		if toKill[id] != DeathNone {
			continue
		}
		plan := plans[id]
		nb.Cells[out.NewHeadIdx].MakeHead(id, plan.newTailIdx)

		if out.AteFood {
			tailCell := nb.Cells[plan.newTailIdx]
			nb.Cells[plan.newTailIdx].MakeDouble(id, tailCell.Link)
		}

		nb.Healths[id] = out.NewHealth
		nb.Lengths[id] = out.NewLength
		nb.Heads[id] = out.NewHeadIdx
	}

	// Phase D: remove every agent killed by Phase B or C, using its
	// pre-mutation ring snapshot, since Phase A has already partially
	// rewritten the cells of an agent whose move was only later found
	// fatal. Agents dead from their own single-agent result were already
	// killed above, before Phase B ever ran.
	for id := range toKill {
		nb.killRing(id, rings[id])
	}

	return nb
}
