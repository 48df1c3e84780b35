package engine

import (
	"iter"
	"time"
)

// Action is one joint move: every alive agent's chosen direction for a
// single turn.
type Action map[AgentID]Direction

// Instruments receives timing callbacks from SimulateWithMoves. A nil
// Instruments is valid; callers that don't care about timing pass Simulate
// instead, which does not instrument at all.
type Instruments interface {
	ObserveSimulation(d time.Duration)
}

// ReasonableDirections returns the subset of AllDirections that
// GenerateState did not already mark fatal (off-board, a neck reversal,
// or starvation) for id. It never itself inspects other agents, matching
// GenerateState's single-agent locality (§4.4); callers that want moves
// that additionally avoid body/head-to-head collisions must do so via a
// full SimulateWithMoves call.
func ReasonableDirections(table MoveTable, id AgentID) []Direction {
	var out []Direction
	for _, d := range AllDirections {
		if !table.Lookup(id, d).Dead {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return AllDirections[:]
	}
	return out
}

// SimulateWithMoves lazily enumerates every joint successor of board: the
// Cartesian product of each agent's candidate directions, each committed
// via EvaluateMovesWithState against a freshly generated MoveTable.
// candidates maps each alive agent to the directions worth trying for it
// (typically ReasonableDirections, or AllDirections for exhaustive
// search); an agent absent from candidates is held fixed to whatever
// single direction appears in its one-element slice, or is treated as a
// forced elimination if its slice is empty.
//
// The returned iter.Seq2 computes each successor only as the caller pulls
// it, so an early break (a search deadline, a depth cutoff) skips the
// unexplored remainder of the product entirely (§4.6).
func SimulateWithMoves(board Board, mode Mode, candidates map[AgentID][]Direction) iter.Seq2[Action, Board] {
	return func(yield func(Action, Board) bool) {
		ids := make([]AgentID, 0, len(candidates))
		for id := range candidates {
			ids = append(ids, id)
		}

		agentIDs := make([]AgentID, 0, len(ids))
		for i := 0; i < MaxAgents; i++ {
			id := AgentID(i)
			if board.IsAlive(id) {
				agentIDs = append(agentIDs, id)
			}
		}
		table := GenerateState(&board, mode, agentIDs)

		var recurse func(i int, acc Action) bool
		recurse = func(i int, acc Action) bool {
			if i == len(ids) {
				successor := EvaluateMovesWithState(board, acc, table)
				return yield(acc, successor)
			}
			id := ids[i]
			for _, d := range candidates[id] {
				next := make(Action, len(acc)+1)
				for k, v := range acc {
					next[k] = v
				}
				next[id] = d
				if !recurse(i+1, next) {
					return false
				}
			}
			return true
		}
		recurse(0, Action{})
	}
}

// Simulate is SimulateWithMoves using ReasonableDirections for every
// alive agent: the default exploration set a search layer pulls from
// when it has no stronger per-agent candidate filter of its own.
func Simulate(board Board, mode Mode) iter.Seq2[Action, Board] {
	ids := make([]AgentID, 0, MaxAgents)
	for i := 0; i < MaxAgents; i++ {
		id := AgentID(i)
		if board.IsAlive(id) {
			ids = append(ids, id)
		}
	}
	table := GenerateState(&board, mode, ids)

	candidates := make(map[AgentID][]Direction, len(ids))
	for _, id := range ids {
		candidates[id] = ReasonableDirections(table, id)
	}
	return SimulateWithMoves(board, mode, candidates)
}
