// Package voronoi assigns board territory to the agent that can legally
// reach each cell first, breaking distance ties in favor of the longer
// snake. It is a flood-fill heuristic consumed by package search when
// scoring leaf positions.
package voronoi

import (
	"container/heap"
	"container/list"

	"github.com/brensch/snakecore/engine"
)

// Cell records which agent, if any, controls a board position, and how
// far that agent's head had to travel to claim it.
type Cell struct {
	Owner    engine.AgentID
	Distance int
	Length   int
}

// node is one flood-fill queue entry: a point paired with the agent and
// length that is spreading from it.
type node struct {
	idx    engine.CellIndex
	owner  engine.AgentID
	depth  int
	length int
}

// FloodFill assigns every cell on board to the agent that reaches it
// first by breadth-first search over legal moves, breaking distance ties
// in favor of the longer snake and leaving ties between equal-length
// snakes unassigned (Owner == engine.NoAgent). Grounded on
// GenerateVoronoiFlood.
func FloodFill(board engine.Board, mode engine.Mode) map[engine.CellIndex]Cell {
	result := make(map[engine.CellIndex]Cell)
	queue := list.New()

	for _, id := range board.AgentIDs() {
		head := board.Head(id)
		result[head] = Cell{Owner: id, Distance: 0, Length: board.Length(id)}
		queue.PushBack(node{idx: head, owner: id, depth: 0, length: board.Length(id)})
	}

	for queue.Len() > 0 {
		front := queue.Front()
		queue.Remove(front)
		cur := front.Value.(node)

		pos := board.Dimensions.PositionFromIndex(cur.idx)
		for _, d := range engine.AllDirections {
			next := pos.Translate(d)
			if !board.Dimensions.InBounds(next) && mode != engine.ModeWrapped {
				continue
			}
			var nextIdx engine.CellIndex
			if mode == engine.ModeWrapped {
				nextIdx = board.Dimensions.AsWrappedCellIndex(next)
			} else {
				nextIdx = board.Dimensions.IndexFromPosition(next)
			}

			if !legalForAgent(board, cur.owner, nextIdx) {
				continue
			}

			existing, claimed := result[nextIdx]
			depth := cur.depth + 1
			switch {
			case !claimed:
				result[nextIdx] = Cell{Owner: cur.owner, Distance: depth, Length: cur.length}
				queue.PushBack(node{idx: nextIdx, owner: cur.owner, depth: depth, length: cur.length})
			case existing.Distance == depth && cur.length > existing.Length && existing.Owner != cur.owner:
				result[nextIdx] = Cell{Owner: cur.owner, Distance: depth, Length: cur.length}
				queue.PushBack(node{idx: nextIdx, owner: cur.owner, depth: depth, length: cur.length})
			}
		}
	}

	return result
}

// legalForAgent reports whether idx is a safe cell for id to claim
// territory through: in bounds (checked by the caller), not a body
// segment of any alive agent, and not a cell where an alive, strictly
// longer-or-equal agent's head already sits (a losing or mutual
// head-to-head), mirroring isLegalMove.
func legalForAgent(board engine.Board, id engine.AgentID, idx engine.CellIndex) bool {
	for _, other := range board.AgentIDs() {
		if other == id {
			continue
		}
		if board.Head(other) == idx && board.Length(other) >= board.Length(id) {
			return false
		}
	}
	for _, other := range board.AgentIDs() {
		for _, bodyIdx := range board.Body(other) {
			if bodyIdx == idx && bodyIdx != board.Head(other) {
				return false
			}
		}
	}
	return true
}

// Count tallies how many cells FloodFill assigned to each agent, the
// territory-size summary package search's evaluator consumes directly.
func Count(cells map[engine.CellIndex]Cell) map[engine.AgentID]int {
	counts := make(map[engine.AgentID]int)
	for _, c := range cells {
		counts[c.Owner]++
	}
	return counts
}

// distancePriorityQueue orders dijkstraJob entries by distance, breaking
// ties toward the longer snake, matching PriorityQueue's Less.
type distancePriorityQueue []dijkstraJob

type dijkstraJob struct {
	idx    engine.CellIndex
	owner  engine.AgentID
	dist   int
	length int
}

func (pq distancePriorityQueue) Len() int { return len(pq) }
func (pq distancePriorityQueue) Less(i, j int) bool {
	if pq[i].dist == pq[j].dist {
		return pq[i].length > pq[j].length
	}
	return pq[i].dist < pq[j].dist
}
func (pq distancePriorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *distancePriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(dijkstraJob))
}
func (pq *distancePriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// ShortestPathOwnership is an alternative territory assignment using a
// Dijkstra-style expansion instead of plain BFS, grounded on
// GenerateVoronoi/dijkstraNode. It produces the same result as FloodFill
// when every move costs one turn (always true here), and exists because
// the teacher shipped both; search uses FloodFill for the hot path and
// keeps this as the cross-check used in voronoi_test.go.
func ShortestPathOwnership(board engine.Board, mode engine.Mode) map[engine.CellIndex]Cell {
	result := make(map[engine.CellIndex]Cell)
	pq := &distancePriorityQueue{}
	heap.Init(pq)

	for _, id := range board.AgentIDs() {
		head := board.Head(id)
		result[head] = Cell{Owner: id, Distance: 0, Length: board.Length(id)}
		heap.Push(pq, dijkstraJob{idx: head, owner: id, dist: 0, length: board.Length(id)})
	}

	for pq.Len() > 0 {
		job := heap.Pop(pq).(dijkstraJob)
		pos := board.Dimensions.PositionFromIndex(job.idx)

		for _, d := range engine.AllDirections {
			next := pos.Translate(d)
			if !board.Dimensions.InBounds(next) && mode != engine.ModeWrapped {
				continue
			}
			var nextIdx engine.CellIndex
			if mode == engine.ModeWrapped {
				nextIdx = board.Dimensions.AsWrappedCellIndex(next)
			} else {
				nextIdx = board.Dimensions.IndexFromPosition(next)
			}

			if !legalForAgent(board, job.owner, nextIdx) {
				continue
			}

			newDist := job.dist + 1
			existing, claimed := result[nextIdx]
			if !claimed || newDist < existing.Distance ||
				(newDist == existing.Distance && job.length > existing.Length) {
				result[nextIdx] = Cell{Owner: job.owner, Distance: newDist, Length: job.length}
				heap.Push(pq, dijkstraJob{idx: nextIdx, owner: job.owner, dist: newDist, length: job.length})
			}
		}
	}

	return result
}
