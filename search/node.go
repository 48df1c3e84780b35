// Package search implements a concurrent multi-agent Monte Carlo tree
// search over engine.Board successors, grounded on the teacher's
// MultiNode/MultiWorker tree and re-expressed on top of engine.Simulate
// instead of hand-rolled board mutation.
package search

import (
	"iter"
	"sync"

	"github.com/brensch/snakecore/engine"
)

// Node is one position in the search tree: the board it represents, the
// joint action that produced it from its parent, and the lazily pulled
// stream of its own successors.
type Node struct {
	Board  engine.Board
	Parent *Node
	Action engine.Action

	mu       sync.Mutex
	Children []*Node
	Visits   int64
	scores   map[engine.AgentID]float64

	next      func() (engine.Action, engine.Board, bool)
	stop      func()
	exhausted bool
}

// NewNode builds a Node for board, wiring its successor stream from
// engine.Simulate (mode-aware, ReasonableDirections-filtered per agent).
// Grounded on MultiNewNode, but the Cartesian product of candidate moves
// is pulled lazily from the engine instead of precomputed eagerly up
// front — a direct use of Go 1.23's iter.Pull2 over the engine's
// iter.Seq2[Action, Board].
func NewNode(board engine.Board, parent *Node, action engine.Action, mode engine.Mode) *Node {
	n := &Node{
		Board:  board,
		Parent: parent,
		Action: action,
		scores: make(map[engine.AgentID]float64),
	}
	if board.IsOver() {
		n.exhausted = true
		return n
	}
	seq := engine.Simulate(board, mode)
	next, stop := iter.Pull2(seq)
	n.next = next
	n.stop = stop
	return n
}

// expandOne pulls the next unexplored successor and appends it as a
// child, returning it. It returns nil once the stream is exhausted.
func (n *Node) expandOne(mode engine.Mode) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.exhausted || n.next == nil {
		return nil
	}
	action, board, ok := n.next()
	if !ok {
		n.exhausted = true
		n.stop()
		return nil
	}
	child := NewNode(board, n, action, mode)
	n.Children = append(n.Children, child)
	return child
}

func (n *Node) isExhausted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.exhausted
}

func (n *Node) childSnapshot() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Node, len(n.Children))
	copy(out, n.Children)
	return out
}

func (n *Node) visits() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.Visits
}

func (n *Node) recordVisit(scores map[engine.AgentID]float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Visits++
	for id, v := range scores {
		n.scores[id] += v
	}
}

func (n *Node) averageScore(id engine.AgentID) float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Visits == 0 {
		return 0
	}
	return n.scores[id] / float64(n.Visits)
}
