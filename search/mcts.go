package search

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/brensch/snakecore/engine"
)

// explorationConstant is the UCT exploration weight, matching the
// teacher's fixed constant in MultiUCT/uctValue.
const explorationConstant = 1.41421356 // sqrt(2)

// FindBestMove runs concurrent MCTS rollouts from root until ctx is
// done, then returns the direction for `me` whose child subtree has the
// most visits. Grounded on MultiMCTS/MultiDetermineBestMove, with the
// worker pool re-expressed over Node/engine.Simulate instead of
// hand-rolled board copies.
func FindBestMove(ctx context.Context, root engine.Board, mode engine.Mode, me engine.AgentID, workers int, instruments Telemetry) (engine.Direction, error) {
	if !root.IsAlive(me) {
		return engine.Up, errNotAlive
	}
	if workers < 1 {
		workers = 1
	}

	rootNode := NewNode(root, nil, nil, mode)
	if len(rootNode.ReasonableDirectionsFor(me, mode)) == 0 {
		return engine.Up, nil
	}

	var wg sync.WaitGroup
	var iterations int64
	var mu sync.Mutex // guards iterations only; Node itself is independently safe

	for w := 0; w < workers; w++ {
		wg.Add(1)
		seed := int64(w) + 1
		go func(rng *rand.Rand) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				runIteration(rootNode, mode, rng, instruments)
				mu.Lock()
				iterations++
				mu.Unlock()
			}
		}(rand.New(rand.NewSource(seed)))
	}
	wg.Wait()

	if instruments != nil {
		instruments.ObserveIterations(iterations)
	}

	return bestChildDirection(rootNode, me), nil
}

// runIteration performs one select -> expand -> rollout -> backpropagate
// pass, grounded on MultiWorker's single-iteration body.
func runIteration(root *Node, mode engine.Mode, rng *rand.Rand, instruments Telemetry) {
	start := time.Now()
	defer func() {
		if instruments != nil {
			instruments.ObserveSimulation(time.Since(start))
		}
	}()

	node := selectNode(root, mode)
	if node.Board.IsOver() {
		backpropagate(node, evaluate(node.Board, mode))
		return
	}

	child := node.expandOne(mode)
	if child == nil {
		// Fully expanded and terminal-for-selection: treat as a leaf.
		backpropagate(node, evaluate(node.Board, mode))
		return
	}

	scores := rollout(child.Board, mode, rng, 20)
	backpropagate(child, scores)
}

// selectNode walks down fully-expanded nodes via UCT until it reaches
// one with an unexpanded successor remaining, or a leaf.
func selectNode(n *Node, mode engine.Mode) *Node {
	for {
		if n.Board.IsOver() {
			return n
		}
		if !n.isExhausted() {
			return n
		}
		children := n.childSnapshot()
		if len(children) == 0 {
			return n
		}
		n = bestUCTChild(n, children)
	}
}

func bestUCTChild(parent *Node, children []*Node) *Node {
	var best *Node
	bestScore := math.Inf(-1)
	parentVisits := parent.visits()
	for _, c := range children {
		score := uctValue(c, parentVisits)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	if best == nil {
		return children[0]
	}
	return best
}

// uctValue averages the UCT formula across every agent present in the
// child's scores, matching MultiUCT's cross-snake average.
func uctValue(n *Node, parentVisits int64) float64 {
	visits := n.visits()
	if visits == 0 {
		return math.Inf(1)
	}

	var sum float64
	count := 0
	for _, id := range n.Board.AgentIDs() {
		sum += n.averageScore(id) + explorationConstant*math.Sqrt(math.Log(float64(parentVisits+1))/float64(visits))
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// rollout plays up to depth random ReasonableDirections joint moves past
// board and scores the result, grounded on MultiWorker's simulate step
// (the teacher's random playout, here capped by depth rather than by
// reaching a terminal state on boards with lots of open space).
func rollout(board engine.Board, mode engine.Mode, rng *rand.Rand, depth int) map[engine.AgentID]float64 {
	current := board
	for i := 0; i < depth && !current.IsOver(); i++ {
		successors := collectSuccessors(current, mode)
		if len(successors) == 0 {
			break
		}
		current = successors[rng.Intn(len(successors))]
	}
	return evaluate(current, mode)
}

func collectSuccessors(board engine.Board, mode engine.Mode) []engine.Board {
	var out []engine.Board
	for _, b := range engine.Simulate(board, mode) {
		out = append(out, b)
	}
	return out
}

func backpropagate(n *Node, scores map[engine.AgentID]float64) {
	for cur := n; cur != nil; cur = cur.Parent {
		cur.recordVisit(scores)
	}
}

// bestChildDirection picks the most-visited child reachable by a single
// move of `me`, matching MultiBestChild/MultiDetermineBestMove's
// robust-child (visit count, not raw score) selection.
func bestChildDirection(root *Node, me engine.AgentID) engine.Direction {
	children := root.childSnapshot()
	var best *Node
	var bestDir engine.Direction
	bestVisits := int64(-1)

	for _, c := range children {
		d, ok := c.Action[me]
		if !ok {
			continue
		}
		if v := c.visits(); v > bestVisits {
			bestVisits = v
			best = c
			bestDir = d
		}
	}
	if best == nil {
		return engine.Up
	}
	return bestDir
}

// ReasonableDirectionsFor exposes the root's per-agent candidate set so
// FindBestMove can short-circuit a trapped snake without running a
// single iteration.
func (n *Node) ReasonableDirectionsFor(id engine.AgentID, mode engine.Mode) []engine.Direction {
	ids := n.Board.AgentIDs()
	alive := make([]engine.AgentID, 0, len(ids))
	for _, a := range ids {
		if n.Board.IsAlive(a) {
			alive = append(alive, a)
		}
	}
	table := engine.GenerateState(&n.Board, mode, alive)
	return engine.ReasonableDirections(table, id)
}
