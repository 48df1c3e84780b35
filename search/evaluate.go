package search

import (
	"github.com/brensch/snakecore/engine"
	"github.com/brensch/snakecore/voronoi"
)

// evaluate scores a terminal or depth-cutoff board for every agent that
// is or was alive on it, blending health, length, and flood-fill
// territory, grounded on the teacher's evaluateBoard/getScore (mcts.go,
// mactssimul.go) which folded the same three signals into one UCT
// reward per snake.
func evaluate(board engine.Board, mode engine.Mode) map[engine.AgentID]float64 {
	scores := make(map[engine.AgentID]float64, engine.MaxAgents)

	territory := voronoi.Count(voronoi.FloodFill(board, mode))
	totalTerritory := 0
	for _, c := range territory {
		totalTerritory += c
	}

	for _, id := range board.AgentIDs() {
		if !board.IsAlive(id) {
			scores[id] = 0
			continue
		}
		healthScore := float64(board.Health(id)) / float64(engine.StartingHealth)
		lengthScore := float64(board.Length(id)) / 20.0
		if lengthScore > 1 {
			lengthScore = 1
		}
		territoryScore := 0.0
		if totalTerritory > 0 {
			territoryScore = float64(territory[id]) / float64(totalTerritory)
		}

		scores[id] = 0.4*healthScore + 0.2*lengthScore + 0.4*territoryScore
	}

	if winner, ok := board.Winner(); ok {
		scores[winner] = 1.0
	}
	if !board.IsAlive(0) {
		scores[0] = 0.0
	}

	return scores
}
