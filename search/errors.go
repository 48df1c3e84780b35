package search

import "errors"

// errNotAlive is returned by FindBestMove when asked to move an agent
// that is already dead on the given board.
var errNotAlive = errors.New("search: agent is not alive on this board")
