package solver

import "errors"

// ErrNoSolution is returned when the backtracking stack empties without
// ever reaching a node that covers every connection.
var ErrNoSolution = errors.New("solver: no solution found")
