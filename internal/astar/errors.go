package astar

import "errors"

// ErrTrialBudgetExceeded is returned when the search exhausts its
// configured node-expansion budget without reaching the goal.
var ErrTrialBudgetExceeded = errors.New("astar: trial budget exceeded")

// ErrFrontierEmpty is returned when the frontier empties before the goal
// is reached.
var ErrFrontierEmpty = errors.New("astar: frontier emptied without reaching goal")

// ErrStartEqualsEnd is returned when Start == End, which is ill-defined
// for this search (callers must not invoke A* this way).
var ErrStartEqualsEnd = errors.New("astar: start equals end")
