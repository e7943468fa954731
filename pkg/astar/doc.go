// Package astar implements a stepped A* search over any graph described by a
// Heuristic.
//
// The search is driven one expansion at a time, so callers can spread a long
// search over several frames or inspect its progress:
//
//	s := astar.New[grid.Tile](h)
//	s.Start(src, dst)
//	for !s.IsIdle() {
//	    s.Step()
//	}
//	if s.State() == astar.Found {
//	    fmt.Println(s.Path().Nodes)
//	}
//
// Run drives the same loop to completion and honours context cancellation.
//
// Costs:
//
//   - Heuristic.Cost(n) is the cost of entering n; the cost of a path is the sum
//     over every node but the first.
//   - Heuristic.Estimate must not overestimate the remaining cost for the
//     returned path to be optimal.
//
// Open set:
//
//   - container/heap ordered by estimated total cost, ties broken by insertion
//     order.
//   - Lazy decrease-key: a cheaper route to a node pushes a new entry, and
//     entries whose cost is no longer the best known are skipped when popped.
//
// Errors (sentinel):
//
//   - ErrNotStarted if Run is called before Start.
//   - ErrNoPath     if the open set is exhausted before reaching the target.
//   - ErrLimit      if the expansion limit set with WithLimit is reached.
package astar
