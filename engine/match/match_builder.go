package match

import "log/slog"

// MatchOption is a functional option for configuring a Match.
type MatchOption func(*matchImpl)

// WithLogger sets the logger for score and collision reports.
//
// Parameters:
//   - logger: the logger, nil keeps slog.Default
//
// Returns:
//   - MatchOption: functional option to set the logger
func WithLogger(logger *slog.Logger) MatchOption {
	return func(m *matchImpl) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithIncrement sets how far the ball advances per tick.
//
// Parameters:
//   - inc: route parameter step, ignored unless positive
//
// Returns:
//   - MatchOption: functional option to set the increment
func WithIncrement(inc float64) MatchOption {
	return func(m *matchImpl) {
		if inc > 0 {
			m.increment = inc
		}
	}
}

// WithPlacements replaces the default card layout.
//
// Parameters:
//   - placements: the cards to place each round
//
// Returns:
//   - MatchOption: functional option to set the card layout
func WithPlacements(placements ...CardPlacement) MatchOption {
	return func(m *matchImpl) {
		m.placements = placements
	}
}

// WithStartRoute sets the route the ball starts each match on.
//
// Parameters:
//   - r: the kickoff route
//
// Returns:
//   - MatchOption: functional option to set the start route
func WithStartRoute(r RouteID) MatchOption {
	return func(m *matchImpl) {
		if r >= RouteLeftWinger && r <= RouteRightWinger {
			m.startRoute = r
		}
	}
}

// WithSearchWorkers sets the worker count of the nearest-point search pool.
// Zero or less searches on the calling goroutine.
//
// Parameters:
//   - n: number of pool workers
//
// Returns:
//   - MatchOption: functional option to set the worker count
func WithSearchWorkers(n int) MatchOption {
	return func(m *matchImpl) {
		m.workers = n
	}
}
