package bisect

import "log/slog"

// SolveOption is an option for Solve.
type SolveOption interface {
	solveOption(solvectx) solvectx
}

type (
	maxiteropt int
	classicopt struct{}
	traceopt   func(Step) error
	logopt     struct{ log *slog.Logger }
)

// solvectx holds the settings for one call to Solve.
type solvectx struct {
	// maxIter is the iteration cap. Zero selects the variant's default.
	maxIter int
	// classic selects the classic variant.
	classic bool
	// trace is called after each iteration of the main loop.
	trace func(Step) error
	// log receives debug records for each iteration.
	log *slog.Logger
}

// MaxIter overrides the iteration cap. When the refined solver reaches the
// cap, it returns its current estimate. When the classic solver reaches it,
// it fails with an *IterationLimitError. n <= 0 restores the default, which
// is 100 for the refined solver and 1000 for the classic one.
func MaxIter(n int) SolveOption {
	return maxiteropt(n)
}

func (o maxiteropt) solveOption(p solvectx) solvectx {
	p.maxIter = int(o)
	return p
}

// Classic selects the classic bisection variant. It has no shortcut for roots
// at the endpoints, stops early only when |f(mid)| < epsilon/10, has no
// refinement pass, and treats exhausting its iteration cap as an error.
func Classic() SolveOption {
	return classicopt{}
}

func (classicopt) solveOption(p solvectx) solvectx {
	p.classic = true
	return p
}

// Trace sets a function to call after each iteration of the main loop. If fn
// returns ErrStopped, Solve returns the midpoint just evaluated along with
// ErrStopped. If it returns any other error, Solve returns that error.
func Trace(fn func(Step) error) SolveOption {
	return traceopt(fn)
}

func (o traceopt) solveOption(p solvectx) solvectx {
	p.trace = o
	return p
}

// Logger sets a logger to receive a debug record for each iteration and for
// the outcome of the search. By default, nothing is logged.
func Logger(log *slog.Logger) SolveOption {
	return logopt{log}
}

func (o logopt) solveOption(p solvectx) solvectx {
	p.log = o.log
	return p
}
