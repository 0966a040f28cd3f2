package bisect

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

const (
	// refinedMaxIter is the default iteration cap of the refined solver.
	refinedMaxIter = 100
	// classicMaxIter is the default iteration cap of the classic solver.
	classicMaxIter = 1000
	// refineSteps is the number of extra evaluations made once the refined
	// solver finds |f(mid)| < epsilon.
	refineSteps = 3
	// endpointTol is the multiple of epsilon within which an endpoint value
	// counts as a root.
	endpointTol = 10
)

// Result is the outcome of a successful search.
type Result struct {
	// Root is the estimate of the root.
	Root float64
	// Value is the function value at Root.
	Value float64
	// Iterations is the number of halvings of the interval. It is zero when
	// an endpoint was accepted as the root.
	Iterations int
}

// Step describes one iteration of the bisection main loop.
type Step struct {
	// K is the 1-based iteration number.
	K int
	// Left and Right bound the interval that Mid halves.
	Left, Right float64
	// Mid is the midpoint of the interval and FMid the function value there.
	Mid, FMid float64
}

type solver struct {
	solvectx
	f   Func
	eps float64
}

// Solve finds a root of f in [a, b] by bisection to within epsilon.
//
// If |f(a)| or |f(b)| is less than 10*epsilon, that endpoint is the root and
// no iterations happen. Otherwise f(a) and f(b) must have strictly opposite
// signs, or Solve fails with a *NotBracketingError. The interval is then
// halved, keeping the half over which f changes sign, until it is no wider
// than epsilon or the iteration cap (100 by default) is reached; the result
// is the midpoint of the final interval. If the midpoint of some iteration
// has |f| < epsilon, three more halvings refine the estimate, and the result
// is whichever evaluated point had the smallest |f|.
//
// Solve fails with an *InvalidIntervalError unless a < b, or with an
// *InvalidPrecisionError unless epsilon > 0. Errors from f are returned
// wrapped. Use Classic for the classic variant of the algorithm.
func Solve(f Func, a, b, epsilon float64, opts ...SolveOption) (Result, error) {
	var p solvectx
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.solveOption(p)
	}
	if p.maxIter <= 0 {
		p.maxIter = refinedMaxIter
		if p.classic {
			p.maxIter = classicMaxIter
		}
	}
	if p.log == nil {
		p.log = slog.New(slog.DiscardHandler)
	}
	if !(a < b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return Result{}, &InvalidIntervalError{A: a, B: b}
	}
	if !(epsilon > 0) {
		return Result{}, &InvalidPrecisionError{Epsilon: epsilon}
	}
	s := solver{solvectx: p, f: f, eps: epsilon}
	fa, err := s.at(a)
	if err != nil {
		return Result{}, err
	}
	fb, err := s.at(b)
	if err != nil {
		return Result{}, err
	}
	if !s.classic {
		if math.Abs(fa) < endpointTol*epsilon {
			s.log.Debug("root at left endpoint", "x", a, "fx", fa)
			return Result{Root: a, Value: fa}, nil
		}
		if math.Abs(fb) < endpointTol*epsilon {
			s.log.Debug("root at right endpoint", "x", b, "fx", fb)
			return Result{Root: b, Value: fb}, nil
		}
	}
	if !opposite(fa, fb) {
		return Result{}, &NotBracketingError{A: a, B: b, FA: fa, FB: fb}
	}
	return s.bisect(a, b, fa)
}

// bisect runs the main loop on [left, right], where fleft = f(left) and f
// changes sign on the interval.
func (s *solver) bisect(left, right, fleft float64) (Result, error) {
	near := s.eps
	if s.classic {
		near = s.eps * 0.1
	}
	k := 0
	for right-left > s.eps {
		if k >= s.maxIter {
			if s.classic {
				r, err := s.final(left, right, k)
				if err != nil {
					return Result{}, err
				}
				return Result{}, &IterationLimitError{Limit: s.maxIter, Best: r}
			}
			s.log.Debug("iteration cap reached", "k", k, "left", left, "right", right)
			break
		}
		mid := midpoint(left, right)
		if mid <= left || mid >= right {
			// The interval has no representable interior.
			break
		}
		fmid, err := s.at(mid)
		if err != nil {
			return Result{}, err
		}
		k++
		s.log.Debug("bisect", "k", k, "left", left, "right", right, "mid", mid, "fmid", fmid)
		if s.trace != nil {
			err := s.trace(Step{K: k, Left: left, Right: right, Mid: mid, FMid: fmid})
			if errors.Is(err, ErrStopped) {
				return Result{Root: mid, Value: fmid, Iterations: k}, err
			}
			if err != nil {
				return Result{}, err
			}
		}
		if math.Abs(fmid) < near {
			if s.classic {
				return Result{Root: mid, Value: fmid, Iterations: k}, nil
			}
			return s.refine(left, right, fleft, mid, fmid, k)
		}
		if opposite(fleft, fmid) {
			right = mid
		} else {
			left, fleft = mid, fmid
		}
	}
	return s.final(left, right, k)
}

// refine narrows [left, right] with (mid, fmid) and then halves the interval
// refineSteps more times, keeping the evaluated point with the smallest |f|.
func (s *solver) refine(left, right, fleft, mid, fmid float64, k int) (Result, error) {
	best := Result{Root: mid, Value: fmid, Iterations: k}
	for i := 0; i < refineSteps && fmid != 0; i++ {
		if opposite(fleft, fmid) {
			right = mid
		} else {
			left, fleft = mid, fmid
		}
		mid = midpoint(left, right)
		if mid <= left || mid >= right {
			break
		}
		var err error
		fmid, err = s.at(mid)
		if err != nil {
			return Result{}, err
		}
		if math.Abs(fmid) < math.Abs(best.Value) {
			best.Root, best.Value = mid, fmid
		}
	}
	s.log.Debug("refined", "x", best.Root, "fx", best.Value, "k", k)
	return best, nil
}

// final evaluates the midpoint of the last interval.
func (s *solver) final(left, right float64, k int) (Result, error) {
	root := midpoint(left, right)
	v, err := s.at(root)
	if err != nil {
		return Result{}, err
	}
	s.log.Debug("converged", "x", root, "fx", v, "k", k, "width", right-left)
	return Result{Root: root, Value: v, Iterations: k}, nil
}

func (s *solver) at(x float64) (float64, error) {
	v, err := s.f(x)
	if err != nil {
		return 0, fmt.Errorf("evaluating f(%g): %w", x, err)
	}
	return v, nil
}

// midpoint returns the midpoint of [l, r] without overflowing.
func midpoint(l, r float64) float64 {
	m := (l + r) / 2
	if math.IsInf(m, 0) {
		m = l/2 + r/2
	}
	return m
}

// opposite returns whether p and q have strictly opposite signs. It compares
// signs instead of testing p*q < 0, which underflows for tiny p and q.
func opposite(p, q float64) bool {
	return p < 0 && q > 0 || p > 0 && q < 0
}
