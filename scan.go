package bisect

import (
	"fmt"
	"math"
)

// Bracket is the result of a scan for an interval on which a function changes
// sign. If Found is false, Low and High are zero.
type Bracket struct {
	Low, High float64
	Found     bool
}

// ScanForBracket samples f at start, start+step, start+2*step, ... while the
// sample point does not exceed end, and returns the first pair of consecutive
// sample points at which f has strictly opposite signs.
//
// A step that is too coarse can pass over a pair of roots, or a root at which
// f touches zero without changing sign; the scan does not detect this. A
// sample that is exactly zero never counts as a sign change.
//
// The scan takes (end-start)/step steps whether or not they evaluate f. A
// sample point that rounds to the previous one is skipped without calling f,
// so a step far below the float spacing near start can loop for a very long
// time without making progress.
//
// ScanForBracket fails with an *InvalidStepError unless step is positive and
// finite. Errors from f are returned wrapped.
func ScanForBracket(f Func, start, end, step float64) (Bracket, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return Bracket{}, &InvalidStepError{Step: step}
	}
	x1 := start
	f1, err := f(x1)
	if err != nil {
		return Bracket{}, fmt.Errorf("scanning at %g: %w", x1, err)
	}
	for i := 1; ; i++ {
		// Computing each point from start keeps rounding error from
		// accumulating across the scan.
		x2 := start + float64(i)*step
		if !(x2 <= end) {
			break
		}
		if x2 == x1 {
			// step is below the resolution of floats near start.
			continue
		}
		f2, err := f(x2)
		if err != nil {
			return Bracket{}, fmt.Errorf("scanning at %g: %w", x2, err)
		}
		if opposite(f1, f2) {
			return Bracket{Low: x1, High: x2, Found: true}, nil
		}
		x1, f1 = x2, f2
	}
	return Bracket{}, nil
}

// Defined reports whether f produces a finite value without error at each of
// samples+1 evenly spaced points spanning [a, b]. The value math.MaxFloat64,
// which Eval substitutes for non-finite results, counts as undefined. If
// samples <= 0, 10 intervals are used.
func Defined(f Func, a, b float64, samples int) bool {
	if samples <= 0 {
		samples = 10
	}
	h := (b - a) / float64(samples)
	for i := 0; i <= samples; i++ {
		x := a + float64(i)*h
		if i == samples {
			x = b
		}
		v, err := f(x)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) || math.Abs(v) == math.MaxFloat64 {
			return false
		}
	}
	return true
}
