package bisect_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/bisect"
)

func formula(t testing.TB, src string) bisect.Func {
	t.Helper()
	e, err := bisect.ParseFormula(src)
	if err != nil {
		t.Fatalf("couldn't parse %q: %v", src, err)
	}
	return e.Func()
}

func TestSolveSqrt2(t *testing.T) {
	r, err := bisect.Solve(formula(t, "x^2 - 2"), 0, 2, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.Root-math.Sqrt2) > 1e-6 {
		t.Errorf("wrong root: want %g, got %g", math.Sqrt2, r.Root)
	}
	if r.Iterations < 1 {
		t.Errorf("wrong iteration count %d", r.Iterations)
	}
	if !near(r.Value, r.Root*r.Root-2, 1e-15) {
		t.Errorf("value %g does not match f(%g)", r.Value, r.Root)
	}
}

func TestSolveFormulas(t *testing.T) {
	cases := []struct {
		name string
		src  string
		a, b float64
		want float64
	}{
		{"cubic", "x^3 - x - 2", 1, 2, 1.5213797068045676},
		{"dottie", "cos(x) - x", 0, 1, 0.7390851332151607},
		{"exp", "exp(x) - 3", 0, 2, math.Log(3)},
		{"sin", "sin(x)", 3, 4, math.Pi},
		{"negative", "x^2 - 2", -2, 0, -math.Sqrt2},
		{"log-base", "log(x, 2) - 3", 1, 10, 8},
		{"decreasing", "exp(-x) - x", 0, 1, 0.5671432904097838},
		{"wide", "x - 1e6", 0, 1e9, 1e6},
	}
	const eps = 1e-8
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			for _, classic := range []bool{false, true} {
				var opts []bisect.SolveOption
				if classic {
					opts = append(opts, bisect.Classic())
				}
				r, err := bisect.Solve(formula(t, c.src), c.a, c.b, eps, opts...)
				if err != nil {
					t.Fatalf("classic=%t: %v", classic, err)
				}
				// |f| < eps can hold further than eps from the root where f is
				// shallow, so allow some slack.
				if math.Abs(r.Root-c.want) > 10*eps {
					t.Errorf("classic=%t: wrong root: want %.17g, got %.17g", classic, c.want, r.Root)
				}
				if r.Iterations < 1 || r.Iterations > 100 {
					t.Errorf("classic=%t: wrong iteration count %d", classic, r.Iterations)
				}
			}
		})
	}
}

func TestSolveEndpoints(t *testing.T) {
	cases := []struct {
		name string
		f    bisect.Func
		a, b float64
		root float64
	}{
		{"left", bisect.Real(func(x float64) float64 { return x - 1 }), 1, 3, 1},
		{"right", bisect.Real(func(x float64) float64 { return x - 1 }), -1, 1, 1},
		{"near-left", bisect.Real(func(x float64) float64 { return x - 1 + 5e-6 }), 1, 3, 1},
		{"both", bisect.Real(func(x float64) float64 { return 0 }), -1, 1, -1},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			r, err := bisect.Solve(c.f, c.a, c.b, 1e-6)
			if err != nil {
				t.Fatal(err)
			}
			if r.Root != c.root {
				t.Errorf("wrong root: want %g, got %g", c.root, r.Root)
			}
			if r.Iterations != 0 {
				t.Errorf("endpoint root took %d iterations", r.Iterations)
			}
		})
	}
}

func TestSolveInvalid(t *testing.T) {
	f := formula(t, "x")
	cases := []struct {
		name    string
		a, b    float64
		eps     float64
		is      error
		matches *regexp.Regexp
	}{
		{"equal", 1, 1, 1e-6, bisect.ErrInvalidInterval, regexp.MustCompile(`\[1, 1\]`)},
		{"reversed", 2, -1, 1e-6, bisect.ErrInvalidInterval, regexp.MustCompile(`\[2, -1\]`)},
		{"nan", math.NaN(), 1, 1e-6, bisect.ErrInvalidInterval, regexp.MustCompile(`NaN`)},
		{"inf", -1, math.Inf(1), 1e-6, bisect.ErrInvalidInterval, regexp.MustCompile(`\+Inf`)},
		{"zero-eps", -1, 1, 0, bisect.ErrInvalidPrecision, regexp.MustCompile(`(?i)\bprecision 0\b`)},
		{"neg-eps", -1, 1, -1e-6, bisect.ErrInvalidPrecision, regexp.MustCompile(`-1e-06`)},
		{"nan-eps", -1, 1, math.NaN(), bisect.ErrInvalidPrecision, regexp.MustCompile(`NaN`)},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			r, err := bisect.Solve(f, c.a, c.b, c.eps)
			if err == nil {
				t.Fatalf("no error; got %+v", r)
			}
			if !errors.Is(err, c.is) {
				t.Errorf("error %v is not %v", err, c.is)
			}
			if !c.matches.MatchString(err.Error()) {
				t.Errorf("error %q does not match %v", err.Error(), c.matches)
			}
		})
	}
}

func TestSolveNotBracketing(t *testing.T) {
	_, err := bisect.Solve(formula(t, "x^2 + 1"), -1, 1, 1e-6)
	var nb *bisect.NotBracketingError
	if !errors.As(err, &nb) {
		t.Fatalf("wrong error: %v", err)
	}
	want := bisect.NotBracketingError{A: -1, B: 1, FA: 2, FB: 2}
	if *nb != want {
		t.Errorf("wrong error fields: want %+v, got %+v", want, *nb)
	}
	if !errors.Is(err, bisect.ErrNotBracketing) {
		t.Errorf("error %v is not ErrNotBracketing", err)
	}
	if !strings.Contains(err.Error(), "f(-1) = 2") {
		t.Errorf("error %q does not report the endpoint values", err.Error())
	}
}

func TestSolveNonFinite(t *testing.T) {
	// 1/x changes sign across its pole, so the search closes in on 0.
	r, err := bisect.Solve(formula(t, "1/x"), -1, 2, 1e-7)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.Root) > 1e-7 {
		t.Errorf("wrong root: want near 0, got %g", r.Root)
	}
	if math.IsInf(r.Value, 0) || math.IsNaN(r.Value) {
		t.Errorf("non-finite value %g", r.Value)
	}
	// sqrt(x) - 1 is MaxFloat64 at -1, which has the same sign as f(4).
	_, err = bisect.Solve(formula(t, "sqrt(x) - 1"), -1, 4, 1e-7)
	if !errors.Is(err, bisect.ErrNotBracketing) {
		t.Errorf("wrong error for undefined endpoint: %v", err)
	}
}

func TestSolveTinyValues(t *testing.T) {
	// f(a)*f(b) underflows to zero, but the signs still differ.
	f := bisect.Real(func(x float64) float64 { return x * 1e-300 })
	r, err := bisect.Solve(f, -1, 2, 1e-310)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.Root) > 1e-9 {
		t.Errorf("wrong root: want near 0, got %g", r.Root)
	}
}

func TestSolveIterationCap(t *testing.T) {
	t.Run("option", func(t *testing.T) {
		r, err := bisect.Solve(formula(t, "x^2 - 2"), 0, 2, 1e-12, bisect.MaxIter(5))
		if err != nil {
			t.Fatal(err)
		}
		if r.Iterations != 5 {
			t.Errorf("wrong iteration count: want 5, got %d", r.Iterations)
		}
		// The fifth midpoint is 1.4375, leaving [1.375, 1.4375].
		if want := 1.40625; r.Root != want {
			t.Errorf("wrong root: want %g, got %g", want, r.Root)
		}
	})
	t.Run("default", func(t *testing.T) {
		f := bisect.Real(func(x float64) float64 { return x - 1e-40 })
		r, err := bisect.Solve(f, -1e30, 1e30, 1e-300)
		if err != nil {
			t.Fatal(err)
		}
		if r.Iterations != 100 {
			t.Errorf("wrong iteration count: want 100, got %d", r.Iterations)
		}
	})
	t.Run("stall", func(t *testing.T) {
		// The interval cannot shrink below the spacing of floats near the
		// root, so the search stops before the cap.
		r, err := bisect.Solve(formula(t, "x - 1/3"), 0, 1, 1e-300, bisect.MaxIter(1000))
		if err != nil {
			t.Fatal(err)
		}
		if r.Iterations >= 1000 {
			t.Errorf("search did not stop when the interval stalled: %d iterations", r.Iterations)
		}
		if math.Abs(r.Root-1.0/3) > 1e-15 {
			t.Errorf("wrong root: want %g, got %g", 1.0/3, r.Root)
		}
	})
}

func TestSolveClassic(t *testing.T) {
	t.Run("limit", func(t *testing.T) {
		_, err := bisect.Solve(formula(t, "x^2 - 2"), 0, 2, 1e-12, bisect.Classic(), bisect.MaxIter(5))
		var il *bisect.IterationLimitError
		if !errors.As(err, &il) {
			t.Fatalf("wrong error: %v", err)
		}
		if il.Limit != 5 {
			t.Errorf("wrong limit: want 5, got %d", il.Limit)
		}
		if math.Abs(il.Best.Root-math.Sqrt2) > 0.1 {
			t.Errorf("bad best estimate %g", il.Best.Root)
		}
		if !errors.Is(err, bisect.ErrIterationLimit) {
			t.Errorf("error %v is not ErrIterationLimit", err)
		}
	})
	t.Run("no-endpoint-shortcut", func(t *testing.T) {
		_, err := bisect.Solve(formula(t, "x - 1"), 1, 3, 1e-6, bisect.Classic())
		if !errors.Is(err, bisect.ErrNotBracketing) {
			t.Errorf("wrong error for zero at endpoint: %v", err)
		}
	})
	t.Run("converge", func(t *testing.T) {
		r, err := bisect.Solve(formula(t, "x^2 - 2"), 0, 2, 1e-6, bisect.Classic())
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(r.Root-math.Sqrt2) > 1e-6 {
			t.Errorf("wrong root: want %g, got %g", math.Sqrt2, r.Root)
		}
	})
}

func TestSolveRefine(t *testing.T) {
	// Both formulas first come within 0.01 of zero at the sixth midpoint,
	// 0.296875, after which three more midpoints are evaluated.
	cases := []struct {
		name string
		root float64
		want float64
	}{
		{"closer", 0.3, 0.30078125},
		{"kept", 0.297, 0.296875},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			var xs []float64
			f := func(x float64) (float64, error) {
				xs = append(xs, x)
				return x - c.root, nil
			}
			steps := 0
			trace := func(bisect.Step) error {
				steps++
				return nil
			}
			r, err := bisect.Solve(f, 0, 1, 0.01, bisect.Trace(trace))
			if err != nil {
				t.Fatal(err)
			}
			if r.Root != c.want {
				t.Errorf("wrong root: want %g, got %g", c.want, r.Root)
			}
			if r.Value != c.want-c.root {
				t.Errorf("wrong value: want %g, got %g", c.want-c.root, r.Value)
			}
			if r.Iterations != 6 || steps != 6 {
				t.Errorf("wrong iterations: want 6, got %d with %d steps traced", r.Iterations, steps)
			}
			wantxs := []float64{0, 1, 0.5, 0.25, 0.375, 0.3125, 0.28125, 0.296875, 0.3046875, 0.30078125, 0.298828125}
			if diff := cmp.Diff(wantxs, xs); diff != "" {
				t.Errorf("wrong evaluations (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSolveTrace(t *testing.T) {
	t.Run("steps", func(t *testing.T) {
		var steps []bisect.Step
		trace := func(s bisect.Step) error {
			steps = append(steps, s)
			return nil
		}
		r, err := bisect.Solve(formula(t, "x^2 - 2"), 0, 2, 1e-6, bisect.Trace(trace))
		if err != nil {
			t.Fatal(err)
		}
		if len(steps) != r.Iterations {
			t.Errorf("traced %d steps in %d iterations", len(steps), r.Iterations)
		}
		for i, s := range steps {
			if s.K != i+1 {
				t.Errorf("step %d has K=%d", i, s.K)
			}
			if !(s.Left < s.Mid && s.Mid < s.Right) {
				t.Errorf("step %d: midpoint %g outside (%g, %g)", s.K, s.Mid, s.Left, s.Right)
			}
			if !near(s.FMid, s.Mid*s.Mid-2, 1e-15) {
				t.Errorf("step %d: wrong value %g at %g", s.K, s.FMid, s.Mid)
			}
		}
		if len(steps) > 0 && steps[0].Mid != 1 {
			t.Errorf("first midpoint: want 1, got %g", steps[0].Mid)
		}
	})
	t.Run("stop", func(t *testing.T) {
		trace := func(s bisect.Step) error {
			if s.K == 3 {
				return bisect.ErrStopped
			}
			return nil
		}
		r, err := bisect.Solve(formula(t, "x^2 - 2"), 0, 2, 1e-6, bisect.Trace(trace))
		if !errors.Is(err, bisect.ErrStopped) {
			t.Fatalf("wrong error: %v", err)
		}
		if r.Iterations != 3 || r.Root != 1.25 {
			t.Errorf("wrong result after stop: %+v", r)
		}
	})
	t.Run("error", func(t *testing.T) {
		boom := errors.New("boom")
		trace := func(s bisect.Step) error { return boom }
		_, err := bisect.Solve(formula(t, "x^2 - 2"), 0, 2, 1e-6, bisect.Trace(trace))
		if !errors.Is(err, boom) {
			t.Errorf("wrong error: %v", err)
		}
	})
}

func TestSolveFuncError(t *testing.T) {
	boom := errors.New("boom")
	f := func(x float64) (float64, error) {
		if x > 1 && x < 2 {
			return 0, boom
		}
		return x - 1.5, nil
	}
	_, err := bisect.Solve(f, 0, 4, 1e-6)
	if !errors.Is(err, boom) {
		t.Fatalf("wrong error: %v", err)
	}
	if !strings.Contains(err.Error(), "f(1.5)") {
		t.Errorf("error %q does not say where f failed", err.Error())
	}
	_, err = bisect.Solve(f, 1.2, 4, 1e-6)
	if !errors.Is(err, boom) {
		t.Errorf("wrong error at endpoint: %v", err)
	}
}

func TestSolveLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := bisect.Solve(formula(t, "x^2 - 2"), 0, 2, 1e-3, bisect.Logger(log))
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"msg=bisect", "k=1 ", "mid=1 "} {
		if !strings.Contains(out, want) {
			t.Errorf("log output lacks %q:\n%s", want, out)
		}
	}
}

func TestSolveNilOption(t *testing.T) {
	r, err := bisect.Solve(formula(t, "x - 0.5"), 0, 2, 1e-6, nil, bisect.MaxIter(0))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.Root-0.5) > 1e-6 {
		t.Errorf("wrong root %g", r.Root)
	}
}

func ExampleSolve() {
	e, err := bisect.ParseFormula("x^2 - 2")
	if err != nil {
		panic(err)
	}
	r, err := bisect.Solve(e.Func(), 0, 2, 1e-9)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.6f\n", r.Root)
	// Output:
	// 1.414214
}

func BenchmarkSolve(b *testing.B) {
	f := formula(b, "exp(-x) - sin(x)/2")
	for i := 0; i < b.N; i++ {
		if _, err := bisect.Solve(f, 0, 2, 1e-12); err != nil {
			b.Fatal(err)
		}
	}
}
