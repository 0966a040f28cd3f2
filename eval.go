package bisect

import (
	"errors"
	"math"
)

// ErrEvaluation is the error that EvaluationError unwraps to, in addition to
// its cause.
var ErrEvaluation = errors.New("evaluation error")

// Func is a real function of one variable, as consumed by Solve,
// ScanForBracket, and Defined. An error aborts the caller.
type Func func(x float64) (float64, error)

// Real adapts a function that cannot fail to a Func.
func Real(f func(float64) float64) Func {
	return func(x float64) (float64, error) {
		return f(x), nil
	}
}

// Eval evaluates the expression with the variable x bound to the given value.
//
// Arithmetic that produces an infinity or NaN, e.g. division by zero or the
// square root of a negative number, is not an error. Instead, the result is
// math.MaxFloat64, so that a sign is always defined for it. An error is
// returned only if the expression itself is malformed, in which case it is an
// *EvaluationError.
func (e *Expr) Eval(x float64) (float64, error) {
	if e == nil || e.n == nil {
		return math.MaxFloat64, &EvaluationError{X: x, Err: errNilExpr}
	}
	r, err := e.n.eval(x)
	if err != nil {
		return math.MaxFloat64, &EvaluationError{X: x, Err: err}
	}
	return finite(r), nil
}

// Func returns e.Eval as a Func.
func (e *Expr) Func() Func {
	return e.Eval
}

// Evaluate evaluates e at x. It always produces a finite real: where Eval
// would return an error, the result is math.MaxFloat64.
func Evaluate(e *Expr, x float64) float64 {
	r, _ := e.Eval(x)
	return r
}

// finite replaces non-finite values with math.MaxFloat64.
func finite(r float64) float64 {
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return math.MaxFloat64
	}
	return r
}

// eval computes the node's value in post-order. Non-finite intermediate
// values propagate; only Eval normalizes them.
func (n *node) eval(x float64) (float64, error) {
	if n == nil {
		return 0, errNilNode
	}
	switch n.kind {
	case nodeNum, nodeConst:
		return n.num, nil
	case nodeVar:
		return x, nil
	case nodeCall:
		if !n.fn.CanCall(len(n.args)) {
			return 0, &ArityError{Func: n.fn.String(), Want: arityOrNone(n.fn), Len: len(n.args)}
		}
		var buf [2]float64
		args := buf[:0]
		for _, arg := range n.args {
			v, err := arg.eval(x)
			if err != nil {
				return 0, err
			}
			args = append(args, v)
		}
		return n.fn.call(args), nil
	case nodeNeg, nodeNop:
		v, err := n.left.eval(x)
		if err != nil {
			return 0, err
		}
		if n.kind == nodeNeg {
			return -v, nil
		}
		return v, nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, err := n.left.eval(x)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(x)
		if err != nil {
			return 0, err
		}
		switch n.kind {
		case nodeAdd:
			return l + r, nil
		case nodeSub:
			return l - r, nil
		case nodeMul:
			return l * r, nil
		case nodeDiv:
			return l / r, nil
		default:
			return math.Pow(l, r), nil
		}
	default:
		return 0, errors.New("invalid node kind " + n.kind.String())
	}
}

func arityOrNone(f builtin) string {
	if f <= fnNone || int(f) >= len(fninfos) {
		return "none"
	}
	return f.arity()
}

var (
	errNilExpr = errors.New("nil expression")
	errNilNode = errors.New("missing operand")
)

// EvaluationError is an error indicating that an expression could not be
// evaluated at all, as opposed to evaluating to a non-finite value.
type EvaluationError struct {
	// X is the value of the variable at which evaluation failed.
	X float64
	// Err is the underlying cause.
	Err error
}

func (err *EvaluationError) Error() string {
	return "evaluating at x=" + ftoa(err.X) + ": " + err.Err.Error()
}

func (err *EvaluationError) Unwrap() []error {
	return []error{ErrEvaluation, err.Err}
}
