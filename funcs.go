package bisect

import (
	"math"
	"strconv"
)

// builtin is a function recognized in formulas. The set is closed; names are
// resolved to a builtin once, at parse time.
type builtin int8

const (
	fnNone builtin = iota
	fnSin
	fnCos
	fnTan
	fnAtan
	fnExp
	fnSqrt
	fnAbs
	fnLog
	fnLog10
	fnPow
)

type fninfo struct {
	name string
	// min and max are the accepted argument counts.
	min, max int
}

var fninfos = [...]fninfo{
	fnNone:  {"", 0, 0},
	fnSin:   {"sin", 1, 1},
	fnCos:   {"cos", 1, 1},
	fnTan:   {"tan", 1, 1},
	fnAtan:  {"atan", 1, 1},
	fnExp:   {"exp", 1, 1},
	fnSqrt:  {"sqrt", 1, 1},
	fnAbs:   {"abs", 1, 1},
	fnLog:   {"log", 1, 2},
	fnLog10: {"log10", 1, 1},
	fnPow:   {"pow", 2, 2},
}

// globalfuncs maps function names to builtins.
var globalfuncs = func() map[string]builtin {
	m := make(map[string]builtin, len(fninfos)-1)
	for i := fnSin; int(i) < len(fninfos); i++ {
		m[fninfos[i].name] = i
	}
	return m
}()

// constants maps constant names to their values.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// variable is the only free variable a formula may use.
const variable = "x"

func (f builtin) String() string {
	if f <= fnNone || int(f) >= len(fninfos) {
		return "builtin(" + strconv.Itoa(int(f)) + ")"
	}
	return fninfos[f].name
}

// CanCall returns whether the function accepts n arguments.
func (f builtin) CanCall(n int) bool {
	if f <= fnNone || int(f) >= len(fninfos) {
		return false
	}
	i := fninfos[f]
	return i.min <= n && n <= i.max
}

// call applies the function to its evaluated arguments. len(args) must
// satisfy CanCall. Results outside the function's domain are NaN or infinite
// rather than errors.
func (f builtin) call(args []float64) float64 {
	switch f {
	case fnSin:
		return math.Sin(args[0])
	case fnCos:
		return math.Cos(args[0])
	case fnTan:
		return math.Tan(args[0])
	case fnAtan:
		return math.Atan(args[0])
	case fnExp:
		return math.Exp(args[0])
	case fnSqrt:
		return math.Sqrt(args[0])
	case fnAbs:
		return math.Abs(args[0])
	case fnLog:
		if len(args) == 2 {
			return math.Log(args[0]) / math.Log(args[1])
		}
		return math.Log(args[0])
	case fnLog10:
		return math.Log10(args[0])
	case fnPow:
		return math.Pow(args[0], args[1])
	default:
		panic("bisect: call of invalid builtin " + f.String())
	}
}

// arity describes the accepted argument counts for error messages.
func (f builtin) arity() string {
	i := fninfos[f]
	if i.min == i.max {
		return strconv.Itoa(i.min)
	}
	return strconv.Itoa(i.min) + " or " + strconv.Itoa(i.max)
}
