// Package bisect finds real roots of functions given as formulas, using the
// bisection method.
//
// A formula is an expression in the variable x, e.g. "x^2 - 2" or
// "exp(-x) - sin(x)/2". The operators are + - * / and ^, where "-2^2^n" is
// the same as "-(2^(2^n))". Names are case-insensitive. The constants are pi
// and e; the functions are sin, cos, tan, atan, exp, sqrt, abs, log (natural
// log, or log(v, base)), log10, and pow.
//
// Parse a formula once with ParseFormula, then hand Expr.Func to Solve to
// bisect a known bracketing interval, or to ScanForBracket to look for one.
// Evaluation never produces an infinity or NaN; such results become
// math.MaxFloat64, so the solver can always compare signs.
package bisect
