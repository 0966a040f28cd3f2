package bisect

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidInterval is the error that InvalidIntervalError unwraps to.
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrInvalidPrecision is the error that InvalidPrecisionError unwraps to.
	ErrInvalidPrecision = errors.New("invalid precision")
	// ErrNotBracketing is the error that NotBracketingError unwraps to.
	ErrNotBracketing = errors.New("function does not change sign on interval")
	// ErrIterationLimit is the error that IterationLimitError unwraps to.
	ErrIterationLimit = errors.New("iteration limit exceeded")
	// ErrInvalidStep is the error that InvalidStepError unwraps to.
	ErrInvalidStep = errors.New("invalid step")
	// ErrStopped is returned by a Trace function to stop a search early.
	ErrStopped = errors.New("bisect: stopped by trace")
)

// InvalidIntervalError is an error indicating an interval [A, B] that does
// not satisfy A < B with both ends finite.
type InvalidIntervalError struct {
	A, B float64
}

func (err *InvalidIntervalError) Error() string {
	return "invalid interval [" + ftoa(err.A) + ", " + ftoa(err.B) + "]: need finite a < b"
}

func (err *InvalidIntervalError) Unwrap() error {
	return ErrInvalidInterval
}

// InvalidPrecisionError is an error indicating a precision that is not
// positive.
type InvalidPrecisionError struct {
	Epsilon float64
}

func (err *InvalidPrecisionError) Error() string {
	return "invalid precision " + ftoa(err.Epsilon) + ": must be positive"
}

func (err *InvalidPrecisionError) Unwrap() error {
	return ErrInvalidPrecision
}

// NotBracketingError is an error indicating that the function values at the
// ends of the interval do not have strictly opposite signs.
type NotBracketingError struct {
	// A and B are the ends of the interval.
	A, B float64
	// FA and FB are the function values at A and B.
	FA, FB float64
}

func (err *NotBracketingError) Error() string {
	return "function does not change sign on [" + ftoa(err.A) + ", " + ftoa(err.B) + "]: " +
		"f(" + ftoa(err.A) + ") = " + ftoa(err.FA) + ", f(" + ftoa(err.B) + ") = " + ftoa(err.FB)
}

func (err *NotBracketingError) Unwrap() error {
	return ErrNotBracketing
}

// IterationLimitError is an error indicating that the classic solver used
// its whole iteration budget without converging.
type IterationLimitError struct {
	// Limit is the iteration cap.
	Limit int
	// Best is the estimate at the time the search stopped.
	Best Result
}

func (err *IterationLimitError) Error() string {
	return "no convergence after " + strconv.Itoa(err.Limit) + " iterations (best estimate x=" + ftoa(err.Best.Root) + ")"
}

func (err *IterationLimitError) Unwrap() error {
	return ErrIterationLimit
}

// InvalidStepError is an error indicating a scan step that is not a positive
// finite number.
type InvalidStepError struct {
	Step float64
}

func (err *InvalidStepError) Error() string {
	return "invalid scan step " + ftoa(err.Step) + ": must be positive and finite"
}

func (err *InvalidStepError) Unwrap() error {
	return ErrInvalidStep
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
