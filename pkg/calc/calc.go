// Package calc implements the arithmetic engine of the calculator: a
// deterministic state machine driven by digit, decimal point, operator and
// clear inputs, maintaining the display value and at most one pending
// operation.
//
// Transitions are pure: they take a State by value and return the new State,
// so the engine can be tested in isolation from any rendering concern.
package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Op identifies an operator key.
type Op int

// Possible Op values. The zero value is not a valid operator.
const (
	Add Op = iota + 1
	Subtract
	Multiply
	Divide
	Equals
)

func (op Op) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "×"
	case Divide:
		return "÷"
	case Equals:
		return "="
	}
	return "?"
}

// State is the full state of the engine. Use Clear for the initial state.
type State struct {
	// Display is the text currently shown. It is always parseable as a
	// finite decimal number and contains at most one decimal point.
	Display string
	// Pending is the operand and operator captured before the current
	// operation; nil when no operation is pending.
	Pending *Pending
	// WaitingForOperand is true immediately after an operator has been
	// accepted; it makes the next digit start a fresh operand instead of
	// appending to Display.
	WaitingForOperand bool
}

// Pending is an operator together with its left operand, awaiting a right
// operand.
type Pending struct {
	Value float64
	Op    Op
}

// String shows the stored operand followed by the operator, like "12 +".
func (p Pending) String() string {
	return formatNumber(p.Value) + " " + p.Op.String()
}

// Failure reports returned by PerformOperation. They are reports rather than
// propagated faults: the State returned alongside already reflects the
// prescribed recovery, and the engine remains usable.
var (
	// ErrDivideByZero reports a division whose right operand is 0. The state
	// is left untouched so the user can retry with another operand.
	ErrDivideByZero = errors.New("cannot divide by zero")
	// ErrNonFinite reports an operation that overflowed to an infinity or
	// produced an undefined value. The state is fully reset to protect the
	// display from an unrepresentable value.
	ErrNonFinite = errors.New("invalid calculation")
)

// Clear returns the initial state: "0" on the display, no pending operation.
func Clear() State {
	return State{Display: "0"}
}

// InputDigit handles a digit key, with d in '0' to '9'.
func InputDigit(s State, d rune) State {
	switch {
	case s.WaitingForOperand:
		s.Display = string(d)
		s.WaitingForOperand = false
	case s.Display == "0":
		// Collapse the leading zero instead of producing "05".
		s.Display = string(d)
	default:
		s.Display += string(d)
	}
	return s
}

// InputDecimalPoint handles the decimal point key. A second point within the
// same operand is silently discarded.
func InputDecimalPoint(s State) State {
	switch {
	case s.WaitingForOperand:
		s.Display = "0."
		s.WaitingForOperand = false
	case !strings.ContainsRune(s.Display, '.'):
		s.Display += "."
	}
	return s
}

// PerformOperation handles an operator key.
//
// With no operation pending, the current display value and op are captured
// and the engine waits for the next operand; no arithmetic happens. This also
// applies to Equals, which then terminates the chain without arithmetic when
// the next operator arrives.
//
// With an operation pending, the *stored* operator is applied to the stored
// value and the display value. On success the result goes to the display;
// Equals terminates the chain while any other op rearms it with the result as
// the left operand. Results are rounded to 12 significant digits to suppress
// binary floating point noise.
func PerformOperation(s State, op Op) (State, error) {
	input, _ := strconv.ParseFloat(s.Display, 64)

	if s.Pending == nil {
		s.Pending = &Pending{Value: input, Op: op}
		s.WaitingForOperand = true
		return s, nil
	}

	result, err := apply(s.Pending.Op, s.Pending.Value, input)
	if err != nil {
		return s, err
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return Clear(), ErrNonFinite
	}
	result = roundSignificant(result)

	s.Display = formatNumber(result)
	if op == Equals {
		s.Pending = nil
	} else {
		s.Pending = &Pending{Value: result, Op: op}
	}
	s.WaitingForOperand = true
	return s, nil
}

func apply(op Op, prev, input float64) (float64, error) {
	switch op {
	case Add:
		return prev + input, nil
	case Subtract:
		return prev - input, nil
	case Multiply:
		return prev * input, nil
	case Divide:
		if input == 0 {
			return 0, ErrDivideByZero
		}
		return prev / input, nil
	default:
		// A chain armed with Equals (or an invalid Op) applies no arithmetic.
		return input, nil
	}
}

const significantDigits = 12

// roundSignificant rounds f to significantDigits significant decimal digits,
// so that e.g. 0.1+0.2 displays as 0.3 rather than 0.30000000000000004.
func roundSignificant(f float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'g', significantDigits, 64), 64)
	return r
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
