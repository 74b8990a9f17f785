package calc

import (
	"math"
	"strings"
	"testing"

	"src.kalk.dev/pkg/tt"
)

// run feeds a keystroke sequence to a fresh engine and returns the final
// state and the last error reported by PerformOperation, if any.
func run(keys string) (State, error) {
	s := Clear()
	var lastErr error
	for _, k := range keys {
		switch {
		case k >= '0' && k <= '9':
			s = InputDigit(s, k)
		case k == '.':
			s = InputDecimalPoint(s)
		case k == 'C':
			s = Clear()
		default:
			var err error
			s, err = PerformOperation(s, opOf(k))
			if err != nil {
				lastErr = err
			}
		}
	}
	return s, lastErr
}

func opOf(k rune) Op {
	switch k {
	case '+':
		return Add
	case '-':
		return Subtract
	case '*':
		return Multiply
	case '/':
		return Divide
	case '=':
		return Equals
	}
	panic("bad key " + string(k))
}

func display(keys string) string {
	s, _ := run(keys)
	return s.Display
}

func TestInputDigit(t *testing.T) {
	tt.Test(t, tt.Fn("display", display), tt.Table{
		// Digits append; a single leading zero collapses.
		tt.Args("123").Rets("123"),
		tt.Args("05").Rets("5"),
		tt.Args("007").Rets("7"),
		tt.Args("102").Rets("102"),
		// The first digit after an operator starts a fresh operand.
		tt.Args("12+3").Rets("3"),
		tt.Args("12+34").Rets("34"),
	})
}

func TestInputDecimalPoint(t *testing.T) {
	tt.Test(t, tt.Fn("display", display), tt.Table{
		tt.Args("1.5").Rets("1.5"),
		// A second point in the same operand is discarded.
		tt.Args("1..5").Rets("1.5"),
		tt.Args("1.2.3").Rets("1.23"),
		// A point right after an operator starts "0.".
		tt.Args("1+.5").Rets("0.5"),
		tt.Args(".").Rets("0."),
	})
}

func TestClear(t *testing.T) {
	tt.Test(t, tt.Fn("run", run), tt.Table{
		tt.Args("12+34C").Rets(State{Display: "0"}, nil),
		tt.Args("1.C").Rets(State{Display: "0"}, nil),
		tt.Args("C").Rets(State{Display: "0"}, nil),
	})
}

func TestPerformOperation(t *testing.T) {
	tt.Test(t, tt.Fn("run", run), tt.Table{
		// An operator with nothing pending arms the chain without touching
		// the display.
		tt.Args("12+").Rets(
			State{Display: "12", Pending: &Pending{12, Add}, WaitingForOperand: true},
			nil),
		// The stored operator is applied, not the newly pressed one.
		tt.Args("6*7=").Rets(State{Display: "42", WaitingForOperand: true}, nil),
		tt.Args("9-2=").Rets(State{Display: "7", WaitingForOperand: true}, nil),
		// Chaining carries the running result into the next operation.
		tt.Args("3+4+").Rets(
			State{Display: "7", Pending: &Pending{7, Add}, WaitingForOperand: true},
			nil),
		tt.Args("3+4+5=").Rets(State{Display: "12", WaitingForOperand: true}, nil),
		tt.Args("100/4/5=").Rets(State{Display: "5", WaitingForOperand: true}, nil),
		// Floating point cleanup: 12 significant digits.
		tt.Args("0.1+0.2=").Rets(State{Display: "0.3", WaitingForOperand: true}, nil),
		tt.Args("1/3=").Rets(
			State{Display: "0.333333333333", WaitingForOperand: true}, nil),
	})
}

func TestPerformOperation_EqualsFirstIsNoOp(t *testing.T) {
	// Pressing = with nothing pending arms Equals, which is not a real
	// binary operator; when it is later applied it contributes no
	// arithmetic and just hands the chain the current operand.
	tt.Test(t, tt.Fn("run", run), tt.Table{
		tt.Args("=").Rets(
			State{Display: "0", Pending: &Pending{0, Equals}, WaitingForOperand: true},
			nil),
		tt.Args("=5+").Rets(
			State{Display: "5", Pending: &Pending{5, Add}, WaitingForOperand: true},
			nil),
		// Repeated = after a result does not re-apply the last operation.
		tt.Args("3+4==").Rets(
			State{Display: "7", Pending: &Pending{7, Equals}, WaitingForOperand: true},
			nil),
		tt.Args("3+4===").Rets(State{Display: "7", WaitingForOperand: true}, nil),
	})
}

func TestPerformOperation_DivideByZero(t *testing.T) {
	// The failed transition leaves the state untouched: the zero operand
	// stays on the display and the pending operation stays armed for retry.
	tt.Test(t, tt.Fn("run", run), tt.Table{
		tt.Args("5/0=").Rets(
			State{Display: "0", Pending: &Pending{5, Divide}}, ErrDivideByZero),
		// Retry with a fresh operand works; the leading zero collapses when
		// 2 is typed over the rejected 0.
		tt.Args("5/0=2=").Rets(
			State{Display: "2.5", WaitingForOperand: true}, ErrDivideByZero),
		tt.Args("5/0=/2=").Rets(
			State{Display: "2.5", WaitingForOperand: true}, ErrDivideByZero),
	})

	// The engine stays live: a full chain after recovery reports no error.
	s, err := run("5/0=C8/2=")
	if err != ErrDivideByZero {
		t.Errorf("got err %v, want ErrDivideByZero", err)
	}
	if s.Display != "4" {
		t.Errorf("got display %q, want 4", s.Display)
	}
}

func TestPerformOperation_NonFinite(t *testing.T) {
	s := State{Display: "9", Pending: &Pending{math.MaxFloat64, Multiply}}
	got, err := PerformOperation(s, Equals)
	if err != ErrNonFinite {
		t.Errorf("got err %v, want ErrNonFinite", err)
	}
	if got != Clear() {
		t.Errorf("got state %v, want initial state", got)
	}

	// Overflow typed entirely through the keypad.
	huge := strings.Repeat("9", 200)
	gotState, err := run(huge + "*" + huge + "=")
	if err != ErrNonFinite {
		t.Errorf("got err %v, want ErrNonFinite", err)
	}
	if gotState != Clear() {
		t.Errorf("got state %v, want initial state", gotState)
	}
}

func TestRoundSignificant(t *testing.T) {
	tt.Test(t, tt.Fn("roundSignificant", roundSignificant), tt.Table{
		tt.Args(0.1 + 0.2).Rets(0.3),
		tt.Args(7.0).Rets(7.0),
		tt.Args(1.0 / 3.0).Rets(0.333333333333),
	})
}

func TestOpString(t *testing.T) {
	tt.Test(t, tt.Fn("Op.String", Op.String), tt.Table{
		tt.Args(Add).Rets("+"),
		tt.Args(Subtract).Rets("-"),
		tt.Args(Multiply).Rets("×"),
		tt.Args(Divide).Rets("÷"),
		tt.Args(Equals).Rets("="),
		tt.Args(Op(0)).Rets("?"),
	})
}
