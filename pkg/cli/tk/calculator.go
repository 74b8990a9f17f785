package tk

import (
	"sync"

	"src.kalk.dev/pkg/calc"
	"src.kalk.dev/pkg/cli/term"
	"src.kalk.dev/pkg/ui"
)

// Calculator is a Widget for doing four-function arithmetic on a keypad.
type Calculator interface {
	Widget
	// CopyState returns a copy of the state.
	CopyState() calc.State
	// MutateState calls the given function while locking StateMutex.
	MutateState(f func(*calc.State))
	// Perform runs an operator key through the engine, notifying on failure
	// reports.
	Perform(op calc.Op)
	// Clear resets the engine to its initial state.
	Clear()
	// Exit triggers the OnExit callback.
	Exit()
}

// CalculatorSpec specifies the configuration and initial state for Calculator.
type CalculatorSpec struct {
	// Key bindings. They are consulted before the built-in key handling.
	Bindings Bindings
	// A function that is called when the engine reports that an operation
	// could not be carried out, such as a division by zero. If this function
	// is not given, reports are dropped.
	OnNotify func(title, description string)
	// A function that is called when the user asks to exit.
	OnExit func()

	// State. When used in New, this field specifies the initial state.
	State calc.State
}

type calculator struct {
	// Mutex for synchronizing access to State.
	StateMutex sync.RWMutex
	// Configuration and state.
	CalculatorSpec
}

// NewCalculator creates a new Calculator from the given spec.
func NewCalculator(spec CalculatorSpec) Calculator {
	if spec.Bindings == nil {
		spec.Bindings = DummyBindings{}
	}
	if spec.OnNotify == nil {
		spec.OnNotify = func(title, description string) {}
	}
	if spec.OnExit == nil {
		spec.OnExit = func() {}
	}
	if spec.State.Display == "" {
		spec.State = calc.Clear()
	}
	return &calculator{CalculatorSpec: spec}
}

func (w *calculator) MutateState(f func(*calc.State)) {
	w.StateMutex.Lock()
	defer w.StateMutex.Unlock()
	f(&w.State)
}

func (w *calculator) CopyState() calc.State {
	w.StateMutex.RLock()
	defer w.StateMutex.RUnlock()
	return w.State
}

func (w *calculator) Perform(op calc.Op) {
	var err error
	w.MutateState(func(s *calc.State) {
		*s, err = calc.PerformOperation(*s, op)
	})
	if err != nil {
		w.OnNotify("error", err.Error())
	}
}

func (w *calculator) Clear() {
	w.MutateState(func(s *calc.State) { *s = calc.Clear() })
}

func (w *calculator) Exit() {
	w.OnExit()
}

// Handle handles KeyEvent's. Other events are ignored.
func (w *calculator) Handle(event term.Event) bool {
	if keyEvent, ok := event.(term.KeyEvent); ok {
		return w.handleKeyEvent(ui.Key(keyEvent))
	}
	return false
}

func (w *calculator) handleKeyEvent(key ui.Key) bool {
	if w.Bindings.Handle(w, term.KeyEvent(key)) {
		return true
	}

	// Essential keybindings. Others can be added via the Bindings overlay.
	switch key {
	case ui.K('[', ui.Ctrl): // Escape
		w.Clear()
		return true
	case ui.K('D', ui.Ctrl):
		w.Exit()
		return true
	}
	if key.Mod != 0 || key.Rune < 0 {
		return false
	}
	switch r := key.Rune; {
	case '0' <= r && r <= '9':
		w.MutateState(func(s *calc.State) { *s = calc.InputDigit(*s, r) })
	case r == '.':
		w.MutateState(func(s *calc.State) { *s = calc.InputDecimalPoint(*s) })
	case r == '+':
		w.Perform(calc.Add)
	case r == '-':
		w.Perform(calc.Subtract)
	case r == '*', r == 'x':
		w.Perform(calc.Multiply)
	case r == '/':
		w.Perform(calc.Divide)
	case r == '=', r == ui.Enter:
		w.Perform(calc.Equals)
	case r == 'c', r == 'C':
		w.Clear()
	case r == 'q':
		w.Exit()
	default:
		return false
	}
	return true
}
