// Package cli implements the interactive calculator app: a serial event loop
// tying a terminal, the calculator widget and user notifications together.
package cli

import (
	"os"
	"sync"
	"syscall"

	"src.kalk.dev/pkg/calc"
	"src.kalk.dev/pkg/cli/term"
	"src.kalk.dev/pkg/cli/tk"
	"src.kalk.dev/pkg/sys"
	"src.kalk.dev/pkg/ui"
)

// App represents the calculator app.
type App interface {
	// Run runs the app by running an event loop until an exit is requested.
	// This function is not re-entrant.
	Run() error

	// MutateState mutates the state of the app.
	MutateState(f func(*State))
	// CopyState returns a copy of the app state.
	CopyState() State

	// ActiveWidget returns the widget that terminal events are dispatched to.
	ActiveWidget() tk.Widget

	// CommitExit causes the main loop to exit. If this method is called when
	// an event is being handled, the main loop will exit after the handler
	// returns.
	CommitExit()

	// Redraw requests a redraw. It never blocks and can be called regardless
	// of whether the App is active or not.
	Redraw()
	// RedrawFull requests a full redraw. It never blocks and can be called
	// regardless of whether the App is active or not.
	RedrawFull()
	// Notify adds a note and requests a redraw.
	Notify(note ui.Text)
}

// AppSpec specifies the configuration and initial state for an App.
type AppSpec struct {
	TTY       TTY
	MaxHeight func() int

	GlobalBindings     tk.Bindings
	CalculatorBindings tk.Bindings
	CalculatorState    calc.State

	State State
}

// State represents mutable state of an App.
type State struct {
	// Notes that have been added since the last redraw.
	Notes []ui.Text
}

type app struct {
	loop    *loop
	reqRead chan struct{}

	TTY            TTY
	MaxHeight      func() int
	GlobalBindings tk.Bindings

	StateMutex sync.RWMutex
	State      State

	calculator tk.Calculator
}

// NewApp creates a new App from the given specification.
func NewApp(spec AppSpec) App {
	lp := newLoop()
	a := app{
		loop:           lp,
		TTY:            spec.TTY,
		MaxHeight:      spec.MaxHeight,
		GlobalBindings: spec.GlobalBindings,
		State:          spec.State,
	}
	if a.TTY == nil {
		a.TTY = StdTTY
	}
	if a.MaxHeight == nil {
		a.MaxHeight = func() int { return -1 }
	}
	if a.GlobalBindings == nil {
		a.GlobalBindings = tk.DummyBindings{}
	}
	lp.HandleCb(a.handle)
	lp.RedrawCb(a.redraw)

	a.calculator = tk.NewCalculator(tk.CalculatorSpec{
		Bindings: spec.CalculatorBindings,
		OnNotify: func(title, description string) {
			a.Notify(ui.Concat(
				ui.T(title, ui.Bold, ui.FgRed), ui.T(": "+description)))
		},
		OnExit: a.CommitExit,
		State:  spec.CalculatorState,
	})

	return &a
}

func (a *app) MutateState(f func(*State)) {
	a.StateMutex.Lock()
	defer a.StateMutex.Unlock()
	f(&a.State)
}

func (a *app) CopyState() State {
	a.StateMutex.RLock()
	defer a.StateMutex.RUnlock()
	return State{append([]ui.Text(nil), a.State.Notes...)}
}

func (a *app) ActiveWidget() tk.Widget {
	return a.calculator
}

func (a *app) handle(e event) {
	switch e := e.(type) {
	case os.Signal:
		switch e {
		case syscall.SIGHUP:
			a.loop.Return(nil)
		case sys.SIGWINCH:
			a.RedrawFull()
		}
	case term.FatalErrorEvent:
		a.Notify(ui.T("terminal error: "+e.Err.Error(), ui.FgRed))
		a.loop.Return(e.Err)
	case term.NonfatalErrorEvent:
		a.Notify(ui.T("terminal error: "+e.Err.Error(), ui.FgRed))
		if !a.loop.HasReturned() {
			a.reqRead <- struct{}{}
		}
	case term.Event:
		target := a.ActiveWidget()
		handled := target.Handle(e)
		if !handled {
			handled = a.GlobalBindings.Handle(target, e)
		}
		if !handled {
			if k, ok := e.(term.KeyEvent); ok {
				a.Notify(ui.T("Unbound key: " + ui.Key(k).String()))
			}
		}
		if !a.loop.HasReturned() {
			a.reqRead <- struct{}{}
		}
	}
}

func (a *app) redraw(flag redrawFlag) {
	// Get the dimensions available.
	height, width := a.TTY.Size()
	if maxHeight := a.MaxHeight(); maxHeight > 0 && maxHeight < height {
		height = maxHeight
	}

	var notes []ui.Text
	a.MutateState(func(s *State) {
		notes = s.Notes
		s.Notes = nil
	})

	bufMain := a.calculator.Render(width, height)
	if flag&finalRedraw != 0 {
		// Insert a newline after the buffer and position the cursor there,
		// so the shell prompt after exit starts on a fresh line.
		bufMain.Extend(term.NewBuffer(width), true)
		a.TTY.UpdateBuffer(joinNotes(notes), bufMain, flag&fullRedraw != 0)
		a.TTY.ResetBuffer()
	} else {
		a.TTY.UpdateBuffer(joinNotes(notes), bufMain, flag&fullRedraw != 0)
	}
}

// Joins notes into a single multi-line text. This does not respect height so
// that overflow notes end up in the scrollback buffer.
func joinNotes(notes []ui.Text) ui.Text {
	if len(notes) == 0 {
		return nil
	}
	var joined ui.Text
	for i, note := range notes {
		if i > 0 {
			joined = ui.Concat(joined, ui.T("\n"))
		}
		joined = ui.Concat(joined, note)
	}
	return joined
}

// Run sets up the terminal, relays input events and signals into the loop,
// and runs the loop until an exit is requested.
func (a *app) Run() error {
	restore, err := a.TTY.Setup()
	if err != nil {
		return err
	}
	defer restore()

	var wg sync.WaitGroup
	defer wg.Wait()

	// Relay input events.
	a.reqRead = make(chan struct{}, 1)
	a.reqRead <- struct{}{}
	defer close(a.reqRead)
	defer a.TTY.CloseReader()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range a.reqRead {
			event, err := a.TTY.ReadEvent()
			if err == nil {
				a.loop.Input(event)
			} else if err == term.ErrStopped {
				return
			} else if term.IsReadErrorRecoverable(err) {
				a.loop.Input(term.NonfatalErrorEvent{Err: err})
			} else {
				a.loop.Input(term.FatalErrorEvent{Err: err})
				return
			}
		}
	}()

	// Relay signals.
	sigCh := a.TTY.NotifySignals()
	defer a.TTY.StopSignals()
	wg.Add(1)
	go func() {
		for sig := range sigCh {
			a.loop.Input(sig)
		}
		wg.Done()
	}()

	return a.loop.Run()
}

func (a *app) Redraw() {
	a.loop.Redraw(false)
}

func (a *app) RedrawFull() {
	a.loop.Redraw(true)
}

func (a *app) CommitExit() {
	a.loop.Return(nil)
}

func (a *app) Notify(note ui.Text) {
	a.MutateState(func(s *State) { s.Notes = append(s.Notes, note) })
	a.Redraw()
}
