package cli

import (
	"fmt"
	"os"
	"os/signal"

	"src.kalk.dev/pkg/cli/term"
	"src.kalk.dev/pkg/sys"
)

// TTY is the type the app uses to access the terminal.
type TTY interface {
	// Setup sets up the terminal for the app. It returns a restore function
	// to be called when the app stops, and any error during setup.
	Setup() (restore func(), err error)
	// Size returns the height and width of the terminal.
	Size() (h, w int)
	// ReadEvent reads a terminal event.
	ReadEvent() (term.Event, error)
	// CloseReader releases resources allocated for reading terminal events.
	// Any outstanding ReadEvent call is aborted with term.ErrStopped.
	CloseReader()
	// NotifySignals returns a channel on which signals are delivered.
	NotifySignals() <-chan os.Signal
	// StopSignals stops the delivery of signals and closes the channel
	// returned by NotifySignals.
	StopSignals()

	term.Writer
}

// StdTTY is the terminal connected to inputs from stdin and output to stderr.
var StdTTY = NewTTY(os.Stdin, os.Stderr)

// NewTTY returns a new TTY from input and output terminal files.
func NewTTY(in, out *os.File) TTY {
	return &aTTY{in: in, out: out, Writer: term.NewWriter(out)}
}

type aTTY struct {
	in, out *os.File
	r       term.Reader
	sigCh   chan os.Signal

	term.Writer
}

func (t *aTTY) Setup() (func(), error) {
	restore, err := term.Setup(t.in, t.out)
	return func() {
		if restore != nil {
			if err := restore(); err != nil {
				fmt.Fprintln(t.out, "failed to restore terminal properties:", err)
			}
		}
	}, err
}

func (t *aTTY) Size() (h, w int) {
	return sys.WinSize(t.out)
}

func (t *aTTY) ReadEvent() (term.Event, error) {
	if t.r == nil {
		r, err := term.NewReader(t.in)
		if err != nil {
			return nil, err
		}
		t.r = r
	}
	return t.r.ReadEvent()
}

func (t *aTTY) CloseReader() {
	if t.r != nil {
		t.r.Close()
	}
	t.r = nil
}

func (t *aTTY) NotifySignals() <-chan os.Signal {
	t.sigCh = sys.NotifySignals()
	return t.sigCh
}

func (t *aTTY) StopSignals() {
	signal.Stop(t.sigCh)
	close(t.sigCh)
}
