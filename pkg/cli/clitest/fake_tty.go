// Package clitest provides a fake terminal for testing the app without a
// real terminal.
package clitest

import (
	"os"
	"reflect"
	"sync"
	"testing"
	"time"

	"src.kalk.dev/pkg/cli"
	"src.kalk.dev/pkg/cli/term"
	"src.kalk.dev/pkg/testutil"
	"src.kalk.dev/pkg/ui"
)

const (
	// Maximum number of buffer updates FakeTTY expect to see.
	fakeTTYBufferUpdates = 4096
	// Maximum number of events FakeTTY produces.
	fakeTTYEvents = 4096
	// Maximum number of signals FakeTTY produces.
	fakeTTYSignals = 4096
)

// An implementation of the cli.TTY interface that is useful in tests.
type fakeTTY struct {
	setup func() (func(), error)
	// Channel that ReadEvent reads from. Can be used to inject events.
	eventCh chan term.Event
	// Whether eventCh has been closed.
	eventChClosed bool
	// Mutex for synchronizing writing and closing eventCh.
	eventChMutex sync.Mutex
	// Channel for publishing updates of the main buffer and notes.
	bufCh   chan *term.Buffer
	notesCh chan ui.Text
	// Records history of the main buffer and notes.
	bufs  []*term.Buffer
	notes []ui.Text
	// Mutex for guarding bufs and notes.
	bufMutex sync.RWMutex
	// Channel that NotifySignals returns. Can be used to inject signals.
	sigCh chan os.Signal
	// Number of times the TTY screen has been cleared, incremented in
	// ClearScreen.
	cleared int

	sizeMutex sync.RWMutex
	// Predefined sizes.
	height, width int
}

// Initial size of fake TTY.
const (
	FakeTTYHeight = 20
	FakeTTYWidth  = 50
)

// NewFakeTTY creates a new FakeTTY and a handle for controlling it. The
// initial size of the terminal is FakeTTYHeight and FakeTTYWidth.
func NewFakeTTY() (cli.TTY, TTYCtrl) {
	tty := &fakeTTY{
		eventCh: make(chan term.Event, fakeTTYEvents),
		sigCh:   make(chan os.Signal, fakeTTYSignals),
		bufCh:   make(chan *term.Buffer, fakeTTYBufferUpdates),
		notesCh: make(chan ui.Text, fakeTTYBufferUpdates),
		height:  FakeTTYHeight, width: FakeTTYWidth,
	}
	return tty, TTYCtrl{tty}
}

// Delegates to the setup function specified using the SetSetup method of
// TTYCtrl, or return a nop function and a nil error.
func (t *fakeTTY) Setup() (func(), error) {
	if t.setup == nil {
		return func() {}, nil
	}
	return t.setup()
}

// Returns the size specified by using the SetSize method of TTYCtrl.
func (t *fakeTTY) Size() (h, w int) {
	t.sizeMutex.RLock()
	defer t.sizeMutex.RUnlock()
	return t.height, t.width
}

// Returns next event from t.eventCh.
func (t *fakeTTY) ReadEvent() (term.Event, error) {
	event, ok := <-t.eventCh
	if !ok {
		return nil, term.ErrStopped
	}
	return event, nil
}

// Closes eventCh.
func (t *fakeTTY) CloseReader() {
	t.eventChMutex.Lock()
	defer t.eventChMutex.Unlock()
	if !t.eventChClosed {
		close(t.eventCh)
		t.eventChClosed = true
	}
}

// Returns the last recorded buffer.
func (t *fakeTTY) Buffer() *term.Buffer {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	return t.bufs[len(t.bufs)-1]
}

// Records a nil buffer.
func (t *fakeTTY) ResetBuffer() {
	t.bufMutex.Lock()
	defer t.bufMutex.Unlock()
	t.recordBuf(nil)
}

// UpdateBuffer records a new buffer and note pair, i.e. sending them to their
// respective channels and appending them to their respective slices.
func (t *fakeTTY) UpdateBuffer(notes ui.Text, buf *term.Buffer, _ bool) error {
	t.bufMutex.Lock()
	defer t.bufMutex.Unlock()
	t.recordNotes(notes)
	t.recordBuf(buf)
	return nil
}

func (t *fakeTTY) HideCursor() {}

func (t *fakeTTY) ShowCursor() {}

func (t *fakeTTY) ClearScreen() {
	t.cleared++
}

func (t *fakeTTY) NotifySignals() <-chan os.Signal { return t.sigCh }

func (t *fakeTTY) StopSignals() { close(t.sigCh) }

func (t *fakeTTY) recordBuf(buf *term.Buffer) {
	t.bufs = append(t.bufs, buf)
	t.bufCh <- buf
}

func (t *fakeTTY) recordNotes(notes ui.Text) {
	t.notes = append(t.notes, notes)
	t.notesCh <- notes
}

// TTYCtrl is an interface for controlling a fake terminal.
type TTYCtrl struct{ *fakeTTY }

// GetTTYCtrl takes a TTY and returns a TTYCtrl and true, if the TTY is a fake
// terminal. Otherwise it returns an invalid TTYCtrl and false.
func GetTTYCtrl(t cli.TTY) (TTYCtrl, bool) {
	fake, ok := t.(*fakeTTY)
	return TTYCtrl{fake}, ok
}

// SetSetup sets the return values of the Setup method of the fake terminal.
func (t TTYCtrl) SetSetup(restore func(), err error) {
	t.setup = func() (func(), error) {
		return restore, err
	}
}

// SetSize sets the size of the fake terminal.
func (t TTYCtrl) SetSize(h, w int) {
	t.sizeMutex.Lock()
	defer t.sizeMutex.Unlock()
	t.height, t.width = h, w
}

// Inject injects events to the fake terminal.
func (t TTYCtrl) Inject(events ...term.Event) {
	for _, event := range events {
		t.inject(event)
	}
}

func (t TTYCtrl) inject(event term.Event) {
	t.eventChMutex.Lock()
	defer t.eventChMutex.Unlock()
	if !t.eventChClosed {
		t.eventCh <- event
	}
}

// EventCh returns the underlying channel for delivering events.
func (t TTYCtrl) EventCh() chan term.Event {
	return t.eventCh
}

// InjectSignal injects signals.
func (t TTYCtrl) InjectSignal(sigs ...os.Signal) {
	for _, sig := range sigs {
		t.sigCh <- sig
	}
}

// ScreenCleared returns the number of times ClearScreen has been called on
// the TTY.
func (t TTYCtrl) ScreenCleared() int {
	return t.cleared
}

// TestBuffer verifies that a buffer will appear within the test timeout, and
// aborts the test if it doesn't.
func (t TTYCtrl) TestBuffer(tt *testing.T, b *term.Buffer) {
	tt.Helper()
	ok := testRecorded(b, t.bufCh)
	if !ok {
		tt.Logf("wanted buffer not shown:\n%s", b.TTYString())

		t.bufMutex.RLock()
		defer t.bufMutex.RUnlock()
		bufs := t.bufs
		for i := len(bufs) - 1; i >= 0; i-- {
			if bufs[i] != nil {
				tt.Logf("Last non-nil buffer:\n%s", bufs[i].TTYString())
				break
			}
		}
		tt.FailNow()
	}
}

// TestNotes verifies that a note text will appear within the test timeout,
// and aborts the test if it doesn't.
func (t TTYCtrl) TestNotes(tt *testing.T, notes ui.Text) {
	tt.Helper()
	ok := testRecorded(notes, t.notesCh)
	if !ok {
		tt.Logf("wanted notes not shown:\n%v", notes)

		t.bufMutex.RLock()
		defer t.bufMutex.RUnlock()
		tt.Logf("There has been %d notes. Non-nil ones are:", len(t.notes))
		for i, notes := range t.notes {
			if notes != nil {
				tt.Logf("#%d:\n%v", i, notes)
			}
		}
		tt.FailNow()
	}
}

// BufferHistory returns a slice of all buffers that have appeared.
func (t TTYCtrl) BufferHistory() []*term.Buffer {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	return t.bufs
}

// LastBuffer returns the last buffer that has appeared.
func (t TTYCtrl) LastBuffer() *term.Buffer {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	if len(t.bufs) == 0 {
		return nil
	}
	return t.bufs[len(t.bufs)-1]
}

// NotesHistory returns a slice of all notes that have appeared.
func (t TTYCtrl) NotesHistory() []ui.Text {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	return t.notes
}

// Tests that a value appears on the channel within 100ms (scaled).
func testRecorded[T any](want T, ch <-chan T) bool {
	timeout := time.After(testutil.Scaled(100 * time.Millisecond))
	for {
		select {
		case got := <-ch:
			if reflect.DeepEqual(got, want) {
				return true
			}
		case <-timeout:
			return false
		}
	}
}
