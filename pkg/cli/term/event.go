// Package term provides the terminal layer: a cell buffer reflecting the
// terminal content, an event reader decoding terminal input, a writer doing
// incremental updates, and raw mode setup.
package term

import "src.kalk.dev/pkg/ui"

// Event represents an event that can be read from the terminal.
type Event interface{ isEvent() }

// KeyEvent represents a key press.
type KeyEvent ui.Key

// K constructs a new KeyEvent.
func K(r rune, mods ...ui.Mod) KeyEvent {
	return KeyEvent(ui.K(r, mods...))
}

// NonfatalErrorEvent represents an error that can be ignored.
type NonfatalErrorEvent struct {
	Err error
}

// FatalErrorEvent represents an error that makes it impossible to continue
// reading events.
type FatalErrorEvent struct {
	Err error
}

func (KeyEvent) isEvent()           {}
func (NonfatalErrorEvent) isEvent() {}
func (FatalErrorEvent) isEvent()    {}
