package ui

import "strings"

// Key represents a single keyboard input. It is usually delivered wrapped in a
// term.KeyEvent.
type Key struct {
	Rune rune
	Mod  Mod
}

// K constructs a new Key with the given rune and modifiers.
func K(r rune, mods ...Mod) Key {
	var mod Mod
	for _, m := range mods {
		mod |= m
	}
	return Key{r, mod}
}

// Mod is a bit set of modifier keys.
type Mod uint

// Values for Mod.
const (
	Shift Mod = 1 << iota
	Alt
	Ctrl
)

// Runes for keys that have a character representation of their own.
const (
	Tab       = '\t'
	Enter     = '\n'
	Backspace = 0x7f
)

// Negative runes for function keys that have no character representation.
const (
	F1 rune = -iota - 1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	Up
	Down
	Right
	Left

	Home
	Insert
	Delete
	End
	PageUp
	PageDown
)

var keyNames = map[rune]string{
	Tab: "Tab", Enter: "Enter", Backspace: "Backspace",
	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
	Up: "Up", Down: "Down", Right: "Right", Left: "Left",
	Home: "Home", Insert: "Insert", Delete: "Delete", End: "End",
	PageUp: "PageUp", PageDown: "PageDown",
}

func (k Key) String() string {
	var sb strings.Builder
	if k.Mod&Ctrl != 0 {
		sb.WriteString("C-")
	}
	if k.Mod&Alt != 0 {
		sb.WriteString("A-")
	}
	if k.Mod&Shift != 0 {
		sb.WriteString("S-")
	}
	if name, ok := keyNames[k.Rune]; ok {
		sb.WriteString(name)
	} else {
		sb.WriteRune(k.Rune)
	}
	return sb.String()
}
