//go:build unix

package term

import (
	"fmt"
	"os"

	"src.kalk.dev/pkg/sys/eunix"
)

// Setup puts the terminal in a state suitable for the calculator: echo and
// canonical mode off, keys delivered byte by byte, and autowrap disabled. It
// returns a function that restores the terminal, and any error encountered.
//
// The returned restore function is non-nil even on error, in which case it
// restores whatever part of the setup has succeeded.
func Setup(in, out *os.File) (func() error, error) {
	fd := int(in.Fd())
	term, err := eunix.TermiosForFd(fd)
	if err != nil {
		return func() error { return nil }, fmt.Errorf("can't get terminal attribute: %w", err)
	}

	savedTermios := term.Copy()

	term.SetICanon(false)
	term.SetIExten(false)
	term.SetEcho(false)
	term.SetVMin(1)
	term.SetVTime(0)
	// Enforce CR-to-NL translation so that Enter arrives as '\n' regardless
	// of the terminal's idea of line endings.
	term.SetICRNL(true)

	err = term.ApplyToFd(fd)
	if err != nil {
		return func() error { return nil }, fmt.Errorf("can't set up terminal attribute: %w", err)
	}

	// Disable autowrap: the writer tracks the cursor position itself and
	// autowrap would throw it off at the last column.
	out.WriteString("\033[?7l")

	restore := func() error {
		out.WriteString("\033[?7h")
		return savedTermios.ApplyToFd(fd)
	}
	return restore, nil
}
