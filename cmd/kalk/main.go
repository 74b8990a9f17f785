// Kalk is an interactive four-function calculator for the terminal: a keypad
// widget driven by single key presses, rendered in place like a line editor.
package main

import (
	"os"

	"src.kalk.dev/pkg/kalk"
	"src.kalk.dev/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args, kalk.Program{}))
}
