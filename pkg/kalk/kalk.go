// Package kalk is the entry point for the terminal interface of the
// calculator.
package kalk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"src.kalk.dev/pkg/calc"
	"src.kalk.dev/pkg/cli"
	"src.kalk.dev/pkg/cli/term"
	"src.kalk.dev/pkg/cli/tk"
	"src.kalk.dev/pkg/config"
	"src.kalk.dev/pkg/logutil"
	"src.kalk.dev/pkg/prog"
	"src.kalk.dev/pkg/sys"
)

var logger = logutil.GetLogger("[kalk] ")

// Version of the program. Overridable at build time.
var Version = "0.1.0"

// Program is the calculator program.
type Program struct{}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if f.Version {
		fmt.Fprintln(fds[1], Version)
		return nil
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not accepted")
	}
	// The UI is read from stdin and written to stderr, so stdout stays
	// usable for redirection.
	if !sys.IsATTY(fds[0].Fd()) || !sys.IsATTY(fds[2].Fd()) {
		return errors.New("kalk must be run from a terminal")
	}

	cfg, err := config.Load(rcPath(f))
	if err != nil {
		fmt.Fprintln(fds[2], "Warning:", err)
		fmt.Fprintln(fds[2], "Continuing with default configuration.")
	}

	app := cli.NewApp(makeAppSpec(cli.NewTTY(fds[0], fds[2]), cfg, f))
	logger.Println("starting event loop")
	defer logger.Println("event loop finished")
	return app.Run()
}

func rcPath(f *prog.Flags) string {
	if f.RC != "" {
		return f.RC
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "kalk", "rc.yaml")
}

func makeAppSpec(tty cli.TTY, cfg config.Config, f *prog.Flags) cli.AppSpec {
	spec := cli.AppSpec{
		TTY:                tty,
		CalculatorBindings: keyBindings(cfg.Keys),
	}
	maxHeight := f.MaxHeight
	if maxHeight == 0 {
		maxHeight = cfg.Display.MaxHeight
	}
	if maxHeight > 0 {
		spec.MaxHeight = func() int { return maxHeight }
	}
	return spec
}

// keyBindings converts the rc file key remappings into a bindings overlay for
// the calculator widget.
func keyBindings(keys config.Keys) tk.Bindings {
	m := tk.MapBindings{}
	add := func(key string, f func(tk.Calculator)) {
		if key == "" {
			return
		}
		r := []rune(key)[0]
		m[term.K(r)] = func(w tk.Widget) { f(w.(tk.Calculator)) }
	}
	add(keys.Clear, tk.Calculator.Clear)
	add(keys.Equals, func(c tk.Calculator) { c.Perform(calc.Equals) })
	add(keys.Exit, tk.Calculator.Exit)
	if len(m) == 0 {
		return nil
	}
	return m
}
