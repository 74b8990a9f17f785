package clitest

import (
	"src.kalk.dev/pkg/cli"
)

// Fixture is a test fixture: an app running against a fake TTY, with its Run
// method started in a goroutine.
type Fixture struct {
	App cli.App
	TTY TTYCtrl

	errCh <-chan error
}

// Setup sets up a test fixture. The functions are called against the AppSpec
// and the fake TTY before the app is created.
func Setup(fns ...func(*cli.AppSpec, TTYCtrl)) *Fixture {
	tty, ttyCtrl := NewFakeTTY()
	spec := cli.AppSpec{TTY: tty}
	for _, fn := range fns {
		fn(&spec, ttyCtrl)
	}
	app := cli.NewApp(spec)
	errCh := StartRun(app)
	return &Fixture{app, ttyCtrl, errCh}
}

// WithSpec takes a function that operates on AppSpec, and wraps it into a
// form suitable for passing to Setup.
func WithSpec(f func(*cli.AppSpec)) func(*cli.AppSpec, TTYCtrl) {
	return func(spec *cli.AppSpec, _ TTYCtrl) { f(spec) }
}

// WithTTY takes a function that operates on TTYCtrl, and wraps it into a form
// suitable for passing to Setup.
func WithTTY(f func(TTYCtrl)) func(*cli.AppSpec, TTYCtrl) {
	return func(_ *cli.AppSpec, tty TTYCtrl) { f(tty) }
}

// StartRun starts the Run method of the app in a goroutine, and returns a
// channel that delivers its return value.
func StartRun(app cli.App) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run()
	}()
	return errCh
}

// Wait waits for Run to finish, and returns its return value.
func (f *Fixture) Wait() error {
	return <-f.errCh
}

// Stop commits an exit, and waits for Run to finish.
func (f *Fixture) Stop() error {
	f.App.CommitExit()
	return f.Wait()
}
