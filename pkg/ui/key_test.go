package ui

import (
	"testing"

	"src.kalk.dev/pkg/tt"
)

func TestKeyString(t *testing.T) {
	tt.Test(t, tt.Fn("Key.String", Key.String), tt.Table{
		tt.Args(K('a')).Rets("a"),
		tt.Args(K('D', Ctrl)).Rets("C-D"),
		tt.Args(K('x', Alt)).Rets("A-x"),
		tt.Args(K(Tab, Shift)).Rets("S-Tab"),
		tt.Args(K(Enter)).Rets("Enter"),
		tt.Args(K(F1)).Rets("F1"),
		tt.Args(K(Up, Ctrl, Alt)).Rets("C-A-Up"),
	})
}
