package tt

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// An implementation of T that records Errorf calls.
type testT []string

func (t *testT) Helper() {}

func (t *testT) Errorf(format string, args ...any) {
	*t = append(*t, fmt.Sprintf(format, args...))
}

func add(x, y int) int { return x + y }

var errBad = errors.New("bad")

func mayFail(fail bool) error {
	if fail {
		return errBad
	}
	return nil
}

func TestPass(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("add", add), Table{
		Args(1, 2).Rets(3),
		Args(-1, 1).Rets(0),
	})
	if len(mockT) > 0 {
		t.Errorf("Test errors when test cases pass: %v", mockT)
	}
}

func TestFail(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("add", add), Table{
		Args(1, 2).Rets(4),
	})
	if len(mockT) != 1 {
		t.Errorf("Test should report 1 error, got %v", len(mockT))
	}
	if !strings.Contains(mockT[0], "add(1, 2)") {
		t.Errorf("error message %q does not identify the call", mockT[0])
	}
}

func TestErrorMatching(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("mayFail", mayFail), Table{
		Args(true).Rets(errBad),
		Args(false).Rets(nil),
	})
	if len(mockT) > 0 {
		t.Errorf("Test errors on matching errors: %v", mockT)
	}

	mockT = nil
	Test(&mockT, Fn("mayFail", mayFail), Table{
		Args(true).Rets(nil),
	})
	if len(mockT) != 1 {
		t.Errorf("Test should report 1 error, got %v", len(mockT))
	}
}

func TestMatcher(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("add", add), Table{
		Args(1, 2).Rets(Any),
	})
	if len(mockT) > 0 {
		t.Errorf("Test errors with Any matcher: %v", mockT)
	}
}

func TestArgsFmt(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("add", add).ArgsFmt("x = %d, y = %d"), Table{
		Args(1, 2).Rets(4),
	})
	if len(mockT) != 1 || !strings.Contains(mockT[0], "x = 1, y = 2") {
		t.Errorf("error message %v does not use ArgsFmt", mockT)
	}
}
