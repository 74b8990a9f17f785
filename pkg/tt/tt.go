// Package tt supports table-driven tests with little boilerplate.
//
// See the test case for this package for example usage.
package tt

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Table is a list of test cases.
type Table []*Case

// Case is a single test case: a list of arguments and the expected return
// values. It is created by Args and augmented by chaining Rets.
type Case struct {
	args     []any
	wantRets []any
}

// Args returns a new Case with the given arguments.
func Args(args ...any) *Case {
	return &Case{args: args}
}

// Rets sets the expected return values and returns the receiver. The expected
// values may implement the Matcher interface, in which case matching is
// delegated to the Match method. Expected errors are matched with errors.Is.
// Everything else is compared with go-cmp.
func (c *Case) Rets(rets ...any) *Case {
	c.wantRets = rets
	return c
}

// FnToTest describes the function to test.
type FnToTest struct {
	name    string
	body    any
	argsFmt string
}

// Fn makes a new FnToTest with the given name and body.
func Fn(name string, body any) *FnToTest {
	return &FnToTest{name: name, body: body}
}

// ArgsFmt sets the format string used for formatting arguments in test error
// messages, and returns fn itself.
func (fn *FnToTest) ArgsFmt(s string) *FnToTest {
	fn.argsFmt = s
	return fn
}

// T is the subset of testing.T that this package uses.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test tests a function against the given table.
func Test(t T, fn *FnToTest, tests Table) {
	t.Helper()
	for _, test := range tests {
		rets := call(fn.body, test.args)
		for i, want := range test.wantRets {
			if ok, diff := matchOne(want, rets[i]); !ok {
				t.Errorf("%s(%s): return value %d mismatch (-want +got):\n%s",
					fn.name, sprintArgs(fn.argsFmt, test.args), i, diff)
			}
		}
	}
}

// RetValue is an empty interface used in the Matcher interface.
type RetValue any

// Matcher wraps the Match method.
type Matcher interface {
	// Match reports whether a return value is considered a match. The argument
	// is of type RetValue so that it cannot be implemented accidentally.
	Match(RetValue) bool
}

// Any is a Matcher that matches any value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(RetValue) bool { return true }

func matchOne(want, got any) (bool, string) {
	if m, ok := want.(Matcher); ok {
		if m.Match(got) {
			return true, ""
		}
		return false, fmt.Sprintf("got %v, want match by %v", got, m)
	}
	if wantErr, ok := want.(error); ok {
		gotErr, _ := got.(error)
		if gotErr != nil && errors.Is(gotErr, wantErr) {
			return true, ""
		}
		return false, fmt.Sprintf("got error %v, want %v", gotErr, wantErr)
	}
	if got != nil {
		if _, isErr := got.(error); isErr {
			return false, fmt.Sprintf("got error %v, want nil", got)
		}
	}
	diff := cmp.Diff(want, got, cmp.Exporter(func(reflect.Type) bool { return true }))
	return diff == "", diff
}

func sprintArgs(format string, args []any) string {
	if format != "" {
		return fmt.Sprintf(format, args...)
	}
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, arg)
	}
	return sb.String()
}

func call(fn any, args []any) []any {
	argsReflect := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			// reflect.ValueOf(nil) returns a zero Value; work around this by
			// taking the ValueOf a pointer to nil and dereferencing it.
			var v any
			argsReflect[i] = reflect.ValueOf(&v).Elem()
		} else {
			argsReflect[i] = reflect.ValueOf(arg)
		}
	}
	retsReflect := reflect.ValueOf(fn).Call(argsReflect)
	rets := make([]any, len(retsReflect))
	for i, retReflect := range retsReflect {
		rets[i] = retReflect.Interface()
	}
	return rets
}
