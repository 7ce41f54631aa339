package errors

import (
	stdlib "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

var (
	errTestThingNotFound = Register(9001, "thing not found").Of(ErrNotFound)
	errTestThingLocked   = Register(9002, "thing locked").Of(ErrInvalidState)
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrInvalidState,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is not an error": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"domain error matches its kind": {
			a:      ErrNotFound,
			b:      Wrap(errTestThingNotFound, "id 1"),
			wantIs: true,
		},
		"domain error matches itself": {
			a:      errTestThingNotFound,
			b:      Wrapf(errTestThingNotFound, "id %d", 2),
			wantIs: true,
		},
		"kind does not match a sibling domain error": {
			a:      errTestThingNotFound,
			b:      errTestThingLocked,
			wantIs: false,
		},
		"domain error does not match a foreign kind": {
			a:      ErrInvalidState,
			b:      errTestThingNotFound,
			wantIs: false,
		},
		"kind is not matched by a domain error check": {
			a:      errTestThingNotFound,
			b:      ErrNotFound,
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

func TestKind(t *testing.T) {
	if errTestThingLocked.Kind() != ErrInvalidState {
		t.Fatal("kind not declared")
	}
	if ErrInvalidState.Kind() != ErrInvalidState {
		t.Fatal("root error must be its own kind")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("duplicated code must panic")
		}
	}()
	Register(ErrNotFound.ABCICode(), "again")
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	if err := fn(); !ErrPanic.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStackTraceAttachedOnce(t *testing.T) {
	err := Wrap(Wrap(ErrNotFound, "inner"), "outer")
	if stackTrace(err) == nil {
		t.Fatal("stacktrace not attached")
	}
	if got, want := err.Error(), "outer: inner: not found"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if full := fmt.Sprintf("%+v", err); len(full) <= len(err.Error()) {
		t.Fatal("stacktrace not printed")
	}
}
