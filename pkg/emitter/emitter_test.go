package emitter

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder returns a handler that appends "<tag>:<args>" to *log.
func recorder(log *[]string, tag string) *Handler {
	return Func(func(args ...any) {
		entry := tag
		for _, a := range args {
			entry += ":" + a.(string)
		}
		*log = append(*log, entry)
	})
}

func TestEmitInvokesInRegistrationOrder(t *testing.T) {
	e := New()
	var log []string
	h1 := recorder(&log, "h1")
	h2 := recorder(&log, "h2")

	if err := e.On("update", h1); err != nil {
		t.Fatalf("On(h1): %v", err)
	}
	if err := e.On("update", h2); err != nil {
		t.Fatalf("On(h2): %v", err)
	}

	if err := e.Emit("update", "x"); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	want := []string{"h1:x", "h2:x"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("invocation order mismatch (-want +got):\n%s", diff)
	}
}

func TestOffRemovesOnlyThatHandler(t *testing.T) {
	e := New()
	var log []string
	h1 := recorder(&log, "h1")
	h2 := recorder(&log, "h2")
	_ = e.On("update", h1)
	_ = e.On("update", h2)

	e.Off("update", h1)
	_ = e.Emit("update", "x")

	want := []string{"h2:x"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("after Off (-want +got):\n%s", diff)
	}
}

func TestOffRemovesAllOccurrences(t *testing.T) {
	e := New()
	var log []string
	h := recorder(&log, "h")
	_ = e.On("update", h)
	_ = e.On("update", h)
	_ = e.On("update", h)

	if got := e.Count("update"); got != 3 {
		t.Fatalf("expected 3 registrations, got %d", got)
	}

	e.Off("update", h)
	if got := e.Count("update"); got != 0 {
		t.Errorf("expected 0 registrations after Off, got %d", got)
	}
	_ = e.Emit("update", "x")
	if len(log) != 0 {
		t.Errorf("expected no invocations, got %v", log)
	}
}

func TestDuplicateRegistrationInvokedTwice(t *testing.T) {
	e := New()
	var log []string
	h := recorder(&log, "h")
	_ = e.On("update", h)
	_ = e.On("update", h)

	_ = e.Emit("update", "x")
	if len(log) != 2 {
		t.Errorf("expected 2 invocations, got %d", len(log))
	}
}

func TestOnRejectsNonCallable(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		h    *Handler
	}{
		{"nil handler", nil},
		{"nil func", NewHandler(nil)},
		{"nil Func", Func(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.On("update", tt.h)
			var invalid *InvalidHandlerError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidHandlerError, got %v", err)
			}
			if invalid.Type != "update" {
				t.Errorf("expected Type=update, got %q", invalid.Type)
			}
		})
	}
	if got := e.Count("update"); got != 0 {
		t.Errorf("rejected handlers must not be registered, got %d", got)
	}
}

func TestUnknownTypeIsEmptySet(t *testing.T) {
	e := New()
	h := Func(func(...any) {})

	// None of these may panic.
	e.Off("never-registered", h)
	if err := e.Emit("never-registered", 1, 2); err != nil {
		t.Errorf("Emit on unknown type returned %v", err)
	}
	if got := e.Handlers("never-registered"); len(got) != 0 {
		t.Errorf("expected no handlers, got %d", len(got))
	}
}

func TestZeroValueEmitter(t *testing.T) {
	var e Emitter
	called := false
	if err := e.On("x", Func(func(...any) { called = true })); err != nil {
		t.Fatalf("On: %v", err)
	}
	_ = e.Emit("x")
	if !called {
		t.Error("zero-value emitter did not invoke handler")
	}
}

func TestHandlerErrorPropagatesUnchanged(t *testing.T) {
	e := New()
	boom := errors.New("boom")
	var log []string

	_ = e.On("update", recorder(&log, "first"))
	_ = e.On("update", NewHandler(func(...any) error { return boom }))
	_ = e.On("update", recorder(&log, "never"))

	err := e.Emit("update", "x")
	if err != boom {
		t.Fatalf("expected the handler's own error, got %v", err)
	}
	want := []string{"first:x"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("fan-out must stop at the failing handler (-want +got):\n%s", diff)
	}
}

func TestOffDuringEmitSkipsRemovedHandler(t *testing.T) {
	e := New()
	var log []string
	h2 := recorder(&log, "h2")
	h1 := Func(func(...any) {
		log = append(log, "h1")
		e.Off("update", h2)
	})
	_ = e.On("update", h1)
	_ = e.On("update", h2)

	_ = e.Emit("update")

	want := []string{"h1"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("removed handler should be skipped (-want +got):\n%s", diff)
	}
}

func TestOnDuringEmitDefersToNextRound(t *testing.T) {
	e := New()
	var log []string
	late := recorder(&log, "late")
	registered := false
	_ = e.On("update", Func(func(...any) {
		log = append(log, "early")
		if !registered {
			registered = true
			_ = e.On("update", late)
		}
	}))

	_ = e.Emit("update")
	_ = e.Emit("update")

	want := []string{"early", "early", "late"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestWildcardIsAnOrdinaryType(t *testing.T) {
	e := New()
	called := false
	_ = e.On("*", Func(func(...any) { called = true }))

	_ = e.Emit("update")
	if called {
		t.Error("emitter must not special-case the * type")
	}
	_ = e.Emit("*")
	if !called {
		t.Error("explicit * emit should reach * handlers")
	}
}

func TestHandlersReturnsCopyInOrder(t *testing.T) {
	e := New()
	h1 := Func(func(...any) {})
	h2 := Func(func(...any) {})
	_ = e.On("t", h1)
	_ = e.On("t", h2)

	got := e.Handlers("t")
	if len(got) != 2 || got[0] != h1 || got[1] != h2 {
		t.Fatalf("unexpected handlers %v", got)
	}
	got[0] = nil
	if e.Handlers("t")[0] != h1 {
		t.Error("mutating the returned slice changed the registry")
	}
}

func TestClearDropsEverything(t *testing.T) {
	e := New()
	_ = e.On("a", Func(func(...any) {}))
	_ = e.On("b", Func(func(...any) {}))

	e.Clear()
	if e.Count("a") != 0 || e.Count("b") != 0 {
		t.Error("expected no registrations after Clear")
	}
}

func TestCallNonCallable(t *testing.T) {
	var h *Handler
	if err := h.Call(); err == nil {
		t.Error("expected error calling nil handler")
	}
}
