package shutdown

import (
	"errors"
	"testing"
)

func TestTriggerRunsHooksOnce(t *testing.T) {
	r := NewRegistry()
	calls := 0
	r.Register(func() error {
		calls++
		return nil
	})

	r.Trigger()
	r.Trigger()
	if calls != 1 {
		t.Errorf("hook ran %d times, want exactly 1", calls)
	}
}

func TestTriggerReverseOrder(t *testing.T) {
	r := NewRegistry()
	var order []string
	r.Register(func() error { order = append(order, "first"); return nil })
	r.Register(func() error { order = append(order, "second"); return nil })

	r.Trigger()
	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("hooks ran in order %v, want reverse registration order", order)
	}
}

func TestUnregisterBeforeTrigger(t *testing.T) {
	r := NewRegistry()
	ran := false
	unregister := r.Register(func() error {
		ran = true
		return nil
	})
	unregister()

	r.Trigger()
	if ran {
		t.Error("unregistered hook still ran")
	}
}

func TestUnregisterAfterTriggerIsSafe(t *testing.T) {
	r := NewRegistry()
	unregister := r.Register(func() error { return nil })
	r.Trigger()
	unregister()
}

func TestHookErrorDoesNotStopOthers(t *testing.T) {
	r := NewRegistry()
	ran := false
	r.Register(func() error { ran = true; return nil })
	r.Register(func() error { return errors.New("boom") })

	r.Trigger()
	if !ran {
		t.Error("hook after a failing hook did not run")
	}
}

func TestRegisterAfterTrigger(t *testing.T) {
	r := NewRegistry()
	r.Trigger()

	ran := false
	r.Register(func() error { ran = true; return nil })
	r.Trigger()
	if !ran {
		t.Error("hook registered after an earlier Trigger never ran")
	}
}
