package proc

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"mongo-keeper/internal/models"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on unix shell utilities")
	}
}

func waitForStatus(t *testing.T, pi *ProcessInstance, want models.RunStatus) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		pi.mutex.Lock()
		status := pi.Status
		pi.mutex.Unlock()
		if status == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("process never reached status %s", want)
}

func TestStartWritesLogAndTruncatesPreviousRun(t *testing.T) {
	skipOnWindows(t)
	logFile := filepath.Join(t.TempDir(), "logs.txt")
	if err := os.WriteFile(logFile, []byte("stale content from a previous run\n"), 0644); err != nil {
		t.Fatal(err)
	}

	pi := NewProcessInstance("echo-test", "sh", []string{"-c", "echo fresh"})
	pi.LogFile = logFile
	if err := pi.Start(); err != nil {
		t.Fatal(err)
	}
	waitForStatus(t, pi, models.StatusExited)

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fresh\n" {
		t.Errorf("log content = %q, stale content must be gone", data)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	skipOnWindows(t)
	pi := NewProcessInstance("sleep-test", "sleep", []string{"60"})
	if err := pi.Start(); err != nil {
		t.Fatal(err)
	}
	if pi.Pid() == 0 {
		t.Fatal("no pid after start")
	}

	if err := pi.Stop(); err != nil {
		t.Fatalf("first stop: %v", err)
	}
	if err := pi.Stop(); err != nil {
		t.Fatalf("second stop must be a no-op: %v", err)
	}
	if pi.Status != models.StatusStopped {
		t.Errorf("status = %s, want stopped", pi.Status)
	}
	if pi.Alive() {
		t.Error("process still alive after stop")
	}
}

func TestStopAfterNaturalExit(t *testing.T) {
	skipOnWindows(t)
	pi := NewProcessInstance("true-test", "true", nil)
	if err := pi.Start(); err != nil {
		t.Fatal(err)
	}
	waitForStatus(t, pi, models.StatusExited)

	if err := pi.Stop(); err != nil {
		t.Errorf("stop after natural exit must succeed: %v", err)
	}
	if pi.LastExitReason != "exited normally" {
		t.Errorf("exit reason = %q", pi.LastExitReason)
	}
}

func TestStartMissingExecutable(t *testing.T) {
	pi := NewProcessInstance("missing", filepath.Join(t.TempDir(), "does-not-exist"), nil)
	err := pi.Start()
	if err == nil {
		t.Fatal("expected spawn failure")
	}
	if pi.Status != models.StatusError {
		t.Errorf("status = %s, want error", pi.Status)
	}
}

func TestStartTwiceIsNoop(t *testing.T) {
	skipOnWindows(t)
	pi := NewProcessInstance("sleep-test", "sleep", []string{"60"})
	if err := pi.Start(); err != nil {
		t.Fatal(err)
	}
	defer pi.Stop()
	pid := pi.Pid()

	if err := pi.Start(); err != nil {
		t.Fatal(err)
	}
	if pi.Pid() != pid {
		t.Error("second start spawned a new process")
	}
}

func TestOnExitCallbackOnNaturalExit(t *testing.T) {
	skipOnWindows(t)
	type exitReport struct {
		status models.RunStatus
		err    error
	}
	got := make(chan exitReport, 1)
	pi := NewProcessInstance("true-test", "true", nil)
	pi.OnExit = func(status models.RunStatus, err error) {
		got <- exitReport{status, err}
	}
	if err := pi.Start(); err != nil {
		t.Fatal(err)
	}

	select {
	case report := <-got:
		if report.status != models.StatusExited {
			t.Errorf("callback status = %s, want exited", report.status)
		}
		if report.err != nil {
			t.Errorf("callback error = %v, want nil for clean exit", report.err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("exit callback never invoked")
	}
}

func TestOnExitCallbackOnUserStop(t *testing.T) {
	skipOnWindows(t)
	got := make(chan models.RunStatus, 1)
	pi := NewProcessInstance("sleep-test", "sleep", []string{"60"})
	pi.OnExit = func(status models.RunStatus, err error) {
		got <- status
	}
	if err := pi.Start(); err != nil {
		t.Fatal(err)
	}
	if err := pi.Stop(); err != nil {
		t.Fatal(err)
	}

	select {
	case status := <-got:
		if status != models.StatusStopped {
			t.Errorf("callback status = %s, want stopped for user-initiated stop", status)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("exit callback never invoked")
	}
}
