package proc

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"mongo-keeper/internal/logger"
	"mongo-keeper/internal/models"
)

/**
 * ProcessInstance 进程实例信息
 * @property {string} title - Display name of the process
 * @property {string} command - Executable path
 * @property {[]string} args - Command arguments
 * @property {string} workDir - Working directory
 * @property {string} logFile - Log sink path; truncated on every start and
 *           bound to the child's stdout and stderr
 * @property {bool} detach - Put the child in its own process group so it
 *           survives the parent (one-shot CLI mode)
 * @property {func} onExit - Optional callback invoked once after the child
 *           left the process table, with the final run status and the error
 *           Wait reported (nil on clean exit). Must be set before Start.
 */
type ProcessInstance struct {
	Title          string
	Command        string
	Args           []string
	WorkDir        string
	LogFile        string
	Detach         bool
	OnExit         func(status models.RunStatus, err error)
	Status         models.RunStatus
	StartTime      time.Time
	LastExitTime   time.Time
	LastExitReason string

	process *os.Process
	logSink *os.File
	done    chan struct{}
	mutex   sync.Mutex
}

func NewProcessInstance(title, command string, args []string) *ProcessInstance {
	return &ProcessInstance{
		Title:   title,
		Command: command,
		Args:    args,
		Status:  models.StatusExited,
	}
}

func (pi *ProcessInstance) Pid() int {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()
	if pi.process == nil {
		return 0
	}
	return pi.process.Pid
}

// Process returns the live child-process reference, or nil after exit.
func (pi *ProcessInstance) Process() *os.Process {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()
	return pi.process
}

func (pi *ProcessInstance) GetDetail() models.ProcessDetail {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()
	pid := 0
	if pi.process != nil {
		pid = pi.process.Pid
	}
	return models.ProcessDetail{
		Title:          pi.Title,
		Command:        pi.Command,
		Args:           pi.Args,
		WorkDir:        pi.WorkDir,
		Pid:            pid,
		Status:         pi.Status,
		StartTime:      pi.StartTime,
		LastExitTime:   pi.LastExitTime,
		LastExitReason: pi.LastExitReason,
	}
}

/**
 * Start 启动进程
 * @returns {error} Returns error if spawn fails
 * @description
 * - Deletes any pre-existing log file so each start gets a fresh, truncated log
 * - Binds the child's stdout and stderr to the log sink; nothing reaches the
 *   caller's terminal
 * - The child's lifetime is not tied to any caller context; Stop is the only
 *   termination primitive, so a service keeps running after the starting
 *   request or CLI invocation ends
 * - Starts a watcher goroutine that records exit time and reason
 * - Calling Start on an already-running instance is a no-op
 */
func (pi *ProcessInstance) Start() error {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()

	if pi.Status == models.StatusRunning {
		return nil
	}
	if pi.LogFile != "" {
		if err := os.Remove(pi.LogFile); err != nil && !os.IsNotExist(err) {
			return &models.FilesystemError{Op: "remove", Path: pi.LogFile, Err: err}
		}
		sink, err := os.OpenFile(pi.LogFile, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return &models.FilesystemError{Op: "open", Path: pi.LogFile, Err: err}
		}
		pi.logSink = sink
	}

	logger.Infof("Executing command: %s %v", pi.Command, pi.Args)
	cmd := exec.Command(pi.Command, pi.Args...)
	if pi.WorkDir != "" {
		cmd.Dir = pi.WorkDir
	}
	if pi.logSink != nil {
		cmd.Stdout = pi.logSink
		cmd.Stderr = pi.logSink
	}
	if pi.Detach {
		setDetached(cmd)
	}

	if err := cmd.Start(); err != nil {
		pi.Status = models.StatusError
		pi.LastExitReason = fmt.Sprintf("start failed: %v", err)
		if pi.logSink != nil {
			pi.logSink.Close()
			pi.logSink = nil
		}
		logger.Errorf("Failed to start process '%s', error: %v", pi.Title, err)
		return err
	}

	pi.process = cmd.Process
	pi.Status = models.StatusRunning
	pi.StartTime = time.Now()
	pi.done = make(chan struct{})

	logger.Infof("Process '%s' started (PID: %d)", pi.Title, pi.process.Pid)
	go pi.watch(cmd)
	return nil
}

/**
 * watch 监控进程退出的协程
 * @description
 * - Waits on the child and records exit time and reason
 * - Closes the log sink once the child can no longer write to it
 * - Signals the done channel so Stop can await termination
 * - Invokes the OnExit callback outside the lock, so callbacks may call back
 *   into the instance
 */
func (pi *ProcessInstance) watch(cmd *exec.Cmd) {
	err := cmd.Wait()

	pi.mutex.Lock()
	pi.LastExitTime = time.Now()
	if pi.Status == models.StatusStopped {
		logger.Infof("Process '%s' stopped by user", pi.Title)
	} else if err != nil {
		logger.Warnf("Process '%s' exited with error: %v", pi.Title, err)
		pi.Status = models.StatusExited
		pi.LastExitReason = fmt.Sprintf("exited with error: %v", err)
	} else {
		logger.Infof("Process '%s' exited normally", pi.Title)
		pi.Status = models.StatusExited
		pi.LastExitReason = "exited normally"
	}
	if pi.logSink != nil {
		pi.logSink.Close()
		pi.logSink = nil
	}
	pi.process = nil
	status := pi.Status
	close(pi.done)
	pi.mutex.Unlock()

	if pi.OnExit != nil {
		pi.OnExit(status, err)
	}
}

/**
 * Stop 停止进程
 * @returns {error} Returns error if the kill request fails
 * @description
 * - Safe to invoke more than once; a second call is a no-op
 * - Safe to invoke after the process exited on its own
 * - Issues at most one termination request, then waits for the watcher to
 *   observe the exit
 */
func (pi *ProcessInstance) Stop() error {
	pi.mutex.Lock()
	if pi.Status != models.StatusRunning || pi.process == nil {
		pi.mutex.Unlock()
		return nil
	}
	pi.Status = models.StatusStopped
	pi.LastExitReason = "stopped by user"
	proc := pi.process
	done := pi.done
	pi.mutex.Unlock()

	if err := proc.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		logger.Errorf("Failed to kill process '%s' (PID: %d): %v", pi.Title, proc.Pid, err)
		return err
	}
	<-done
	return nil
}

/**
 * Alive reports whether the child process still exists in the process table
 */
func (pi *ProcessInstance) Alive() bool {
	pid := pi.Pid()
	if pid == 0 {
		return false
	}
	exists, err := process.PidExists(int32(pid))
	return err == nil && exists
}
