package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"mongo-keeper/internal/archive"
	"mongo-keeper/internal/config"
	"mongo-keeper/internal/env"
	"mongo-keeper/internal/fetch"
	"mongo-keeper/internal/formula"
	"mongo-keeper/internal/logger"
	"mongo-keeper/internal/models"
	"mongo-keeper/internal/paths"
	"mongo-keeper/internal/proc"
	"mongo-keeper/internal/shutdown"
	"mongo-keeper/internal/utils"
)

/**
 * Service instance: one launched (or launching) target process together with
 * its resolved configuration, planned paths and lifecycle state. Created by
 * ServiceManager.Launch, owned by the caller, released by Close.
 */
type ServiceInstance struct {
	Name      string
	Formula   *models.Formula
	Config    models.ResolvedConfig
	Paths     models.ResolvedPaths
	StartTime time.Time

	state      models.InstallState
	stateMu    sync.Mutex
	proc       *proc.ProcessInstance
	closeOnce  sync.Once
	stopMark   sync.Once
	closeErr   error
	unregister func()
}

func (si *ServiceInstance) State() models.InstallState {
	si.stateMu.Lock()
	defer si.stateMu.Unlock()
	return si.state
}

// setState ignores transitions out of Stopped/Failed: the terminal states
// absorb, so a self-exit racing the tail of Launch cannot resurrect the
// instance.
func (si *ServiceInstance) setState(state models.InstallState) {
	si.stateMu.Lock()
	prev := si.state
	if prev == models.StateStopped || prev == models.StateFailed {
		si.stateMu.Unlock()
		return
	}
	si.state = state
	si.stateMu.Unlock()
	logger.Debugf("Instance '%s': %s -> %s", si.Name, prev, state)
}

// markStopped moves the instance to its terminal state and balances the
// running-services gauge exactly once, however Close and a self-exit
// interleave.
func (si *ServiceInstance) markStopped(state models.InstallState) {
	si.stopMark.Do(func() {
		si.setState(state)
		serviceStopped()
	})
}

// detachHook takes the shutdown-registry unregister function at most once.
func (si *ServiceInstance) detachHook() {
	si.stateMu.Lock()
	unregister := si.unregister
	si.unregister = nil
	si.stateMu.Unlock()
	if unregister != nil {
		unregister()
	}
}

// Process returns the live child-process reference, or nil before spawn /
// after exit.
func (si *ServiceInstance) Process() *os.Process {
	if si.proc == nil {
		return nil
	}
	return si.proc.Process()
}

func (si *ServiceInstance) Pid() int {
	if si.proc == nil {
		return 0
	}
	return si.proc.Pid()
}

/**
 * Close terminates the running child process
 * @returns {error} Returns error if the termination request fails
 * @description
 * - Idempotent: second and further calls return the first result without
 *   issuing another termination request
 * - Safe when the process already exited on its own; an instance already in
 *   a terminal state keeps that state
 * - Unregisters the instance's shutdown hook so host-level shutdown does not
 *   close it a second time
 */
func (si *ServiceInstance) Close() error {
	si.closeOnce.Do(func() {
		si.detachHook()
		switch si.State() {
		case models.StateStopped, models.StateFailed:
			return
		}
		si.setState(models.StateStopping)
		if si.proc != nil {
			si.closeErr = si.proc.Stop()
		}
		if si.closeErr == nil {
			si.markStopped(models.StateStopped)
			logger.Infof("Instance '%s' stopped", si.Name)
		}
	})
	return si.closeErr
}

/**
 * WaitReady blocks until the instance's port accepts connections
 * @param {context.Context} ctx - Context bounding the wait
 */
func (si *ServiceInstance) WaitReady(ctx context.Context) error {
	return utils.WaitPortReady(ctx, si.Config.Port)
}

func (si *ServiceInstance) GetDetail() models.ServiceDetail {
	detail := models.ServiceDetail{
		Name:     si.Name,
		Formula:  si.Formula.Name,
		Version:  si.Formula.Version,
		Platform: si.Config.Platform.Name,
		Pid:      si.Pid(),
		Port:     si.Config.Port,
		State:    si.State(),
		Paths:    si.Paths,
	}
	if !si.StartTime.IsZero() {
		detail.StartTime = si.StartTime.Format(time.RFC3339)
	}
	if si.proc != nil {
		pd := si.proc.GetDetail()
		detail.Process = &pd
	}
	return detail
}

/**
 * ServiceManager drives the install-and-launch sequence and keeps the
 * instances it created. The shutdown registry is an injected capability: the
 * host application decides when registered cleanup hooks run.
 */
type ServiceManager struct {
	mu        sync.Mutex
	acquirer  *fetch.Acquirer
	registry  *shutdown.Registry
	instances map[string]*ServiceInstance
}

var serviceManager *ServiceManager
var serviceManagerOnce sync.Once

func GetServiceManager() *ServiceManager {
	serviceManagerOnce.Do(func() {
		serviceManager = NewServiceManager(shutdown.Default())
	})
	return serviceManager
}

func NewServiceManager(registry *shutdown.Registry) *ServiceManager {
	return &ServiceManager{
		acquirer:  fetch.NewAcquirer(),
		registry:  registry,
		instances: make(map[string]*ServiceInstance),
	}
}

/**
 * Launch 安装并启动一个服务实例
 * @param {context.Context} ctx - Context for download cancellation; the
 * spawned child is NOT bound to it and outlives the call
 * @param {*models.Formula} f - Formula describing the target service
 * @param {config.Options} opts - Partial launch options
 * @param {fetch.ProgressFunc} progress - Optional download progress observer, may be nil
 * @returns {(*ServiceInstance, error)} Returns the running instance, or the
 * error of the first failing step
 * @description
 * - Strictly sequential: resolve config, plan paths, ensure artifact, ensure
 *   extraction, prepare data/log directories, build arguments, spawn,
 *   register the shutdown hook
 * - Acquisition and extraction are skipped entirely when their targets exist,
 *   so repeated launches with identical configuration are cheap
 * - A child that exits on its own moves the instance to Stopped (clean exit)
 *   or Failed (crash/external kill) and releases its shutdown hook
 * - No step is retried; the first failure aborts the remaining sequence
 * @throws
 * - UnsupportedPlatformError before any I/O when the platform has no entry
 * - FilesystemError / AcquisitionError / ExtractionError / LaunchError from
 *   the corresponding steps
 */
func (sm *ServiceManager) Launch(ctx context.Context, f *models.Formula, opts config.Options, progress fetch.ProgressFunc) (*ServiceInstance, error) {
	si := &ServiceInstance{Formula: f, state: models.StateUnresolved}

	cfg, err := config.Resolve(f, opts)
	if err != nil {
		recordStepFailure(f.Name, "resolve")
		si.setState(models.StateFailed)
		return nil, err
	}
	si.Config = cfg
	si.Name = instanceKey(cfg.Name, f.Name)
	si.setState(models.StateConfigResolved)

	si.Paths = paths.Plan(f, cfg)
	si.setState(models.StatePathsPlanned)

	if _, err := os.Stat(si.Paths.SourceFile); err == nil {
		si.setState(models.StateArtifactCached)
	} else {
		si.setState(models.StateDownloading)
		begin := time.Now()
		if err := sm.acquirer.Ensure(ctx, f, cfg, si.Paths, progress); err != nil {
			recordStepFailure(f.Name, "download")
			si.setState(models.StateFailed)
			return nil, err
		}
		recordDownload(f.Name, time.Since(begin))
		si.setState(models.StateDownloaded)
	}

	_, dirErr := os.Stat(si.Paths.ExtractDir)
	_, execErr := os.Stat(si.Paths.ExecFile)
	if dirErr == nil && execErr == nil {
		si.setState(models.StateExtractionCached)
	} else {
		si.setState(models.StateExtracting)
		if err := archive.Ensure(f, si.Paths); err != nil {
			recordStepFailure(f.Name, "extract")
			si.setState(models.StateFailed)
			return nil, err
		}
		recordExtraction(f.Name)
		si.setState(models.StateExtracted)
	}

	for _, dir := range []string{si.Paths.DataDir, si.Paths.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			recordStepFailure(f.Name, "prepare")
			si.setState(models.StateFailed)
			return nil, &models.FilesystemError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	si.setState(models.StateLogPrepared)

	args := utils.BuildCommandLine(f.ExecArgs, cfg.Port, si.Paths.DataDir, cfg.ExtraArgs)
	si.setState(models.StateSpawning)

	pi := proc.NewProcessInstance(si.Name, si.Paths.ExecFile, args)
	pi.WorkDir = si.Paths.DataDir
	pi.LogFile = si.Paths.LogFile
	pi.Detach = !env.Daemon
	pi.OnExit = func(status models.RunStatus, exitErr error) {
		// User-initiated stops are accounted by Close.
		if status == models.StatusStopped {
			return
		}
		si.detachHook()
		if exitErr != nil {
			logger.Warnf("Instance '%s' exited on its own: %v", si.Name, exitErr)
			si.markStopped(models.StateFailed)
		} else {
			logger.Infof("Instance '%s' exited on its own", si.Name)
			si.markStopped(models.StateStopped)
		}
	}
	if err := pi.Start(); err != nil {
		recordStepFailure(f.Name, "spawn")
		si.setState(models.StateFailed)
		var fsErr *models.FilesystemError
		if errors.As(err, &fsErr) {
			// Log-file preparation failures keep their filesystem identity.
			return nil, err
		}
		return nil, &models.LaunchError{Formula: f.Name, Exec: si.Paths.ExecFile, Err: err}
	}
	si.proc = pi
	si.StartTime = time.Now()
	unregister := sm.registry.Register(si.Close)
	si.stateMu.Lock()
	si.unregister = unregister
	si.stateMu.Unlock()

	sm.mu.Lock()
	sm.instances[si.Name] = si
	sm.mu.Unlock()

	si.setState(models.StateRunning)
	serviceStarted()
	sm.saveInstance(si)
	logger.Infof("Instance '%s' running (PID: %d, port: %d)", si.Name, si.Pid(), cfg.Port)
	return si, nil
}

/**
 * StartFormula looks up a formula by name in the registry and launches it
 */
func (sm *ServiceManager) StartFormula(ctx context.Context, name string, opts config.Options, progress fetch.ProgressFunc) (*ServiceInstance, error) {
	f, err := formula.GetRegistry().Lookup(name)
	if err != nil {
		return nil, err
	}
	return sm.Launch(ctx, f, opts, progress)
}

/**
 * StopService stops an instance by name
 * @param {string} name - Instance key or formula name
 * @returns {error} Returns error when no live instance or persisted record matches
 * @description
 * - A live instance (launched by this process) is closed directly
 * - Otherwise the persisted instance record from an earlier invocation is
 *   loaded and its recorded process killed
 */
func (sm *ServiceManager) StopService(name string) error {
	if si := sm.GetInstance(name); si != nil {
		err := si.Close()
		sm.removeRecord(si.Name)
		return err
	}

	rec, err := sm.findRecord(name)
	if err != nil {
		return err
	}
	if exists, _ := process.PidExists(int32(rec.Pid)); !exists {
		logger.Warnf("Instance '%s' (PID: %d) is no longer running", rec.Name, rec.Pid)
		sm.removeRecord(instanceKey(rec.Name, rec.Formula))
		return nil
	}
	p, err := os.FindProcess(rec.Pid)
	if err != nil {
		return err
	}
	if err := p.Kill(); err != nil {
		return fmt.Errorf("failed to kill instance '%s' (PID: %d): %v", rec.Name, rec.Pid, err)
	}
	sm.removeRecord(instanceKey(rec.Name, rec.Formula))
	logger.Infof("Instance '%s' (PID: %d) stopped", rec.Name, rec.Pid)
	return nil
}

func (sm *ServiceManager) GetInstances() []*ServiceInstance {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	instances := make([]*ServiceInstance, 0, len(sm.instances))
	for _, si := range sm.instances {
		instances = append(instances, si)
	}
	return instances
}

/**
 * GetInstance finds a live instance by full key ("<name>/<formula>") or by
 * formula name alone
 */
func (sm *ServiceManager) GetInstance(name string) *ServiceInstance {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if si, ok := sm.instances[name]; ok {
		return si
	}
	for _, si := range sm.instances {
		if si.Formula.Name == name {
			return si
		}
	}
	return nil
}

func instanceKey(name, formulaName string) string {
	return name + "/" + formulaName
}

func recordDir() string {
	return filepath.Join(env.KeeperDir(), "cache", "services")
}

func recordPath(key string) string {
	return filepath.Join(recordDir(), strings.ReplaceAll(key, "/", "-")+".json")
}

/**
 * Save instance information to the cache directory so later CLI invocations
 * can find and stop it
 */
func (sm *ServiceManager) saveInstance(si *ServiceInstance) {
	if err := os.MkdirAll(recordDir(), 0755); err != nil {
		logger.Errorf("Instance '%s' save info failed, error: %v", si.Name, err)
		return
	}
	rec := models.InstanceRecord{
		Name:      si.Config.Name,
		Formula:   si.Formula.Name,
		Version:   si.Formula.Version,
		Platform:  si.Config.Platform.Name,
		Pid:       si.Pid(),
		Port:      si.Config.Port,
		ExecFile:  si.Paths.ExecFile,
		LogFile:   si.Paths.LogFile,
		StartTime: si.StartTime.Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		logger.Errorf("Instance '%s' save info failed, error: %v", si.Name, err)
		return
	}
	if err := os.WriteFile(recordPath(si.Name), data, 0644); err != nil {
		logger.Errorf("Instance '%s' save info failed, error: %v", si.Name, err)
	}
}

func (sm *ServiceManager) removeRecord(key string) {
	if err := os.Remove(recordPath(key)); err != nil && !os.IsNotExist(err) {
		logger.Warnf("Failed to remove instance record '%s': %v", key, err)
	}
}

/**
 * ListRecords returns the persisted instance records of earlier invocations
 */
func (sm *ServiceManager) ListRecords() []models.InstanceRecord {
	entries, err := os.ReadDir(recordDir())
	if err != nil {
		return nil
	}
	var records []models.InstanceRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(recordDir(), entry.Name()))
		if err != nil {
			continue
		}
		var rec models.InstanceRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func (sm *ServiceManager) findRecord(name string) (*models.InstanceRecord, error) {
	for _, rec := range sm.ListRecords() {
		if rec.Formula == name || instanceKey(rec.Name, rec.Formula) == name {
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("no instance found for '%s'", name)
}
