package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"mongo-keeper/internal/logger"
)

type CleanupFunc func() error

/**
 * Registry collects cleanup hooks and invokes each at most once when the
 * host application decides to shut down. Handles register their close
 * operation here instead of installing hidden global signal handlers; the
 * host drives Trigger (directly or through HandleSignals).
 */
type Registry struct {
	mu    sync.Mutex
	seq   int
	hooks map[int]CleanupFunc
	order []int
}

func NewRegistry() *Registry {
	return &Registry{hooks: make(map[int]CleanupFunc)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used when none is injected.
func Default() *Registry {
	return defaultRegistry
}

/**
 * Register a cleanup hook
 * @param {CleanupFunc} fn - Hook to run at shutdown
 * @returns {func()} Returns an unregister function; safe to call after Trigger
 * @description
 * - Hooks run in reverse registration order
 * - A hook unregistered before Trigger never runs
 */
func (r *Registry) Register(fn CleanupFunc) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := r.seq
	r.hooks[id] = fn
	r.order = append(r.order, id)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.hooks, id)
	}
}

/**
 * Trigger runs every registered hook exactly once
 * @description
 * - Hooks are detached from the registry before running, so re-entrant or
 *   repeated Trigger calls are no-ops for already-taken hooks
 * - Hook errors are logged, not propagated; shutdown keeps going
 */
func (r *Registry) Trigger() {
	r.mu.Lock()
	order := r.order
	hooks := make(map[int]CleanupFunc, len(r.hooks))
	for id, fn := range r.hooks {
		hooks[id] = fn
	}
	r.hooks = make(map[int]CleanupFunc)
	r.order = nil
	r.mu.Unlock()

	for i := len(order) - 1; i >= 0; i-- {
		fn, ok := hooks[order[i]]
		if !ok {
			continue
		}
		if err := fn(); err != nil {
			logger.Errorf("Shutdown hook failed: %v", err)
		}
	}
}

/**
 * HandleSignals wires OS termination signals to Trigger
 * @param {...os.Signal} sigs - Signals to listen for; defaults to SIGINT/SIGTERM
 * @returns {func()} Returns a stop function that detaches the signal listener
 * @description
 * - The process exits once the hooks have run; Notify suppressed the default
 *   signal disposition
 */
func (r *Registry) HandleSignals(sigs ...os.Signal) func() {
	if len(sigs) == 0 {
		sigs = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	go func() {
		if sig, ok := <-ch; ok {
			logger.Infof("Received signal %v, running shutdown hooks", sig)
			r.Trigger()
			os.Exit(0)
		}
	}()
	return func() {
		signal.Stop(ch)
		close(ch)
	}
}
