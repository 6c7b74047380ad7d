package formula

import (
	"fmt"
	"sort"
	"sync"

	goversion "github.com/hashicorp/go-version"

	"mongo-keeper/internal/models"
)

/**
 * Registry holds the formula table: every formula the orchestrator can
 * bootstrap, keyed by name, possibly in several versions. The built-in
 * formulas are registered at init time; callers may register their own.
 */
type Registry struct {
	mu       sync.RWMutex
	formulas map[string][]*models.Formula
}

var registry *Registry
var registryOnce sync.Once

func GetRegistry() *Registry {
	registryOnce.Do(func() {
		registry = NewRegistry()
		for _, f := range builtinFormulas() {
			registry.Register(f)
		}
	})
	return registry
}

func NewRegistry() *Registry {
	return &Registry{formulas: make(map[string][]*models.Formula)}
}

/**
 * Register a formula with the registry
 * @param {*models.Formula} f - Formula to register
 * @returns {error} Returns error when name, version, exec or platform list is unusable
 * @description
 * - The version must parse under hashicorp/go-version so Lookup can order it
 * - Registering the same name+version again replaces the earlier entry
 */
func (r *Registry) Register(f *models.Formula) error {
	if f.Name == "" {
		return fmt.Errorf("formula has no name")
	}
	if f.Exec == "" {
		return fmt.Errorf("formula '%s' has no exec path", f.Name)
	}
	if len(f.Platforms) == 0 {
		return fmt.Errorf("formula '%s' has no platform entries", f.Name)
	}
	if _, err := goversion.NewVersion(f.Version); err != nil {
		return fmt.Errorf("formula '%s' has invalid version '%s': %v", f.Name, f.Version, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.formulas[f.Name]
	for i, old := range list {
		if old.Version == f.Version {
			list[i] = f
			return nil
		}
	}
	r.formulas[f.Name] = append(list, f)
	return nil
}

/**
 * Look up the newest registered version of a formula
 * @param {string} name - Formula name
 * @returns {(*models.Formula, error)} Returns the formula with the highest
 * version per go-version ordering, or an error when the name is unknown
 */
func (r *Registry) Lookup(name string) (*models.Formula, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.formulas[name]
	if len(list) == 0 {
		return nil, fmt.Errorf("unknown formula '%s'", name)
	}
	newest := list[0]
	newestVer, _ := goversion.NewVersion(newest.Version)
	for _, f := range list[1:] {
		ver, _ := goversion.NewVersion(f.Version)
		if ver.GreaterThan(newestVer) {
			newest = f
			newestVer = ver
		}
	}
	return newest, nil
}

/**
 * Look up a specific version of a formula
 */
func (r *Registry) LookupVersion(name, version string) (*models.Formula, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.formulas[name] {
		if f.Version == version {
			return f, nil
		}
	}
	return nil, fmt.Errorf("formula '%s' has no version '%s'", name, version)
}

// Names returns the registered formula names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.formulas))
	for name := range r.formulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Versions returns the registered versions of one formula, sorted ascending.
func (r *Registry) Versions(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	vers := make([]*goversion.Version, 0, len(r.formulas[name]))
	for _, f := range r.formulas[name] {
		if v, err := goversion.NewVersion(f.Version); err == nil {
			vers = append(vers, v)
		}
	}
	sort.Sort(goversion.Collection(vers))
	out := make([]string, len(vers))
	for i, v := range vers {
		out[i] = v.Original()
	}
	return out
}
