package alder

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
)

var (
	// ErrDependencyMissing reports an Install whose dependencies are not all
	// installed. The registry is left unchanged.
	ErrDependencyMissing = errors.New("dependency missing")

	// ErrPluginInit reports an Init that returned an error. The plugin is
	// not retained.
	ErrPluginInit = errors.New("plugin init failed")
)

// maxSuggestionDistance is the edit distance up to which an installed plugin
// name is offered as the likely intended dependency.
const maxSuggestionDistance = 3

// Plugin describes one installable extension. Name is the registry identity:
// installing a second plugin with the same name replaces the first.
type Plugin struct {
	Name    string
	Version string

	// Dependencies lists plugin names that must already be installed when
	// this plugin is installed.
	Dependencies []string

	// Config carries arbitrary plugin settings. The runtime never reads it.
	Config map[string]any

	// Init is called synchronously during Install, after the plugin is
	// entered into the registry. Returning an error aborts the install and
	// removes the plugin again.
	Init func(r *Runtime) error

	// Teardown is called during Uninstall and Cleanup. Errors and panics are
	// logged, never propagated.
	Teardown func() error
}

// Runtime is the plugin registry, hook composer, event bus, and shared
// context holder. Construct one per editor with NewRuntime; it is
// single-threaded like the rest of the library and must only be used from
// the host's update loop.
//
// Re-entrancy: hook handlers and event subscribers invoked by the runtime
// must not call Install or Uninstall on the same runtime mid-invocation, or
// they may observe the hook set mid-rebuild.
type Runtime struct {
	plugins []*Plugin // install order; replacement keeps the slot

	hooks HookSet
	owned map[string][]*HookSet // owner name -> registrations in order

	subs      map[string][]busHandler
	anySubs   []anyHandler
	nextSubID uint32

	context EditorContext
}

// NewRuntime creates an empty runtime with a stub context installed.
func NewRuntime() *Runtime {
	return &Runtime{
		owned:   make(map[string][]*HookSet),
		subs:    make(map[string][]busHandler),
		context: stubContext(),
	}
}

// pluginIndex returns the registry slot of the named plugin, or -1.
// Linear scan: plugin counts are expected in the tens.
func (r *Runtime) pluginIndex(name string) int {
	for i, p := range r.plugins {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// closestInstalled returns the installed plugin name nearest to name by edit
// distance, when the distance is small enough to be a plausible typo.
func (r *Runtime) closestInstalled(name string) (string, bool) {
	best := ""
	bestDist := maxSuggestionDistance + 1
	for _, p := range r.plugins {
		if d := levenshtein.ComputeDistance(name, p.Name); d < bestDist {
			best, bestDist = p.Name, d
		}
	}
	return best, bestDist <= maxSuggestionDistance
}

// Install adds p to the registry and runs its Init synchronously.
//
// Every name in p.Dependencies must already be installed, otherwise Install
// fails with an error wrapping ErrDependencyMissing that names the first
// unmet dependency, and the registry is left unchanged.
//
// Installing the same *Plugin value again only logs a warning; Init runs at
// most once per plugin value. Installing a different plugin under an already
// taken name replaces the old entry (with a warning, and without running the
// old plugin's Teardown) and then runs the new plugin's Init.
//
// Install is all-or-nothing: when Init returns an error or panics, the
// plugin is removed again together with any owned hooks its Init registered,
// and the error (wrapping ErrPluginInit) or panic reaches the caller.
func (r *Runtime) Install(p *Plugin) error {
	if p == nil || p.Name == "" {
		panic("alder: Install requires a plugin with a non-empty Name")
	}

	for _, dep := range p.Dependencies {
		if r.pluginIndex(dep) >= 0 {
			continue
		}
		if suggestion, ok := r.closestInstalled(dep); ok {
			return fmt.Errorf("install %q: %w: %q is not installed (closest installed plugin: %q)",
				p.Name, ErrDependencyMissing, dep, suggestion)
		}
		return fmt.Errorf("install %q: %w: %q is not installed",
			p.Name, ErrDependencyMissing, dep)
	}

	if slot := r.pluginIndex(p.Name); slot >= 0 {
		if r.plugins[slot] == p {
			logger.Warn().Str("plugin", p.Name).
				Msg("plugin already installed, skipping")
			return nil
		}
		logger.Warn().Str("plugin", p.Name).
			Msg("replacing installed plugin")
		// Forget the replaced plugin's owned hooks so a later rebuild cannot
		// resurrect them.
		delete(r.owned, p.Name)
		r.plugins[slot] = p
		r.rebuildHooks()
	} else {
		r.plugins = append(r.plugins, p)
	}

	installed := false
	defer func() {
		if !installed {
			r.dropPlugin(p.Name)
		}
	}()

	if p.Init != nil {
		if err := p.Init(r); err != nil {
			return fmt.Errorf("install %q: %w: %w", p.Name, ErrPluginInit, err)
		}
	}

	installed = true
	r.Emit(EventPluginInstalled, p.Name)
	return nil
}

// dropPlugin removes the named plugin and its owned contributions, then
// rebuilds the merged hook set.
func (r *Runtime) dropPlugin(name string) {
	if slot := r.pluginIndex(name); slot >= 0 {
		r.plugins = append(r.plugins[:slot], r.plugins[slot+1:]...)
	}
	delete(r.owned, name)
	r.rebuildHooks()
}

// Uninstall removes the named plugin, reporting whether it was installed.
// Teardown runs first; its failure is logged, never propagated. The merged
// hook set is then rebuilt from scratch from the owned contributions of the
// remaining plugins, so the removed plugin's hooks disappear even when they
// were registered after Init.
func (r *Runtime) Uninstall(name string) bool {
	slot := r.pluginIndex(name)
	if slot < 0 {
		return false
	}
	r.runTeardown(r.plugins[slot])
	r.dropPlugin(name)
	r.Emit(EventPluginUninstalled, name)
	return true
}

// runTeardown invokes p.Teardown inside isolation.
func (r *Runtime) runTeardown(p *Plugin) {
	if p.Teardown == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Str("plugin", p.Name).Interface("panic", rec).
				Msg("plugin teardown panicked")
		}
	}()
	if err := p.Teardown(); err != nil {
		logger.Error().Str("plugin", p.Name).Err(err).
			Msg("plugin teardown failed")
	}
}

// Plugin returns the installed plugin with the given name.
func (r *Runtime) Plugin(name string) (*Plugin, bool) {
	if slot := r.pluginIndex(name); slot >= 0 {
		return r.plugins[slot], true
	}
	return nil, false
}

// Plugins returns the installed plugin names in install order.
// The returned slice is a copy and safe to retain.
func (r *Runtime) Plugins() []string {
	names := make([]string, len(r.plugins))
	for i, p := range r.plugins {
		names[i] = p.Name
	}
	return names
}

// RegisterHooks merges a partial hook set into the merged set without
// attributing it to a plugin. Unowned contributions do not survive the
// rebuild that runs on uninstall; plugins should prefer RegisterOwnedHooks.
// The registered set MUST NOT be modified afterward.
func (r *Runtime) RegisterHooks(h *HookSet) {
	if h == nil {
		return
	}
	r.hooks.merge(h)
}

// RegisterOwnedHooks merges a partial hook set attributed to owner. Owned
// contributions are replayed in install order whenever the merged set is
// rebuilt. The registered set MUST NOT be modified afterward.
func (r *Runtime) RegisterOwnedHooks(owner string, h *HookSet) {
	if h == nil {
		return
	}
	r.owned[owner] = append(r.owned[owner], h)
	r.hooks.merge(h)
}

// Hooks returns the live merged hook set. The returned set MUST NOT be
// mutated; contribute through RegisterHooks or RegisterOwnedHooks instead.
func (r *Runtime) Hooks() *HookSet {
	return &r.hooks
}

// rebuildHooks reconstructs the merged set from the owned contributions of
// the currently installed plugins, in install order. Full reconstruction is
// O(plugins) per call but stays consistent even when registrations happened
// outside Init. Unowned contributions are dropped.
func (r *Runtime) rebuildHooks() {
	r.hooks.reset()
	for _, p := range r.plugins {
		for _, h := range r.owned[p.Name] {
			r.hooks.merge(h)
		}
	}
}

// Cleanup tears down every plugin in reverse install order (best-effort,
// continuing past failures), then clears the registry, the hook set, the
// owned ledger, and all subscriptions. The runtime is terminal afterward;
// construct a fresh one instead of reusing it.
func (r *Runtime) Cleanup() {
	for i := len(r.plugins) - 1; i >= 0; i-- {
		r.runTeardown(r.plugins[i])
	}
	r.plugins = nil
	r.hooks.reset()
	r.owned = make(map[string][]*HookSet)
	r.subs = make(map[string][]busHandler)
	r.anySubs = nil
	r.context = stubContext()
}
