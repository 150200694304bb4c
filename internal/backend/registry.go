// Package backend maps configured provider names to concrete SMS provider
// constructors. Provider packages self-register into the builtin namespace at
// init time; a Registry discovers each namespace at most once and serves
// lookups from the resulting key→descriptor map.
package backend

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/smsgate/smsgate/internal/config"
	"github.com/smsgate/smsgate/internal/sms"
)

// Constructor builds a provider instance from runtime settings.
type Constructor func(cfg *config.Config) (sms.Provider, error)

// Candidate is one constructor a unit offers for registration.
type Candidate struct {
	ImplName string
	New      Constructor
}

// Unit is one enumerable installation unit inside a namespace: a provider
// package, identified by the stable key configuration refers to. A unit is
// expected to carry exactly one usable candidate; extra candidates are
// ignored with a warning (first one wins), and a unit with none is skipped.
type Unit struct {
	Name       string
	Candidates []Candidate
}

// Source enumerates the units of one namespace. Enumeration must be
// deterministic: the same namespace contents yield the same unit list.
type Source interface {
	Namespace() string
	Units() ([]Unit, error)
}

// Descriptor identifies one discovered provider and how to construct it.
// Immutable after discovery.
type Descriptor struct {
	Key      string
	ImplName string
	New      Constructor
}

type namespaceState struct {
	once    sync.Once
	entries map[string]Descriptor
	keys    []string
	err     error
}

// Registry holds the authoritative key→descriptor map per namespace.
// Discovery runs at most once per namespace, even under concurrent first
// access; the map is read-only thereafter.
type Registry struct {
	logger *slog.Logger

	mu     sync.Mutex
	states map[string]*namespaceState

	sources map[string]Source
}

// NewRegistry creates a registry over the given namespace sources. If logger
// is nil, slog.Default() is used.
func NewRegistry(logger *slog.Logger, sources ...Source) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	srcs := make(map[string]Source, len(sources))
	for _, s := range sources {
		srcs[s.Namespace()] = s
	}
	return &Registry{
		logger:  logger,
		states:  make(map[string]*namespaceState),
		sources: srcs,
	}
}

func (r *Registry) state(namespace string) (*namespaceState, error) {
	r.mu.Lock()
	st, ok := r.states[namespace]
	if !ok {
		if _, known := r.sources[namespace]; !known {
			r.mu.Unlock()
			return nil, &sms.ConfigurationError{Reason: fmt.Sprintf("unknown namespace %q", namespace)}
		}
		st = &namespaceState{}
		r.states[namespace] = st
	}
	r.mu.Unlock()

	st.once.Do(func() {
		st.entries, st.keys, st.err = r.discover(r.sources[namespace])
	})
	return st, st.err
}

// discover enumerates every unit of the source and records the first
// conforming candidate of each under the unit's key.
func (r *Registry) discover(src Source) (map[string]Descriptor, []string, error) {
	units, err := src.Units()
	if err != nil {
		return nil, nil, &sms.UnexpectedError{Op: "discovery", Err: err}
	}

	entries := make(map[string]Descriptor, len(units))
	keys := make([]string, 0, len(units))
	for _, unit := range units {
		var chosen *Candidate
		for i := range unit.Candidates {
			c := &unit.Candidates[i]
			if c.New == nil {
				continue
			}
			if chosen == nil {
				chosen = c
				continue
			}
			r.logger.Warn("ignoring extra provider candidate",
				"namespace", src.Namespace(), "unit", unit.Name, "impl", c.ImplName)
		}
		if chosen == nil {
			r.logger.Debug("skipping unit with no provider implementation",
				"namespace", src.Namespace(), "unit", unit.Name)
			continue
		}
		if _, dup := entries[unit.Name]; dup {
			r.logger.Warn("ignoring duplicate provider unit",
				"namespace", src.Namespace(), "unit", unit.Name)
			continue
		}
		entries[unit.Name] = Descriptor{Key: unit.Name, ImplName: chosen.ImplName, New: chosen.New}
		keys = append(keys, unit.Name)
		r.logger.Debug("registered provider",
			"namespace", src.Namespace(), "key", unit.Name, "impl", chosen.ImplName)
	}
	return entries, keys, nil
}

// Discover forces discovery of a namespace. Redundant calls are no-ops; the
// resulting map never depends on how many times discovery ran.
func (r *Registry) Discover(namespace string) error {
	_, err := r.state(namespace)
	return err
}

// Lookup returns the descriptor for key in namespace, running discovery
// first if it has not happened yet.
func (r *Registry) Lookup(namespace, key string) (Descriptor, error) {
	st, err := r.state(namespace)
	if err != nil {
		return Descriptor{}, err
	}
	d, ok := st.entries[key]
	if !ok {
		return Descriptor{}, &sms.ProviderNotFoundError{Key: key, Namespace: namespace}
	}
	return d, nil
}

// Keys returns the discovered provider keys of a namespace in enumeration
// order.
func (r *Registry) Keys(namespace string) ([]string, error) {
	st, err := r.state(namespace)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(st.keys))
	copy(keys, st.keys)
	return keys, nil
}
