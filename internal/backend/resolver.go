package backend

import (
	"sync"

	"github.com/smsgate/smsgate/internal/config"
	"github.com/smsgate/smsgate/internal/sms"
)

type cacheKey struct {
	namespace string
	key       string
}

// Resolver turns a configured provider name into a constructor, consulting
// the registry once per key and serving repeat lookups from a cache. A key
// always resolves to the same constructor for the lifetime of the resolver;
// the cache is never invalidated.
type Resolver struct {
	registry *Registry

	mu    sync.RWMutex
	cache map[cacheKey]Constructor
}

// NewResolver creates a resolver over the given registry.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{
		registry: registry,
		cache:    make(map[cacheKey]Constructor),
	}
}

// Resolve returns the constructor registered under the provider name in
// providerCfg. It fails with *sms.ConfigurationError when the name is empty
// and *sms.ProviderNotFoundError when no such key was discovered.
func (r *Resolver) Resolve(providerCfg config.ProviderConfig, namespace string) (Constructor, error) {
	name := providerCfg.Name
	if name == "" {
		return nil, &sms.ConfigurationError{Reason: "provider name is missing in settings"}
	}

	ck := cacheKey{namespace: namespace, key: name}
	r.mu.RLock()
	ctor, ok := r.cache[ck]
	r.mu.RUnlock()
	if ok {
		return ctor, nil
	}

	d, err := r.registry.Lookup(namespace, name)
	if err != nil {
		return nil, err
	}

	// Two misses racing here both see the same descriptor (the registry is
	// immutable after discovery); keep the first stored constructor so the
	// returned identity is stable across calls.
	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.cache[ck]; ok {
		return cached, nil
	}
	r.cache[ck] = d.New
	return d.New, nil
}
