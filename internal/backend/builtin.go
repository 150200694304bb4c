package backend

import "sync"

// BuiltinNamespace is the namespace holding the provider packages compiled
// into this binary.
const BuiltinNamespace = "builtin"

var (
	builtinMu    sync.Mutex
	builtinUnits []Unit
)

// Register adds a unit to the builtin namespace. Provider packages call this
// from init(); importing a provider package is what installs it.
func Register(unit Unit) {
	builtinMu.Lock()
	defer builtinMu.Unlock()
	builtinUnits = append(builtinUnits, unit)
}

type builtinSource struct{}

func (builtinSource) Namespace() string { return BuiltinNamespace }

func (builtinSource) Units() ([]Unit, error) {
	builtinMu.Lock()
	defer builtinMu.Unlock()
	units := make([]Unit, len(builtinUnits))
	copy(units, builtinUnits)
	return units, nil
}

// Builtin returns the Source backed by init-time registrations. It is only a
// source: a Registry must be constructed over it, and resolvers and factories
// never consult the package-level list directly.
func Builtin() Source { return builtinSource{} }
