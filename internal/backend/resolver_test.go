package backend_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smsgate/smsgate/internal/backend"
	"github.com/smsgate/smsgate/internal/config"
	"github.com/smsgate/smsgate/internal/sms"
)

func TestResolveMissingProviderName(t *testing.T) {
	resolver := backend.NewResolver(backend.NewRegistry(nil, twoProviderSource("test")))

	_, err := resolver.Resolve(config.ProviderConfig{}, "test")
	var confErr *sms.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Contains(t, confErr.Reason, "provider name")
}

func TestResolveUnknownProvider(t *testing.T) {
	resolver := backend.NewResolver(backend.NewRegistry(nil, twoProviderSource("test")))

	_, err := resolver.Resolve(config.ProviderConfig{Name: "not_registered"}, "test")
	var notFound *sms.ProviderNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "not_registered", notFound.Key)
}

func TestResolveDeterministic(t *testing.T) {
	resolver := backend.NewResolver(backend.NewRegistry(nil, twoProviderSource("test")))

	ctorA, err := resolver.Resolve(config.ProviderConfig{Name: "sms_ir"}, "test")
	require.NoError(t, err)
	ctorB, err := resolver.Resolve(config.ProviderConfig{Name: "sms_ir"}, "test")
	require.NoError(t, err)

	assert.Equal(t,
		reflect.ValueOf(ctorA).Pointer(),
		reflect.ValueOf(ctorB).Pointer(),
		"repeat resolution must return the identical constructor")

	p, err := ctorA(&config.Config{})
	require.NoError(t, err)
	assert.IsType(t, &sms.CaptureProvider{}, p)
}

func TestResolveCacheSurvivesSourceMutation(t *testing.T) {
	src := twoProviderSource("test")
	resolver := backend.NewResolver(backend.NewRegistry(nil, src))

	ctorA, err := resolver.Resolve(config.ProviderConfig{Name: "sms_ir"}, "test")
	require.NoError(t, err)

	// Simulate the provider disappearing from the underlying namespace: the
	// cached resolution must be unaffected.
	src.setUnits(nil)

	ctorB, err := resolver.Resolve(config.ProviderConfig{Name: "sms_ir"}, "test")
	require.NoError(t, err)
	assert.Equal(t, reflect.ValueOf(ctorA).Pointer(), reflect.ValueOf(ctorB).Pointer())
}

func TestResolveEnumeratesOncePerNamespace(t *testing.T) {
	src := twoProviderSource("test")
	resolver := backend.NewResolver(backend.NewRegistry(nil, src))

	for i := 0; i < 5; i++ {
		_, err := resolver.Resolve(config.ProviderConfig{Name: "kavenegar"}, "test")
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), src.calls.Load())
}
