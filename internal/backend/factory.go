package backend

import (
	"errors"
	"io"
	"log/slog"

	"github.com/smsgate/smsgate/internal/config"
	"github.com/smsgate/smsgate/internal/sms"
)

// Factory is the entry point callers use to turn settings into a ready
// backend. It owns the debug/fallback policy; everything else is delegated
// to the resolver.
type Factory struct {
	resolver *Resolver
	out      io.Writer
	logger   *slog.Logger
}

// NewFactory creates a factory. out is the destination for the console
// fallback backend (nil means os.Stdout); a nil logger falls back to
// slog.Default().
func NewFactory(resolver *Resolver, out io.Writer, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{resolver: resolver, out: out, logger: logger}
}

// Backend returns the backend selected by cfg.
//
// The debug setting is three-valued: explicitly true and absent both select
// the console fallback without touching the registry, so an incomplete
// configuration can never trigger live provider construction. Only an
// explicit false resolves cfg.Provider against the namespace.
//
// Construction failures from the provider's own constructor propagate as-is
// when they belong to the error taxonomy, and wrapped in *sms.UnexpectedError
// otherwise.
func (f *Factory) Backend(cfg *config.Config, namespace string) (sms.Provider, error) {
	if cfg.DebugEnabled() {
		f.logger.Debug("debug mode, using console backend", "debug_set", cfg.Debug != nil)
		return sms.NewConsoleProvider(f.out), nil
	}

	ctor, err := f.resolver.Resolve(cfg.Provider, namespace)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("constructing backend", "provider", cfg.Provider.Name, "namespace", namespace)
	provider, err := ctor(cfg)
	if err != nil {
		var (
			confErr     *sms.ConfigurationError
			notFound    *sms.ProviderNotFoundError
			providerErr *sms.ProviderError
			unexpected  *sms.UnexpectedError
		)
		if errors.As(err, &confErr) || errors.As(err, &notFound) ||
			errors.As(err, &providerErr) || errors.As(err, &unexpected) {
			return nil, err
		}
		return nil, &sms.UnexpectedError{Op: "backend construction", Err: err}
	}
	return provider, nil
}
