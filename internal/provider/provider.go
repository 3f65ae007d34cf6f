// Package provider adapts the external Myanmar calendar and astrology
// collaborators to the engine interfaces.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
)

// Provider is a loadable source of Myanmar dates and astrology.
// Load must complete before any grid is built from it.
type Provider interface {
	engine.DateConverter
	engine.Astrologer
	Load(ctx context.Context) error
	Name() string
}

// New selects the adapter named by env.Provider.
// Remote lookups stay bound to ctx for the provider's whole lifetime.
func New(ctx context.Context, env config.Env) (Provider, error) {
	transport := NewHTTPTransport(env.HTTPTimeout())

	switch env.Provider {
	case config.ProviderRemote:
		if env.RemoteURL == "" {
			return nil, errors.New(config.ErrRemoteURLEmpty)
		}
		return NewRemote(ctx, env.RemoteURL, ResolveToken(env), transport), nil
	case config.ProviderBundle:
		if env.BundleSource == "" {
			return nil, errors.New(config.ErrBundleEmpty)
		}
		return NewBundle(env.BundleSource, transport), nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrProviderUnknown, env.Provider)
	}
}

// unavailable marks a lookup miss for op.
func unavailable(op string) error {
	return fmt.Errorf("%s: %w", op, engine.ErrUnavailable)
}
