// Package routing resolves which model a generation call runs against.
package routing

import (
	"context"
	"fmt"
	"sync"

	"github.com/elenaw/gusteau/internal/domain"
	"github.com/elenaw/gusteau/internal/observability"
)

// Resolver applies the ordered model fallback chain: each identifier is tried
// in turn and the first one a registered provider serves wins. The resolved
// handle is cached for the process lifetime; there is no invalidation path,
// a changed remote-side availability requires a restart.
type Resolver struct {
	registry domain.ProviderRegistry
	chain    []string

	mu       sync.Mutex
	handle   domain.ModelHandle
	resolved bool
}

// NewResolver creates a resolver over the given fallback chain.
func NewResolver(registry domain.ProviderRegistry, chain []string) *Resolver {
	return &Resolver{
		registry: registry,
		chain:    chain,
	}
}

// Acquire returns the usable model handle, resolving it on first use.
//
// Candidates are tried strictly in chain order; a failed candidate is logged
// as a warning and the next one is tried. When every candidate fails the
// error wraps domain.ErrNoModelAvailable and the application must not proceed
// to accept user actions. Subsequent calls return the cached handle without
// re-attempting acquisition.
func (r *Resolver) Acquire(ctx context.Context) (domain.ModelHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resolved {
		return r.handle, nil
	}

	if len(r.chain) == 0 {
		return domain.ModelHandle{}, fmt.Errorf("%w: model chain is empty", domain.ErrNoModelAvailable)
	}

	logger := observability.FromContext(ctx)

	for _, model := range r.chain {
		provider, err := r.registry.GetByModel(ctx, model)
		if err != nil {
			logger.Warn("model unavailable, trying next in chain",
				observability.String("model", model),
				observability.Error(err),
			)
			continue
		}

		r.handle = domain.NewModelHandle(provider, model)
		r.resolved = true

		logger.Info("model resolved",
			observability.String("model", model),
			observability.String("provider", provider.Name()),
		)

		return r.handle, nil
	}

	return domain.ModelHandle{}, fmt.Errorf("%w: tried %d candidate(s)", domain.ErrNoModelAvailable, len(r.chain))
}

// Chain returns the configured fallback chain, in order.
func (r *Resolver) Chain() []string {
	return r.chain
}
