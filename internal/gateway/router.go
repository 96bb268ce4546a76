package gateway

import (
	"log/slog"

	internal "github.com/Changwoo-dev/backend-test-v1/internal"
)

// Router holds the registered backends and picks the one claiming a
// partner. Registration order is the priority order, though adapters
// are expected to claim disjoint partner sets.
type Router struct {
	adapters []Adapter
	logger   *slog.Logger
}

func NewRouter(logger *slog.Logger, adapters ...Adapter) *Router {
	return &Router{
		adapters: adapters,
		logger:   logger,
	}
}

func (r *Router) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// Route returns the first adapter claiming the partner, or
// ErrGatewayUnsupported when none does. The ledger must abort the
// submission on that error without writing a record.
func (r *Router) Route(partnerID int64) (Adapter, error) {
	for _, adapter := range r.adapters {
		if adapter.Supports(partnerID) {
			return adapter, nil
		}
	}
	r.logger.Warn("no gateway adapter for partner", "partner_id", partnerID)
	return nil, internal.ErrGatewayUnsupported
}

// Supports reports whether any registered adapter claims the partner.
func (r *Router) Supports(partnerID int64) bool {
	for _, adapter := range r.adapters {
		if adapter.Supports(partnerID) {
			return true
		}
	}
	return false
}
