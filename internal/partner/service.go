package partner

import (
	"log/slog"
	"time"

	internal "github.com/Changwoo-dev/backend-test-v1/internal"
)

// PolicyRepository is the read port for fee policies. A nil policy with
// a nil error means no schedule covers the instant; only infrastructure
// failures surface as errors.
type PolicyRepository interface {
	FindEffectivePolicy(partnerID int64, at time.Time) (*FeePolicy, error)
}

// Service resolves the fee schedule in effect for a partner at a point
// in time. Policies are append-only, so resolution is a pure lookup.
type Service struct {
	repo   PolicyRepository
	logger *slog.Logger
}

func NewService(repo PolicyRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ResolveAt returns the policy with the greatest effective_from that is
// <= at (inclusive boundary). Ties on effective_from are broken by the
// highest policy id. Returns ErrPolicyNotFound when every policy for
// the partner is still in the future.
func (s *Service) ResolveAt(partnerID int64, at time.Time) (*FeePolicy, error) {
	policy, err := s.repo.FindEffectivePolicy(partnerID, at)
	if err != nil {
		s.logger.Error("fee policy lookup failed", "error", err, "partner_id", partnerID)
		return nil, internal.NewInternalError("failed to look up fee policy", err)
	}
	if policy == nil {
		s.logger.Warn("no fee policy in effect", "partner_id", partnerID, "at", at)
		return nil, internal.ErrPolicyNotFound
	}

	s.logger.Debug("fee policy resolved",
		"partner_id", partnerID,
		"policy_id", policy.ID,
		"effective_from", policy.EffectiveFrom,
		"percentage", policy.Percentage)

	return policy, nil
}
