package payment

import (
	"context"
	"log/slog"
	"time"

	internal "github.com/Changwoo-dev/backend-test-v1/internal"
	"github.com/Changwoo-dev/backend-test-v1/internal/core/events"
	"github.com/Changwoo-dev/backend-test-v1/internal/gateway"
	"github.com/Changwoo-dev/backend-test-v1/internal/partner"
)

// PolicyResolver resolves the fee schedule in effect at an instant.
type PolicyResolver interface {
	ResolveAt(partnerID int64, at time.Time) (*partner.FeePolicy, error)
}

// GatewayRouter picks the backend claiming a partner.
type GatewayRouter interface {
	Route(partnerID int64) (gateway.Adapter, error)
}

// Repository is the payment storage port. Save assigns the identifier
// and is the transaction boundary of a submission: the record lands
// atomically or the whole submission fails.
type Repository interface {
	Save(p *Payment) (*Payment, error)
	FindPayments(filter PageFilter) ([]*Payment, error)
	FindSummary(filter SummaryFilter) (*Summary, error)
}

// Service is the ledger: it orchestrates one submission end to end.
type Service struct {
	repo     Repository
	policies PolicyResolver
	gateways GatewayRouter
	bus      *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, policies PolicyResolver, gateways GatewayRouter, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		policies: policies,
		gateways: gateways,
		bus:      bus,
		logger:   logger,
	}
}

// Submit settles one payment: resolve the fee policy at the submission
// instant, route to a gateway, take its decision, and persist exactly
// one record. A CANCELED decision is still recorded; only
// ErrPolicyNotFound and ErrGatewayUnsupported abort with zero writes.
func (s *Service) Submit(dto *SubmitPaymentDTO) (*Payment, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("submission validation failed", "error", err, "partner_id", dto.PartnerID)
		return nil, err
	}

	now := time.Now().UTC()

	policy, err := s.policies.ResolveAt(dto.PartnerID, now)
	if err != nil {
		return nil, err
	}

	adapter, err := s.gateways.Route(dto.PartnerID)
	if err != nil {
		return nil, err
	}

	result := adapter.Approve(gateway.ApproveRequest{
		PartnerID:   dto.PartnerID,
		Amount:      dto.Amount,
		CardBin:     derefOrEmpty(dto.CardBin),
		CardLast4:   derefOrEmpty(dto.CardLast4),
		ProductName: dto.ProductName,
	})

	record := NewPayment(dto.PartnerID, dto.Amount, policy, dto.CardBin, dto.CardLast4,
		result.ApprovalCode, result.ApprovedAt, result.Status, now)

	saved, err := s.repo.Save(record)
	if err != nil {
		s.logger.Error("failed to persist payment", "error", err, "partner_id", dto.PartnerID)
		return nil, internal.NewInternalError("failed to persist payment", err)
	}

	s.logger.Info("payment recorded",
		"payment_id", saved.ID,
		"partner_id", saved.PartnerID,
		"status", saved.Status,
		"amount", saved.Amount,
		"fee_amount", saved.FeeAmount,
		"net_amount", saved.NetAmount,
		"approval_code", saved.ApprovalCode)

	if s.bus != nil {
		event := events.NewPaymentRecordedEvent(saved.ID, saved.PartnerID,
			saved.Amount.String(), saved.FeeAmount.String(), saved.NetAmount.String(),
			saved.Status, saved.ApprovalCode)
		if err := s.bus.Publish(context.Background(), event); err != nil {
			s.logger.Error("failed to publish payment.recorded", "error", err, "payment_id", saved.ID)
		}
	}

	return saved, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
