package gateway

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	paymentDatamodel "github.com/Changwoo-dev/backend-test-v1/internal/core/datamodel/payment"
	"github.com/shopspring/decimal"
)

const (
	ApprovalCodeAmountDeclined = "FAIL-AMOUNT"
	ApprovalCodeCardDeclined   = "FAIL-CARD"
	approvalCodePrefix         = "SIMPLE-"
	declinedCardLast4          = "0000"
)

// declineAmountThreshold is in the same minor unit as Payment.Amount.
var declineAmountThreshold = decimal.NewFromInt(10_000_000)

// SimulatedGateway approves or declines from the submitted attributes
// alone; it holds no external state. It claims even partner ids.
type SimulatedGateway struct {
	rng    *rand.Rand
	logger *slog.Logger
}

// NewSimulatedGateway builds the simulated backend. rng drives the
// approval-code suffix only; pass a seeded source in tests.
func NewSimulatedGateway(rng *rand.Rand, logger *slog.Logger) *SimulatedGateway {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SimulatedGateway{
		rng:    rng,
		logger: logger,
	}
}

func (g *SimulatedGateway) Supports(partnerID int64) bool {
	return partnerID%2 == 0
}

// Approve decides in order: amount at or above the threshold declines,
// then the blocklisted card suffix declines, everything else approves.
func (g *SimulatedGateway) Approve(req ApproveRequest) ApproveResult {
	now := time.Now().UTC()

	if req.Amount.GreaterThanOrEqual(declineAmountThreshold) {
		g.logger.Info("approval declined: amount over threshold",
			"partner_id", req.PartnerID,
			"amount", req.Amount)
		return ApproveResult{
			ApprovalCode: ApprovalCodeAmountDeclined,
			ApprovedAt:   now,
			Status:       paymentDatamodel.StatusCanceled,
		}
	}

	if req.CardLast4 == declinedCardLast4 {
		g.logger.Info("approval declined: blocklisted card suffix",
			"partner_id", req.PartnerID)
		return ApproveResult{
			ApprovalCode: ApprovalCodeCardDeclined,
			ApprovedAt:   now,
			Status:       paymentDatamodel.StatusCanceled,
		}
	}

	code := fmt.Sprintf("%s%d", approvalCodePrefix, g.rng.Intn(900000)+100000)
	g.logger.Debug("approval granted",
		"partner_id", req.PartnerID,
		"approval_code", code)

	return ApproveResult{
		ApprovalCode: code,
		ApprovedAt:   now,
		Status:       paymentDatamodel.StatusApproved,
	}
}
