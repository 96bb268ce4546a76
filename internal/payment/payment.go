package payment

import (
	"time"

	paymentDatamodel "github.com/Changwoo-dev/backend-test-v1/internal/core/datamodel/payment"
	"github.com/Changwoo-dev/backend-test-v1/internal/partner"
	"github.com/shopspring/decimal"
)

const (
	StatusApproved = paymentDatamodel.StatusApproved
	StatusCanceled = paymentDatamodel.StatusCanceled
)

// Payment is immutable after creation. The applied rate and amounts are
// frozen at settlement time; a later policy change never reprices an
// existing record.
type Payment struct {
	ID             int64           `json:"id"`
	PartnerID      int64           `json:"partner_id"`
	Amount         decimal.Decimal `json:"amount"`
	AppliedFeeRate decimal.Decimal `json:"applied_fee_rate"`
	FeeAmount      decimal.Decimal `json:"fee_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	CardBin        *string         `json:"card_bin,omitempty"`
	CardLast4      *string         `json:"card_last4,omitempty"`
	ApprovalCode   string          `json:"approval_code"`
	ApprovedAt     time.Time       `json:"approved_at"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Settle computes the fee and net amounts for a gross amount under a
// policy. The percentage part is rounded to whole minor units
// (half away from zero) before the fixed fee is added, and net is
// derived from the rounded fee so that net + fee == amount exactly.
func Settle(amount decimal.Decimal, percentage, fixedFee decimal.Decimal) (fee, net decimal.Decimal) {
	fee = amount.Mul(percentage).Round(0).Add(fixedFee)
	net = amount.Sub(fee)
	return fee, net
}

// NewPayment builds the record for a gateway decision. CANCELED
// decisions settle and persist the same way approved ones do.
func NewPayment(partnerID int64, amount decimal.Decimal, policy *partner.FeePolicy, cardBin, cardLast4 *string, approvalCode string, approvedAt time.Time, status string, now time.Time) *Payment {
	fee, net := Settle(amount, policy.Percentage, policy.FixedFee)
	return &Payment{
		PartnerID:      partnerID,
		Amount:         amount,
		AppliedFeeRate: policy.Percentage,
		FeeAmount:      fee,
		NetAmount:      net,
		CardBin:        cardBin,
		CardLast4:      cardLast4,
		ApprovalCode:   approvalCode,
		ApprovedAt:     approvedAt,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func ToDataModel(p *Payment) *paymentDatamodel.Payment {
	return &paymentDatamodel.Payment{
		ID:             p.ID,
		PartnerID:      p.PartnerID,
		Amount:         p.Amount,
		AppliedFeeRate: p.AppliedFeeRate,
		FeeAmount:      p.FeeAmount,
		NetAmount:      p.NetAmount,
		CardBin:        p.CardBin,
		CardLast4:      p.CardLast4,
		ApprovalCode:   p.ApprovalCode,
		ApprovedAt:     p.ApprovedAt,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func FromDataModel(p *paymentDatamodel.Payment) *Payment {
	return &Payment{
		ID:             p.ID,
		PartnerID:      p.PartnerID,
		Amount:         p.Amount,
		AppliedFeeRate: p.AppliedFeeRate,
		FeeAmount:      p.FeeAmount,
		NetAmount:      p.NetAmount,
		CardBin:        p.CardBin,
		CardLast4:      p.CardLast4,
		ApprovalCode:   p.ApprovalCode,
		ApprovedAt:     p.ApprovedAt,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*paymentDatamodel.Payment) []*Payment {
	result := make([]*Payment, len(rows))
	for i, p := range rows {
		result[i] = FromDataModel(p)
	}
	return result
}
