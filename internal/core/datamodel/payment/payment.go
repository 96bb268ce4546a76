package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Terminal payment statuses. CANCELED records a declined authorization;
// it is a completed transaction attempt, not a failure state.
const (
	StatusApproved = "APPROVED"
	StatusCanceled = "CANCELED"
)

// Payment is the persisted settlement record. The created_at/id pair is
// the cursor sort key, so both columns are indexed together.
type Payment struct {
	ID             int64           `gorm:"primaryKey"`
	PartnerID      int64           `gorm:"column:partner_id;not null;index"`
	Amount         decimal.Decimal `gorm:"column:amount;type:numeric(15,0);not null"`
	AppliedFeeRate decimal.Decimal `gorm:"column:applied_fee_rate;type:numeric(10,6);not null"`
	FeeAmount      decimal.Decimal `gorm:"column:fee_amount;type:numeric(15,0);not null"`
	NetAmount      decimal.Decimal `gorm:"column:net_amount;type:numeric(15,0);not null"`
	CardBin        *string         `gorm:"column:card_bin;size:8"`
	CardLast4      *string         `gorm:"column:card_last4;size:4"`
	ApprovalCode   string          `gorm:"column:approval_code;size:32;not null"`
	ApprovedAt     time.Time       `gorm:"column:approved_at;not null"`
	Status         string          `gorm:"column:status;size:20;not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;not null;index:idx_payments_cursor,priority:1"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;not null"`
}

func (Payment) TableName() string {
	return "payments"
}
