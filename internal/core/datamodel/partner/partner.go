package partner

import (
	"time"

	"github.com/shopspring/decimal"
)

type Partner struct {
	ID        int64     `gorm:"primaryKey"`
	Code      string    `gorm:"column:code;size:32;uniqueIndex;not null"`
	Name      string    `gorm:"column:name;size:128;not null"`
	Active    bool      `gorm:"column:active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Partner) TableName() string {
	return "partners"
}

// FeePolicy rows are append-only; superseding a schedule means inserting
// a row with a later effective_from, never updating an existing one.
type FeePolicy struct {
	ID            int64           `gorm:"primaryKey"`
	PartnerID     int64           `gorm:"column:partner_id;not null;index:idx_fee_policies_effective,priority:1"`
	EffectiveFrom time.Time       `gorm:"column:effective_from;not null;index:idx_fee_policies_effective,priority:2"`
	Percentage    decimal.Decimal `gorm:"column:percentage;type:numeric(10,6);not null"`
	FixedFee      decimal.Decimal `gorm:"column:fixed_fee;type:numeric(15,0);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;default:now()"`
}

func (FeePolicy) TableName() string {
	return "fee_policies"
}
