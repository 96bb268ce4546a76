package partner

import (
	"time"

	partnerDatamodel "github.com/Changwoo-dev/backend-test-v1/internal/core/datamodel/partner"
	"github.com/shopspring/decimal"
)

// FeePolicy is a partner's fee schedule effective from a given instant
// onward, open-ended until a later row supersedes it.
type FeePolicy struct {
	ID            int64           `json:"id"`
	PartnerID     int64           `json:"partner_id"`
	EffectiveFrom time.Time       `json:"effective_from"`
	Percentage    decimal.Decimal `json:"percentage"`
	FixedFee      decimal.Decimal `json:"fixed_fee"`
}

type Partner struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func PolicyFromDataModel(p *partnerDatamodel.FeePolicy) *FeePolicy {
	return &FeePolicy{
		ID:            p.ID,
		PartnerID:     p.PartnerID,
		EffectiveFrom: p.EffectiveFrom,
		Percentage:    p.Percentage,
		FixedFee:      p.FixedFee,
	}
}

func PolicyToDataModel(p *FeePolicy) *partnerDatamodel.FeePolicy {
	return &partnerDatamodel.FeePolicy{
		ID:            p.ID,
		PartnerID:     p.PartnerID,
		EffectiveFrom: p.EffectiveFrom,
		Percentage:    p.Percentage,
		FixedFee:      p.FixedFee,
	}
}
