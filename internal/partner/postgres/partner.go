package postgres

import (
	"errors"
	"time"

	partnerDatamodel "github.com/Changwoo-dev/backend-test-v1/internal/core/datamodel/partner"
	"github.com/Changwoo-dev/backend-test-v1/internal/partner"
	"gorm.io/gorm"
)

// FeePolicyRepository implements partner.PolicyRepository using GORM
type FeePolicyRepository struct {
	db *gorm.DB
}

func NewFeePolicyRepository(db *gorm.DB) partner.PolicyRepository {
	return &FeePolicyRepository{db: db}
}

// FindEffectivePolicy selects the single row with the greatest
// effective_from <= at; id desc is the tie-break for policies sharing
// an effective instant.
func (r *FeePolicyRepository) FindEffectivePolicy(partnerID int64, at time.Time) (*partner.FeePolicy, error) {
	var policy partnerDatamodel.FeePolicy
	err := r.db.Where("partner_id = ? AND effective_from <= ?", partnerID, at).
		Order("effective_from DESC").
		Order("id DESC").
		First(&policy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return partner.PolicyFromDataModel(&policy), nil
}
