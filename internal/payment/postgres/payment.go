package postgres

import (
	"time"

	paymentDatamodel "github.com/Changwoo-dev/backend-test-v1/internal/core/datamodel/payment"
	paymentpkg "github.com/Changwoo-dev/backend-test-v1/internal/payment"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentRepository implements the payment.Repository port using GORM.
// Reads assume the created_at desc, id desc total order.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) paymentpkg.Repository {
	return &PaymentRepository{db: db}
}

// Save inserts the record and returns it with the assigned identifier.
// The single insert is the submission's transaction boundary.
func (r *PaymentRepository) Save(p *paymentpkg.Payment) (*paymentpkg.Payment, error) {
	entity := paymentpkg.ToDataModel(p)
	if err := r.db.Create(entity).Error; err != nil {
		return nil, err
	}
	return paymentpkg.FromDataModel(entity), nil
}

// FindPayments reads one bounded page strictly after the cursor
// position. A row is "after" (createdAt, id) when its created_at is
// older, or equal with a smaller id.
func (r *PaymentRepository) FindPayments(filter paymentpkg.PageFilter) ([]*paymentpkg.Payment, error) {
	query := r.applyPredicate(r.db.Model(&paymentDatamodel.Payment{}),
		filter.PartnerID, filter.Status, filter.From, filter.To)

	if filter.CursorCreatedAt != nil && filter.CursorID != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			*filter.CursorCreatedAt, *filter.CursorCreatedAt, *filter.CursorID)
	}

	var rows []*paymentDatamodel.Payment
	err := query.Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return paymentpkg.FromDataModelSlice(rows), nil
}

type summaryRow struct {
	Count       int64
	TotalAmount decimal.Decimal
	TotalFee    decimal.Decimal
	TotalNet    decimal.Decimal
}

// FindSummary aggregates over the full set matching the predicate,
// ignoring cursor and limit, so the totals stay stable across pages.
func (r *PaymentRepository) FindSummary(filter paymentpkg.SummaryFilter) (*paymentpkg.Summary, error) {
	query := r.applyPredicate(r.db.Model(&paymentDatamodel.Payment{}),
		filter.PartnerID, filter.Status, filter.From, filter.To)

	var row summaryRow
	err := query.Select(
		"COUNT(*) AS count, " +
			"COALESCE(SUM(amount), 0) AS total_amount, " +
			"COALESCE(SUM(fee_amount), 0) AS total_fee, " +
			"COALESCE(SUM(net_amount), 0) AS total_net").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &paymentpkg.Summary{
		Count:       row.Count,
		TotalAmount: row.TotalAmount,
		TotalFee:    row.TotalFee,
		TotalNet:    row.TotalNet,
	}, nil
}

// applyPredicate builds the shared filter used by both the page read
// and the aggregate so they always target the same set. The time range
// is half-open: [from, to).
func (r *PaymentRepository) applyPredicate(query *gorm.DB, partnerID *int64, status *string, from, to *time.Time) *gorm.DB {
	if partnerID != nil {
		query = query.Where("partner_id = ?", *partnerID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at < ?", *to)
	}
	return query
}
