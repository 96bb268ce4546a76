package payment

import (
	"log/slog"
	"time"

	internal "github.com/Changwoo-dev/backend-test-v1/internal"
	"github.com/shopspring/decimal"
)

const DefaultPageSize = 20

// QueryFilter is the caller-facing filter. Cursor is the opaque token
// from a previous page; an unparseable token falls back to the start.
type QueryFilter struct {
	PartnerID *int64
	Status    *string
	From      *time.Time
	To        *time.Time
	Cursor    string
	Limit     int
}

// PageFilter is the storage-side filter for one bounded page read.
type PageFilter struct {
	PartnerID       *int64
	Status          *string
	From            *time.Time
	To              *time.Time
	CursorCreatedAt *time.Time
	CursorID        *int64
	Limit           int
}

// SummaryFilter is PageFilter without the cursor/limit constraints.
type SummaryFilter struct {
	PartnerID *int64
	Status    *string
	From      *time.Time
	To        *time.Time
}

// Summary aggregates the entire filtered set, not the returned page.
type Summary struct {
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalFee    decimal.Decimal `json:"total_fee"`
	TotalNet    decimal.Decimal `json:"total_net"`
}

type QueryResult struct {
	Items      []*Payment
	Summary    *Summary
	NextCursor *string
	HasNext    bool
}

// QueryService pages a partner's payment history with a stable opaque
// cursor and computes summary statistics over the same filtered set.
type QueryService struct {
	repo   Repository
	logger *slog.Logger
}

func NewQueryService(repo Repository, logger *slog.Logger) *QueryService {
	return &QueryService{
		repo:   repo,
		logger: logger,
	}
}

// Query runs one bounded page read plus one aggregate read against the
// same predicate. The sort order created_at desc, id desc is total, so
// the cursor resumes exactly after the previous page.
//
// hasNext uses the cheap len(items) >= limit heuristic: it is a false
// positive exactly when the result set size equals the limit, since no
// look-ahead row is fetched.
func (s *QueryService) Query(filter QueryFilter) (*QueryResult, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	cursorCreatedAt, cursorID := DecodeCursor(filter.Cursor)

	items, err := s.repo.FindPayments(PageFilter{
		PartnerID:       filter.PartnerID,
		Status:          filter.Status,
		From:            filter.From,
		To:              filter.To,
		CursorCreatedAt: cursorCreatedAt,
		CursorID:        cursorID,
		Limit:           limit,
	})
	if err != nil {
		s.logger.Error("payment page read failed", "error", err)
		return nil, internal.NewInternalError("failed to query payments", err)
	}

	summary, err := s.repo.FindSummary(SummaryFilter{
		PartnerID: filter.PartnerID,
		Status:    filter.Status,
		From:      filter.From,
		To:        filter.To,
	})
	if err != nil {
		s.logger.Error("payment summary read failed", "error", err)
		return nil, internal.NewInternalError("failed to aggregate payments", err)
	}

	hasNext := len(items) >= limit

	var nextCursor *string
	if len(items) > 0 {
		last := items[len(items)-1]
		token := EncodeCursor(last.CreatedAt, last.ID)
		nextCursor = &token
	}

	return &QueryResult{
		Items:      items,
		Summary:    summary,
		NextCursor: nextCursor,
		HasNext:    hasNext,
	}, nil
}
