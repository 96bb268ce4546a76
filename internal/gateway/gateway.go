package gateway

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApproveRequest carries the attributes a backend decides on. Card
// identifiers arrive pre-masked; the full PAN never reaches this layer.
type ApproveRequest struct {
	PartnerID   int64
	Amount      decimal.Decimal
	CardBin     string
	CardLast4   string
	ProductName string
}

// ApproveResult is the normalized outcome of an authorization attempt.
// Status is one of the payment status constants; a declined attempt is
// a terminal decision, not an error.
type ApproveResult struct {
	ApprovalCode string
	ApprovedAt   time.Time
	Status       string
}

// Adapter is the capability port a PG backend implements. Supports is a
// pure predicate; Approve must yield a terminal decision for every
// request from a supported partner.
type Adapter interface {
	Supports(partnerID int64) bool
	Approve(req ApproveRequest) ApproveResult
}
