package payment

import (
	"net/url"
	"strconv"
	"time"

	errors "github.com/Changwoo-dev/backend-test-v1/internal"
	"github.com/Changwoo-dev/backend-test-v1/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

// timeParamLayout is the wire format for from/to query params, read as
// UTC.
const timeParamLayout = "2006-01-02 15:04:05"

// SubmitPaymentDTO is the request payload for submitting a payment.
type SubmitPaymentDTO struct {
	PartnerID   int64           `json:"partner_id"`
	Amount      decimal.Decimal `json:"amount"`
	CardBin     *string         `json:"card_bin,omitempty"`
	CardLast4   *string         `json:"card_last4,omitempty"`
	ProductName string          `json:"product_name"`
}

func (dto *SubmitPaymentDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("partner_id", dto.PartnerID).Required()
	validator.Field("amount", dto.Amount).NonNegativeDecimal(errors.ErrCodeInvalidAmount)
	validator.Field("card_bin", dto.CardBin).MaxLen(8, errors.ErrCodeInvalidCard)
	validator.Field("card_last4", dto.CardLast4).ExactLen(4, errors.ErrCodeInvalidCard)
	validator.Field("product_name", dto.ProductName).MaxLen(128, errors.ErrCodeValidationFailed)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// ParseQueryFilter reads the external query shape into a QueryFilter.
// Unparseable optional params are dropped rather than rejected, in line
// with the cursor-corruption rule: a stale bookmark degrades, it does
// not fail the request.
func ParseQueryFilter(params url.Values) QueryFilter {
	filter := QueryFilter{
		Cursor: params.Get("cursor"),
	}

	if v := params.Get("partner_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.PartnerID = &id
		}
	}

	if v := params.Get("status"); v != "" {
		filter.Status = &v
	}

	if v := params.Get("from"); v != "" {
		if t, err := time.ParseInLocation(timeParamLayout, v, time.UTC); err == nil {
			filter.From = &t
		}
	}

	if v := params.Get("to"); v != "" {
		if t, err := time.ParseInLocation(timeParamLayout, v, time.UTC); err == nil {
			filter.To = &t
		}
	}

	if v := params.Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 100 {
			filter.Limit = l
		}
	}

	return filter
}

// QueryResponse is the wire shape of a history page.
type QueryResponse struct {
	Payments   []*Payment `json:"payments"`
	Summary    *Summary   `json:"summary"`
	NextCursor *string    `json:"next_cursor,omitempty"`
	HasNext    bool       `json:"has_next"`
}

func ToQueryResponse(result *QueryResult) *QueryResponse {
	return &QueryResponse{
		Payments:   result.Items,
		Summary:    result.Summary,
		NextCursor: result.NextCursor,
		HasNext:    result.HasNext,
	}
}
