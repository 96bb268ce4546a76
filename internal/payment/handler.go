package payment

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Changwoo-dev/backend-test-v1/internal/transport"
	"github.com/Changwoo-dev/backend-test-v1/pkg/logger"
)

type ServiceAPI interface {
	Submit(dto *SubmitPaymentDTO) (*Payment, error)
}

type QueryAPI interface {
	Query(filter QueryFilter) (*QueryResult, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Queries QueryAPI
}

func NewHandler(service ServiceAPI, queries QueryAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		Queries:     queries,
	}
}

func (h *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var dto SubmitPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitPayment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, err := h.Service.Submit(&dto)
	if err != nil {
		h.Logger.Error("SubmitPayment: service error", "error", err, "partner_id", dto.PartnerID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("SubmitPayment: payment recorded",
		"payment_id", payment.ID,
		"partner_id", payment.PartnerID,
		"status", payment.Status)

	h.WriteJSON(w, http.StatusCreated, payment)
}

func (h *Handler) QueryPayments(w http.ResponseWriter, r *http.Request) {
	filter := ParseQueryFilter(r.URL.Query())

	result, err := h.Queries.Query(filter)
	if err != nil {
		h.Logger.Error("QueryPayments: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToQueryResponse(result))
}
