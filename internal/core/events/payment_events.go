package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePaymentRecorded = "payment.recorded"
)

// PaymentRecordedEvent is published after every persisted submission,
// including CANCELED outcomes. Amounts travel as strings so subscribers
// never see float drift.
type PaymentRecordedEvent struct {
	BaseEvent
	PaymentID    int64  `json:"payment_id"`
	PartnerID    int64  `json:"partner_id"`
	Amount       string `json:"amount"`
	FeeAmount    string `json:"fee_amount"`
	NetAmount    string `json:"net_amount"`
	Status       string `json:"status"`
	ApprovalCode string `json:"approval_code"`
}

func NewPaymentRecordedEvent(paymentID, partnerID int64, amount, feeAmount, netAmount, status, approvalCode string) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentRecorded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payment_id":    paymentID,
				"partner_id":    partnerID,
				"amount":        amount,
				"fee_amount":    feeAmount,
				"net_amount":    netAmount,
				"status":        status,
				"approval_code": approvalCode,
			},
		},
		PaymentID:    paymentID,
		PartnerID:    partnerID,
		Amount:       amount,
		FeeAmount:    feeAmount,
		NetAmount:    netAmount,
		Status:       status,
		ApprovalCode: approvalCode,
	}
}
