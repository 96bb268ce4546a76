package payment_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	internal "github.com/Changwoo-dev/backend-test-v1/internal"
	"github.com/Changwoo-dev/backend-test-v1/internal/core/events"
	"github.com/Changwoo-dev/backend-test-v1/internal/gateway"
	"github.com/Changwoo-dev/backend-test-v1/internal/partner"
	"github.com/Changwoo-dev/backend-test-v1/internal/payment"
)

// Mock repository capturing writes and serving canned pages.
type mockPaymentRepository struct {
	saved        []*payment.Payment
	pages        []*payment.Payment
	summary      *payment.Summary
	saveError    error
	findError    error
	summaryError error
	lastPage     payment.PageFilter
	lastSummary  payment.SummaryFilter
	nextID       int64
}

func newMockPaymentRepository() *mockPaymentRepository {
	return &mockPaymentRepository{nextID: 1}
}

func (m *mockPaymentRepository) Save(p *payment.Payment) (*payment.Payment, error) {
	if m.saveError != nil {
		return nil, m.saveError
	}
	copied := *p
	copied.ID = m.nextID
	m.nextID++
	m.saved = append(m.saved, &copied)
	return &copied, nil
}

func (m *mockPaymentRepository) FindPayments(filter payment.PageFilter) ([]*payment.Payment, error) {
	m.lastPage = filter
	if m.findError != nil {
		return nil, m.findError
	}
	if len(m.pages) > filter.Limit {
		return m.pages[:filter.Limit], nil
	}
	return m.pages, nil
}

func (m *mockPaymentRepository) FindSummary(filter payment.SummaryFilter) (*payment.Summary, error) {
	m.lastSummary = filter
	if m.summaryError != nil {
		return nil, m.summaryError
	}
	if m.summary == nil {
		return &payment.Summary{
			TotalAmount: decimal.Zero,
			TotalFee:    decimal.Zero,
			TotalNet:    decimal.Zero,
		}, nil
	}
	return m.summary, nil
}

type mockPolicyResolver struct {
	policy *partner.FeePolicy
	err    error
}

func (m *mockPolicyResolver) ResolveAt(partnerID int64, at time.Time) (*partner.FeePolicy, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.policy, nil
}

type mockGatewayRouter struct {
	adapter gateway.Adapter
	err     error
}

func (m *mockGatewayRouter) Route(partnerID int64) (gateway.Adapter, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.adapter, nil
}

type fixedAdapter struct {
	result gateway.ApproveResult
}

func (f *fixedAdapter) Supports(partnerID int64) bool {
	return true
}

func (f *fixedAdapter) Approve(req gateway.ApproveRequest) gateway.ApproveResult {
	return f.result
}

var _ = Describe("Ledger Service", func() {
	var (
		repo     *mockPaymentRepository
		policies *mockPolicyResolver
		gateways *mockGatewayRouter
		service  *payment.Service
	)

	str := func(s string) *string { return &s }

	submitDTO := func(amount string) *payment.SubmitPaymentDTO {
		return &payment.SubmitPaymentDTO{
			PartnerID:   2,
			Amount:      decimal.RequireFromString(amount),
			CardBin:     str("123456"),
			CardLast4:   str("7890"),
			ProductName: "starter bundle",
		}
	}

	BeforeEach(func() {
		repo = newMockPaymentRepository()
		policies = &mockPolicyResolver{
			policy: &partner.FeePolicy{
				ID:            1,
				PartnerID:     2,
				EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				Percentage:    decimal.RequireFromString("0.03"),
				FixedFee:      decimal.NewFromInt(100),
			},
		}
		gateways = &mockGatewayRouter{
			adapter: &fixedAdapter{result: gateway.ApproveResult{
				ApprovalCode: "SIMPLE-123456",
				ApprovedAt:   time.Now().UTC(),
				Status:       payment.StatusApproved,
			}},
		}
		service = payment.NewService(repo, policies, gateways, nil, testLogger())
	})

	Describe("Submit", func() {
		It("persists exactly one approved record with settled amounts", func() {
			record, err := service.Submit(submitDTO("50000"))
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.saved).To(HaveLen(1))

			// fee = round(50000 * 0.03) + 100 = 1600, net = 48400
			Expect(record.FeeAmount).To(Equal(decimal.NewFromInt(1600)))
			Expect(record.NetAmount).To(Equal(decimal.NewFromInt(48400)))
			Expect(record.AppliedFeeRate).To(Equal(decimal.RequireFromString("0.03")))
			Expect(record.Status).To(Equal(payment.StatusApproved))
			Expect(record.ApprovalCode).To(Equal("SIMPLE-123456"))
			Expect(record.ID).NotTo(BeZero())
		})

		It("keeps the amount invariant: net + fee == amount", func() {
			amounts := []string{"1", "999", "50000", "123457", "9999999"}
			for _, amount := range amounts {
				record, err := service.Submit(submitDTO(amount))
				Expect(err).NotTo(HaveOccurred())
				Expect(record.NetAmount.Add(record.FeeAmount)).
					To(Equal(record.Amount), "invariant broken for amount %s", amount)
			}
		})

		It("records a CANCELED decision like any other outcome", func() {
			gateways.adapter = &fixedAdapter{result: gateway.ApproveResult{
				ApprovalCode: "FAIL-CARD",
				ApprovedAt:   time.Now().UTC(),
				Status:       payment.StatusCanceled,
			}}

			record, err := service.Submit(submitDTO("50000"))
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.saved).To(HaveLen(1))
			Expect(record.Status).To(Equal(payment.StatusCanceled))
			Expect(record.ApprovalCode).To(Equal("FAIL-CARD"))
			// fee math still applies to declined attempts
			Expect(record.FeeAmount).To(Equal(decimal.NewFromInt(1600)))
			Expect(record.NetAmount).To(Equal(decimal.NewFromInt(48400)))
		})

		It("writes nothing when no fee policy is in effect", func() {
			policies.err = internal.ErrPolicyNotFound

			record, err := service.Submit(submitDTO("50000"))
			Expect(record).To(BeNil())
			Expect(err).To(Equal(internal.ErrPolicyNotFound))
			Expect(repo.saved).To(BeEmpty())
		})

		It("writes nothing when no gateway supports the partner", func() {
			gateways.err = internal.ErrGatewayUnsupported

			record, err := service.Submit(submitDTO("50000"))
			Expect(record).To(BeNil())
			Expect(err).To(Equal(internal.ErrGatewayUnsupported))
			Expect(repo.saved).To(BeEmpty())
		})

		It("rejects a negative amount before touching the gateway", func() {
			dto := submitDTO("50000")
			dto.Amount = decimal.NewFromInt(-1)

			_, err := service.Submit(dto)
			Expect(err).To(HaveOccurred())
			Expect(repo.saved).To(BeEmpty())
		})

		It("rejects a malformed card suffix", func() {
			dto := submitDTO("50000")
			dto.CardLast4 = str("123")

			_, err := service.Submit(dto)
			Expect(err).To(HaveOccurred())
			Expect(repo.saved).To(BeEmpty())
		})

		It("surfaces storage failures as internal errors", func() {
			repo.saveError = errors.New("disk full")

			_, err := service.Submit(submitDTO("50000"))
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})

		It("publishes one payment.recorded event per persisted record", func() {
			bus := events.NewEventBus(testLogger())
			received := make(chan events.Event, 1)
			bus.Subscribe(events.EventTypePaymentRecorded, func(ctx context.Context, event events.Event) error {
				received <- event
				return nil
			})
			service = payment.NewService(repo, policies, gateways, bus, testLogger())

			record, err := service.Submit(submitDTO("50000"))
			Expect(err).NotTo(HaveOccurred())

			var event events.Event
			Eventually(received).Should(Receive(&event))
			recorded, ok := event.(*events.PaymentRecordedEvent)
			Expect(ok).To(BeTrue())
			Expect(recorded.PaymentID).To(Equal(record.ID))
			Expect(recorded.Amount).To(Equal("50000"))
			Expect(recorded.FeeAmount).To(Equal("1600"))
			Expect(recorded.Status).To(Equal(payment.StatusApproved))
			Consistently(received).ShouldNot(Receive())
		})
	})
})

var _ = Describe("Settle", func() {
	It("rounds the percentage part to whole units before adding the fixed fee", func() {
		// 33333 * 0.0123 = 409.9959 -> 410
		fee, net := payment.Settle(
			decimal.NewFromInt(33333),
			decimal.RequireFromString("0.0123"),
			decimal.NewFromInt(7))
		Expect(fee).To(Equal(decimal.NewFromInt(417)))
		Expect(net).To(Equal(decimal.NewFromInt(32916)))
	})

	It("handles a zero-rate policy", func() {
		fee, net := payment.Settle(decimal.NewFromInt(1000), decimal.Zero, decimal.Zero)
		Expect(fee.IsZero()).To(BeTrue())
		Expect(net).To(Equal(decimal.NewFromInt(1000)))
	})
})
