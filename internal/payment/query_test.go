package payment_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/Changwoo-dev/backend-test-v1/internal/payment"
)

var _ = Describe("QueryService", func() {
	var (
		repo    *mockPaymentRepository
		service *payment.QueryService
	)

	recordAt := func(id int64, createdAt time.Time) *payment.Payment {
		return &payment.Payment{
			ID:        id,
			PartnerID: 2,
			Amount:    decimal.NewFromInt(10000),
			FeeAmount: decimal.NewFromInt(300),
			NetAmount: decimal.NewFromInt(9700),
			Status:    payment.StatusApproved,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
	}

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		repo = newMockPaymentRepository()
		service = payment.NewQueryService(repo, testLogger())
	})

	It("applies the default page size when none is given", func() {
		_, err := service.Query(payment.QueryFilter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(repo.lastPage.Limit).To(Equal(payment.DefaultPageSize))
	})

	It("passes the decoded cursor position to the page read only", func() {
		cursorAt := base.Add(-time.Hour)
		token := payment.EncodeCursor(cursorAt, 77)
		partnerID := int64(2)

		_, err := service.Query(payment.QueryFilter{
			PartnerID: &partnerID,
			Cursor:    token,
			Limit:     10,
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(repo.lastPage.CursorCreatedAt).NotTo(BeNil())
		Expect(repo.lastPage.CursorCreatedAt.UnixMilli()).To(Equal(cursorAt.UnixMilli()))
		Expect(repo.lastPage.CursorID).NotTo(BeNil())
		Expect(*repo.lastPage.CursorID).To(Equal(int64(77)))

		// summary sees the same predicate but never the cursor
		Expect(repo.lastSummary.PartnerID).To(Equal(&partnerID))
	})

	It("treats a corrupted cursor as starting from the beginning", func() {
		_, err := service.Query(payment.QueryFilter{Cursor: "!!garbage!!", Limit: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(repo.lastPage.CursorCreatedAt).To(BeNil())
		Expect(repo.lastPage.CursorID).To(BeNil())
	})

	It("reports hasNext when the page is exactly full", func() {
		repo.pages = []*payment.Payment{
			recordAt(3, base),
			recordAt(2, base.Add(-time.Minute)),
		}

		result, err := service.Query(payment.QueryFilter{Limit: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.HasNext).To(BeTrue())
	})

	It("reports no next page when fewer items than the limit return", func() {
		repo.pages = []*payment.Payment{recordAt(3, base)}

		result, err := service.Query(payment.QueryFilter{Limit: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.HasNext).To(BeFalse())
	})

	It("derives the next cursor from the last item of the page", func() {
		last := recordAt(2, base.Add(-time.Minute))
		repo.pages = []*payment.Payment{recordAt(3, base), last}

		result, err := service.Query(payment.QueryFilter{Limit: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.NextCursor).NotTo(BeNil())

		createdAt, id := payment.DecodeCursor(*result.NextCursor)
		Expect(createdAt.UnixMilli()).To(Equal(last.CreatedAt.UnixMilli()))
		Expect(*id).To(Equal(last.ID))
	})

	It("omits the cursor on an empty page", func() {
		result, err := service.Query(payment.QueryFilter{Limit: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Items).To(BeEmpty())
		Expect(result.NextCursor).To(BeNil())
		Expect(result.HasNext).To(BeFalse())
	})

	It("returns the summary alongside the page", func() {
		repo.summary = &payment.Summary{
			Count:       7,
			TotalAmount: decimal.NewFromInt(70000),
			TotalFee:    decimal.NewFromInt(2100),
			TotalNet:    decimal.NewFromInt(67900),
		}
		repo.pages = []*payment.Payment{recordAt(3, base)}

		result, err := service.Query(payment.QueryFilter{Limit: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Summary.Count).To(Equal(int64(7)))
		Expect(result.Summary.TotalAmount).To(Equal(decimal.NewFromInt(70000)))
	})
})

var _ = Describe("ParseQueryFilter", func() {
	It("parses the documented time layout as UTC", func() {
		filter := payment.ParseQueryFilter(map[string][]string{
			"from": {"2024-01-01 00:00:00"},
			"to":   {"2024-07-01 12:30:45"},
		})
		Expect(filter.From).NotTo(BeNil())
		Expect(filter.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))).To(BeTrue())
		Expect(filter.To).NotTo(BeNil())
		Expect(filter.To.Equal(time.Date(2024, 7, 1, 12, 30, 45, 0, time.UTC))).To(BeTrue())
	})

	It("drops unparseable optional params", func() {
		filter := payment.ParseQueryFilter(map[string][]string{
			"partner_id": {"abc"},
			"from":       {"01/01/2024"},
			"limit":      {"-5"},
		})
		Expect(filter.PartnerID).To(BeNil())
		Expect(filter.From).To(BeNil())
		Expect(filter.Limit).To(BeZero())
	})

	It("caps the limit at 100", func() {
		filter := payment.ParseQueryFilter(map[string][]string{"limit": {"500"}})
		Expect(filter.Limit).To(BeZero())
	})
})
