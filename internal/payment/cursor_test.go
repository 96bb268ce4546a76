package payment_test

import (
	"encoding/base64"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Changwoo-dev/backend-test-v1/internal/payment"
)

var _ = Describe("Cursor", func() {
	It("round-trips any createdAt/id pair", func() {
		pairs := []struct {
			createdAt time.Time
			id        int64
		}{
			{time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC), 1},
			{time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC), 9_223_372_036_854},
			{time.UnixMilli(0).UTC(), 0},
			{time.Now().UTC().Truncate(time.Millisecond), 42},
		}

		for _, pair := range pairs {
			token := payment.EncodeCursor(pair.createdAt, pair.id)

			createdAt, id := payment.DecodeCursor(token)
			Expect(createdAt).NotTo(BeNil())
			Expect(id).NotTo(BeNil())
			Expect(createdAt.UnixMilli()).To(Equal(pair.createdAt.UnixMilli()))
			Expect(*id).To(Equal(pair.id))
		}
	})

	It("produces URL-safe tokens without padding", func() {
		token := payment.EncodeCursor(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 12345)
		Expect(token).NotTo(ContainSubstring("="))
		Expect(token).NotTo(ContainSubstring("+"))
		Expect(token).NotTo(ContainSubstring("/"))
	})

	It("treats an empty token as no cursor", func() {
		createdAt, id := payment.DecodeCursor("")
		Expect(createdAt).To(BeNil())
		Expect(id).To(BeNil())
	})

	It("degrades corrupted tokens to no cursor instead of failing", func() {
		corrupted := []string{
			"not-base64!!!",
			base64.RawURLEncoding.EncodeToString([]byte("no-separator")),
			base64.RawURLEncoding.EncodeToString([]byte("abc:def")),
			base64.RawURLEncoding.EncodeToString([]byte(":123")),
			base64.RawURLEncoding.EncodeToString([]byte("1717200000000:")),
			"====",
		}

		for _, token := range corrupted {
			createdAt, id := payment.DecodeCursor(token)
			Expect(createdAt).To(BeNil(), "token %q should decode to no cursor", token)
			Expect(id).To(BeNil(), "token %q should decode to no cursor", token)
		}
	})
})
