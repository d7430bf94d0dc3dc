package period_test

import (
	"testing"
	"time"

	appErrors "github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/core/common/period"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPeriod(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Period Suite")
}

var _ = Describe("Period", func() {
	now := time.Date(2024, time.February, 14, 18, 30, 0, 0, time.UTC)

	Describe("CurrentMonth", func() {
		It("spans the whole month including leap day", func() {
			p := period.CurrentMonth(now)
			Expect(p.From).To(Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
			Expect(p.To).To(Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
			Expect(p.String()).To(Equal("2024-02-01..2024-02-29"))
		})
	})

	Describe("Parse", func() {
		It("defaults both bounds to the current month", func() {
			p, err := period.Parse("", "", now)
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(period.CurrentMonth(now)))
		})

		It("accepts explicit bounds", func() {
			p, err := period.Parse("2024-03-01", "2024-03-31", now)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Contains(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))).To(BeTrue())
			Expect(p.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))).To(BeFalse())
			Expect(p.End()).To(Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
		})

		It("rejects malformed dates", func() {
			_, err := period.Parse("03/01/2024", "", now)
			Expect(err).To(HaveOccurred())
			Expect(appErrors.IsType(err, appErrors.ErrorTypeValidation)).To(BeTrue())
		})

		It("rejects an inverted range", func() {
			_, err := period.Parse("2024-03-10", "2024-03-01", now)
			Expect(appErrors.IsType(err, appErrors.ErrorTypeValidation)).To(BeTrue())
		})
	})
})
