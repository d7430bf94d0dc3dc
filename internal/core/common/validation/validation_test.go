package validation_test

import (
	"testing"

	errors "github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/core/common/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

func details(err *errors.AppError) []errors.ValidationError {
	Expect(err).NotTo(BeNil())
	d, ok := err.Details.(errors.ValidationErrors)
	Expect(ok).To(BeTrue())
	return d.Errors
}

var _ = Describe("ValidationBuilder", func() {
	It("should pass valid input", func() {
		v := validation.NewValidator()
		v.Field("name", "Food").Required().MaxLength(10)
		v.Field("type", "expense").OneOf(errors.ErrCodeInvalidType, "income", "expense")
		v.Field("date", "2024-02-29").Date()
		v.Field("email", "ana@example.com").Email()
		Expect(v.Validate()).To(BeNil())
	})

	It("should report one error per failing field", func() {
		v := validation.NewValidator()
		v.Field("name", "  ").Required().MinLength(2)
		v.Field("date", "2023-02-29").Date()
		v.Field("category_id", int64(0)).Required()

		errs := details(v.Validate())
		Expect(errs).To(HaveLen(3))
		Expect(errs[0].Field).To(Equal("name"))
		Expect(errs[1].Code).To(Equal(string(errors.ErrCodeInvalidDate)))
		Expect(errs[2].Field).To(Equal("category_id"))
	})

	It("should count characters, not bytes", func() {
		v := validation.NewValidator()
		v.Field("name", "café").MaxLength(4)
		Expect(v.Validate()).To(BeNil())
	})

	It("should use the given code for OneOf", func() {
		v := validation.NewValidator()
		v.Field("type", "Expense").OneOf(errors.ErrCodeInvalidType, "income", "expense")
		errs := details(v.Validate())
		Expect(errs[0].Code).To(Equal(string(errors.ErrCodeInvalidType)))
	})

	It("should reject malformed emails", func() {
		v := validation.NewValidator()
		v.Field("email", "not-an-email").Email()
		errs := details(v.Validate())
		Expect(errs[0].Code).To(Equal(string(errors.ErrCodeInvalidEmail)))
	})

	It("should run custom checks", func() {
		v := validation.NewValidator()
		v.Field("amount", "0").Custom(func(interface{}) *errors.AppError {
			return errors.NewValidationFieldError("amount", "amount must not be zero", errors.ErrCodeInvalidAmount)
		})
		errs := details(v.Validate())
		Expect(errs[0].Code).To(Equal(string(errors.ErrCodeInvalidAmount)))
	})
})
