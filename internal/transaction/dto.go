package transaction

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/core/common/period"
	"github.com/frahmantamala/family-ledger/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

type AppendInput struct {
	CategoryID  int64  `json:"category_id"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Who         string `json:"who"`
}

// parsed is an AppendInput after validation and normalization.
type parsed struct {
	categoryID  int64
	amount      decimal.Decimal
	date        time.Time
	description *string
	who         string
}

func (in AppendInput) parse() (*parsed, *errors.AppError) {
	description := strings.TrimSpace(in.Description)
	typ, typeOK := ParseType(in.Type)
	who, whoOK := ParseWho(in.Who)

	v := validation.NewValidator()
	v.Field("category_id", in.CategoryID).Required()
	v.Field("amount", strings.TrimSpace(in.Amount)).Required().Custom(validateAmount)
	v.Field("date", strings.TrimSpace(in.Date)).Required().Date()
	v.Field("type", in.Type).Custom(func(interface{}) *errors.AppError {
		if typeOK {
			return nil
		}
		return errors.NewValidationFieldError("type", "type must be one of: income, expense", errors.ErrCodeInvalidType)
	})
	v.Field("description", description).MaxLength(MaxDescriptionLength)
	v.Field("who", in.Who).Custom(func(interface{}) *errors.AppError {
		if whoOK {
			return nil
		}
		return errors.NewValidationFieldError("who", "who must be one of: me, girlfriend, shared", errors.ErrCodeInvalidWho)
	})
	if err := v.Validate(); err != nil {
		return nil, err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(in.Amount))
	date, _ := period.ParseDate(strings.TrimSpace(in.Date))

	p := &parsed{
		categoryID: in.CategoryID,
		amount:     SignedAmount(amount, typ),
		date:       date,
		who:        who,
	}
	if description != "" {
		p.description = &description
	}
	return p, nil
}

func validateAmount(value interface{}) *errors.AppError {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return errors.NewValidationFieldError("amount", "amount must be a number", errors.ErrCodeInvalidAmount)
	}
	if d.IsZero() {
		return errors.NewValidationFieldError("amount", "amount must not be zero", errors.ErrCodeInvalidAmount)
	}
	if !d.Equal(d.Round(2)) {
		return errors.NewValidationFieldError("amount", "amount must have at most 2 decimal places", errors.ErrCodeInvalidAmount)
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return errors.NewValidationFieldError("amount", "amount is too large", errors.ErrCodeInvalidAmount)
	}
	return nil
}

type Filter struct {
	From       string
	To         string
	CategoryID string
}

type TransactionResponse struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	Amount        string  `json:"amount"`
	Description   *string `json:"description"`
	Who           string  `json:"who"`
	CategoryID    int64   `json:"category_id"`
	CategoryName  string  `json:"category_name,omitempty"`
	CategoryColor string  `json:"category_color,omitempty"`
	CategoryIcon  string  `json:"category_icon,omitempty"`
	UserID        int64   `json:"user_id"`
}

type TransactionsResponse struct {
	From         string                `json:"from"`
	To           string                `json:"to"`
	Transactions []TransactionResponse `json:"transactions"`
}

func (t *Transaction) ToResponse() TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Date:        t.Date.Format(time.DateOnly),
		Amount:      t.Amount.StringFixed(2),
		Description: t.Description,
		Who:         t.Who,
		CategoryID:  t.CategoryID,
		UserID:      t.UserID,
	}
}

func (v *View) ToResponse() TransactionResponse {
	r := v.Transaction.ToResponse()
	r.CategoryName = v.CategoryName
	r.CategoryColor = v.CategoryColor
	r.CategoryIcon = v.CategoryIcon
	return r
}
