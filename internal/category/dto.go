package category

import (
	"strings"

	errors "github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/core/common/validation"
)

type Input struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Normalize trims fields, applies defaults and validates the result.
func (in Input) Normalize() (Input, *errors.AppError) {
	typ, typeOK := ParseType(in.Type)
	out := Input{
		Name:  strings.TrimSpace(in.Name),
		Type:  typ,
		Color: strings.TrimSpace(in.Color),
		Icon:  strings.TrimSpace(in.Icon),
	}
	if out.Color == "" {
		out.Color = DefaultColor
	}
	if out.Icon == "" {
		out.Icon = DefaultIcon
	}

	v := validation.NewValidator()
	v.Field("name", out.Name).Required().MaxLength(MaxNameLength)
	v.Field("type", in.Type).Custom(func(interface{}) *errors.AppError {
		if typeOK {
			return nil
		}
		return errors.NewValidationFieldError("type", "type must be one of: income, expense", errors.ErrCodeInvalidType)
	})
	v.Field("color", out.Color).MaxLength(32)
	v.Field("icon", out.Icon).MaxLength(64)
	if err := v.Validate(); err != nil {
		return Input{}, err
	}
	return out, nil
}

type CategoryResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
	Global bool   `json:"global"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
