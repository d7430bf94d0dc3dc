package category

import (
	"errors"
	"strings"
	"time"

	categoryDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/category"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	DefaultColor = "#cccccc"
	DefaultIcon  = "bi-tag"

	MaxNameLength = 100
)

// Repository sentinels, mapped to AppErrors by the service.
var (
	ErrDuplicate = errors.New("category with this name and type already exists")
	ErrNotFound  = errors.New("category not found")
	ErrNotOwned  = errors.New("category is not owned by family")
)

type Category struct {
	ID        int64     `json:"id"`
	FamilyID  *int64    `json:"family_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsGlobal reports whether the category is a shared default.
func (c *Category) IsGlobal() bool {
	return c.FamilyID == nil
}

func (c *Category) OwnedBy(familyID int64) bool {
	return c.FamilyID != nil && *c.FamilyID == familyID
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:     c.ID,
		Name:   c.Name,
		Type:   c.Type,
		Color:  c.Color,
		Icon:   c.Icon,
		Global: c.IsGlobal(),
	}
}

// ParseType reads a category type. An empty value means expense.
func ParseType(t string) (string, bool) {
	switch strings.TrimSpace(strings.ToLower(t)) {
	case "", TypeExpense:
		return TypeExpense, true
	case TypeIncome:
		return TypeIncome, true
	}
	return "", false
}

func NewCategory(familyID *int64, in Input) *Category {
	now := time.Now()
	return &Category{
		FamilyID:  familyID,
		Name:      in.Name,
		Type:      in.Type,
		Color:     in.Color,
		Icon:      in.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		ID:        c.ID,
		FamilyID:  c.FamilyID,
		Name:      c.Name,
		Type:      c.Type,
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:        c.ID,
		FamilyID:  c.FamilyID,
		Name:      c.Name,
		Type:      c.Type,
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
