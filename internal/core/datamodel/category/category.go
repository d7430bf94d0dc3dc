package category

import "time"

// Category rows with a nil FamilyID are global defaults visible to every family.
type Category struct {
	ID        int64     `gorm:"primaryKey"`
	FamilyID  *int64    `gorm:"column:family_id;index"`
	Name      string    `gorm:"column:name;not null"`
	Type      string    `gorm:"column:type;not null;default:expense"`
	Color     string    `gorm:"column:color"`
	Icon      string    `gorm:"column:icon"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string { return "categories" }

type HiddenCategory struct {
	FamilyID   int64 `gorm:"column:family_id;primaryKey;autoIncrement:false"`
	CategoryID int64 `gorm:"column:category_id;primaryKey;autoIncrement:false"`
}

func (HiddenCategory) TableName() string { return "hidden_categories" }
