package family

import "time"

const RoleOwner = "owner"

type Family struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Family) TableName() string { return "families" }

// FamilyMember links a user to exactly one family.
type FamilyMember struct {
	FamilyID  int64     `gorm:"column:family_id;primaryKey;autoIncrement:false"`
	UserID    int64     `gorm:"column:user_id;primaryKey;autoIncrement:false;uniqueIndex:idx_family_members_user"`
	Role      string    `gorm:"column:role;not null;default:owner"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (FamilyMember) TableName() string { return "family_members" }

type Account struct {
	ID        int64     `gorm:"primaryKey"`
	FamilyID  int64     `gorm:"column:family_id;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	IsPrimary bool      `gorm:"column:is_primary;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Account) TableName() string { return "accounts" }
