package user

import (
	"time"
)

// Profile is the signed-in user as shown to themselves.
type Profile struct {
	ID         int64     `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	Name       string    `json:"name" db:"name"`
	FamilyID   *int64    `json:"family_id" db:"family_id"`
	FamilyName *string   `json:"family_name" db:"family_name"`
	Role       *string   `json:"role" db:"role"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

func (p *Profile) HasFamily() bool {
	return p.FamilyID != nil
}
