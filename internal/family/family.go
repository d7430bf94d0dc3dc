package family

import (
	"time"

	familyDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/family"
)

type Family struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Account struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IsPrimary bool   `json:"is_primary"`
}

type Member struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// Overview is a family with its main account and members.
type Overview struct {
	Family      Family   `json:"family"`
	MainAccount Account  `json:"main_account"`
	Members     []Member `json:"members"`
}

func FromDataModel(f *familyDatamodel.Family) Family {
	return Family{ID: f.ID, Name: f.Name, CreatedAt: f.CreatedAt}
}

func AccountFromDataModel(a *familyDatamodel.Account) Account {
	return Account{ID: a.ID, Name: a.Name, IsPrimary: a.IsPrimary}
}

func MemberFromDataModel(m *familyDatamodel.FamilyMember) Member {
	return Member{UserID: m.UserID, Role: m.Role}
}
