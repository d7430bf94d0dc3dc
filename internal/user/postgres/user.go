package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/frahmantamala/family-ledger/internal/user"
	"github.com/jmoiron/sqlx"
)

const profileQuery = `
SELECT u.id, u.email, u.name, u.created_at,
       fm.family_id, f.name AS family_name, fm.role
FROM users u
LEFT JOIN family_members fm ON fm.user_id = u.id
LEFT JOIN families f ON f.id = fm.family_id
WHERE u.id = ?
ORDER BY fm.family_id ASC
LIMIT 1`

func NewPostgresRepo(db *sqlx.DB) user.Repository {
	return &pgRepo{db: db}
}

type pgRepo struct {
	db *sqlx.DB
}

func (p *pgRepo) GetProfile(ctx context.Context, id int64) (*user.Profile, error) {
	var prof user.Profile
	if err := p.db.GetContext(ctx, &prof, p.db.Rebind(profileQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile query: %w", err)
	}
	return &prof, nil
}
