package family

import (
	"context"
	"log/slog"

	appErrors "github.com/frahmantamala/family-ledger/internal"
	familyDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/family"
)

// RepositoryAPI lookups return nil, nil when nothing matches.
type RepositoryAPI interface {
	MembershipForUser(ctx context.Context, userID int64) (*familyDatamodel.FamilyMember, error)
	MainAccount(ctx context.Context, familyID int64) (*familyDatamodel.Account, error)
	GetFamily(ctx context.Context, familyID int64) (*familyDatamodel.Family, error)
	Members(ctx context.Context, familyID int64) ([]*familyDatamodel.FamilyMember, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ResolveScope finds the user's family and that family's main account.
func (s *Service) ResolveScope(ctx context.Context, userID int64) (appErrors.Scope, error) {
	member, err := s.repo.MembershipForUser(ctx, userID)
	if err != nil {
		s.logger.Error("membership lookup failed", "user_id", userID, "error", err)
		return appErrors.Scope{}, appErrors.NewStorageError("failed to resolve family", err)
	}
	if member == nil {
		return appErrors.Scope{}, appErrors.ErrFamilyNotFound
	}

	account, err := s.repo.MainAccount(ctx, member.FamilyID)
	if err != nil {
		s.logger.Error("main account lookup failed", "family_id", member.FamilyID, "error", err)
		return appErrors.Scope{}, appErrors.NewStorageError("failed to resolve family", err)
	}
	if account == nil {
		return appErrors.Scope{}, appErrors.ErrAccountNotFound
	}

	return appErrors.Scope{FamilyID: member.FamilyID, AccountID: account.ID}, nil
}

func (s *Service) Overview(ctx context.Context, scope appErrors.Scope) (*Overview, error) {
	f, err := s.repo.GetFamily(ctx, scope.FamilyID)
	if err != nil {
		s.logger.Error("family lookup failed", "family_id", scope.FamilyID, "error", err)
		return nil, appErrors.NewStorageError("failed to load family", err)
	}
	if f == nil {
		return nil, appErrors.ErrFamilyNotFound
	}

	account, err := s.repo.MainAccount(ctx, scope.FamilyID)
	if err != nil {
		return nil, appErrors.NewStorageError("failed to load family", err)
	}
	if account == nil {
		return nil, appErrors.ErrAccountNotFound
	}

	members, err := s.repo.Members(ctx, scope.FamilyID)
	if err != nil {
		return nil, appErrors.NewStorageError("failed to load family", err)
	}

	o := &Overview{
		Family:      FromDataModel(f),
		MainAccount: AccountFromDataModel(account),
		Members:     make([]Member, 0, len(members)),
	}
	for _, m := range members {
		o.Members = append(o.Members, MemberFromDataModel(m))
	}
	return o, nil
}
