package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	appErrors "github.com/frahmantamala/family-ledger/internal"
	userDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/user"
	"github.com/frahmantamala/family-ledger/internal/core/events"
)

const (
	DefaultFamilyName  = "Our family"
	DefaultAccountName = "Main card"
)

// ErrEmailExists is returned by repositories when the email is already registered.
var ErrEmailExists = errors.New("email already registered")

type RepositoryAPI interface {
	// GetByEmail returns nil, nil when no user has the email.
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	// CreateHousehold inserts the user, a family, the owner membership and the
	// family's primary account atomically, returning the family id.
	CreateHousehold(ctx context.Context, user *userDatamodel.User, familyName, accountName string) (int64, error)
}

type ServiceAPI interface {
	Register(ctx context.Context, dto RegisterDTO) (*RegisterResponse, error)
	Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error)
	RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

// Service is the main auth service with dependencies
type Service struct {
	repo      RepositoryAPI
	tokens    TokenGeneratorAPI
	hasher    PasswordHasher
	publisher events.Publisher
	logger    *slog.Logger

	// dummyHash keeps login timing flat for unknown emails.
	dummyHash string
}

func NewService(repo RepositoryAPI, tokens TokenGeneratorAPI, hasher PasswordHasher, publisher events.Publisher, logger *slog.Logger) *Service {
	s := &Service{
		repo:      repo,
		tokens:    tokens,
		hasher:    hasher,
		publisher: publisher,
		logger:    logger,
	}
	if h, err := hasher.Hash("family-ledger-timing-guard"); err == nil {
		s.dummyHash = h
	}
	return s
}

func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*RegisterResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	email := normalizeEmail(dto.Email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error("registration lookup failed", "error", err)
		return nil, appErrors.NewStorageError("registration failed", err)
	}
	if existing != nil {
		return nil, appErrors.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, appErrors.NewInternalError("registration failed", err)
	}

	u := &userDatamodel.User{
		Email:        email,
		Name:         strings.TrimSpace(dto.Name),
		PasswordHash: hash,
	}
	familyID, err := s.repo.CreateHousehold(ctx, u, DefaultFamilyName, DefaultAccountName)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, appErrors.ErrEmailTaken
		}
		s.logger.Error("registration transaction failed", "error", err)
		return nil, appErrors.NewStorageError("registration failed", err)
	}

	tokens, err := s.issue(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", u.ID, "family_id", familyID)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewUserRegisteredEvent(u.ID, familyID)); err != nil {
			s.logger.Warn("failed to publish user registered event", "user_id", u.ID, "error", err)
		}
	}

	return &RegisterResponse{UserID: u.ID, FamilyID: familyID, Tokens: tokens}, nil
}

// Authenticate validates credentials and returns tokens. Unknown email and
// wrong password produce the same error.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	u, err := s.repo.GetByEmail(ctx, normalizeEmail(dto.Email))
	if err != nil {
		s.logger.Error("login lookup failed", "error", err)
		return AuthTokens{}, appErrors.NewStorageError("login failed", err)
	}
	if u == nil {
		if s.dummyHash != "" {
			_ = s.hasher.Compare(s.dummyHash, dto.Password)
		}
		return AuthTokens{}, appErrors.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(u.PasswordHash, dto.Password); err != nil {
		return AuthTokens{}, appErrors.ErrInvalidCredentials
	}

	s.logger.Info("user logged in", "user_id", u.ID)
	return s.issue(u.ID, u.Email)
}

// RefreshTokens validates refresh token and returns new tokens
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, tokenError(err)
	}

	u, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		s.logger.Error("refresh lookup failed", "user_id", claims.UserID, "error", err)
		return AuthTokens{}, appErrors.NewStorageError("token refresh failed", err)
	}
	if u == nil {
		return AuthTokens{}, appErrors.ErrInvalidToken
	}

	return s.issue(u.ID, u.Email)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.tokens.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, tokenError(err)
	}
	return claims, nil
}

func (s *Service) issue(userID int64, email string) (AuthTokens, error) {
	access, err := s.tokens.GenerateAccessToken(userID, email)
	if err != nil {
		s.logger.Error("failed to sign access token", "user_id", userID, "error", err)
		return AuthTokens{}, appErrors.NewInternalError("failed to issue token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(userID, email)
	if err != nil {
		s.logger.Error("failed to sign refresh token", "user_id", userID, "error", err)
		return AuthTokens{}, appErrors.NewInternalError("failed to issue token", err)
	}
	return AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

func tokenError(err error) error {
	if errors.Is(err, errTokenExpired) {
		return appErrors.ErrTokenExpired
	}
	return appErrors.ErrInvalidToken
}
