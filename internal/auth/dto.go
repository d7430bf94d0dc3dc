package auth

import (
	"strings"

	errors "github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/core/common/validation"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (d LoginDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required()
	v.Field("password", d.Password).Required()
	return v.Validate()
}

func (d RegisterDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("email", normalizeEmail(d.Email)).Required().Email().MaxLength(255)
	v.Field("password", d.Password).Required().MinLength(MinPasswordLength).MaxLength(MaxPasswordLength)
	v.Field("name", strings.TrimSpace(d.Name)).Required().MaxLength(100)
	return v.Validate()
}

func (d RefreshTokenDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("refresh_token", d.RefreshToken).Required()
	return v.Validate()
}

type RegisterResponse struct {
	UserID   int64      `json:"user_id"`
	FamilyID int64      `json:"family_id"`
	Tokens   AuthTokens `json:"tokens"`
}
