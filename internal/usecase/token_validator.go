package usecase

import (
	"washbook/internal/domain/user"
	"washbook/internal/pkg/jwt"
	"washbook/internal/usecase/shared"
)

// TokenValidator turns a bearer token into the caller principal for middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (shared.Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (shared.Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return shared.Principal{}, err
	}

	// A role baked into an old token may no longer exist
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return shared.Principal{}, err
	}

	return shared.Principal{ID: claims.UserID, Role: role}, nil
}
