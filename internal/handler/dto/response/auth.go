package response

import (
	"washbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoginResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		UserID:      r.UserID,
		Role:        r.Role,
		AccessToken: r.AccessToken,
		TokenType:   "Bearer",
	}
}

type RegisterResponse struct {
	UserID uuid.UUID `json:"user_id"`
}
