package http

import (
	"time"

	"github.com/glowbook/salon-backend/internal/user"
)

type AuthTelegramRequest struct {
	InitData string `json:"init_data" binding:"required"`
}

type StaffLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UpdateProfileRequest struct {
	Phone        string `json:"phone" binding:"required,min=5,max=20"`
	ConsentGiven bool   `json:"consent_given"`
}

type UserResponse struct {
	ID           string    `json:"id"`
	TelegramID   int64     `json:"telegram_id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	ConsentGiven bool      `json:"consent_given"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		TelegramID:   u.TelegramID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		Phone:        u.Phone,
		Role:         string(u.Role),
		ConsentGiven: u.ConsentGiven,
		CreatedAt:    u.CreatedAt,
	}
}
