package contract

import "spryte/internal/domain/entity"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=128"`
	Name     string `json:"name" validate:"required,notblank,max=120"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,notblank,max=120"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=4,max=128"`
}

type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings"`
}

type UserResponse struct {
	ID           int64           `json:"id"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	Settings     entity.Settings `json:"settings"`
	ActiveAddons []string        `json:"active_addons"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type AuthResponse struct {
	Message     string        `json:"message"`
	User        *UserResponse `json:"user"`
	AccessToken string        `json:"access_token"`
}
