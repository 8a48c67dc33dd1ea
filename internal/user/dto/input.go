package dto

import "github.com/fekuna/omnipos-local/internal/model"

type CreateUserInput struct {
	Username string     `json:"username" validate:"required,max=50"`
	Password string     `json:"password" validate:"required,min=4,max=72"`
	Role     model.Role `json:"role" validate:"required,oneof=admin user"`
}

type ChangePasswordInput struct {
	Username    string `json:"username" validate:"required"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=4,max=72"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
