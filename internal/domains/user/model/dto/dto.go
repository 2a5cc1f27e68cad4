package dto

import (
	"todoapi/infras/jwt"
	"todoapi/internal/domains/user/model"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

func (r *RegisterRequest) ToModel(hashedPassword string) model.User {
	return model.User{
		Name:     r.Name,
		Password: hashedPassword,
	}
}

// RegisterResponse deliberately carries no password field; no response DTO
// in this package does.
type RegisterResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type LoginRequest struct {
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	jwt.TokenPair
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdateUserRequest struct {
	Name     *string `db:"name"     json:"name"     validate:"omitempty,max=255"`
	Password *string `db:"password" json:"password" validate:"omitempty"`
}

func (u *UpdateUserRequest) Empty() bool {
	return u.Name == nil && u.Password == nil
}

type UserResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
}
