package dto

import authdomain "coffeemap-backend/internal/auth/domain"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=30"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Name     *string `json:"name" binding:"omitempty,min=2,max=30"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

type AuthResponse struct {
	User  *authdomain.User `json:"user"`
	Token string           `json:"token"`
}

type UserResponse struct {
	User *authdomain.User `json:"user"`
}
