package auth

import "smartbooking/internal/domain"

type RegisterRequest struct {
	Username string `json:"username" binding:"required" validate:"required,min=3,max=64"`
	Password string `json:"password" binding:"required" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
