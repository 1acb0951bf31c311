package auth

import (
	"gorm.io/gorm"
)

// User is an account that can sign in to score matches.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'viewer'" json:"role"` // admin, manager, viewer
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"scorer1"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"scorer1"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
	Role     string `json:"role" binding:"required,oneof=admin manager viewer" example:"manager"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
	User        User   `json:"user"`
}
