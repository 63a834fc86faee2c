package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account of the social graph. Users are never deleted.
type User struct {
	ID             string    `json:"id" gorm:"primaryKey;size:64"`
	Username       string    `json:"username" gorm:"uniqueIndex"`
	Email          string    `json:"email" gorm:"uniqueIndex"`
	Password       string    `json:"-"` // bcrypt hash, never serialised
	DisplayName    string    `json:"display_name"`
	Avatar         *string   `json:"avatar"`
	Bio            string    `json:"bio"`
	FollowersCount int       `json:"followers"`
	FollowingCount int       `json:"following"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
	Sequence
}

// UserCompact is the short form of a user embedded in posts and notifications
type UserCompact struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	Avatar      *string `json:"avatar"`
}

// ToCompact returns the compact representation of the user
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
	}
}

type CreateUserRequest struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Password    string `json:"password" validate:"required"`
	DisplayName string `json:"display_name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest carries a partial profile update. A nil field is left
// untouched; a non-nil field is applied as is, so Bio can be cleared.
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=1,max=50"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=300"`
	Email       *string `json:"email,omitempty" validate:"omitempty,min=1"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims.
// RegisteredClaims.ID carries the session id.
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
