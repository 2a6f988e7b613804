package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/rsydfhmy03/SEA-Catering/internal/auth"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	FullName     string    `db:"full_name" json:"full_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func (u *User) Principal() auth.Principal {
	return auth.Principal{UserID: u.ID.String(), Email: u.Email, Role: u.Role}
}

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=100" example:"Budi Santoso"`
	Email    string `json:"email" binding:"required,email" example:"budi@example.com"`
	Password string `json:"password" binding:"required,min=8,strong_password" example:"Secret123!"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

type ListQuery struct {
	Role   string `form:"role" binding:"omitempty,oneof=user admin"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
	Offset int    `form:"offset" binding:"omitempty,gte=0"`
}

type AuthResponse struct {
	auth.TokenPair
	User User `json:"user"`
}
