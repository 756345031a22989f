package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

// Admin é a única conta com acesso às operações administrativas
type Admin struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

type Claims struct {
	UserEmail string `json:"email"`
	UserRole  string `json:"role"`
	jwt.RegisteredClaims
}
