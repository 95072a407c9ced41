package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin   = "admin"
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Claims são emitidas pelo provedor de autenticação externo; BusinessID define o tenant da requisição
type Claims struct {
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	BusinessID string `json:"business_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}
