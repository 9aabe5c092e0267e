package auth

import (
	"github.com/dgrijalva/jwt-go"

	"github.com/fixpointhq/fixpoint-backend/internal/modules/employee"
	"github.com/fixpointhq/fixpoint-backend/internal/modules/store"
)

// Claims is the JWT payload: the subject is the employee id, plus the
// store and role the token was issued for.
type Claims struct {
	jwt.StandardClaims
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
}

// RegisterRequest is the payload for creating a store with its owner.
type RegisterRequest struct {
	StoreName string `json:"store_name"`
	OwnerName string `json:"owner_name"`
	PIN       string `json:"pin"`
}

// LoginRequest is the payload for a PIN login.
type LoginRequest struct {
	StoreCode string `json:"store_code"`
	PIN       string `json:"pin"`
}

// Session is returned by both register and login.
type Session struct {
	Token    string             `json:"token"`
	Store    *store.Store       `json:"store"`
	Employee *employee.Employee `json:"employee"`
}
