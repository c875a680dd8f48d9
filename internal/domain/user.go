package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const RoleOperator = "operator"

// Claims identify the operator holding a dashboard token
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
