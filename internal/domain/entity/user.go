package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User usuario del sistema (login por username).
type User struct {
	ID           string
	Username     string // único
	PasswordHash string
	RealName     string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	LastLogin    *time.Time
}
