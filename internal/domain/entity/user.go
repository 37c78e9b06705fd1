package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User representa un usuario de la aplicación (login del panel).
type User struct {
	ID           string
	Username     string // único
	PasswordHash string
	Role         string // "admin" | "vendedor"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
