package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// User representa un usuario del sistema.
// Se crea por el proceso de seed o por un administrador; nunca se elimina en operación normal.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, manager, user
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
