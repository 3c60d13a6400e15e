package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleSocio = "socio"
)

// User representa un usuario del sistema. Un socio queda atado a su Member.
type User struct {
	ID           string
	Member       string // vacío para admin
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string // admin, socio
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
