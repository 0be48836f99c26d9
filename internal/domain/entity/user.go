package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleCajero    = "cajero"
	RoleMesero    = "mesero"
	RoleBodeguero = "bodeguero"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del back-office.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCajero, RoleMesero, RoleBodeguero:
		return true
	}
	return false
}
