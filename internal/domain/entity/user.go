package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"  // consulta, exporta, sube y recarga el archivo de stock
	RoleViewer = "viewer" // consulta y exporta
)

// Estados de cuenta.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User usuario del tablero de stock.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio
	Name         string
	Role         string // admin, viewer
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si la cuenta puede iniciar sesión.
func (u *User) IsActive() bool { return u.Status == UserActive }

// ValidRole indica si role es un rol conocido.
func ValidRole(role string) bool { return role == RoleAdmin || role == RoleViewer }
