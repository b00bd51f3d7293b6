package entity

import "time"

// Roles disponibles para usuarios de la API.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
)

// User usuario de la API (solo autenticación; el inventario no es multiusuario).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
