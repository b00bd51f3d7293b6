package repository

import (
	"context"

	"github.com/invorya/stock-ledger-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	// Create persiste un usuario. Devuelve domain.ErrDuplicate si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
