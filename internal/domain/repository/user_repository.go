package repository

import (
	"context"

	"github.com/jhoicas/femibot-stock/internal/domain/entity"
)

// UserRepository puerto de lectura de usuarios para autenticación (DIP).
// FindByEmail devuelve (nil, nil) si el email no existe.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
