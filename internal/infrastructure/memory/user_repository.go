// Package memory implementa repositorios en memoria para despliegues sin base de datos.
package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/femibot-stock/internal/domain/entity"
	"github.com/jhoicas/femibot-stock/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// namespace para derivar IDs estables a partir del email.
var userNamespace = uuid.MustParse("6f1c2a52-8c0e-4d8a-9a44-5b8f0c7e2d11")

// UserRepo usuarios fijados por configuración (AUTH_USERS). Solo lectura.
type UserRepo struct {
	byEmail map[string]*entity.User
}

// NewUserRepository parsea la lista "email:bcrypthash:role" separada por comas.
// Los hashes bcrypt no contienen ':' ni ','.
func NewUserRepository(spec string) (*UserRepo, error) {
	r := &UserRepo{byEmail: make(map[string]*entity.User)}
	now := time.Now()
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("AUTH_USERS: entrada inválida %q (email:hash:rol)", entry)
		}
		email := strings.ToLower(strings.TrimSpace(parts[0]))
		hash, role := strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
		if email == "" || hash == "" {
			return nil, fmt.Errorf("AUTH_USERS: email y hash son requeridos en %q", entry)
		}
		if !entity.ValidRole(role) {
			return nil, fmt.Errorf("AUTH_USERS: rol %q inválido para %s", role, email)
		}
		r.byEmail[email] = &entity.User{
			ID:           uuid.NewSHA1(userNamespace, []byte(email)).String(),
			Email:        email,
			PasswordHash: hash,
			Name:         email,
			Role:         role,
			Status:       entity.UserActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	return r, nil
}

// FindByEmail devuelve (nil, nil) si el email no está configurado.
func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// Len cantidad de usuarios configurados.
func (r *UserRepo) Len() int { return len(r.byEmail) }
