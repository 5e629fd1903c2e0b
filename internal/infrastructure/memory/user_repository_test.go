package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/femibot-stock/internal/domain/entity"
	"github.com/jhoicas/femibot-stock/internal/infrastructure/memory"
)

const hash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z1xk8U6nSx6gT0Xc6u8yYQyC"

func TestNewUserRepository_ParseaEntradas(t *testing.T) {
	repo, err := memory.NewUserRepository("Admin@Femibot.com:" + hash + ":admin, ver@femibot.com:" + hash + ":viewer,")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Len())

	u, err := repo.FindByEmail(context.Background(), "admin@femibot.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Equal(t, hash, u.PasswordHash)
	assert.True(t, u.IsActive())

	again, _ := repo.FindByEmail(context.Background(), "ADMIN@femibot.com")
	assert.Equal(t, u.ID, again.ID, "ID estable por email")

	none, err := repo.FindByEmail(context.Background(), "otro@femibot.com")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestNewUserRepository_EntradasInvalidas(t *testing.T) {
	_, err := memory.NewUserRepository("solo-email")
	assert.Error(t, err)

	_, err = memory.NewUserRepository("a@b.com:" + hash + ":superuser")
	assert.Error(t, err)
}

func TestNewUserRepository_Vacio(t *testing.T) {
	repo, err := memory.NewUserRepository("")
	require.NoError(t, err)
	assert.Equal(t, 0, repo.Len())
}
