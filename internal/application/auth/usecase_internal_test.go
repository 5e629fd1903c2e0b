package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUnknownUserHash_CostoIgualAlDeUsuariosReales(t *testing.T) {
	h := unknownUserHash()
	require.NotEmpty(t, h)

	cost, err := bcrypt.Cost(h)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
	assert.Equal(t, h, unknownUserHash(), "se genera una sola vez")
	assert.Error(t, bcrypt.CompareHashAndPassword(h, []byte("clave-segura")))
}
