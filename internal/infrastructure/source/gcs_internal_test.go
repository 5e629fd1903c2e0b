package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationMemo_ReutilizaSoloMismaGeneracion(t *testing.T) {
	var m generationMemo

	_, ok := m.get(0)
	assert.False(t, ok, "vacío no debe responder aunque la generación sea cero")

	m.put(7, []byte("Depósito\nA\n"))
	data, ok := m.get(7)
	require.True(t, ok)
	assert.Equal(t, "Depósito\nA\n", string(data))

	_, ok = m.get(8)
	assert.False(t, ok, "nueva generación obliga a descargar")

	m.put(8, []byte("Depósito\nB\n"))
	data, ok = m.get(8)
	require.True(t, ok)
	assert.Equal(t, "Depósito\nB\n", string(data))
}
