package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/femibot-stock/internal/domain"
	"github.com/jhoicas/femibot-stock/internal/infrastructure/source"
	"github.com/jhoicas/femibot-stock/pkg/logger"
)

func TestFileSource_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Stock.csv")
	require.NoError(t, os.WriteFile(path, []byte("Depósito\nA\n"), 0o600))

	p, err := source.NewFileSource(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, p.Name)
	assert.Equal(t, "Depósito\nA\n", string(p.Data))
}

func TestFileSource_ArchivoAusente(t *testing.T) {
	src := source.NewFileSource(filepath.Join(t.TempDir(), "no-existe.csv"))

	_, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
}

func TestWatcher_AvisaAlModificar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Stock.csv")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o600))

	changed := make(chan struct{}, 8)
	w, err := source.NewWatcher(path, func() { changed <- struct{}{} }, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "otro.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("b"), 0o600))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("sin aviso de cambio")
	}
}
