// Package source implementa las fuentes del archivo de stock: disco local,
// objeto de Cloud Storage y observador de cambios en disco.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jhoicas/femibot-stock/internal/application/dashboard"
	"github.com/jhoicas/femibot-stock/internal/domain"
)

// FileSource lee el archivo de stock desde disco en cada Fetch.
type FileSource struct {
	path string
}

// NewFileSource construye la fuente para path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return s.path }

// Path ruta observada.
func (s *FileSource) Path() string { return s.path }

// Fetch devuelve el contenido actual. Un archivo ausente o ilegible es ErrSourceUnavailable.
func (s *FileSource) Fetch(ctx context.Context) (dashboard.Payload, error) {
	if err := ctx.Err(); err != nil {
		return dashboard.Payload{}, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dashboard.Payload{}, fmt.Errorf("%s no existe: %w", s.path, domain.ErrSourceUnavailable)
		}
		return dashboard.Payload{}, fmt.Errorf("leer %s: %v: %w", s.path, err, domain.ErrSourceUnavailable)
	}
	return dashboard.Payload{Name: s.path, Data: data}, nil
}
