package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"cloud.google.com/go/storage"

	"github.com/jhoicas/femibot-stock/internal/application/dashboard"
	"github.com/jhoicas/femibot-stock/internal/domain"
)

// GCSSource lee el archivo de stock desde un objeto de Cloud Storage.
// El contenido se descarga solo cuando cambia la generación del objeto.
type GCSSource struct {
	client *storage.Client
	bucket string
	object string
	last   generationMemo
}

// NewGCSSource construye la fuente. El cliente lo administra el llamador.
func NewGCSSource(client *storage.Client, bucket, object string) *GCSSource {
	return &GCSSource{client: client, bucket: bucket, object: object}
}

func (s *GCSSource) Name() string { return "gs://" + s.bucket + "/" + s.object }

// Fetch consulta los atributos del objeto y descarga el contenido si la generación
// no coincide con la última leída.
func (s *GCSSource) Fetch(ctx context.Context) (dashboard.Payload, error) {
	obj := s.client.Bucket(s.bucket).Object(s.object)
	attrs, err := obj.Attrs(ctx)
	if err != nil {
		return dashboard.Payload{}, s.unavailable("consultar", err)
	}
	if data, ok := s.last.get(attrs.Generation); ok {
		return dashboard.Payload{Name: s.object, Data: data}, nil
	}

	rc, err := obj.Generation(attrs.Generation).NewReader(ctx)
	if err != nil {
		return dashboard.Payload{}, s.unavailable("abrir", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return dashboard.Payload{}, s.unavailable("descargar", err)
	}
	s.last.put(attrs.Generation, data)
	return dashboard.Payload{Name: s.object, Data: data}, nil
}

func (s *GCSSource) unavailable(op string, err error) error {
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("%s no existe: %w", s.Name(), domain.ErrSourceUnavailable)
	}
	return fmt.Errorf("%s %s: %v: %w", op, s.Name(), err, domain.ErrSourceUnavailable)
}

// generationMemo último contenido descargado y su generación.
type generationMemo struct {
	mu         sync.Mutex
	generation int64
	data       []byte
}

func (m *generationMemo) get(generation int64) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil || m.generation != generation {
		return nil, false
	}
	return m.data, true
}

func (m *generationMemo) put(generation int64, data []byte) {
	m.mu.Lock()
	m.generation, m.data = generation, data
	m.mu.Unlock()
}
