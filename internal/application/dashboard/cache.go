package dashboard

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/femibot-stock/internal/domain/stock"
	"github.com/jhoicas/femibot-stock/pkg/logger"
)

// DefaultCacheSize cantidad de tablas normalizadas retenidas.
const DefaultCacheSize = 4

// Snapshot tabla normalizada de un contenido concreto, en una fecha concreta.
// Table es de solo lectura: todas las peticiones la comparten.
type Snapshot struct {
	ID          string
	SourceName  string
	Fingerprint string
	LoadedAt    time.Time
	Table       *stock.Table
}

// TableCache memoiza la normalización por huella del contenido (sha256) y día de carga:
// los días derivados se recalculan cuando cambia la fecha aunque el archivo no cambie.
type TableCache struct {
	entries *lru.Cache[string, *Snapshot]
	group   singleflight.Group
	read    TableReader
	log     *logger.Logger
}

// NewTableCache construye la caché. size <= 0 usa DefaultCacheSize.
func NewTableCache(size int, read TableReader, log *logger.Logger) (*TableCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, *Snapshot](size)
	if err != nil {
		return nil, fmt.Errorf("crear caché de tablas: %w", err)
	}
	return &TableCache{entries: entries, read: read, log: log}, nil
}

// Fingerprint huella hexadecimal sha256 del contenido.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get devuelve la tabla normalizada del payload. Peticiones concurrentes con la misma
// clave comparten una sola normalización. SourceName es siempre el del payload pedido,
// aunque la tabla se haya normalizado antes bajo otro nombre con el mismo contenido.
func (c *TableCache) Get(p Payload, now time.Time) (*Snapshot, error) {
	s, err := c.get(p, now)
	if err != nil {
		return nil, err
	}
	if s.SourceName != p.Name {
		renamed := *s
		renamed.SourceName = p.Name
		return &renamed, nil
	}
	return s, nil
}

func (c *TableCache) get(p Payload, now time.Time) (*Snapshot, error) {
	fp := Fingerprint(p.Data)
	key := fp + "@" + now.Format("2006-01-02")
	if s, ok := c.entries.Get(key); ok {
		return s, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if s, ok := c.entries.Get(key); ok {
			return s, nil
		}
		start := time.Now()
		raw, err := c.read(p.Name, p.Data)
		if err != nil {
			return nil, err
		}
		tbl, err := stock.Normalize(raw, now)
		if err != nil {
			return nil, err
		}
		s := &Snapshot{
			ID:          uuid.NewString(),
			SourceName:  p.Name,
			Fingerprint: fp,
			LoadedAt:    now,
			Table:       tbl,
		}
		c.entries.Add(key, s)
		c.log.Info().
			Str("source", p.Name).
			Str("fingerprint", fp[:12]).
			Int("rows", tbl.Len()).
			Dur("elapsed", time.Since(start)).
			Msg("tabla de stock normalizada")
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Invalidate descarta todas las tablas memoizadas.
func (c *TableCache) Invalidate() {
	c.entries.Purge()
}

// Len cantidad de tablas memoizadas.
func (c *TableCache) Len() int {
	return c.entries.Len()
}
