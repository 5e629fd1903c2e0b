package dashboard

import (
	"context"
	"time"

	"github.com/jhoicas/femibot-stock/internal/application/dto"
	"github.com/jhoicas/femibot-stock/internal/domain/stock"
)

// Payload contenido crudo de una fuente de stock. Name conserva la extensión original
// para elegir el lector.
type Payload struct {
	Name string
	Data []byte
}

// Source entrega el archivo de stock vigente (disco local, bucket, subida manual).
// Un fallo de lectura se devuelve envuelto en domain.ErrSourceUnavailable.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (Payload, error)
}

// TableReader convierte el contenido crudo en encabezado + filas.
// Los fallos estructurales se devuelven envueltos en domain.ErrMalformedSource.
type TableReader func(name string, data []byte) (stock.RawTable, error)

// ExportDocument vista lista para exportar.
type ExportDocument struct {
	Title       string // nombre de hoja: "Inventario" o "Vencimientos"
	Table       *stock.Table
	KPIs        []dto.KPIDTO
	GeneratedAt time.Time
}

// ViewExporter serializa una vista a un formato descargable.
type ViewExporter interface {
	Format() string
	ContentType() string
	Export(ctx context.Context, doc ExportDocument) ([]byte, error)
}
