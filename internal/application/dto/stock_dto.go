package dto

import (
	"time"

	"github.com/jhoicas/femibot-stock/internal/domain/stock"
)

// StockFilterRequest parámetros de consulta de ambas vistas.
// Los filtros de cascada aceptan el parámetro repetido: ?deposito=A&deposito=B.
type StockFilterRequest struct {
	Query     string   `query:"q"`
	Deposito  []string `query:"deposito"`
	Linea     []string `query:"linea"`
	Categoria []string `query:"categoria"`
	Producto  []string `query:"producto"`
	Medida    []string `query:"medida"`

	// Solo vista de vencimientos.
	Status        string   `query:"estado"` // all | expiring_soon | expired
	ThresholdDays int      `query:"dias"`   // 1..180, default 30
	Months        []string `query:"mes"`    // yyyy-mm

	// Solo exportación.
	Format string `query:"format"` // xlsx | pdf
}

// Selections traduce los filtros de cascada a la forma del dominio.
func (r StockFilterRequest) Selections() stock.Selections {
	return stock.Selections{
		stock.ColDeposito:  r.Deposito,
		stock.ColLinea:     r.Linea,
		stock.ColCategoria: r.Categoria,
		stock.ColProducto:  r.Producto,
		stock.ColMedida:    r.Medida,
	}
}

// KPIDTO indicador etiqueta → valor.
type KPIDTO struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// FilterOptionsDTO dominio ofrecido por un filtro y la selección aplicada.
type FilterOptionsDTO struct {
	Column    string              `json:"column"`
	Options   []string            `json:"options"`
	Selected  []string            `json:"selected"`
	Remaining map[string][]string `json:"remaining,omitempty"`
}

// StockTableDTO tabla de la vista: columnas en orden de render y filas alineadas.
type StockTableDTO struct {
	Columns []string        `json:"columns"`
	Rows    [][]stock.Value `json:"rows"`
	Total   int             `json:"total"`
}

// InventoryViewDTO respuesta de GET /api/stock/inventory.
type InventoryViewDTO struct {
	Source  SourceInfoDTO      `json:"source"`
	KPIs    []KPIDTO           `json:"kpis"`
	Filters []FilterOptionsDTO `json:"filters"`
	Table   StockTableDTO      `json:"table"`
}

// ExpirationViewDTO respuesta de GET /api/stock/expirations.
type ExpirationViewDTO struct {
	Source        SourceInfoDTO      `json:"source"`
	Status        string             `json:"status"`
	ThresholdDays int                `json:"threshold_days"`
	KPIs          []KPIDTO           `json:"kpis"`
	Filters       []FilterOptionsDTO `json:"filters"`
	MonthOptions  []string           `json:"month_options"`
	Months        []string           `json:"months"`
	Table         StockTableDTO      `json:"table"`
}

// SourceInfoDTO datos de la tabla normalizada en uso.
type SourceInfoDTO struct {
	Name        string    `json:"name"`
	SnapshotID  string    `json:"snapshot_id"`
	Fingerprint string    `json:"fingerprint"`
	Rows        int       `json:"rows"`
	Columns     []string  `json:"columns"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// ExportFile archivo generado para descarga.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}
