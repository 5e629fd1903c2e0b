// Package dashboard orquesta el tablero de stock: obtiene el archivo vigente, lo
// normaliza (memoizado), arma las vistas de inventario y vencimientos y las exporta.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/femibot-stock/internal/application/dto"
	"github.com/jhoicas/femibot-stock/internal/domain"
	"github.com/jhoicas/femibot-stock/internal/domain/stock"
	"github.com/jhoicas/femibot-stock/pkg/logger"
)

// Formato de exportación por defecto.
const FormatXLSX = "xlsx"

// StockUseCase casos de uso del tablero. Seguro para uso concurrente: la tabla
// normalizada es inmutable y cada petición arma sus propias copias filtradas.
type StockUseCase struct {
	mu     sync.RWMutex
	source Source

	cache            *TableCache
	exporters        map[string]ViewExporter
	now              func() time.Time
	defaultThreshold int
	log              *logger.Logger
}

// Option configura el caso de uso.
type Option func(*StockUseCase)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *StockUseCase) { uc.now = now }
}

// WithDefaultThreshold umbral de "próximos a vencer" cuando la petición no lo indica.
func WithDefaultThreshold(days int) Option {
	return func(uc *StockUseCase) {
		if stock.ValidateThreshold(days) == nil {
			uc.defaultThreshold = days
		}
	}
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(src Source, cache *TableCache, exporters []ViewExporter, log *logger.Logger, opts ...Option) *StockUseCase {
	uc := &StockUseCase{
		source:           src,
		cache:            cache,
		exporters:        make(map[string]ViewExporter, len(exporters)),
		now:              time.Now,
		defaultThreshold: stock.DefaultThresholdDays,
		log:              log,
	}
	for _, e := range exporters {
		uc.exporters[e.Format()] = e
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ── Vistas ────────────────────────────────────────────────────────────────────

// Inventory arma la vista de inventario con búsqueda y filtros en cascada.
func (uc *StockUseCase) Inventory(ctx context.Context, req dto.StockFilterRequest) (*dto.InventoryViewDTO, error) {
	snap, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	view := stock.BuildInventoryView(snap.Table, filterParams(req))
	return &dto.InventoryViewDTO{
		Source:  sourceInfo(snap),
		KPIs:    inventoryKPIs(view.KPIs),
		Filters: filterOptions(view.Steps),
		Table:   tableDTO(view.Table),
	}, nil
}

// Expirations arma la vista de vencimientos (estado, umbral y mes).
func (uc *StockUseCase) Expirations(ctx context.Context, req dto.StockFilterRequest) (*dto.ExpirationViewDTO, error) {
	params, err := uc.expirationParams(req)
	if err != nil {
		return nil, err
	}
	snap, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	view, err := stock.BuildExpirationView(snap.Table, filterParams(req), params)
	if err != nil {
		return nil, err
	}
	return &dto.ExpirationViewDTO{
		Source:        sourceInfo(snap),
		Status:        string(params.Status),
		ThresholdDays: params.ThresholdDays,
		KPIs:          expirationKPIs(view.KPIs),
		Filters:       filterOptions(view.Steps),
		MonthOptions:  nonNil(view.MonthOptions),
		Months:        nonNil(params.Months),
		Table:         tableDTO(view.Table),
	}, nil
}

// ── Exportación ───────────────────────────────────────────────────────────────

// ExportInventory serializa la vista de inventario filtrada (hoja "Inventario").
func (uc *StockUseCase) ExportInventory(ctx context.Context, req dto.StockFilterRequest) (*dto.ExportFile, error) {
	exporter, err := uc.exporter(req.Format)
	if err != nil {
		return nil, err
	}
	snap, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	view := stock.BuildInventoryView(snap.Table, filterParams(req))
	return uc.export(ctx, exporter, "inventario_filtrado", ExportDocument{
		Title:       stock.SheetInventory,
		Table:       view.Table,
		KPIs:        inventoryKPIs(view.KPIs),
		GeneratedAt: uc.now(),
	})
}

// ExportExpirations serializa la vista de vencimientos filtrada (hoja "Vencimientos").
func (uc *StockUseCase) ExportExpirations(ctx context.Context, req dto.StockFilterRequest) (*dto.ExportFile, error) {
	exporter, err := uc.exporter(req.Format)
	if err != nil {
		return nil, err
	}
	params, err := uc.expirationParams(req)
	if err != nil {
		return nil, err
	}
	snap, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	view, err := stock.BuildExpirationView(snap.Table, filterParams(req), params)
	if err != nil {
		return nil, err
	}
	return uc.export(ctx, exporter, "vencimientos_filtrados", ExportDocument{
		Title:       stock.SheetExpirations,
		Table:       view.Table,
		KPIs:        expirationKPIs(view.KPIs),
		GeneratedAt: uc.now(),
	})
}

func (uc *StockUseCase) export(ctx context.Context, e ViewExporter, baseName string, doc ExportDocument) (*dto.ExportFile, error) {
	data, err := e.Export(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", doc.Title, err)
	}
	uc.log.Debug().
		Str("view", doc.Title).
		Str("format", e.Format()).
		Int("rows", doc.Table.Len()).
		Int("bytes", len(data)).
		Msg("vista exportada")
	return &dto.ExportFile{
		FileName:    baseName + "." + e.Format(),
		ContentType: e.ContentType(),
		Data:        data,
	}, nil
}

func (uc *StockUseCase) exporter(format string) (ViewExporter, error) {
	if format == "" {
		format = FormatXLSX
	}
	e, ok := uc.exporters[format]
	if !ok {
		return nil, fmt.Errorf("formato %q: %w", format, domain.ErrUnsupportedFormat)
	}
	return e, nil
}

// ── Fuente ────────────────────────────────────────────────────────────────────

// SourceInfo datos de la tabla normalizada vigente.
func (uc *StockUseCase) SourceInfo(ctx context.Context) (*dto.SourceInfoDTO, error) {
	snap, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	info := sourceInfo(snap)
	return &info, nil
}

// Upload reemplaza la fuente por un archivo subido. El archivo se valida (lectura y
// normalización) antes del reemplazo: si es ilegible la fuente anterior sigue vigente.
func (uc *StockUseCase) Upload(_ context.Context, fileName string, data []byte) (*dto.SourceInfoDTO, error) {
	src := newUploadedSource(fileName, data)
	snap, err := uc.cache.Get(Payload{Name: src.Name(), Data: src.data}, uc.now())
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	prev := uc.source
	uc.source = src
	uc.mu.Unlock()

	uc.log.Info().
		Str("previous", prev.Name()).
		Str("source", src.Name()).
		Int("rows", snap.Table.Len()).
		Msg("fuente de stock reemplazada por archivo subido")
	info := sourceInfo(snap)
	return &info, nil
}

// Reload descarta la caché y vuelve a cargar la fuente vigente.
func (uc *StockUseCase) Reload(ctx context.Context) (*dto.SourceInfoDTO, error) {
	uc.Invalidate()
	return uc.SourceInfo(ctx)
}

// Invalidate descarta las tablas memoizadas (p. ej. al detectar cambios en el archivo).
func (uc *StockUseCase) Invalidate() {
	uc.cache.Invalidate()
	uc.log.Info().Msg("caché de stock invalidada")
}

func (uc *StockUseCase) snapshot(ctx context.Context) (*Snapshot, error) {
	uc.mu.RLock()
	src := uc.source
	uc.mu.RUnlock()

	payload, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer fuente %s: %w", src.Name(), err)
	}
	snap, err := uc.cache.Get(payload, uc.now())
	if err != nil {
		return nil, fmt.Errorf("cargar %s: %w", src.Name(), err)
	}
	return snap, nil
}

func (uc *StockUseCase) expirationParams(req dto.StockFilterRequest) (stock.ExpirationParams, error) {
	status, err := stock.ParseStatus(req.Status)
	if err != nil {
		return stock.ExpirationParams{}, err
	}
	threshold := req.ThresholdDays
	if threshold == 0 {
		threshold = uc.defaultThreshold
	}
	if err := stock.ValidateThreshold(threshold); err != nil {
		return stock.ExpirationParams{}, err
	}
	return stock.ExpirationParams{Status: status, ThresholdDays: threshold, Months: req.Months}, nil
}
