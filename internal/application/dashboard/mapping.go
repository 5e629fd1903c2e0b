package dashboard

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jhoicas/femibot-stock/internal/application/dto"
	"github.com/jhoicas/femibot-stock/internal/domain/stock"
)

// uploadedSource archivo recibido por POST /api/stock/upload, retenido en memoria.
type uploadedSource struct {
	name string
	data []byte
}

func newUploadedSource(fileName string, data []byte) *uploadedSource {
	return &uploadedSource{name: "upload:" + filepath.Base(fileName), data: data}
}

func (s *uploadedSource) Name() string { return s.name }

func (s *uploadedSource) Fetch(context.Context) (Payload, error) {
	return Payload{Name: s.name, Data: s.data}, nil
}

func filterParams(req dto.StockFilterRequest) stock.FilterParams {
	return stock.FilterParams{Query: req.Query, Selections: req.Selections()}
}

func sourceInfo(s *Snapshot) dto.SourceInfoDTO {
	return dto.SourceInfoDTO{
		Name:        s.SourceName,
		SnapshotID:  s.ID,
		Fingerprint: s.Fingerprint,
		Rows:        s.Table.Len(),
		Columns:     s.Table.Columns(),
		LoadedAt:    s.LoadedAt,
	}
}

func tableDTO(t *stock.Table) dto.StockTableDTO {
	rows := make([][]stock.Value, t.Len())
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return dto.StockTableDTO{Columns: t.Columns(), Rows: rows, Total: t.Len()}
}

func filterOptions(steps []stock.FilterStep) []dto.FilterOptionsDTO {
	out := make([]dto.FilterOptionsDTO, len(steps))
	for i, s := range steps {
		out[i] = dto.FilterOptionsDTO{
			Column:    s.Column,
			Options:   nonNil(s.Options),
			Selected:  nonNil(s.Selected),
			Remaining: s.Remaining,
		}
	}
	return out
}

// inventoryKPIs el promedio de días se omite cuando no hay datos.
func inventoryKPIs(k stock.InventoryKPIs) []dto.KPIDTO {
	kpis := []dto.KPIDTO{
		{Key: "total_units", Label: "Materiales (filtrados)", Value: k.TotalUnits},
		{Key: "distinct_deposits", Label: "Depósitos involucrados", Value: int64(k.DistinctDeposits)},
	}
	if k.AvgDaysInStorage != nil {
		kpis = append(kpis, dto.KPIDTO{
			Key: "avg_days_in_storage", Label: "Promedio días en depósito", Value: *k.AvgDaysInStorage,
		})
	}
	return kpis
}

func expirationKPIs(k stock.ExpirationKPIs) []dto.KPIDTO {
	return []dto.KPIDTO{
		{Key: "total_in_view", Label: "Materiales (vista vencimientos)", Value: int64(k.TotalInView)},
		{Key: "count_expired", Label: "Vencidos", Value: int64(k.CountExpired)},
		{Key: "count_expiring_soon", Label: fmt.Sprintf("Próx. ≤ %d días", k.ThresholdDays), Value: int64(k.CountExpiringSoon)},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
