package stock

import "github.com/shopspring/decimal"

// Nombres de hoja de cada vista exportada.
const (
	SheetInventory   = "Inventario"
	SheetExpirations = "Vencimientos"
)

// AssembleView reordena las columnas: primero las de DisplayOrder presentes, luego el resto
// en su orden original. Las columnas auxiliares internas quedan fuera.
func AssembleView(t *Table) *Table {
	cols := make([]string, 0, len(t.columns))
	listed := make(map[string]bool, len(DisplayOrder))
	for _, c := range DisplayOrder {
		listed[c] = true
		if t.Has(c) {
			cols = append(cols, c)
		}
	}
	for _, c := range t.columns {
		if !listed[c] && !internalColumns[c] {
			cols = append(cols, c)
		}
	}
	return t.Project(cols)
}

// InventoryKPIs indicadores de la vista de inventario.
type InventoryKPIs struct {
	TotalUnits       int64
	DistinctDeposits int
	// AvgDaysInStorage nil cuando ninguna fila tiene Dias_en_deposito.
	AvgDaysInStorage *int64
}

// ComputeInventoryKPIs calcula los indicadores sobre la tabla filtrada.
func ComputeInventoryKPIs(t *Table) InventoryKPIs {
	var k InventoryKPIs

	if idx, ok := t.ColumnIndex(ColCantidad); ok {
		for _, r := range t.rows {
			if n, ok := r[idx].AsInt(); ok {
				k.TotalUnits += n
			}
		}
	} else {
		k.TotalUnits = int64(t.Len())
	}

	k.DistinctDeposits = len(t.Distinct(ColDeposito))

	if idx, ok := t.ColumnIndex(ColDiasEnDeposito); ok {
		var sum, n int64
		for _, r := range t.rows {
			if d, ok := r[idx].AsInt(); ok {
				sum += d
				n++
			}
		}
		if n > 0 {
			avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(n)).Round(0).IntPart()
			k.AvgDaysInStorage = &avg
		}
	}
	return k
}

// ExpirationKPIs indicadores de la vista de vencimientos.
type ExpirationKPIs struct {
	TotalInView       int
	CountExpired      int
	CountExpiringSoon int
	ThresholdDays     int
}

// ComputeExpirationKPIs cuenta vencidos y próximos (0..umbral) en la vista.
func ComputeExpirationKPIs(t *Table, thresholdDays int) ExpirationKPIs {
	k := ExpirationKPIs{TotalInView: t.Len(), ThresholdDays: thresholdDays}
	idx, ok := t.ColumnIndex(ColDiasHastaVto)
	if !ok {
		return k
	}
	for _, r := range t.rows {
		d, ok := r[idx].AsInt()
		if !ok {
			continue
		}
		if IsExpired(d) {
			k.CountExpired++
		} else if IsExpiringSoon(d, thresholdDays) {
			k.CountExpiringSoon++
		}
	}
	return k
}
