package stock

import (
	"fmt"
	"time"

	"github.com/jhoicas/femibot-stock/internal/domain"
)

// RawTable tabla tal como sale del lector: encabezado y celdas de texto.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Normalize aplica el mapa de nombres, parsea Vencimiento y Desde (día primero),
// calcula Dias_hasta_vto y Dias_en_deposito contra today y fija Cantidad = 1.
//
// Una columna base ausente solo desactiva los pasos que la usan. Una tabla sin
// encabezado es ErrMalformedSource.
func Normalize(raw RawTable, today time.Time) (*Table, error) {
	if len(raw.Header) == 0 {
		return nil, fmt.Errorf("normalizar: tabla sin encabezado: %w", domain.ErrMalformedSource)
	}

	columns := make([]string, len(raw.Header))
	for i, label := range raw.Header {
		columns[i], _ = CanonicalName(label)
	}

	rows := make([]Row, len(raw.Rows))
	for i, cells := range raw.Rows {
		r := make(Row, len(columns))
		for j := range columns {
			if j < len(cells) {
				r[j] = Text(cells[j])
			}
		}
		rows[i] = r
	}
	t := NewTable(columns, rows)

	t = parseDateColumn(t, ColVencimiento)
	t = parseDateColumn(t, ColDesde)

	if t.Has(ColVencimiento) {
		idx, _ := t.ColumnIndex(ColVencimiento)
		t = t.WithColumn(ColDiasHastaVto, func(r Row) Value {
			venc, ok := r[idx].AsDate()
			if !ok {
				return Null()
			}
			return Int(DaysBetween(today, venc))
		})
	}
	if t.Has(ColDesde) {
		idx, _ := t.ColumnIndex(ColDesde)
		t = t.WithColumn(ColDiasEnDeposito, func(r Row) Value {
			desde, ok := r[idx].AsDate()
			if !ok {
				return Null()
			}
			return Int(DaysBetween(desde, today))
		})
	}

	one := Int(1)
	t = t.WithColumn(ColCantidad, func(Row) Value { return one })
	return t, nil
}

// parseDateColumn convierte la columna a fechas; lo que no parsea queda ausente.
func parseDateColumn(t *Table, col string) *Table {
	idx, ok := t.ColumnIndex(col)
	if !ok {
		return t
	}
	return t.WithColumn(col, func(r Row) Value {
		v := r[idx]
		if v.Kind() == KindDate {
			return v
		}
		d, ok := ParseDate(v.String())
		if !ok {
			return Null()
		}
		return Date(d)
	})
}
