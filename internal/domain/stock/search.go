package stock

import "strings"

// Search búsqueda libre: conserva las filas donde alguna columna de SearchColumns presente
// contiene query (sin distinguir mayúsculas). Query vacía, o sin columnas buscables, es identidad.
// Las celdas ausentes nunca coinciden.
func Search(t *Table, query string) *Table {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return t
	}
	var idxs []int
	for _, c := range SearchColumns {
		if idx, ok := t.ColumnIndex(c); ok {
			idxs = append(idxs, idx)
		}
	}
	if len(idxs) == 0 {
		return t
	}
	return t.Filter(func(r Row) bool {
		for _, idx := range idxs {
			if r[idx].IsNull() {
				continue
			}
			if strings.Contains(strings.ToLower(r[idx].String()), q) {
				return true
			}
		}
		return false
	})
}
