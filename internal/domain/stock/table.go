package stock

import (
	"sort"
	"strconv"
)

// Row fila de celdas alineada con las columnas de su tabla. Solo lectura.
type Row []Value

// Table tabla inmutable: columnas ordenadas y filas tipadas.
// Toda operación que filtra o reordena devuelve una tabla nueva; las filas se comparten
// entre tablas y nunca se modifican después de construidas.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// NewTable construye una tabla. Los nombres repetidos reciben sufijo ".1", ".2"...;
// las filas más cortas se completan con celdas ausentes y las más largas se recortan.
func NewTable(columns []string, rows []Row) *Table {
	cols := make([]string, len(columns))
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		name := c
		for n := 1; ; n++ {
			if _, dup := index[name]; !dup {
				break
			}
			name = c + "." + strconv.Itoa(n)
		}
		cols[i] = name
		index[name] = i
	}
	fitted := make([]Row, len(rows))
	for i, r := range rows {
		if len(r) == len(cols) {
			fitted[i] = r
			continue
		}
		fr := make(Row, len(cols))
		copy(fr, r)
		fitted[i] = fr
	}
	return &Table{columns: cols, index: index, rows: fitted}
}

// Columns devuelve una copia del orden de columnas.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has indica si la columna existe.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// ColumnIndex posición de la columna en cada fila.
func (t *Table) ColumnIndex(col string) (int, bool) {
	i, ok := t.index[col]
	return i, ok
}

// Len cantidad de filas.
func (t *Table) Len() int { return len(t.rows) }

// Row devuelve la fila i (compartida, no modificar).
func (t *Table) Row(i int) Row { return t.rows[i] }

// Cell devuelve la celda de la fila i en la columna col; null si la columna no existe.
func (t *Table) Cell(i int, col string) Value {
	idx, ok := t.index[col]
	if !ok {
		return Null()
	}
	return t.rows[i][idx]
}

// Filter devuelve una tabla nueva con las filas que cumplen keep.
func (t *Table) Filter(keep func(Row) bool) *Table {
	rows := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return &Table{columns: t.columns, index: t.index, rows: rows}
}

// Distinct valores distintos no ausentes de la columna, ordenados.
// Devuelve nil si la columna no existe.
func (t *Table) Distinct(col string) []string {
	idx, ok := t.index[col]
	if !ok {
		return nil
	}
	seen := make(map[string]Value)
	for _, r := range t.rows {
		v := r[idx]
		if v.IsNull() {
			continue
		}
		if _, dup := seen[v.String()]; !dup {
			seen[v.String()] = v
		}
	}
	values := make([]Value, 0, len(seen))
	for _, v := range seen {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return compareValues(values[i], values[j]) < 0 })
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

// Project devuelve una tabla con las columnas indicadas, en ese orden.
// Las columnas inexistentes se ignoran.
func (t *Table) Project(cols []string) *Table {
	names := make([]string, 0, len(cols))
	pick := make([]int, 0, len(cols))
	for _, c := range cols {
		if idx, ok := t.index[c]; ok {
			names = append(names, c)
			pick = append(pick, idx)
		}
	}
	rows := make([]Row, len(t.rows))
	for i, r := range t.rows {
		nr := make(Row, len(pick))
		for j, idx := range pick {
			nr[j] = r[idx]
		}
		rows[i] = nr
	}
	return NewTable(names, rows)
}

// WithColumn devuelve una tabla nueva con la columna col calculada por fn.
// Si la columna ya existe se reemplaza en su posición; si no, se agrega al final.
func (t *Table) WithColumn(col string, fn func(Row) Value) *Table {
	idx, exists := t.index[col]
	cols := t.columns
	if !exists {
		cols = append(t.Columns(), col)
		idx = len(cols) - 1
	}
	rows := make([]Row, len(t.rows))
	for i, r := range t.rows {
		nr := make(Row, len(cols))
		copy(nr, r)
		nr[idx] = fn(r)
		rows[i] = nr
	}
	return NewTable(cols, rows)
}
