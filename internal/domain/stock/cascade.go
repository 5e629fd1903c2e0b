package stock

// Selections valores elegidos por columna. Una lista vacía o ausente no restringe.
type Selections map[string][]string

// FilterStep resultado de un filtro de la cascada.
type FilterStep struct {
	Column string `json:"column"`
	// Options dominio ofrecido, calculado sobre la tabla ya filtrada por los pasos anteriores.
	Options  []string `json:"options"`
	Selected []string `json:"selected"`
	// Remaining dominios de las columnas de cascada posteriores, tras aplicar este paso.
	Remaining map[string][]string `json:"remaining,omitempty"`
}

// CascadeResult tabla filtrada más el detalle de cada paso.
type CascadeResult struct {
	Table *Table
	Steps []FilterStep
}

// Options dominio ofrecido para col, o nil si la columna no participó.
func (r CascadeResult) Options(col string) []string {
	for _, s := range r.Steps {
		if s.Column == col {
			return s.Options
		}
	}
	return nil
}

// Cascade aplica los filtros de CascadeColumns en orden. Cada dominio se calcula
// después de aplicar los anteriores, de modo que elegir un depósito acota las líneas
// ofrecidas, y así sucesivamente. Las columnas ausentes se saltan.
func Cascade(t *Table, sel Selections) CascadeResult {
	present := make([]string, 0, len(CascadeColumns))
	for _, c := range CascadeColumns {
		if t.Has(c) {
			present = append(present, c)
		}
	}

	steps := make([]FilterStep, 0, len(present))
	for i, col := range present {
		step := FilterStep{
			Column:   col,
			Options:  t.Distinct(col),
			Selected: sel[col],
		}
		t = ApplySelection(t, col, sel[col])

		later := present[i+1:]
		if len(later) > 0 {
			step.Remaining = make(map[string][]string, len(later))
			for _, c := range later {
				step.Remaining[c] = t.Distinct(c)
			}
		}
		steps = append(steps, step)
	}
	return CascadeResult{Table: t, Steps: steps}
}

// ApplySelection conserva las filas cuyo valor en col está en values.
// values vacío o columna inexistente: identidad. Las celdas ausentes no coinciden.
func ApplySelection(t *Table, col string, values []string) *Table {
	idx, ok := t.ColumnIndex(col)
	if !ok || len(values) == 0 {
		return t
	}
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return t.Filter(func(r Row) bool {
		if r[idx].IsNull() {
			return false
		}
		_, keep := allowed[r[idx].String()]
		return keep
	})
}
