// Package stock implementa el pipeline de filtrado y derivación del tablero de stock:
// normalización de la tabla cruda, búsqueda libre, filtros en cascada, filtro de
// vencimientos, armado de la vista e indicadores.
//
// Todas las funciones son puras: reciben una tabla y devuelven otra nueva, por lo que
// varias peticiones pueden trabajar en paralelo sobre la misma tabla normalizada.
package stock

// FilterParams parámetros comunes a ambas vistas.
type FilterParams struct {
	Query      string
	Selections Selections
}

// InventoryView vista de inventario lista para render o exportación.
type InventoryView struct {
	Table *Table
	Steps []FilterStep
	KPIs  InventoryKPIs
}

// ExpirationView vista de vencimientos lista para render o exportación.
type ExpirationView struct {
	Table        *Table
	Steps        []FilterStep
	MonthOptions []string
	Params       ExpirationParams
	KPIs         ExpirationKPIs
}

// BuildInventoryView búsqueda → cascada → vista + KPIs.
func BuildInventoryView(normalized *Table, p FilterParams) InventoryView {
	res := Cascade(Search(normalized, p.Query), p.Selections)
	return InventoryView{
		Table: AssembleView(res.Table),
		Steps: res.Steps,
		KPIs:  ComputeInventoryKPIs(res.Table),
	}
}

// BuildExpirationView búsqueda → cascada → vencimientos (mes y estado) → vista + KPIs.
func BuildExpirationView(normalized *Table, p FilterParams, e ExpirationParams) (ExpirationView, error) {
	res := Cascade(Search(normalized, p.Query), p.Selections)
	exp, err := FilterExpirations(res.Table, e)
	if err != nil {
		return ExpirationView{}, err
	}
	return ExpirationView{
		Table:        AssembleView(exp.Table),
		Steps:        res.Steps,
		MonthOptions: exp.MonthOptions,
		Params:       e,
		KPIs:         ComputeExpirationKPIs(exp.Table, e.ThresholdDays),
	}, nil
}
