package stock_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/femibot-stock/internal/domain/stock"
)

// sampleTable tabla normalizada con fecha de referencia testToday (2024-01-10).
func sampleTable(t *testing.T) *stock.Table {
	t.Helper()
	raw := stock.RawTable{
		Header: []string{"Depósito", "Linea", "Categoria", "Producto", "Medida", "Partida", "Lote", "Vencimiento", "Desde"},
		Rows: [][]string{
			{"A", "L1", "C1", "ONYX 100", "KG", "001259084", "0D737", "05/01/2024", "01/12/2023"},
			{"A", "L2", "C1", "Resina", "LT", "001259085", "0D738", "10/01/2024", "01/01/2024"},
			{"A", "L2", "C2", "Resina", "KG", "001259086", "", "25/01/2024", ""},
			{"B", "L3", "C3", "Pintura", "LT", "001300000", "XK1", "", "02/01/2024"},
			{"B", "L1", "C1", "onyx 200", "KG", "", "XK2", "09/02/2024", "10/01/2024"},
			{"", "L4", "", "Sin depósito", "UN", "", "", "ilegible", ""},
		},
	}
	tbl, err := stock.Normalize(raw, testToday)
	require.NoError(t, err)
	return tbl
}

func column(tbl *stock.Table, col string) []string {
	out := make([]string, tbl.Len())
	for i := range out {
		out[i] = tbl.Cell(i, col).String()
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda libre
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_QueryVaciaEsIdentidad(t *testing.T) {
	tbl := sampleTable(t)
	assert.Same(t, tbl, stock.Search(tbl, ""))
	assert.Same(t, tbl, stock.Search(tbl, "   "))
}

func TestSearch_SinDistinguirMayusculas(t *testing.T) {
	tbl := sampleTable(t)
	got := stock.Search(tbl, "  OnYx ")
	assert.Equal(t, []string{"ONYX 100", "onyx 200"}, column(got, stock.ColProducto))
}

func TestSearch_SubconjuntoQueContieneQuery(t *testing.T) {
	tbl := sampleTable(t)
	for _, q := range []string{"0d7", "kg", "0012590", "xk", "zzz"} {
		got := stock.Search(tbl, q)
		assert.LessOrEqual(t, got.Len(), tbl.Len())
		for i := 0; i < got.Len(); i++ {
			found := false
			for _, c := range stock.SearchColumns {
				if strings.Contains(strings.ToLower(got.Cell(i, c).String()), q) {
					found = true
				}
			}
			assert.True(t, found, "fila %d no contiene %q", i, q)
		}
	}
	assert.Equal(t, 0, stock.Search(tbl, "zzz").Len())
}

func TestSearch_SinColumnasBuscables(t *testing.T) {
	tbl := stock.NewTable([]string{"Deposito"}, []stock.Row{{stock.Text("A")}})
	assert.Same(t, tbl, stock.Search(tbl, "x"))
}

func TestSearch_NoModificaLaEntrada(t *testing.T) {
	tbl := sampleTable(t)
	before := tbl.Len()
	_ = stock.Search(tbl, "onyx")
	assert.Equal(t, before, tbl.Len())
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtros en cascada
// ──────────────────────────────────────────────────────────────────────────────

func TestCascade_SinSeleccionNoRestringe(t *testing.T) {
	tbl := sampleTable(t)
	res := stock.Cascade(tbl, nil)

	assert.Equal(t, tbl.Len(), res.Table.Len())
	require.Len(t, res.Steps, len(stock.CascadeColumns))
	assert.Equal(t, []string{"A", "B"}, res.Options(stock.ColDeposito), "sin valores ausentes y ordenado")
}

func TestCascade_DepositoAcotaLineas(t *testing.T) {
	tbl := sampleTable(t)
	res := stock.Cascade(tbl, stock.Selections{stock.ColDeposito: {"A"}})

	assert.Equal(t, []string{"L1", "L2"}, res.Options(stock.ColLinea),
		"solo líneas que coexisten con Deposito=A")
	assert.Equal(t, []string{"L1", "L2"}, res.Steps[0].Remaining[stock.ColLinea])
	assert.Equal(t, 3, res.Table.Len())
}

func TestCascade_Idempotente(t *testing.T) {
	tbl := sampleTable(t)
	sel := stock.Selections{
		stock.ColDeposito:  {"A", "B"},
		stock.ColCategoria: {"C1"},
	}
	first := stock.Cascade(tbl, sel)
	second := stock.Cascade(first.Table, sel)

	assert.Equal(t, column(first.Table, stock.ColPartida), column(second.Table, stock.ColPartida))
}

func TestCascade_PropiedadDeAcotamiento(t *testing.T) {
	tbl := sampleTable(t)
	res := stock.Cascade(tbl, stock.Selections{
		stock.ColDeposito: {"A"},
		stock.ColLinea:    {"L2"},
	})

	domains := map[string][]string{}
	for _, c := range stock.CascadeColumns {
		domains[c] = tbl.Distinct(c)
	}
	for _, step := range res.Steps {
		for col, after := range step.Remaining {
			assert.Subset(t, domains[col], after, "dominio de %s tras filtrar %s", col, step.Column)
			domains[col] = after
		}
	}
}

func TestCascade_ColumnaAusenteSeSalta(t *testing.T) {
	tbl := stock.NewTable(
		[]string{stock.ColLinea, stock.ColProducto},
		[]stock.Row{{stock.Text("L1"), stock.Text("X")}, {stock.Text("L2"), stock.Text("Y")}},
	)
	res := stock.Cascade(tbl, stock.Selections{stock.ColDeposito: {"A"}, stock.ColLinea: {"L2"}})

	require.Len(t, res.Steps, 2)
	assert.Equal(t, stock.ColLinea, res.Steps[0].Column)
	assert.Equal(t, []string{"Y"}, column(res.Table, stock.ColProducto))
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado de vencimiento
// ──────────────────────────────────────────────────────────────────────────────

func daysTable(days ...int64) *stock.Table {
	rows := make([]stock.Row, len(days))
	for i, d := range days {
		rows[i] = stock.Row{stock.Int(d)}
	}
	return stock.NewTable([]string{stock.ColDiasHastaVto}, rows)
}

func TestFilterStatus_EjemploProximos(t *testing.T) {
	got := stock.FilterStatus(daysTable(-5, 0, 15, 30, 31), stock.StatusExpiringSoon, 30)
	assert.Equal(t, []string{"0", "15", "30"}, column(got, stock.ColDiasHastaVto))
}

func TestFilterStatus_Vencidos(t *testing.T) {
	got := stock.FilterStatus(daysTable(-5, -1, 0, 7), stock.StatusExpired, 30)
	assert.Equal(t, []string{"-5", "-1"}, column(got, stock.ColDiasHastaVto))
}

func TestFilterStatus_ParticionDisjunta(t *testing.T) {
	rows := []stock.Row{{stock.Int(-3)}, {stock.Int(0)}, {stock.Int(12)}, {stock.Int(90)}, {stock.Null()}}
	tbl := stock.NewTable([]string{stock.ColDiasHastaVto}, rows)

	expired := stock.FilterStatus(tbl, stock.StatusExpired, 30).Len()
	soon := stock.FilterStatus(tbl, stock.StatusExpiringSoon, 30).Len()
	all := stock.FilterStatus(tbl, stock.StatusAll, 30).Len()

	neither := all - expired - soon
	assert.Equal(t, 1, expired)
	assert.Equal(t, 2, soon)
	assert.Equal(t, 1, neither)
	assert.Equal(t, tbl.Len(), expired+soon+neither+1, "la fila sin días completa el total")
}

func TestParseStatus(t *testing.T) {
	s, err := stock.ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, stock.StatusAll, s)

	_, err = stock.ParseStatus("caducados")
	assert.Error(t, err)
}

func TestFilterExpirations_UmbralFueraDeRango(t *testing.T) {
	tbl := sampleTable(t)
	for _, th := range []int{0, 181, -1} {
		_, err := stock.FilterExpirations(tbl, stock.ExpirationParams{Status: stock.StatusAll, ThresholdDays: th})
		assert.Error(t, err, "umbral %d", th)
	}
}

func TestFilterExpirations_DescartaSinVencimientoYFiltraMes(t *testing.T) {
	tbl := sampleTable(t)

	res, err := stock.FilterExpirations(tbl, stock.ExpirationParams{Status: stock.StatusAll, ThresholdDays: 30})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Table.Len(), "las filas sin vencimiento o ilegible quedan fuera")
	assert.Equal(t, []string{"2024-01", "2024-02"}, res.MonthOptions)

	res, err = stock.FilterExpirations(tbl, stock.ExpirationParams{
		Status: stock.StatusAll, ThresholdDays: 30, Months: []string{"2024-02"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"onyx 200"}, column(res.Table, stock.ColProducto))
}
