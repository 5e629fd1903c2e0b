package stock_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/femibot-stock/internal/domain"
	"github.com/jhoicas/femibot-stock/internal/domain/stock"
)

var testToday = time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)

func TestNormalize_EjemploDiasDerivados(t *testing.T) {
	raw := stock.RawTable{
		Header: []string{"Depósito", "Vencimiento", "Desde"},
		Rows:   [][]string{{"A", "01/01/2024", "01/01/2023"}},
	}

	tbl, err := stock.Normalize(raw, testToday)
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())

	dias, ok := tbl.Cell(0, stock.ColDiasHastaVto).AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(-9), dias)

	enDeposito, ok := tbl.Cell(0, stock.ColDiasEnDeposito).AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(374), enDeposito)

	cantidad, ok := tbl.Cell(0, stock.ColCantidad).AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(1), cantidad)

	assert.Equal(t, "A", tbl.Cell(0, stock.ColDeposito).String())
}

func TestNormalize_RenombraYConservaColumnasDesconocidas(t *testing.T) {
	raw := stock.RawTable{
		Header: []string{"Depósito", "Secuencia modif", "Partida completa", "Observaciones", " LÍNEA "},
		Rows:   [][]string{{"A", "S1", "P-1", "nota", "L1"}},
	}

	tbl, err := stock.Normalize(raw, testToday)
	require.NoError(t, err)

	assert.Equal(t, []string{
		stock.ColDeposito, stock.ColSecuenciaModif, stock.ColPartidaCompleta,
		"Observaciones", stock.ColLinea, stock.ColCantidad,
	}, tbl.Columns())
	assert.False(t, tbl.Has(stock.ColDiasHastaVto), "sin Vencimiento no se deriva Dias_hasta_vto")
	assert.False(t, tbl.Has(stock.ColDiasEnDeposito), "sin Desde no se deriva Dias_en_deposito")
}

func TestNormalize_FechaIlegibleQuedaAusente(t *testing.T) {
	raw := stock.RawTable{
		Header: []string{"Vencimiento", "Desde"},
		Rows: [][]string{
			{"no es fecha", "31/02/2023"},
			{"", "05/01/2024"},
		},
	}

	tbl, err := stock.Normalize(raw, testToday)
	require.NoError(t, err)

	assert.True(t, tbl.Cell(0, stock.ColVencimiento).IsNull())
	assert.True(t, tbl.Cell(0, stock.ColDiasHastaVto).IsNull())
	assert.True(t, tbl.Cell(0, stock.ColDiasEnDeposito).IsNull(), "31/02 no existe")
	assert.True(t, tbl.Cell(1, stock.ColDiasHastaVto).IsNull())

	enDeposito, ok := tbl.Cell(1, stock.ColDiasEnDeposito).AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(5), enDeposito)
}

func TestNormalize_CantidadSiempreUno(t *testing.T) {
	raw := stock.RawTable{
		Header: []string{"Producto", "Cantidad"},
		Rows:   [][]string{{"X", "40"}, {"Y", ""}},
	}

	tbl, err := stock.Normalize(raw, testToday)
	require.NoError(t, err)
	for i := 0; i < tbl.Len(); i++ {
		n, ok := tbl.Cell(i, stock.ColCantidad).AsInt()
		require.True(t, ok)
		assert.Equal(t, int64(1), n)
	}
}

func TestNormalize_SinEncabezado_ErrMalformedSource(t *testing.T) {
	_, err := stock.Normalize(stock.RawTable{}, testToday)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedSource))
}

func TestNormalize_FilasIrregulares(t *testing.T) {
	raw := stock.RawTable{
		Header: []string{"Producto", "Lote"},
		Rows:   [][]string{{"X"}, {"Y", "L1", "sobra"}},
	}

	tbl, err := stock.Normalize(raw, testToday)
	require.NoError(t, err)
	assert.True(t, tbl.Cell(0, stock.ColLote).IsNull())
	assert.Equal(t, "L1", tbl.Cell(1, stock.ColLote).String())
}

func TestParseDate_FormatosDiaPrimero(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"05/03/2024", "5/3/2024", "05-03-2024", "05.03.2024",
		"05/03/2024 10:20", "05/03/24", "2024-03-05", "2024-03-05 08:00:00",
		"45356",
	} {
		got, ok := stock.ParseDate(in)
		if assert.True(t, ok, "debe parsear %q", in) {
			assert.True(t, want.Equal(got), "%q → %s", in, got)
		}
	}
}

func TestParseDate_Invalidas(t *testing.T) {
	for _, in := range []string{
		"", "   ", "13/13/2024", "abc", "0", "99999999",
		"NaN", "nan", "Inf", "-Inf", "1e3", "+45356", "0x1p4",
	} {
		_, ok := stock.ParseDate(in)
		assert.False(t, ok, "%q no debe parsear", in)
	}
}

func TestNormalize_VencimientoNaNNoEntraEnVencidos(t *testing.T) {
	raw := stock.RawTable{
		Header: []string{"Depósito", "Vencimiento"},
		Rows: [][]string{
			{"A", "nan"},
			{"B", "01/01/2024"},
		},
	}
	tbl, err := stock.Normalize(raw, testToday)
	require.NoError(t, err)
	assert.True(t, tbl.Cell(0, stock.ColVencimiento).IsNull())

	view, err := stock.BuildExpirationView(tbl, stock.FilterParams{}, stock.ExpirationParams{
		Status: stock.StatusExpired, ThresholdDays: 30,
	})
	require.NoError(t, err)
	require.Equal(t, 1, view.Table.Len())
	assert.Equal(t, "B", view.Table.Cell(0, stock.ColDeposito).String())
	assert.Equal(t, 1, view.KPIs.CountExpired)
}

func TestDaysBetween_FechasLejanas(t *testing.T) {
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(2913164), stock.DaysBetween(today, time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(45299), stock.DaysBetween(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), today))
	assert.Equal(t, int64(-1), stock.DaysBetween(today, today.Add(-time.Minute)))
}

func TestNormalize_SinVencimientoReal(t *testing.T) {
	raw := stock.RawTable{
		Header: []string{"Vencimiento", "Desde"},
		Rows:   [][]string{{"31/12/9999", "01/01/1900"}},
	}
	tbl, err := stock.Normalize(raw, testToday)
	require.NoError(t, err)

	hasta, ok := tbl.Cell(0, stock.ColDiasHastaVto).AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(2913164), hasta)
	enDeposito, ok := tbl.Cell(0, stock.ColDiasEnDeposito).AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(45299), enDeposito)
}
