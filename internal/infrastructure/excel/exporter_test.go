package excel_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/femibot-stock/internal/application/dashboard"
	"github.com/jhoicas/femibot-stock/internal/domain/stock"
	"github.com/jhoicas/femibot-stock/internal/infrastructure/excel"
	"github.com/jhoicas/femibot-stock/internal/infrastructure/tabular"
)

var today = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

const stockCSV = `Depósito,Producto,Partida,Vencimiento,Desde
A,ONYX 100,001259084,05/01/2024,01/12/2023
B,Resina,,,02/01/2024
`

func inventoryView(t *testing.T, query string) *stock.Table {
	t.Helper()
	raw, err := tabular.Read("Stock.csv", []byte(stockCSV))
	require.NoError(t, err)
	tbl, err := stock.Normalize(raw, today)
	require.NoError(t, err)
	return stock.BuildInventoryView(tbl, stock.FilterParams{Query: query}).Table
}

func TestExport_IdaYVuelta(t *testing.T) {
	view := inventoryView(t, "")
	data, err := excel.NewExporter().Export(context.Background(), dashboard.ExportDocument{
		Title: stock.SheetInventory,
		Table: view,
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{stock.SheetInventory}, f.GetSheetList())

	back, err := tabular.Read("inventario_filtrado.xlsx", data)
	require.NoError(t, err)
	assert.Equal(t, view.Columns(), back.Header)
	require.Len(t, back.Rows, view.Len())

	for i := 0; i < view.Len(); i++ {
		for j, col := range view.Columns() {
			want := view.Cell(i, col)
			got := ""
			if j < len(back.Rows[i]) {
				got = back.Rows[i][j]
			}
			switch want.Kind() {
			case stock.KindDate:
				d, ok := stock.ParseDate(got)
				require.True(t, ok, "fecha en %s: %q", col, got)
				wd, _ := want.AsDate()
				assert.True(t, wd.Equal(d), "%s fila %d", col, i)
			case stock.KindNull:
				assert.Empty(t, got, "%s fila %d", col, i)
			default:
				assert.Equal(t, want.String(), got, "%s fila %d", col, i)
			}
		}
	}
}

func TestExport_FormatoDeFecha(t *testing.T) {
	view := inventoryView(t, "onyx")
	data, err := excel.NewExporter().Export(context.Background(), dashboard.ExportDocument{
		Title: stock.SheetInventory,
		Table: view,
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	idx, ok := view.ColumnIndex(stock.ColVencimiento)
	require.True(t, ok)
	cell, err := excelize.CoordinatesToCellName(idx+1, 2)
	require.NoError(t, err)
	shown, err := f.GetCellValue(stock.SheetInventory, cell)
	require.NoError(t, err)
	assert.Equal(t, "05/01/2024", shown)
}

func TestExport_VistaVaciaSoloEncabezado(t *testing.T) {
	view := inventoryView(t, "no-existe")
	data, err := excel.NewExporter().Export(context.Background(), dashboard.ExportDocument{
		Title: stock.SheetExpirations,
		Table: view,
	})
	require.NoError(t, err)

	back, err := tabular.Read("vencimientos_filtrados.xlsx", data)
	require.NoError(t, err)
	assert.Equal(t, view.Columns(), back.Header)
	assert.Empty(t, back.Rows)
}
