package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/femibot-stock/internal/application/dashboard"
	"github.com/jhoicas/femibot-stock/internal/application/dto"
	"github.com/jhoicas/femibot-stock/internal/domain/stock"
	"github.com/jhoicas/femibot-stock/internal/infrastructure/pdf"
)

func TestMarotoTableExporter_GeneraPDF(t *testing.T) {
	tbl := stock.NewTable(
		[]string{stock.ColDeposito, stock.ColProducto, stock.ColVencimiento, stock.ColDiasHastaVto},
		[]stock.Row{
			{stock.Text("A"), stock.Text("ONYX 100"), stock.Date(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)), stock.Int(-5)},
			{stock.Text("B"), stock.Text("Resina"), stock.Null(), stock.Null()},
		},
	)
	exp := pdf.NewMarotoTableExporter()

	data, err := exp.Export(context.Background(), dashboard.ExportDocument{
		Title:       stock.SheetExpirations,
		Table:       tbl,
		KPIs:        []dto.KPIDTO{{Key: "count_expired", Label: "Vencidos", Value: 1250}},
		GeneratedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Equal(t, "pdf", exp.Format())
	assert.Equal(t, pdf.ContentType, exp.ContentType())
}

func TestMarotoTableExporter_VistaVacia(t *testing.T) {
	data, err := pdf.NewMarotoTableExporter().Export(context.Background(), dashboard.ExportDocument{
		Title: stock.SheetInventory,
		Table: stock.NewTable(nil, nil),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
