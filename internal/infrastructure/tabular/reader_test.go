package tabular_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/femibot-stock/internal/domain"
	"github.com/jhoicas/femibot-stock/internal/infrastructure/tabular"
)

func TestRead_CSVConComas(t *testing.T) {
	data := []byte("Depósito,Producto,Vencimiento\nA,\"Resina, epoxi\",01/01/2024\n\nB,Pintura,\n")

	raw, err := tabular.Read("Stock.csv", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Depósito", "Producto", "Vencimiento"}, raw.Header)
	require.Len(t, raw.Rows, 2, "las filas en blanco se descartan")
	assert.Equal(t, "Resina, epoxi", raw.Rows[0][1])
	assert.Equal(t, "", raw.Rows[1][2])
}

func TestRead_CSVPuntoYComaConBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Depósito;Lote\nA;0D737\n")...)

	raw, err := tabular.Read("stock.csv", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Depósito", "Lote"}, raw.Header)
	assert.Equal(t, []string{"A", "0D737"}, raw.Rows[0])
}

func TestRead_CSVWindows1252(t *testing.T) {
	// "Depósito" codificado en Windows-1252 (ó = 0xF3).
	data := []byte("Dep\xf3sito;Categor\xeda\nA;C1\n")

	raw, err := tabular.Read("stock.csv", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Depósito", "Categoría"}, raw.Header)
}

func TestRead_Vacio_ErrMalformedSource(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("   \n\n")} {
		_, err := tabular.Read("stock.csv", data)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMalformedSource))
	}
}

func TestRead_XLSXIlegible_ErrMalformedSource(t *testing.T) {
	_, err := tabular.Read("stock.xlsx", []byte("esto no es un zip"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedSource))
}

func TestRead_XLSXPrimeraHojaConFechaSerial(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Depósito", "Vencimiento", "Partida"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"A", 45292, "001259084"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	// Sin extensión: se detecta por el encabezado zip.
	raw, err := tabular.Read("upload", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"Depósito", "Vencimiento", "Partida"}, raw.Header)
	assert.Equal(t, []string{"A", "45292", "001259084"}, raw.Rows[0])
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, tabular.FormatXLSX, tabular.DetectFormat("a.XLSX", nil))
	assert.Equal(t, tabular.FormatXLS, tabular.DetectFormat("a.xls", nil))
	assert.Equal(t, tabular.FormatCSV, tabular.DetectFormat("a.csv", []byte("PK\x03\x04")))
	assert.Equal(t, tabular.FormatXLS, tabular.DetectFormat("blob", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}))
	assert.Equal(t, tabular.FormatCSV, tabular.DetectFormat("blob", []byte("a,b")))
}
