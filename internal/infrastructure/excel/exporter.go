// Package excel exporta vistas del tablero a libros .xlsx con excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/femibot-stock/internal/application/dashboard"
	"github.com/jhoicas/femibot-stock/internal/domain/stock"
)

// ContentType MIME de un libro OOXML.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const dateFormat = "dd/mm/yyyy"

// Exporter implementa dashboard.ViewExporter. Una hoja por libro, nombrada como la vista,
// con el encabezado en la fila 1 y una fila por registro. Sin índice de filas.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string      { return "xlsx" }
func (e *Exporter) ContentType() string { return ContentType }

// Export genera el libro y devuelve sus bytes.
func (e *Exporter) Export(_ context.Context, doc dashboard.ExportDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := doc.Title
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("excel: nombrar hoja: %w", err)
	}

	columns := doc.Table.Columns()
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: encabezado: %w", err)
	}

	dateCols := make(map[int]bool)
	for r := 0; r < doc.Table.Len(); r++ {
		for c, v := range doc.Table.Row(r) {
			val := v.Interface()
			if val == nil {
				continue
			}
			if v.Kind() == stock.KindDate {
				dateCols[c] = true
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("excel: celda: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, fmt.Errorf("excel: escribir %s: %w", cell, err)
			}
		}
	}

	if err := styleDates(f, sheet, dateCols, doc.Table.Len()); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

// styleDates aplica formato dd/mm/yyyy a las columnas que contienen fechas.
func styleDates(f *excelize.File, sheet string, cols map[int]bool, rows int) error {
	if len(cols) == 0 || rows == 0 {
		return nil
	}
	numFmt := dateFormat
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("excel: estilo de fecha: %w", err)
	}
	for c := range cols {
		top, err := excelize.CoordinatesToCellName(c+1, 2)
		if err != nil {
			return err
		}
		bottom, err := excelize.CoordinatesToCellName(c+1, rows+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, top, bottom, style); err != nil {
			return fmt.Errorf("excel: aplicar estilo: %w", err)
		}
	}
	return nil
}
