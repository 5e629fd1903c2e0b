// Package tabular lee el archivo de stock (CSV, XLSX o XLS) y lo entrega como
// stock.RawTable: encabezado más celdas de texto.
package tabular

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jhoicas/femibot-stock/internal/domain"
	"github.com/jhoicas/femibot-stock/internal/domain/stock"
)

// Format formato del archivo de origen.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFormat decide el formato por extensión y, si no la hay o no se reconoce,
// por los primeros bytes del contenido.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".xls":
		return FormatXLS
	case ".csv", ".txt", ".tsv":
		return FormatCSV
	}
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX
	case bytes.HasPrefix(data, oleMagic):
		return FormatXLS
	}
	return FormatCSV
}

// Read lee el contenido según su formato. Cualquier fallo estructural (vacío, libro
// ilegible, sin hojas, sin encabezado) se devuelve envuelto en domain.ErrMalformedSource.
func Read(name string, data []byte) (stock.RawTable, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return stock.RawTable{}, fmt.Errorf("%s: archivo vacío: %w", name, domain.ErrMalformedSource)
	}

	var (
		rows [][]string
		err  error
	)
	switch DetectFormat(name, data) {
	case FormatXLSX:
		rows, err = readXLSX(data)
	case FormatXLS:
		rows, err = readXLS(data)
	default:
		rows, err = readCSV(data)
	}
	if err != nil {
		return stock.RawTable{}, fmt.Errorf("%s: %v: %w", name, err, domain.ErrMalformedSource)
	}
	return toRawTable(name, rows)
}

// toRawTable toma la primera fila no vacía como encabezado y descarta filas en blanco.
func toRawTable(name string, rows [][]string) (stock.RawTable, error) {
	start := -1
	for i, r := range rows {
		if !blankRow(r) {
			start = i
			break
		}
	}
	if start < 0 {
		return stock.RawTable{}, fmt.Errorf("%s: sin fila de encabezado: %w", name, domain.ErrMalformedSource)
	}

	header := make([]string, len(rows[start]))
	for i, h := range rows[start] {
		header[i] = strings.TrimSpace(h)
	}
	// Recorta columnas finales sin nombre (celdas con formato pero vacías en planillas).
	for len(header) > 0 && header[len(header)-1] == "" {
		header = header[:len(header)-1]
	}
	if len(header) == 0 {
		return stock.RawTable{}, fmt.Errorf("%s: encabezado vacío: %w", name, domain.ErrMalformedSource)
	}

	data := make([][]string, 0, len(rows)-start-1)
	for _, r := range rows[start+1:] {
		if blankRow(r) {
			continue
		}
		data = append(data, r)
	}
	return stock.RawTable{Header: header, Rows: data}, nil
}

func blankRow(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
