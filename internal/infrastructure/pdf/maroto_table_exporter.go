// Package pdf exporta vistas del tablero como reporte PDF con Maroto v2.
//
// Layout de la página A4 apaisada:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO de la vista                     Generado: fecha/hora │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: etiqueta: valor (una línea por indicador)            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna de grilla por columna de la vista        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/femibot-stock/internal/application/dashboard"
	"github.com/jhoicas/femibot-stock/internal/application/dto"
	"github.com/jhoicas/femibot-stock/internal/domain/stock"
)

// ContentType MIME del reporte.
const ContentType = "application/pdf"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorZebra   = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Exporter ──────────────────────────────────────────────────────────────────

// MarotoTableExporter implementa dashboard.ViewExporter usando Maroto v2.
type MarotoTableExporter struct{}

// NewMarotoTableExporter construye el exportador.
func NewMarotoTableExporter() *MarotoTableExporter { return &MarotoTableExporter{} }

func (g *MarotoTableExporter) Format() string      { return "pdf" }
func (g *MarotoTableExporter) ContentType() string { return ContentType }

// Export genera el PDF y devuelve sus bytes. La grilla tiene una unidad por columna
// de la vista, así todas las columnas entran en el ancho de la página.
func (g *MarotoTableExporter) Export(_ context.Context, doc dashboard.ExportDocument) ([]byte, error) {
	columns := doc.Table.Columns()
	grid := len(columns)
	if grid == 0 {
		grid = 1
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(grid).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 6}).
		WithTitle(doc.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(doc, grid))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	for _, r := range kpiRows(doc.KPIs, grid) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(columns) > 0 {
		m.AddRows(tableHeaderRow(columns))
		m.AddRows(tableRows(doc.Table)...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(doc dashboard.ExportDocument, grid int) core.Row {
	return row.New(12).Add(
		col.New(grid).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 3,
			}),
		),
	)
}

// kpiRows una línea por indicador.
func kpiRows(kpis []dto.KPIDTO, grid int) []core.Row {
	rows := make([]core.Row, 0, len(kpis))
	for _, k := range kpis {
		rows = append(rows, row.New(5).Add(col.New(grid).Add(
			text.New(k.Label+": "+formatThousands(k.Value), props.Text{
				Size: 8, Top: 1,
			}),
		)))
	}
	return rows
}

func tableHeaderRow(columns []string) core.Row {
	cols := make([]core.Col, len(columns))
	for i, c := range columns {
		cols[i] = col.New(1).Add(text.New(c, props.Text{
			Style: fontstyle.Bold, Size: 6, Align: align.Left,
			Color: colorWhite, Top: 1, Left: 0.5, Right: 0.5,
		}))
	}
	return row.New(7).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows una fila por registro, con fondo alternado.
func tableRows(t *stock.Table) []core.Row {
	result := make([]core.Row, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		values := t.Row(i)
		cols := make([]core.Col, len(values))
		for j, v := range values {
			a := align.Left
			if v.Kind() == stock.KindInt {
				a = align.Right
			}
			cols[j] = col.New(1).Add(text.New(v.String(), props.Text{
				Size: 6, Align: a, Top: 1, Left: 0.5, Right: 0.5,
			}))
		}
		r := row.New(5).Add(cols...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorZebra})
		}
		result = append(result, r)
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatThousands inserta puntos de miles.
// Ej: 25000 → "25.000", -1000000 → "-1.000.000"
func formatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	digits := len(s)
	if digits <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, digits+digits/3)
	for i, c := range []byte(s) {
		if i > 0 && (digits-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
