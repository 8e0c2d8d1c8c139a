// Package pdf implementa la generación del reporte de estoque bajo mínimo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Estoque | Mínimo | Precio        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos + usuario solicitante            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/estoque-pro/estoque-api/internal/application/reports"
	"github.com/estoque-pro/estoque-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStockReport implementa reports.StockReportGenerator usando Maroto v2.
type MarotoStockReport struct{}

var _ reports.StockReportGenerator = (*MarotoStockReport)(nil)

// NewMarotoStockReport construye el generador.
func NewMarotoStockReport() *MarotoStockReport { return &MarotoStockReport{} }

// GenerateLowStockPDF genera el reporte y devuelve sus bytes.
func (g *MarotoStockReport) GenerateLowStockPDF(
	_ context.Context,
	products []*entity.Product,
	generatedAt time.Time,
	generatedBy string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Estoque Bajo Mínimo", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(products) == 0 {
		m.AddRows(emptyRow())
	}
	for _, p := range products {
		m.AddRows(productRow(p))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(products), generatedBy))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("REPORTE DE ESTOQUE BAJO MÍNIMO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Productos con cantidad en o bajo su estoque mínimo", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado:", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 2,
			}),
			text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 5, align.Left),
		h("Estoque", 2, align.Right),
		h("Mínimo", 1, align.Right),
		h("Precio", 2, align.Right),
	)
}

// productRow: una fila por producto, estoque en rojo si llegó a cero.
func productRow(p *entity.Product) core.Row {
	qtyColor := colorAlert
	if p.QuantityInStock > 0 {
		qtyColor = nil
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(
			p.Code,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(5).Add(text.New(
			p.Name,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			fmt.Sprintf("%d", p.QuantityInStock),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor},
		)),
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", p.MinimumStock),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray},
		)),
		col.New(2).Add(text.New(
			"$"+p.Price.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// emptyRow: mensaje cuando no hay productos bajo mínimo.
func emptyRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("No hay productos en o bajo su estoque mínimo.", props.Text{
			Size: 9, Align: align.Center, Color: colorGray, Top: 3,
		}),
	))
}

// footerRow: total de productos listados + usuario solicitante.
func footerRow(total int, generatedBy string) core.Row {
	return row.New(8).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("Total de productos: %d", total),
			props.Text{Style: fontstyle.Bold, Size: 8, Top: 2},
		)),
		col.New(6).Add(text.New(
			"Solicitado por: "+generatedBy,
			props.Text{Size: 8, Align: align.Right, Top: 2, Color: colorGray},
		)),
	)
}
