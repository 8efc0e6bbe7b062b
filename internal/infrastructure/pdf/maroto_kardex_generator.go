// Package pdf implementa la generación de la tarjeta de kardex (movimientos con saldo) en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Producto + unidad      │  Rango de fechas           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Entradas / Salidas / Stock                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Entrada | Salida | Saldo | Obs.       │
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appinventory "github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
)

var _ appinventory.KardexPDFGenerator = (*MarotoKardexGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 160, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoKardexGenerator implementa inventory.KardexPDFGenerator usando Maroto v2.
type MarotoKardexGenerator struct {
	printer *message.Printer
	now     func() time.Time
}

// NewMarotoKardexGenerator construye el generador. Las cantidades se formatean según tag (p. ej. language.Spanish).
func NewMarotoKardexGenerator(tag language.Tag) *MarotoKardexGenerator {
	return &MarotoKardexGenerator{printer: message.NewPrinter(tag), now: time.Now}
}

// GenerateKardexPDF genera el PDF y devuelve sus bytes.
func (g *MarotoKardexGenerator) GenerateKardexPDF(
	_ context.Context,
	product *entity.Product,
	logs []entity.LedgerEntry,
	dateRange inventory.DateRange,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex "+product.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(product, dateRange))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.totalsRow(product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(logs) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el rango seleccionado", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		)))
	}
	for _, r := range g.tableDetailRows(logs) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Generado: "+g.now().UTC().Format("2006-01-02 15:04")+" UTC", props.Text{
			Size: 7, Align: align.Right, Color: colorGray,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoKardexGenerator) headerRow(product *entity.Product, r inventory.DateRange) core.Row {
	unit := nonEmpty(product.Unit, "-")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Unidad: "+unit, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TARJETA DE KARDEX", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(rangeLabel(r), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoKardexGenerator) totalsRow(product *entity.Product) core.Row {
	block := func(label string, v decimal.Decimal) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1}),
			text.New(g.formatQty(v), props.Text{Size: 11, Align: align.Center, Top: 6, Color: colorPrimary}),
		)
	}
	return row.New(14).Add(
		block("Total entradas", product.TotalIn),
		block("Total salidas", product.TotalOut),
		block("Stock", product.Stock),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 1, align.Center),
		h("Entrada", 2, align.Right),
		h("Salida", 2, align.Right),
		h("Saldo", 2, align.Right),
		h("Observaciones", 3, align.Left),
	)
}

func (g *MarotoKardexGenerator) tableDetailRows(logs []entity.LedgerEntry) []core.Row {
	result := make([]core.Row, 0, len(logs))
	for _, l := range logs {
		in, out := "", ""
		typeColor := colorPrimary
		switch l.Type {
		case entity.MovementTypeIn:
			in = g.formatQty(l.Quantity)
		case entity.MovementTypeOut:
			out = g.formatQty(l.Quantity)
			typeColor = colorDanger
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(l.Date, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(l.Type, props.Text{Size: 8, Align: align.Center, Top: 1, Color: typeColor})),
			col.New(2).Add(text.New(in, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(out, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.formatQty(l.Balance), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(3).Add(text.New(l.Remarks, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatQty formatea con separadores de miles del idioma configurado (máx. 4 decimales).
func (g *MarotoKardexGenerator) formatQty(v decimal.Decimal) string {
	return g.printer.Sprintf("%v", number.Decimal(v.InexactFloat64(), number.MaxFractionDigits(4)))
}

func rangeLabel(r inventory.DateRange) string {
	from, to := "inicio", "hoy"
	if r.From != nil {
		from = r.From.Format(entity.DateLayout)
	}
	if r.To != nil {
		to = r.To.Format(entity.DateLayout)
	}
	return "Periodo: " + from + " a " + to
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
