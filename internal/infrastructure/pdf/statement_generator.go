// Package pdf genera el extracto de movimientos (kardex) de un producto.
//
// Layout de la página A4:
//
//	HEADER: nombre del producto + ID | fecha de emisión
//	RESUMEN: stock, costo de compra, precio de venta, estado
//	TABLA: Fecha | Tipo | Cant. | P.Unit | Total (más reciente primero)
//	TOTALES: unidades compradas / vendidas, importe comprado / vendido
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

	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

var _ usecase.StatementRenderer = (*StatementGenerator)(nil)

// printer agrupa miles al estilo español ("12.500").
var printer = message.NewPrinter(language.Spanish)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// StatementGenerator implementa usecase.StatementRenderer usando Maroto v2.
type StatementGenerator struct {
	now func() time.Time
}

// NewStatementGenerator construye el generador.
func NewStatementGenerator() *StatementGenerator {
	return &StatementGenerator{now: time.Now}
}

// RenderStatement genera el PDF y devuelve sus bytes.
func (g *StatementGenerator) RenderStatement(
	_ context.Context,
	product *entity.Product,
	history []*entity.Transaction,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extracto de producto", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(product, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(history) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(text.New("Sin movimientos registrados", props.Text{
			Size: 8, Align: align.Center, Top: 2, Color: colorGray,
		}))))
	}
	m.AddRows(tableRows(history)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(summarize(history)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(product *entity.Product, issuedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("ID: "+product.ID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("EXTRACTO DE MOVIMIENTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+issuedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func summaryRow(product *entity.Product) core.Row {
	status := "Activo"
	if !product.Active {
		status = "Inactivo"
	}
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 10, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("STOCK", units(product.Quantity)),
		cell("COSTO DE COMPRA", product.PurchaseCost.String()),
		cell("PRECIO DE VENTA", product.SalePrice.String()),
		cell("ESTADO", status),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 3, align.Left),
		h("Tipo", 2, align.Left),
		h("Cant.", 2, align.Right),
		h("P.Unit", 2, align.Right),
		h("Total", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRows(history []*entity.Transaction) []core.Row {
	rows := make([]core.Row, 0, len(history))
	for _, t := range history {
		cell := func(value string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		rows = append(rows, row.New(6).Add(
			cell(t.CreatedAt.Format("02/01/2006 15:04"), 3, align.Left),
			cell(kindLabel(t.Kind), 2, align.Left),
			cell(units(t.Quantity), 2, align.Right),
			cell(t.UnitPrice.String(), 2, align.Right),
			cell(t.Total.String(), 3, align.Right),
		))
	}
	return rows
}

type totals struct {
	unitsIn, unitsOut int64
	amountIn          decimal.Decimal
	amountOut         decimal.Decimal
}

func summarize(history []*entity.Transaction) totals {
	var s totals
	for _, t := range history {
		switch t.Kind {
		case entity.TransactionKindPurchase:
			s.unitsIn += t.Quantity
			s.amountIn = s.amountIn.Add(t.Total)
		case entity.TransactionKindSale:
			s.unitsOut += t.Quantity
			s.amountOut = s.amountOut.Add(t.Total)
		}
	}
	return s
}

func totalsRow(s totals) core.Row {
	pair := func(label, value string, top float64) []core.Component {
		return []core.Component{
			text.New(label, props.Text{Size: 8, Top: top, Color: colorGray}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: top}),
		}
	}
	left := append(pair("Unidades compradas", units(s.unitsIn), 1),
		pair("Unidades vendidas", units(s.unitsOut), 6)...)
	right := append(pair("Importe comprado", s.amountIn.String(), 1),
		pair("Importe vendido", s.amountOut.String(), 6)...)
	return row.New(12).Add(
		col.New(6).Add(left...),
		col.New(6).Add(right...),
	)
}

func kindLabel(kind string) string {
	switch kind {
	case entity.TransactionKindPurchase:
		return "Compra"
	case entity.TransactionKindSale:
		return "Venta"
	}
	return kind
}

func units(n int64) string {
	return printer.Sprintf("%d", n)
}
