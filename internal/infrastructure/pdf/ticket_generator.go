// Package pdf genera el ticket de mostrador de un pedido (comprobante de
// recogida): número de pedido, sucursal, líneas con precio congelado y total.
package pdf

import (
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
)

var (
	colorPrimary = &props.Color{Red: 121, Green: 68, Blue: 27} // marrón panadero
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// TicketLine línea del ticket con el nombre resuelto del producto.
type TicketLine struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// TicketData datos ya resueltos del pedido para el ticket.
type TicketData struct {
	OrderNumber string
	BranchName  string
	Status      string
	CreatedAt   time.Time
	Lines       []TicketLine
	Total       decimal.Decimal
}

// TicketGenerator genera el PDF del ticket usando Maroto v2.
type TicketGenerator struct{}

// NewTicketGenerator construye el generador.
func NewTicketGenerator() *TicketGenerator { return &TicketGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *TicketGenerator) Generate(data TicketData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ticket "+data.OrderNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range lineRows(data.Lines) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(data.Total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: número de pedido (izq), sucursal + fecha + estado (der).
func headerRow(data TicketData) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New(data.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(data.Status, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
		col.New(6).Add(
			text.New(data.BranchName, props.Text{
				Size: 10, Align: align.Right, Top: 2,
			}),
			text.New(data.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	bold := props.Text{Style: fontstyle.Bold, Size: 8}
	boldRight := props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}
	return row.New(6).Add(
		col.New(2).Add(text.New("Cant", bold)),
		col.New(6).Add(text.New("Producto", bold)),
		col.New(2).Add(text.New("P.Unit", boldRight)),
		col.New(2).Add(text.New("Importe", boldRight)),
	)
}

func lineRows(lines []TicketLine) []core.Row {
	normal := props.Text{Size: 8}
	normalRight := props.Text{Size: 8, Align: align.Right}
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		importe := l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
		rows = append(rows, row.New(5).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.Quantity), normal)),
			col.New(6).Add(text.New(l.ProductName, normal)),
			col.New(2).Add(text.New("$"+l.UnitPrice.StringFixed(2), normalRight)),
			col.New(2).Add(text.New("$"+importe.StringFixed(2), normalRight)),
		))
	}
	return rows
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New("TOTAL", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
		})),
		col.New(4).Add(text.New("$"+total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1, Color: colorPrimary,
		})),
	)
}
