// Package pdf implementa la representación gráfica de la factura de venta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  N° Factura + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                            │
//	│  CLIENTE: Nombre + NIT/CC + contacto                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Desc% | IVA% | Total  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Bruto / Descuento / Base / Impuestos /            │
//	│           Redondeo / TOTAL A PAGAR                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: estado y medio de pago                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	appbilling "github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, in appbilling.PDFInput) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de Venta "+in.Invoice.Number, true).
		WithAuthor(in.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(in.Invoice, in.Company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(in.Company))
	m.AddRows(clienteRow(in.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(in.Details) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(in.Invoice)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(paymentFooterRow(in.Invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: Razón social + NIT (izq) y N° Factura + Fecha (der).
func headerRow(invoice *entity.Invoice, company *entity.Company) core.Row {
	fecha := invoice.Date.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emisorRow: datos del emisor (empresa).
func emisorRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clienteRow: datos del cliente. Una venta de mostrador puede no tener cliente.
func clienteRow(customer *entity.Customer) core.Row {
	if customer == nil {
		return row.New(10).Add(col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Consumidor final", props.Text{Size: 9, Top: 6, Color: colorGray}),
		))
	}
	name := customer.Name
	if customer.BusinessName != "" {
		name = customer.BusinessName
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIT/CC: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(customer.TaxID, "—"),
				nonEmpty(customer.Email, "—"),
				nonEmpty(customer.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 4, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Desc.%", 1, align.Center),
		h("IVA%", 1, align.Center),
		h("Total", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea de la factura.
func tableDetailRows(details []*entity.InvoiceDetail) []core.Row {
	result := make([]core.Row, 0, len(details))
	for _, d := range details {
		desc := d.ProductName
		if d.SKU != "" {
			desc = d.SKU + " — " + d.ProductName
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", d.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				desc,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(d.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				d.DiscountPercent.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				d.TaxRate.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(d.LineTotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRows: bloque de totales alineado a la derecha. La fila de redondeo
// solo aparece cuando el ajuste es distinto de cero.
func totalsRows(invoice *entity.Invoice) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	totalRow := func(l, v string) core.Row {
		return row.New(5).Add(
			col.New(6),
			col.New(3).Add(label(l)),
			col.New(3).Add(value(v)),
		)
	}

	rows := []core.Row{
		totalRow("Subtotal bruto:", "$"+formatMoney(invoice.SubtotalGross)),
	}
	if !invoice.TotalDiscount.IsZero() {
		rows = append(rows, totalRow("Descuento:", "-$"+formatMoney(invoice.TotalDiscount)))
	}
	rows = append(rows,
		totalRow("Base gravable:", "$"+formatMoney(invoice.TaxableAmount)),
		totalRow("Impuestos:", "$"+formatMoney(invoice.TotalTax)),
	)
	if !invoice.RoundOff.IsZero() {
		rows = append(rows, totalRow("Redondeo:", formatSigned(invoice.RoundOff)))
	}
	rows = append(rows, row.New(8).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL A PAGAR:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 1,
		})),
		col.New(3).Add(text.New("$"+formatMoney(invoice.GrandTotal), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 1,
		})),
	))
	return rows
}

// paymentFooterRow: estado y medio de pago.
func paymentFooterRow(invoice *entity.Invoice) core.Row {
	estado := "PENDIENTE DE PAGO"
	if invoice.PaymentStatus == entity.PaymentStatusPaid {
		estado = "PAGADA"
	}
	medio := paymentModeLabel(invoice.PaymentMode)
	if invoice.PaymentRef != "" {
		medio += "   |   Ref: " + invoice.PaymentRef
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PAGO: "+estado, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
			text.New("Medio de pago: "+medio, props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
	)
}

func paymentModeLabel(mode string) string {
	switch mode {
	case entity.PaymentModeCash:
		return "Efectivo"
	case entity.PaymentModeCard:
		return "Tarjeta"
	case entity.PaymentModeTransfer:
		return "Transferencia"
	default:
		return "Otro"
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea un decimal con separador de miles y coma decimal.
// Ej: 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := money.Round2(d.Abs()).StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")
	n := len(intPart)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i := 0; i < n; i++ {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, '.')
			}
			buf = append(buf, intPart[i])
		}
		intPart = string(buf)
	}
	return intPart + "," + fracPart
}

// formatSigned formatea el redondeo conservando el signo: "+$0,40" / "-$0,40".
func formatSigned(d decimal.Decimal) string {
	sign := "+"
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + formatMoney(d)
}
