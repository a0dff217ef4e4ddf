package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/pkg/money"
)

// CustomerRef identifica al cliente seleccionado para la factura.
type CustomerRef struct {
	ID           string
	Name         string
	BusinessName string // opcional
}

// BillerRef identifica al emisor (la empresa vendedora).
type BillerRef struct {
	ID   string
	Name string
}

// PaymentInfo estado y medio de pago declarados al enviar la factura.
type PaymentInfo struct {
	Status string // PAID | PENDING; vacío se toma como PENDING
	Mode   string // cash, card, transfer, other
	Ref    string // referencia del pago (UTR), opcional
}

// PayloadLine es una línea proyectada para persistencia, con todos los
// montos redondeados a 2 decimales.
type PayloadLine struct {
	ProductID       string
	ProductName     string
	SKU             string
	Quantity        int64
	UnitPrice       decimal.Decimal
	GrossAmount     decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxRate         decimal.Decimal
	TaxInclusive    bool
	TaxAmount       decimal.Decimal
	LineTotal       decimal.Decimal
}

// Payload es la proyección final del borrador más el cliente y el emisor,
// lista para que la capa de persistencia la serialice.
type Payload struct {
	BillerID      string
	BillerName    string
	CustomerID    string
	BillingTo     string // nombre del cliente (o razón social si existe)
	Lines         []PayloadLine
	SubtotalGross decimal.Decimal
	TotalDiscount decimal.Decimal
	TaxableAmount decimal.Decimal
	TotalTax      decimal.Decimal
	RoundOff      decimal.Decimal
	GrandTotal    decimal.Decimal
	Payment       PaymentInfo
}

// BuildPayload valida las precondiciones de envío y proyecta el borrador.
// Falla (no corrige en silencio) cuando el borrador está vacío, no hay
// cliente seleccionado o falta la identidad del emisor: son errores que el
// llamador debe resolver antes de intentar persistir.
func BuildPayload(d *Draft, customer CustomerRef, biller BillerRef, pay PaymentInfo) (*Payload, error) {
	if d == nil || d.Empty() {
		return nil, domain.ErrEmptyInvoice
	}
	if customer.ID == "" {
		return nil, domain.ErrMissingCustomer
	}
	if biller.ID == "" || biller.Name == "" {
		return nil, domain.ErrMissingBiller
	}
	if pay.Status == "" {
		pay.Status = "PENDING"
	}

	billingTo := customer.Name
	if customer.BusinessName != "" {
		billingTo = customer.BusinessName
	}

	t := d.Totals()
	p := &Payload{
		BillerID:      biller.ID,
		BillerName:    biller.Name,
		CustomerID:    customer.ID,
		BillingTo:     billingTo,
		Lines:         make([]PayloadLine, 0, len(d.items)),
		SubtotalGross: money.Round2(t.SubtotalGross),
		TotalDiscount: money.Round2(t.TotalDiscount),
		TaxableAmount: money.Round2(t.TaxableAmount),
		TotalTax:      money.Round2(t.TotalTax),
		RoundOff:      t.RoundOff,
		GrandTotal:    money.Round2(t.GrandTotal),
		Payment:       pay,
	}
	for _, li := range d.items {
		p.Lines = append(p.Lines, PayloadLine{
			ProductID:       li.ProductID,
			ProductName:     li.ProductName,
			SKU:             li.SKU,
			Quantity:        li.Quantity,
			UnitPrice:       li.UnitPrice,
			GrossAmount:     money.Round2(li.GrossAmount),
			DiscountPercent: li.DiscountPercent,
			DiscountAmount:  money.Round2(li.DiscountAmount),
			TaxRate:         li.TaxRate,
			TaxInclusive:    li.TaxInclusive,
			TaxAmount:       money.Round2(li.TaxAmount),
			LineTotal:       money.Round2(li.LineTotal),
		})
	}
	return p, nil
}
