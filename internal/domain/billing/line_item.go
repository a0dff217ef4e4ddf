// Package billing implementa el motor de cálculo de facturas: derivación de
// montos por línea, desglose de impuestos por tasa y totales del borrador de
// factura, consistentes después de cada mutación.
package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/pkg/money"
)

// ProductRef es la instantánea del producto que el borrador copia al agregar
// una línea. Un refresco posterior del catálogo no modifica líneas existentes.
type ProductRef struct {
	ID      string
	Name    string
	SKU     string
	Price   decimal.Decimal
	TaxRate decimal.Decimal // porcentaje >= 0
}

// LineItem es una línea del borrador de factura. Los campos derivados se
// recalculan siempre desde los de entrada (Quantity, UnitPrice,
// DiscountPercent, TaxRate, TaxInclusive); nunca se editan directamente.
//
// El porcentaje de descuento es el dato durable: al cambiar la cantidad, el
// monto de descuento se rederiva del porcentaje contra el nuevo bruto.
type LineItem struct {
	ID              string // identificador local de la sesión de edición
	ProductID       string
	ProductName     string
	SKU             string
	Quantity        int64
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRate         decimal.Decimal
	TaxInclusive    bool

	// Derivados, a precisión completa. Redondear con money.Round2 solo al
	// presentar o persistir.
	GrossAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	NetAmount      decimal.Decimal
	TaxAmount      decimal.Decimal
	LineTotal      decimal.Decimal
}

// newLineItem crea una línea desde la instantánea del producto.
// Descuento 0 e impuesto excluido del precio por defecto.
func newLineItem(ref ProductRef, qty int64) *LineItem {
	li := &LineItem{
		ID:              uuid.New().String(),
		ProductID:       ref.ID,
		ProductName:     ref.Name,
		SKU:             ref.SKU,
		Quantity:        qty,
		UnitPrice:       ref.Price,
		DiscountPercent: decimal.Zero,
		TaxRate:         ref.TaxRate,
		TaxInclusive:    false,
	}
	li.recompute()
	return li
}

// recompute deriva los cinco montos de la línea.
//
// Orden de operaciones: el impuesto se calcula SIEMPRE después del descuento.
//   - bruto     = cantidad × precio unitario
//   - descuento = bruto × pct / 100, acotado a no exceder el bruto
//   - neto      = bruto − descuento
//   - impuesto excluido:  neto × tasa/100; total = neto + impuesto
//   - impuesto incluido:  neto − neto/(1 + tasa/100); total = neto
//     (la porción de impuesto ya viene embebida en el precio)
func (li *LineItem) recompute() {
	qty := decimal.NewFromInt(li.Quantity)
	li.GrossAmount = qty.Mul(li.UnitPrice)

	li.DiscountAmount = money.Percent(li.GrossAmount, li.DiscountPercent)
	if li.DiscountAmount.GreaterThan(li.GrossAmount) {
		li.DiscountAmount = li.GrossAmount
	}
	li.NetAmount = li.GrossAmount.Sub(li.DiscountAmount)

	if li.TaxRate.IsZero() {
		// Tasa cero: sin impuesto, incluido o no.
		li.TaxAmount = decimal.Zero
		li.LineTotal = li.NetAmount
		return
	}

	if li.TaxInclusive {
		divisor := decimal.NewFromInt(1).Add(li.TaxRate.Div(money.Hundred))
		li.TaxAmount = li.NetAmount.Sub(money.SafeDiv(li.NetAmount, divisor))
		li.LineTotal = li.NetAmount
		return
	}
	li.TaxAmount = money.Percent(li.NetAmount, li.TaxRate)
	li.LineTotal = li.NetAmount.Add(li.TaxAmount)
}
