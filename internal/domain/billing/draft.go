package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/pkg/money"
)

// Totals son los montos derivados a nivel de factura. Se recalculan completos
// después de cada mutación del borrador; nunca quedan desfasados respecto a
// las líneas. Montos a precisión completa salvo RoundOff (2 decimales).
type Totals struct {
	SubtotalGross decimal.Decimal // Σ bruto
	TotalDiscount decimal.Decimal // Σ descuentos
	TaxableAmount decimal.Decimal // bruto − descuentos
	TotalTax      decimal.Decimal // Σ impuestos
	TaxBreakdown  []TaxGroup
	GrandTotalRaw decimal.Decimal // base + impuestos, sin ajuste
	RoundOff      decimal.Decimal // ajuste a unidad entera (0 si desactivado)
	GrandTotal    decimal.Decimal // GrandTotalRaw + RoundOff
}

// Draft es el agregado de la factura en edición: la lista ordenada de líneas
// más los totales derivados. Cada operación de mutación ejecuta el recálculo
// completo antes de retornar, así los invariantes (subtotal = Σ brutos,
// impuesto total = Σ desglose, total = base + impuestos) se cumplen después
// de cada llamada.
//
// El Draft pertenece a una única sesión de edición y no se comparte entre
// goroutines; la sincronización, si hace falta, es del dueño.
type Draft struct {
	items       []*LineItem
	roundTotals bool
	totals      Totals
}

// NewDraft crea un borrador vacío. roundTotals activa el ajuste del total a
// la unidad monetaria entera más cercana.
func NewDraft(roundTotals bool) *Draft {
	d := &Draft{roundTotals: roundTotals}
	d.recompute()
	return d
}

// AddItem agrega qty unidades del producto al borrador.
// Si ya existe una línea del mismo producto, incrementa su cantidad y
// reinstala precio y tasa desde la referencia actual del catálogo (regla de
// fusión: nunca dos líneas del mismo producto). Si no, agrega una línea nueva
// con descuento 0 e impuesto excluido.
// Rechaza qty < 1 y precios negativos sin tocar el estado.
func (d *Draft) AddItem(ref ProductRef, qty int64) (*LineItem, error) {
	if qty < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	if ref.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidPrice
	}
	for _, li := range d.items {
		if li.ProductID == ref.ID {
			li.Quantity += qty
			li.UnitPrice = ref.Price
			li.TaxRate = ref.TaxRate
			li.recompute()
			d.recompute()
			return li, nil
		}
	}
	li := newLineItem(ref, qty)
	d.items = append(d.items, li)
	d.recompute()
	return li, nil
}

// UpdateQuantity fija la cantidad de una línea y recalcula.
// Una cantidad < 1 no modifica nada (la línea conserva su cantidad anterior;
// quitar una línea es una operación explícita, no una cantidad cero).
func (d *Draft) UpdateQuantity(lineID string, qty int64) error {
	li := d.find(lineID)
	if li == nil {
		return domain.ErrNotFound
	}
	if qty < 1 {
		return nil
	}
	li.Quantity = qty
	li.recompute()
	d.recompute()
	return nil
}

// UpdateDiscountPercent fija el porcentaje de descuento de una línea,
// acotado a [0, 100], y recalcula.
func (d *Draft) UpdateDiscountPercent(lineID string, pct decimal.Decimal) error {
	li := d.find(lineID)
	if li == nil {
		return domain.ErrNotFound
	}
	li.DiscountPercent = money.ClampPercent(pct)
	li.recompute()
	d.recompute()
	return nil
}

// UpdateTaxInclusive marca si el precio unitario de la línea ya incluye el
// impuesto, y recalcula.
func (d *Draft) UpdateTaxInclusive(lineID string, inclusive bool) error {
	li := d.find(lineID)
	if li == nil {
		return domain.ErrNotFound
	}
	li.TaxInclusive = inclusive
	li.recompute()
	d.recompute()
	return nil
}

// RemoveItem elimina una línea. Un ID inexistente no hace nada. Si el
// borrador queda vacío los totales vuelven a cero, no quedan con valores
// viejos.
func (d *Draft) RemoveItem(lineID string) {
	for i, li := range d.items {
		if li.ID == lineID {
			d.items = append(d.items[:i], d.items[i+1:]...)
			d.recompute()
			return
		}
	}
}

// SetRoundTotals activa o desactiva el ajuste del total a unidad entera.
func (d *Draft) SetRoundTotals(enabled bool) {
	d.roundTotals = enabled
	d.recompute()
}

// RoundTotals indica si el ajuste a unidad entera está activo.
func (d *Draft) RoundTotals() bool { return d.roundTotals }

// Items devuelve las líneas en orden de inserción. El slice es una copia;
// las líneas apuntadas no deben mutarse fuera del borrador.
func (d *Draft) Items() []*LineItem {
	out := make([]*LineItem, len(d.items))
	copy(out, d.items)
	return out
}

// Totals devuelve los totales vigentes.
func (d *Draft) Totals() Totals { return d.totals }

// Empty indica si el borrador no tiene líneas.
func (d *Draft) Empty() bool { return len(d.items) == 0 }

func (d *Draft) find(lineID string) *LineItem {
	for _, li := range d.items {
		if li.ID == lineID {
			return li
		}
	}
	return nil
}

// recompute rehace todos los totales desde la lista actual de líneas.
// El recálculo es completo, no incremental: con decenas de líneas el costo es
// despreciable y elimina la clase entera de bugs de "total desfasado".
func (d *Draft) recompute() {
	t := Totals{
		SubtotalGross: decimal.Zero,
		TotalDiscount: decimal.Zero,
		TotalTax:      decimal.Zero,
	}
	for _, li := range d.items {
		t.SubtotalGross = t.SubtotalGross.Add(li.GrossAmount)
		t.TotalDiscount = t.TotalDiscount.Add(li.DiscountAmount)
		t.TotalTax = t.TotalTax.Add(li.TaxAmount)
	}
	// Base gravable: suma de las bases de impuesto por línea. En líneas con
	// impuesto excluido la base es el neto (bruto − descuento); en líneas con
	// impuesto incluido se resta la porción embebida, de modo que siempre
	// total = base + impuestos.
	t.TaxableAmount = decimal.Zero
	for _, li := range d.items {
		base := li.NetAmount
		if li.TaxInclusive {
			base = base.Sub(li.TaxAmount)
		}
		t.TaxableAmount = t.TaxableAmount.Add(base)
	}
	t.TaxBreakdown = taxBreakdown(d.items)
	t.GrandTotalRaw = t.TaxableAmount.Add(t.TotalTax)

	t.RoundOff = decimal.Zero
	t.GrandTotal = t.GrandTotalRaw
	if d.roundTotals {
		display := money.Round2(t.GrandTotalRaw)
		t.RoundOff = money.RoundUnit(display).Sub(display)
		t.GrandTotal = t.GrandTotalRaw.Add(t.RoundOff)
	}
	d.totals = t
}
