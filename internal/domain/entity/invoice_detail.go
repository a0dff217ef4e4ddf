package entity

import "github.com/shopspring/decimal"

// InvoiceDetail representa una línea persistida de una factura.
// Nombre, SKU, precio y tasa son una copia del producto al momento de
// facturar (el catálogo puede cambiar después sin afectar la factura).
type InvoiceDetail struct {
	ID              string
	InvoiceID       string
	ProductID       string
	ProductName     string
	SKU             string
	Quantity        int64
	UnitPrice       decimal.Decimal
	GrossAmount     decimal.Decimal // cantidad × precio unitario
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxRate         decimal.Decimal // porcentaje
	TaxInclusive    bool            // el precio unitario ya incluye el impuesto
	TaxAmount       decimal.Decimal
	LineTotal       decimal.Decimal
}
