package dto

import "github.com/shopspring/decimal"

// StartSessionRequest body para POST /api/billing/sessions.
// InvoiceID opcional: si viene, la sesión carga una factura existente para
// edición; si no, inicia un borrador vacío.
type StartSessionRequest struct {
	InvoiceID string `json:"invoice_id,omitempty"`
}

// AddItemRequest body para POST /api/billing/sessions/:id/items.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// UpdateItemRequest body para PATCH /api/billing/sessions/:id/items/:itemID.
// Punteros: solo se aplica lo enviado.
type UpdateItemRequest struct {
	Quantity        *int64           `json:"quantity,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	TaxInclusive    *bool            `json:"tax_inclusive,omitempty"`
}

// SelectCustomerRequest body para PUT /api/billing/sessions/:id/customer.
type SelectCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

// RoundTotalsRequest body para PUT /api/billing/sessions/:id/round-totals.
type RoundTotalsRequest struct {
	Enabled bool `json:"enabled"`
}

// SubmitInvoiceRequest body para POST /api/billing/sessions/:id/submit.
type SubmitInvoiceRequest struct {
	PaymentStatus string `json:"payment_status"`         // PAID | PENDING
	PaymentMode   string `json:"payment_mode,omitempty"` // cash, card, transfer, other
	PaymentRef    string `json:"payment_ref,omitempty"`  // referencia UTR de la transferencia
}

// LineItemResponse línea del borrador con sus montos derivados (2 decimales).
type LineItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	SKU             string          `json:"sku,omitempty"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxInclusive    bool            `json:"tax_inclusive"`
	GrossAmount     decimal.Decimal `json:"gross_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// TaxGroupResponse un grupo del desglose de impuestos por tasa.
type TaxGroupResponse struct {
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
	LineCount int             `json:"line_count"`
}

// TotalsResponse totales del borrador (2 decimales).
type TotalsResponse struct {
	SubtotalGross decimal.Decimal    `json:"subtotal_gross"`
	TotalDiscount decimal.Decimal    `json:"total_discount"`
	TaxableAmount decimal.Decimal    `json:"taxable_amount"`
	TotalTax      decimal.Decimal    `json:"total_tax"`
	TaxBreakdown  []TaxGroupResponse `json:"tax_breakdown"`
	RoundOff      decimal.Decimal    `json:"round_off"`
	GrandTotal    decimal.Decimal    `json:"grand_total"`
}

// SessionResponse estado completo de una sesión de edición.
type SessionResponse struct {
	ID          string             `json:"id"`
	InvoiceID   string             `json:"invoice_id,omitempty"` // solo en sesiones de edición
	CustomerID  string             `json:"customer_id,omitempty"`
	RoundTotals bool               `json:"round_totals"`
	Items       []LineItemResponse `json:"items"`
	Totals      TotalsResponse     `json:"totals"`
}

// InvoiceResponse factura persistida con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID            string                  `json:"id"`
	CompanyID     string                  `json:"company_id"`
	CustomerID    string                  `json:"customer_id"`
	CustomerName  string                  `json:"customer_name,omitempty"`
	Number        string                  `json:"number"`
	Date          string                  `json:"date"`
	SubtotalGross decimal.Decimal         `json:"subtotal_gross"`
	TotalDiscount decimal.Decimal         `json:"total_discount"`
	TaxableAmount decimal.Decimal         `json:"taxable_amount"`
	TotalTax      decimal.Decimal         `json:"total_tax"`
	RoundOff      decimal.Decimal         `json:"round_off"`
	GrandTotal    decimal.Decimal         `json:"grand_total"`
	PaymentStatus string                  `json:"payment_status"`
	PaymentMode   string                  `json:"payment_mode,omitempty"`
	PaymentRef    string                  `json:"payment_ref,omitempty"`
	Details       []InvoiceDetailResponse `json:"details"`
}

// InvoiceDetailResponse línea persistida en la respuesta.
type InvoiceDetailResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	SKU             string          `json:"sku,omitempty"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	GrossAmount     decimal.Decimal `json:"gross_amount"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxInclusive    bool            `json:"tax_inclusive"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	LineTotal       decimal.Decimal `json:"line_total"`
}
