package dto

import "github.com/shopspring/decimal"

// SalesSummaryResponse agregados de ventas para el dashboard.
// GET /api/analytics/sales?from=YYYY-MM-DD&to=YYYY-MM-DD
type SalesSummaryResponse struct {
	From          string          `json:"from"`
	To            string          `json:"to"`
	InvoiceCount  int64           `json:"invoice_count"`
	Revenue       decimal.Decimal `json:"revenue"`
	TaxCollected  decimal.Decimal `json:"tax_collected"`
	DiscountGiven decimal.Decimal `json:"discount_given"`
	PendingCount  int64           `json:"pending_count"`
}
