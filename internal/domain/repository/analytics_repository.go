package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummary agregados de ventas de la empresa en un rango de fechas.
type SalesSummary struct {
	InvoiceCount  int64
	Revenue       decimal.Decimal // Σ grand_total
	TaxCollected  decimal.Decimal // Σ total_tax
	DiscountGiven decimal.Decimal // Σ total_discount
	PendingCount  int64           // facturas con pago pendiente
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	SalesSummary(companyID string, from, to time.Time) (*SalesSummary, error)
}
