package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de ventas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// SalesSummary agrega las ventas de la empresa en [from, to].
func (r *AnalyticsRepo) SalesSummary(companyID string, from, to time.Time) (*repository.SalesSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(grand_total), 0),
		       COALESCE(SUM(total_tax), 0),
		       COALESCE(SUM(total_discount), 0),
		       COUNT(*) FILTER (WHERE payment_status = $4)
		FROM invoices
		WHERE company_id = $1 AND date >= $2 AND date <= $3`
	var s repository.SalesSummary
	err := r.q.QueryRow(context.Background(), query, companyID, from, to, entity.PaymentStatusPending).Scan(
		&s.InvoiceCount, &s.Revenue, &s.TaxCollected, &s.DiscountGiven, &s.PendingCount,
	)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &s, nil
}
