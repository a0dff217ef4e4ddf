package usecase

import (
	"time"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// AnalyticsUseCase agregados de ventas para el dashboard.
type AnalyticsUseCase struct {
	repo repository.AnalyticsRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(repo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{repo: repo}
}

// SalesSummary resume las ventas de la empresa en [from, to]. Fechas en
// formato YYYY-MM-DD; vacías toman los últimos 30 días.
func (uc *AnalyticsUseCase) SalesSummary(companyID, fromStr, toStr string) (*dto.SalesSummaryResponse, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	var err error
	if toStr != "" {
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// incluir el día completo
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if fromStr != "" {
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if from.After(to) {
		return nil, domain.ErrInvalidInput
	}

	summary, err := uc.repo.SalesSummary(companyID, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.SalesSummaryResponse{
		From:          from.Format("2006-01-02"),
		To:            to.Format("2006-01-02"),
		InvoiceCount:  summary.InvoiceCount,
		Revenue:       summary.Revenue,
		TaxCollected:  summary.TaxCollected,
		DiscountGiven: summary.DiscountGiven,
		PendingCount:  summary.PendingCount,
	}, nil
}
