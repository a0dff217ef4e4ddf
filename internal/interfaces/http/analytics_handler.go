package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Facturacion-api/internal/application/usecase"
)

// AnalyticsHandler agregados de ventas para el dashboard.
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// SalesSummary godoc
// @Summary      Resumen de ventas en un rango de fechas
// @Description  Fechas en formato YYYY-MM-DD; sin parámetros toma los últimos 30 días.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial"
// @Param        to    query  string  false  "Fecha final"
// @Success      200   {object}  dto.SalesSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/analytics/sales [get]
func (h *AnalyticsHandler) SalesSummary(c *fiber.Ctx) error {
	out, err := h.uc.SalesSummary(GetCompanyID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
