package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/restobar-api/internal/application/analytics"
	"github.com/jhoicas/restobar-api/internal/application/dto"
)

// AnalyticsHandler maneja los endpoints de analítica de rentabilidad.
type AnalyticsHandler struct {
	uc *appanalytics.MarginsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.MarginsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetMargins godoc
// @Summary      Reporte de márgenes por medio de pago y ranking de artículos (Pareto 80/20)
// @Description  Ingresos, costo de ventas y margen del período, recaudo por medio de pago y
//               el ranking de artículos más rentables con el subconjunto de Pareto.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Param        top_n       query  int     false  "Máx. artículos en el ranking (default 20, max 200)."
// @Success      200  {object}  dto.MarginsReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/margins [get]
func (h *AnalyticsHandler) GetMargins(c *fiber.Ctx) error {
	var req dto.MarginsReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	report, err := h.uc.GetMarginsReport(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(report)
}
