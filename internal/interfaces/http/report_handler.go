package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
)

// ReportHandler maneja los reportes de solo lectura (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// InboundBySupplier godoc
// @Summary      Entradas aprobadas por proveedor en un rango de fechas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial YYYY-MM-DD (vacío = hace 30 días)"
// @Param        to    query  string  false  "Fecha final YYYY-MM-DD (vacío = hoy)"
// @Success      200   {object}  dto.InboundReportResponse
// @Router       /api/reports/inbound-by-supplier [get]
func (h *ReportHandler) InboundBySupplier(c *fiber.Ctx) error {
	in := dto.InboundReportRequest{
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	out, err := h.uc.InboundBySupplier(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// StockSummary godoc
// @Summary      Existencias y su valor a precio de venta por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryResponse
// @Router       /api/reports/stock-summary [get]
func (h *ReportHandler) StockSummary(c *fiber.Ctx) error {
	out, err := h.uc.StockSummary(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
