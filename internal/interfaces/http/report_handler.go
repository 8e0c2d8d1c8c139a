package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estoque-pro/estoque-api/internal/application/reports"
)

// ReportHandler sirve los reportes de estoque en PDF.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStockPDF godoc
// @Summary      Reporte PDF de productos bajo mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/low-stock.pdf [get]
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.LowStockPDF(c.Context(), GetUsername(c))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="low-stock.pdf"`)
	return c.Send(pdfBytes)
}
