package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stock-ledger-api/internal/application/dto"
	"github.com/invorya/stock-ledger-api/internal/application/report"
	"github.com/invorya/stock-ledger-api/internal/domain"
)

// ReportHandler maneja los reportes de solo lectura (protegido).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStock godoc
// @Summary      Artículos bajo su mínimo configurado
// @Description  quantity < minimum_stock (estricto). Sin coincidencias devuelve lista vacía.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Reporte de ventas por período
// @Description  Agrega unidades vendidas y revenue por SKU en [start, end] (RFC 3339).
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  true  "Inicio del período (RFC 3339)"
// @Param        end    query  string  true  "Fin del período (RFC 3339)"
// @Success      200    {object}  dto.SalesReportResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start y end son requeridos en formato RFC 3339"})
	}
	out, err := h.uc.Sales(c.Context(), start, end)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el período es inválido (end anterior a start)"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// TopSelling godoc
// @Summary      SKUs más vendidos por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  true   "Inicio del período (RFC 3339)"
// @Param        end    query  string  true   "Fin del período (RFC 3339)"
// @Param        limit  query  int     false  "Tamaño del ranking"  default(10)
// @Success      200    {object}  dto.TopSellingResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/top-selling [get]
func (h *ReportHandler) TopSelling(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start y end son requeridos en formato RFC 3339"})
	}
	limit := c.QueryInt("limit", report.DefaultTopSellingLimit)
	out, err := h.uc.TopSelling(c.Context(), start, end, limit)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el período es inválido (end anterior a start)"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// parsePeriod lee start y end (RFC 3339) de la query string.
func parsePeriod(c *fiber.Ctx) (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
