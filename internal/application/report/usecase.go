package report

import (
	"context"
	"time"

	"github.com/invorya/stock-ledger-api/internal/application/dto"
	"github.com/invorya/stock-ledger-api/internal/domain"
	"github.com/invorya/stock-ledger-api/internal/domain/repository"
)

// DefaultTopSellingLimit tope por defecto del ranking de más vendidos.
const DefaultTopSellingLimit = 10

// ReportUseCase consultas de solo lectura sobre ledger + bitácora.
// La agregación vive en SQL; aquí solo se validan rangos y se mapean DTOs.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// LowStock devuelve los artículos con quantity < minimum_stock (estricto:
// un artículo exactamente en su mínimo no está bajo). Sin coincidencias se
// devuelve lista vacía, no error; los errores quedan para fallos reales.
func (uc *ReportUseCase) LowStock(ctx context.Context) (*dto.LowStockResponse, error) {
	items, err := uc.repo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.StockItemResponse{
			SKU:          it.SKU,
			Name:         it.Name,
			Price:        it.Price,
			Quantity:     it.Quantity,
			MinimumStock: it.MinimumStock,
			CreatedAt:    it.CreatedAt,
			UpdatedAt:    it.UpdatedAt,
		})
	}
	return &dto.LowStockResponse{Items: out, Total: len(out)}, nil
}

// Sales agrega las ventas por SKU en [start, end]. El revenue usa el precio
// actual del artículo (no el histórico al momento de cada venta).
func (uc *ReportUseCase) Sales(ctx context.Context, start, end time.Time) (*dto.SalesReportResponse, error) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.repo.SalesBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesReportRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SalesReportRowDTO{
			SKU:       r.SKU,
			Name:      r.Name,
			TotalSold: r.TotalSold,
			Revenue:   r.Revenue,
		})
	}
	return &dto.SalesReportResponse{Start: start, End: end, Rows: out}, nil
}

// TopSelling devuelve los `limit` SKUs con más unidades vendidas en
// [start, end], de mayor a menor. limit <= 0 usa el tope por defecto.
func (uc *ReportUseCase) TopSelling(ctx context.Context, start, end time.Time, limit int) (*dto.TopSellingResponse, error) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = DefaultTopSellingLimit
	}
	rows, err := uc.repo.TopSellingBetween(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopSellingRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopSellingRowDTO{SKU: r.SKU, TotalSold: r.TotalSold})
	}
	return &dto.TopSellingResponse{Start: start, End: end, Limit: limit, Items: out}, nil
}
