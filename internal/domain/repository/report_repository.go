package repository

import (
	"context"
	"time"

	"github.com/invorya/stock-ledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SalesRow ventas agregadas de un SKU en un período.
// Revenue usa el precio actual del artículo, no el histórico al momento de la venta.
type SalesRow struct {
	SKU       string
	Name      string
	TotalSold int64
	Revenue   decimal.Decimal
}

// TopSellingRow unidades vendidas de un SKU en un período.
type TopSellingRow struct {
	SKU       string
	TotalSold int64
}

// ReportRepository consultas de solo lectura para reportes de inventario.
type ReportRepository interface {
	// ListBelowMinimum artículos con quantity < minimum_stock (estricto).
	ListBelowMinimum(ctx context.Context) ([]*entity.StockItem, error)
	// SalesBetween agrega ventas (operation = SELL) por SKU en [start, end].
	SalesBetween(ctx context.Context, start, end time.Time) ([]SalesRow, error)
	// TopSellingBetween los `limit` SKUs con más unidades vendidas en [start, end].
	TopSellingBetween(ctx context.Context, start, end time.Time, limit int) ([]TopSellingRow, error)
}
