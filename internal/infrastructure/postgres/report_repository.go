package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invorya/stock-ledger-api/internal/domain/entity"
	"github.com/invorya/stock-ledger-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes de inventario.
// La agregación vive en SQL; el servicio no repite la suma en memoria.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// ListBelowMinimum devuelve los artículos con quantity < minimum_stock
// (comparación estricta: igual al mínimo no es bajo stock).
// Ordena por déficit descendente (mayor quiebre primero).
func (r *ReportRepo) ListBelowMinimum(ctx context.Context) ([]*entity.StockItem, error) {
	const query = `
		SELECT sku, name, price, quantity, minimum_stock, created_at, updated_at
		FROM stock_items
		WHERE quantity < minimum_stock
		ORDER BY (minimum_stock - quantity) DESC, sku ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("report.ListBelowMinimum", err)
	}
	defer rows.Close()

	var items []*entity.StockItem
	for rows.Next() {
		var it entity.StockItem
		if err := rows.Scan(&it.SKU, &it.Name, &it.Price, &it.Quantity, &it.MinimumStock,
			&it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, storeErr("report.ListBelowMinimum scan", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// SalesBetween agrega las ventas por SKU en [start, end].
// total_sold = Σ(pre_quantity - curr_quantity) de los registros SELL;
// revenue = precio actual × total_sold (no el precio al momento de la venta).
func (r *ReportRepo) SalesBetween(ctx context.Context, start, end time.Time) ([]repository.SalesRow, error) {
	const query = `
		SELECT
		    l.sku,
		    i.name,
		    SUM(l.pre_quantity - l.curr_quantity)           AS total_sold,
		    i.price * SUM(l.pre_quantity - l.curr_quantity) AS revenue
		FROM stock_logs l
		JOIN stock_items i ON i.sku = l.sku
		WHERE l.operation = 'SELL'
		  AND l.created_at BETWEEN $1 AND $2
		GROUP BY l.sku, i.name, i.price
		ORDER BY revenue DESC`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, storeErr("report.SalesBetween", err)
	}
	defer rows.Close()

	var results []repository.SalesRow
	for rows.Next() {
		var row repository.SalesRow
		if err := rows.Scan(&row.SKU, &row.Name, &row.TotalSold, &row.Revenue); err != nil {
			return nil, storeErr("report.SalesBetween scan", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopSellingBetween devuelve los `limit` SKUs con más unidades vendidas en
// [start, end], de mayor a menor.
func (r *ReportRepo) TopSellingBetween(ctx context.Context, start, end time.Time, limit int) ([]repository.TopSellingRow, error) {
	const query = `
		SELECT
		    sku,
		    SUM(pre_quantity - curr_quantity) AS total_sold
		FROM stock_logs
		WHERE operation = 'SELL'
		  AND created_at BETWEEN $1 AND $2
		GROUP BY sku
		ORDER BY total_sold DESC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, storeErr("report.TopSellingBetween", err)
	}
	defer rows.Close()

	var results []repository.TopSellingRow
	for rows.Next() {
		var row repository.TopSellingRow
		if err := rows.Scan(&row.SKU, &row.TotalSold); err != nil {
			return nil, storeErr("report.TopSellingBetween scan", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
