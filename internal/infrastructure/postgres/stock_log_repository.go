package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/invorya/stock-ledger-api/internal/domain/entity"
	"github.com/invorya/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockLogRepository = (*StockLogRepo)(nil)

// StockLogRepo implementación de StockLogRepository sobre PostgreSQL
// (usable con pool o tx). Solo insert y lectura: la tabla es append-only.
type StockLogRepo struct {
	q Querier
}

// NewStockLogRepository construye el adaptador de bitácora. Pasar pool o tx (Querier).
func NewStockLogRepository(q Querier) *StockLogRepo {
	return &StockLogRepo{q: q}
}

// Append persiste un registro de bitácora.
func (r *StockLogRepo) Append(ctx context.Context, log *entity.StockLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_logs (id, sku, stock_name, operation, pre_quantity, curr_quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.SKU, log.StockName, log.Operation,
		log.PreQuantity, log.CurrQuantity, log.CreatedAt,
	)
	if err != nil {
		return storeErr("append stock log", err)
	}
	return nil
}

// ListBySKU devuelve los registros de un SKU en orden de inserción
// (la secuencia seq la asigna la BD en cada insert).
func (r *StockLogRepo) ListBySKU(ctx context.Context, sku string) ([]*entity.StockLog, error) {
	query := `
		SELECT id, sku, stock_name, operation, pre_quantity, curr_quantity, created_at
		FROM stock_logs WHERE sku = $1
		ORDER BY seq ASC`
	rows, err := r.q.Query(ctx, query, sku)
	if err != nil {
		return nil, storeErr("list stock logs", err)
	}
	defer rows.Close()
	var list []*entity.StockLog
	for rows.Next() {
		var l entity.StockLog
		if err := rows.Scan(&l.ID, &l.SKU, &l.StockName, &l.Operation,
			&l.PreQuantity, &l.CurrQuantity, &l.CreatedAt); err != nil {
			return nil, storeErr("scan stock log", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
