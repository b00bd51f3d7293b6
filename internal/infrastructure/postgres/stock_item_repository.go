package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/stock-ledger-api/internal/domain"
	"github.com/invorya/stock-ledger-api/internal/domain/entity"
	"github.com/invorya/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

// Create persiste un artículo nuevo. SKU duplicado devuelve domain.ErrDuplicate.
func (r *StockItemRepo) Create(ctx context.Context, item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (sku, name, price, quantity, minimum_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.SKU, item.Name, item.Price, item.Quantity, item.MinimumStock,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert stock item", err)
	}
	return nil
}

// GetBySKU obtiene un artículo por SKU. Devuelve nil si no existe.
func (r *StockItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.StockItem, error) {
	query := `
		SELECT sku, name, price, quantity, minimum_stock, created_at, updated_at
		FROM stock_items WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, sku), "get stock item")
}

// GetBySKUForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
// Serializa las mutaciones concurrentes sobre el mismo SKU dentro de la tx.
func (r *StockItemRepo) GetBySKUForUpdate(ctx context.Context, sku string) (*entity.StockItem, error) {
	query := `
		SELECT sku, name, price, quantity, minimum_stock, created_at, updated_at
		FROM stock_items WHERE sku = $1
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, sku), "get stock item for update")
}

// Update actualiza name y price. Quantity no se toca por esta vía.
func (r *StockItemRepo) Update(ctx context.Context, item *entity.StockItem) error {
	query := `
		UPDATE stock_items SET name = $2, price = $3, updated_at = $4
		WHERE sku = $1`
	_, err := r.q.Exec(ctx, query, item.SKU, item.Name, item.Price, item.UpdatedAt)
	if err != nil {
		return storeErr("update stock item", err)
	}
	return nil
}

// UpdateQuantity escribe la cantidad resultante de una mutación ya validada
// bajo bloqueo de fila.
func (r *StockItemRepo) UpdateQuantity(ctx context.Context, sku string, quantity int64, updatedAt time.Time) error {
	query := `
		UPDATE stock_items SET quantity = $2, updated_at = $3
		WHERE sku = $1`
	cmd, err := r.q.Exec(ctx, query, sku, quantity, updatedAt)
	if err != nil {
		return storeErr("update stock quantity", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista artículos con paginación, más recientes primero.
func (r *StockItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockItem, error) {
	query := `
		SELECT sku, name, price, quantity, minimum_stock, created_at, updated_at
		FROM stock_items ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, storeErr("list stock items", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		var it entity.StockItem
		if err := rows.Scan(&it.SKU, &it.Name, &it.Price, &it.Quantity, &it.MinimumStock,
			&it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, storeErr("scan stock item", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *StockItemRepo) scanOne(row pgx.Row, op string) (*entity.StockItem, error) {
	var it entity.StockItem
	err := row.Scan(&it.SKU, &it.Name, &it.Price, &it.Quantity, &it.MinimumStock,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return &it, nil
}
