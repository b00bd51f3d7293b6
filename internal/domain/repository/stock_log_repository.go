package repository

import (
	"context"

	"github.com/invorya/stock-ledger-api/internal/domain/entity"
)

// StockLogRepository define el puerto para la bitácora append-only.
// No hay update ni delete: los registros son inmutables.
type StockLogRepository interface {
	Append(ctx context.Context, log *entity.StockLog) error
	// ListBySKU devuelve los registros de un SKU en orden de inserción.
	ListBySKU(ctx context.Context, sku string) ([]*entity.StockLog, error)
}
