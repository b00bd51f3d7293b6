package repository

import (
	"context"
	"time"

	"github.com/invorya/stock-ledger-api/internal/domain/entity"
)

// StockItemRepository define el puerto de persistencia para artículos.
// Los métodos devuelven nil (sin error) cuando el artículo no existe.
type StockItemRepository interface {
	// Create persiste un artículo nuevo. Devuelve domain.ErrDuplicate si el SKU ya existe.
	Create(ctx context.Context, item *entity.StockItem) error
	GetBySKU(ctx context.Context, sku string) (*entity.StockItem, error)
	// GetBySKUForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Usar solo dentro de una transacción (TxRunner).
	GetBySKUForUpdate(ctx context.Context, sku string) (*entity.StockItem, error)
	// Update actualiza name y price. Quantity no se toca por esta vía.
	Update(ctx context.Context, item *entity.StockItem) error
	// UpdateQuantity escribe la cantidad resultante de una mutación ya validada.
	UpdateQuantity(ctx context.Context, sku string, quantity int64, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*entity.StockItem, error)
}
