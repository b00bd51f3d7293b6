package stock

import (
	"context"

	"github.com/invorya/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación de cantidad y el
// append a la bitácora se confirmen (o descarten) como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		logRepo repository.StockLogRepository,
	) error) error
}
