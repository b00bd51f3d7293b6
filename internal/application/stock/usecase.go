package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invorya/stock-ledger-api/internal/application/dto"
	"github.com/invorya/stock-ledger-api/internal/domain"
	"github.com/invorya/stock-ledger-api/internal/domain/entity"
	"github.com/invorya/stock-ledger-api/internal/domain/repository"
)

// StockUseCase aplica las mutaciones de inventario con su protocolo de
// bitácora: cada cambio de cantidad confirmado produce exactamente un
// registro append-only, dentro de la misma transacción y con bloqueo de
// fila (SELECT FOR UPDATE) para serializar mutaciones concurrentes por SKU.
type StockUseCase struct {
	txRunner TxRunner
	itemRepo repository.StockItemRepository
	logRepo  repository.StockLogRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, itemRepo repository.StockItemRepository, logRepo repository.StockLogRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, itemRepo: itemRepo, logRepo: logRepo}
}

// Create registra un artículo nuevo con su cantidad inicial. La creación no
// genera registro en bitácora: establece la línea base, no es un delta.
func (uc *StockUseCase) Create(ctx context.Context, in dto.CreateStockRequest) (*dto.StockItemResponse, error) {
	sku := entity.NormalizeSKU(in.SKU)
	if sku == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQuantity < 0 || in.MinimumStock < 0 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.itemRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	item := &entity.StockItem{
		SKU:          sku,
		Name:         in.Name,
		Price:        in.Price,
		Quantity:     in.InitialQuantity,
		MinimumStock: in.MinimumStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// El constraint de PK cubre la carrera entre el GetBySKU y este insert.
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toStockResponse(item), nil
}

// UpdatePrice actualiza precio (y opcionalmente nombre). No toca Quantity y
// no genera registro en bitácora: un cambio de precio no mueve inventario.
func (uc *StockUseCase) UpdatePrice(ctx context.Context, sku string, in dto.UpdateStockRequest) (*dto.StockItemResponse, error) {
	sku = entity.NormalizeSKU(sku)
	if in.Price == nil || !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != nil && *in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.Price = *in.Price
	if in.Name != nil {
		item.Name = *in.Name
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toStockResponse(item), nil
}

// Restock suma quantity (> 0) al artículo y registra RESTOCK en bitácora.
// Sin tope superior. Update de cantidad y append van en la misma transacción.
func (uc *StockUseCase) Restock(ctx context.Context, sku string, quantity int64) (*dto.AdjustStockResponse, error) {
	return uc.applyDelta(ctx, sku, quantity, entity.OperationRestock)
}

// Sell resta quantity (> 0) del artículo y registra SELL en bitácora.
// Vender hasta dejar la cantidad exactamente en cero es válido; por debajo
// de cero es ErrInsufficientStock y no queda mutación ni registro.
func (uc *StockUseCase) Sell(ctx context.Context, sku string, quantity int64) (*dto.AdjustStockResponse, error) {
	return uc.applyDelta(ctx, sku, -quantity, entity.OperationSell)
}

// applyDelta ejecuta la secuencia leer-verificar-escribir-registrar de forma
// atómica por SKU: bloquea la fila, valida el invariante de no-negatividad,
// persiste la cantidad nueva y agrega el registro. Si el append falla, el
// rollback descarta también el update de cantidad.
func (uc *StockUseCase) applyDelta(ctx context.Context, sku string, delta int64, operation string) (*dto.AdjustStockResponse, error) {
	sku = entity.NormalizeSKU(sku)
	if sku == "" || delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	if operation == entity.OperationRestock && delta < 0 {
		return nil, domain.ErrInvalidInput
	}
	if operation == entity.OperationSell && delta > 0 {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.AdjustStockResponse
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		logRepo repository.StockLogRepository,
	) error {
		item, err := itemRepo.GetBySKUForUpdate(ctx, sku)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		preQuantity := item.Quantity
		newQuantity := preQuantity + delta
		if newQuantity < 0 {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		if err := itemRepo.UpdateQuantity(ctx, sku, newQuantity, now); err != nil {
			return err
		}
		log := &entity.StockLog{
			ID:           uuid.New().String(),
			SKU:          sku,
			StockName:    item.Name, // copia del nombre al momento de operar
			Operation:    operation,
			PreQuantity:  preQuantity,
			CurrQuantity: newQuantity,
			CreatedAt:    now,
		}
		if err := logRepo.Append(ctx, log); err != nil {
			return err
		}

		item.Quantity = newQuantity
		item.UpdatedAt = now
		out = &dto.AdjustStockResponse{
			Stock:       *toStockResponse(item),
			NewQuantity: newQuantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetLogHistory devuelve la bitácora de un SKU en orden de inserción.
// Sin registros es ErrNotFound (contrato del endpoint original).
func (uc *StockUseCase) GetLogHistory(ctx context.Context, sku string) (*dto.LogListResponse, error) {
	sku = entity.NormalizeSKU(sku)
	if sku == "" {
		return nil, domain.ErrInvalidInput
	}
	logs, err := uc.logRepo.ListBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, domain.ErrNotFound
	}
	items := make([]dto.StockLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, *toLogResponse(l))
	}
	return &dto.LogListResponse{Logs: items, Total: len(items)}, nil
}

// GetBySKU obtiene un artículo por SKU.
func (uc *StockUseCase) GetBySKU(ctx context.Context, sku string) (*dto.StockItemResponse, error) {
	item, err := uc.itemRepo.GetBySKU(ctx, entity.NormalizeSKU(sku))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toStockResponse(item), nil
}

// List lista artículos con paginación.
func (uc *StockUseCase) List(ctx context.Context, limit, offset int) (*dto.StockListResponse, error) {
	list, err := uc.itemRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toStockResponse(it))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toStockResponse(item *entity.StockItem) *dto.StockItemResponse {
	if item == nil {
		return nil
	}
	return &dto.StockItemResponse{
		SKU:          item.SKU,
		Name:         item.Name,
		Price:        item.Price,
		Quantity:     item.Quantity,
		MinimumStock: item.MinimumStock,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func toLogResponse(l *entity.StockLog) *dto.StockLogResponse {
	if l == nil {
		return nil
	}
	return &dto.StockLogResponse{
		ID:           l.ID,
		SKU:          l.SKU,
		StockName:    l.StockName,
		Operation:    l.Operation,
		PreQuantity:  l.PreQuantity,
		CurrQuantity: l.CurrQuantity,
		CreatedAt:    l.CreatedAt,
	}
}
