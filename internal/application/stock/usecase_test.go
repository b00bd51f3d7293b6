package stock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stock-ledger-api/internal/application/dto"
	"github.com/invorya/stock-ledger-api/internal/application/stock"
	"github.com/invorya/stock-ledger-api/internal/domain"
	"github.com/invorya/stock-ledger-api/internal/domain/entity"
	"github.com/invorya/stock-ledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (protegidos con mutex para los tests de concurrencia)
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.StockItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.StockItem)}
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.SKU]; ok {
		return domain.ErrDuplicate
	}
	cp := *item
	r.items[item.SKU] = &cp
	return nil
}

func (r *fakeItemRepo) GetBySKU(_ context.Context, sku string) (*entity.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[sku]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeItemRepo) GetBySKUForUpdate(ctx context.Context, sku string) (*entity.StockItem, error) {
	// El bloqueo real lo da la transacción; aquí el txRunner serializa.
	return r.GetBySKU(ctx, sku)
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[item.SKU]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Name = item.Name
	stored.Price = item.Price
	stored.UpdatedAt = item.UpdatedAt
	return nil
}

func (r *fakeItemRepo) UpdateQuantity(_ context.Context, sku string, quantity int64, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[sku]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Quantity = quantity
	stored.UpdatedAt = updatedAt
	return nil
}

func (r *fakeItemRepo) List(_ context.Context, limit, offset int) ([]*entity.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.StockItem, 0, len(r.items))
	for _, it := range r.items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

type fakeLogRepo struct {
	mu   sync.Mutex
	logs []*entity.StockLog
}

func (r *fakeLogRepo) Append(_ context.Context, log *entity.StockLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *log
	r.logs = append(r.logs, &cp)
	return nil
}

func (r *fakeLogRepo) ListBySKU(_ context.Context, sku string) ([]*entity.StockLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.StockLog, 0)
	for _, l := range r.logs {
		if l.SKU == sku {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeTxRunner serializa las mutaciones con un mutex, como lo haría el
// SELECT FOR UPDATE sobre la fila en PostgreSQL.
type fakeTxRunner struct {
	mu       sync.Mutex
	itemRepo repository.StockItemRepository
	logRepo  repository.StockLogRepository
}

func (tx *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.StockItemRepository,
	logRepo repository.StockLogRepository,
) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return fn(tx.itemRepo, tx.logRepo)
}

func newTestUseCase() (*stock.StockUseCase, *fakeItemRepo, *fakeLogRepo) {
	itemRepo := newFakeItemRepo()
	logRepo := &fakeLogRepo{}
	txRunner := &fakeTxRunner{itemRepo: itemRepo, logRepo: logRepo}
	return stock.NewStockUseCase(txRunner, itemRepo, logRepo), itemRepo, logRepo
}

func createItem(t *testing.T, uc *stock.StockUseCase, sku string, quantity int64) *dto.StockItemResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), dto.CreateStockRequest{
		SKU:             sku,
		Name:            "Teclado mecánico",
		Price:           decimal.NewFromFloat(125.50),
		InitialQuantity: quantity,
		MinimumStock:    2,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NoGeneraRegistroEnBitacora(t *testing.T) {
	uc, _, logRepo := newTestUseCase()
	out := createItem(t, uc, "SKU-001", 10)

	assert.Equal(t, "sku-001", out.SKU, "el SKU se guarda normalizado en minúsculas")
	assert.Equal(t, int64(10), out.Quantity)

	// La creación establece la línea base: la bitácora queda vacía.
	assert.Empty(t, logRepo.logs, "crear un artículo no debe producir registros")

	_, err := uc.GetLogHistory(context.Background(), "SKU-001")
	assert.ErrorIs(t, err, domain.ErrNotFound, "sin registros el historial es not found")
}

func TestCreate_SKUDuplicadoNoPisaElExistente(t *testing.T) {
	uc, itemRepo, _ := newTestUseCase()
	createItem(t, uc, "sku-001", 10)

	_, err := uc.Create(context.Background(), dto.CreateStockRequest{
		SKU:             "SKU-001", // mismo SKU con otra capitalización
		Name:            "Otro nombre",
		Price:           decimal.NewFromInt(1),
		InitialQuantity: 99,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	stored, err := itemRepo.GetBySKU(context.Background(), "sku-001")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Teclado mecánico", stored.Name, "el artículo original no debe modificarse")
	assert.Equal(t, int64(10), stored.Quantity)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateStockRequest
	}{
		{"sku vacío", dto.CreateStockRequest{SKU: "  ", Name: "x", Price: decimal.NewFromInt(1)}},
		{"nombre vacío", dto.CreateStockRequest{SKU: "a", Name: "", Price: decimal.NewFromInt(1)}},
		{"precio cero", dto.CreateStockRequest{SKU: "a", Name: "x", Price: decimal.Zero}},
		{"precio negativo", dto.CreateStockRequest{SKU: "a", Name: "x", Price: decimal.NewFromInt(-5)}},
		{"cantidad inicial negativa", dto.CreateStockRequest{SKU: "a", Name: "x", Price: decimal.NewFromInt(1), InitialQuantity: -1}},
		{"mínimo negativo", dto.CreateStockRequest{SKU: "a", Name: "x", Price: decimal.NewFromInt(1), MinimumStock: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreate_CantidadInicialCeroEsValida(t *testing.T) {
	uc, _, _ := newTestUseCase()
	out := createItem(t, uc, "sku-vacio", 0)
	assert.Equal(t, int64(0), out.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restock / Sell
// ──────────────────────────────────────────────────────────────────────────────

func TestRestock_SumaYRegistraExactamenteUnaVez(t *testing.T) {
	uc, _, logRepo := newTestUseCase()
	createItem(t, uc, "sku-001", 5)

	out, err := uc.Restock(context.Background(), "sku-001", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(8), out.NewQuantity)
	assert.Equal(t, int64(8), out.Stock.Quantity)

	require.Len(t, logRepo.logs, 1, "una mutación confirmada produce exactamente un registro")
	log := logRepo.logs[0]
	assert.Equal(t, entity.OperationRestock, log.Operation)
	assert.Equal(t, int64(5), log.PreQuantity)
	assert.Equal(t, int64(8), log.CurrQuantity)
	assert.Equal(t, int64(3), log.Delta())
	assert.Equal(t, "Teclado mecánico", log.StockName, "el registro copia el nombre al momento de operar")
	assert.NotEmpty(t, log.ID)
}

func TestSell_RestaYRegistra(t *testing.T) {
	uc, _, logRepo := newTestUseCase()
	createItem(t, uc, "sku-001", 10)

	out, err := uc.Sell(context.Background(), "sku-001", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), out.NewQuantity)

	require.Len(t, logRepo.logs, 1)
	assert.Equal(t, entity.OperationSell, logRepo.logs[0].Operation)
	assert.Equal(t, int64(-4), logRepo.logs[0].Delta())
}

func TestSell_HastaCeroEsValido(t *testing.T) {
	uc, _, logRepo := newTestUseCase()
	createItem(t, uc, "sku-001", 5)

	// Vender el inventario completo deja la cantidad exactamente en cero.
	out, err := uc.Sell(context.Background(), "sku-001", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.NewQuantity)

	require.Len(t, logRepo.logs, 1)
	assert.Equal(t, int64(5), logRepo.logs[0].PreQuantity)
	assert.Equal(t, int64(0), logRepo.logs[0].CurrQuantity)
}

func TestSell_InsuficienteNoMutaNiRegistra(t *testing.T) {
	uc, itemRepo, logRepo := newTestUseCase()
	createItem(t, uc, "sku-001", 3)

	_, err := uc.Sell(context.Background(), "sku-001", 4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Todo o nada: ni venta parcial ni registro en bitácora.
	stored, _ := itemRepo.GetBySKU(context.Background(), "sku-001")
	assert.Equal(t, int64(3), stored.Quantity, "la cantidad no debe cambiar")
	assert.Empty(t, logRepo.logs, "una mutación rechazada no deja registro")
}

func TestSell_ArticuloInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.Sell(context.Background(), "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAjuste_CantidadInvalida(t *testing.T) {
	uc, _, logRepo := newTestUseCase()
	createItem(t, uc, "sku-001", 5)
	ctx := context.Background()

	_, err := uc.Restock(ctx, "sku-001", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Restock(ctx, "sku-001", -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Sell(ctx, "sku-001", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Sell(ctx, "sku-001", -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, logRepo.logs)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdatePrice
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdatePrice_NoTocaCantidadNiBitacora(t *testing.T) {
	uc, _, logRepo := newTestUseCase()
	createItem(t, uc, "sku-001", 7)

	newPrice := decimal.NewFromFloat(199.99)
	out, err := uc.UpdatePrice(context.Background(), "sku-001", dto.UpdateStockRequest{Price: &newPrice})
	require.NoError(t, err)

	assert.True(t, out.Price.Equal(newPrice))
	assert.Equal(t, int64(7), out.Quantity, "cambiar el precio no mueve inventario")
	assert.Empty(t, logRepo.logs)
}

func TestUpdatePrice_PrecioRequeridoYPositivo(t *testing.T) {
	uc, _, _ := newTestUseCase()
	createItem(t, uc, "sku-001", 7)
	ctx := context.Background()

	_, err := uc.UpdatePrice(ctx, "sku-001", dto.UpdateStockRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	zero := decimal.Zero
	_, err = uc.UpdatePrice(ctx, "sku-001", dto.UpdateStockRequest{Price: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdatePrice_ArticuloInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase()
	price := decimal.NewFromInt(10)
	_, err := uc.UpdatePrice(context.Background(), "no-existe", dto.UpdateStockRequest{Price: &price})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bitácora
// ──────────────────────────────────────────────────────────────────────────────

// La bitácora debe reconstruir el saldo: cantidad inicial + Σ deltas == saldo
// actual, y cada registro encadena con el anterior (pre == curr previo).
func TestBitacora_ReproduceElSaldo(t *testing.T) {
	uc, itemRepo, _ := newTestUseCase()
	createItem(t, uc, "sku-001", 10)
	ctx := context.Background()

	type op struct {
		sell     bool
		quantity int64
	}
	ops := []op{
		{false, 5},  // 15
		{true, 8},   // 7
		{false, 20}, // 27
		{true, 27},  // 0
		{false, 4},  // 4
	}
	for _, o := range ops {
		var err error
		if o.sell {
			_, err = uc.Sell(ctx, "sku-001", o.quantity)
		} else {
			_, err = uc.Restock(ctx, "sku-001", o.quantity)
		}
		require.NoError(t, err)
	}

	history, err := uc.GetLogHistory(ctx, "sku-001")
	require.NoError(t, err)
	require.Len(t, history.Logs, len(ops))

	balance := int64(10)
	for i, l := range history.Logs {
		assert.Equal(t, balance, l.PreQuantity, "el registro %d debe encadenar con el anterior", i)
		balance = l.CurrQuantity
	}

	stored, _ := itemRepo.GetBySKU(ctx, "sku-001")
	assert.Equal(t, stored.Quantity, balance, "reproducir la bitácora debe dar el saldo actual")
	assert.Equal(t, int64(4), balance)
}

func TestGetLogHistory_SKUVacioEsInvalido(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.GetLogHistory(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// N ventas concurrentes de 1 unidad contra un inventario de N: todas deben
// confirmarse, el saldo final es cero y quedan exactamente N registros.
// Sin la serialización por SKU esto perdería updates.
func TestSell_ConcurrenteSinPerdidaDeUpdates(t *testing.T) {
	const n = 50
	uc, itemRepo, logRepo := newTestUseCase()
	createItem(t, uc, "sku-001", n)

	var wg sync.WaitGroup
	var success atomic.Int32
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Sell(context.Background(), "sku-001", 1); err == nil {
				success.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(n), success.Load(), "todas las ventas deben confirmarse")

	stored, _ := itemRepo.GetBySKU(context.Background(), "sku-001")
	assert.Equal(t, int64(0), stored.Quantity)
	assert.Len(t, logRepo.logs, n, "cada venta confirmada deja exactamente un registro")
}

// Más demanda que inventario: solo sobran rechazos, nunca saldo negativo.
func TestSell_ConcurrenteSobredemanda(t *testing.T) {
	const inventory = 30
	const requests = 50
	uc, itemRepo, logRepo := newTestUseCase()
	createItem(t, uc, "sku-001", inventory)

	var wg sync.WaitGroup
	var success, rejected atomic.Int32
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Sell(context.Background(), "sku-001", 1)
			switch {
			case err == nil:
				success.Add(1)
			case err == domain.ErrInsufficientStock:
				rejected.Add(1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(inventory), success.Load())
	assert.Equal(t, int32(requests-inventory), rejected.Load())

	stored, _ := itemRepo.GetBySKU(context.Background(), "sku-001")
	assert.Equal(t, int64(0), stored.Quantity, "el saldo nunca queda negativo")
	assert.Len(t, logRepo.logs, inventory, "solo las ventas confirmadas dejan registro")
}
