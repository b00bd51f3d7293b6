package entity

import "time"

// Operaciones que mueven inventario. La creación del artículo no genera
// registro: establece la línea base, no es un delta.
const (
	OperationRestock = "RESTOCK" // entrada, delta positivo
	OperationSell    = "SELL"    // venta, delta negativo
)

// StockLog es un registro inmutable de la bitácora (append-only).
// StockName es una copia del nombre al momento de la operación; renombrar
// el artículo después no reescribe la historia.
type StockLog struct {
	ID           string
	SKU          string
	StockName    string
	Operation    string // RESTOCK | SELL
	PreQuantity  int64
	CurrQuantity int64
	CreatedAt    time.Time
}

// Delta devuelve el cambio con signo de la operación (curr - pre).
func (l StockLog) Delta() int64 {
	return l.CurrQuantity - l.PreQuantity
}
