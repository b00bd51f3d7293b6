package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// StockItem representa un artículo del inventario, identificado por su SKU.
// Quantity nunca queda negativo tras una mutación confirmada; solo cambia
// vía operaciones de restock/venta que dejan registro en la bitácora.
type StockItem struct {
	SKU          string          // identificador único, inmutable, en minúsculas
	Name         string
	Price        decimal.Decimal // precio de venta actual
	Quantity     int64
	MinimumStock int64 // umbral para el reporte de bajo stock (comparación estricta <)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeSKU normaliza el identificador: NFC + minúsculas + sin espacios
// en los extremos. Dos escrituras Unicode del mismo SKU deben colisionar.
func NormalizeSKU(sku string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(sku)))
}
