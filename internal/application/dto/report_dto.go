package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockResponse artículos con cantidad por debajo de su mínimo configurado.
type LowStockResponse struct {
	Items []StockItemResponse `json:"items"`
	Total int                 `json:"total"`
}

// SalesReportRowDTO ventas agregadas de un SKU en el período.
// Revenue = precio actual × unidades vendidas (simplificación deliberada:
// no es el precio histórico al momento de cada venta).
type SalesReportRowDTO struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	TotalSold int64           `json:"total_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// SalesReportResponse reporte de ventas del período [start, end].
type SalesReportResponse struct {
	Start time.Time           `json:"start"`
	End   time.Time           `json:"end"`
	Rows  []SalesReportRowDTO `json:"rows"`
}

// TopSellingRowDTO un SKU del ranking de más vendidos.
type TopSellingRowDTO struct {
	SKU       string `json:"sku"`
	TotalSold int64  `json:"total_sold"`
}

// TopSellingResponse ranking de más vendidos del período, mayor a menor.
type TopSellingResponse struct {
	Start time.Time          `json:"start"`
	End   time.Time          `json:"end"`
	Limit int                `json:"limit"`
	Items []TopSellingRowDTO `json:"items"`
}
