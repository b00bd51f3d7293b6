package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockRequest body para POST /api/stocks.
type CreateStockRequest struct {
	SKU             string          `json:"sku" validate:"required,min=1,max=100"`
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Price           decimal.Decimal `json:"price"`
	InitialQuantity int64           `json:"initial_quantity"`
	MinimumStock    int64           `json:"minimum_stock"`
}

// UpdateStockRequest body para PUT /api/stocks/:sku. Price es obligatorio;
// Name solo se aplica si viene. Quantity no se puede tocar por esta vía.
type UpdateStockRequest struct {
	Price *decimal.Decimal `json:"price"`
	Name  *string          `json:"name" validate:"omitempty,min=1,max=200"`
}

// AdjustStockRequest body para PATCH /api/stocks/:sku/restock y /sell.
type AdjustStockRequest struct {
	Quantity int64 `json:"quantity"`
}

// StockItemResponse salida de un artículo.
type StockItemResponse struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int64           `json:"quantity"`
	MinimumStock int64           `json:"minimum_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AdjustStockResponse salida de restock/venta: el artículo ya mutado y la
// cantidad resultante.
type AdjustStockResponse struct {
	Stock       StockItemResponse `json:"stock"`
	NewQuantity int64             `json:"new_quantity"`
}

// StockListResponse lista paginada de artículos.
type StockListResponse struct {
	Items []StockItemResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// StockLogResponse un registro de la bitácora.
type StockLogResponse struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	StockName    string    `json:"stock_name"`
	Operation    string    `json:"operation"`
	PreQuantity  int64     `json:"pre_quantity"`
	CurrQuantity int64     `json:"curr_quantity"`
	CreatedAt    time.Time `json:"created_at"`
}

// LogListResponse historial de bitácora de un SKU.
type LogListResponse struct {
	Logs  []StockLogResponse `json:"logs"`
	Total int                `json:"total"`
}
