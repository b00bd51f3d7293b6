package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stock-ledger-api/internal/application/auth"
	"github.com/invorya/stock-ledger-api/internal/application/report"
	"github.com/invorya/stock-ledger-api/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC   *stock.StockUseCase
	ReportUC  *report.ReportUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stocks (protegido)
	stocks := protected.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC)
	stocks.Post("/", stockHandler.Create)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/:sku", stockHandler.GetBySKU)
	stocks.Put("/:sku", stockHandler.Update)
	stocks.Patch("/:sku/restock", stockHandler.Restock)
	stocks.Patch("/:sku/sell", stockHandler.Sell)
	stocks.Get("/:sku/logs", stockHandler.GetLogHistory)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/top-selling", reportHandler.TopSelling)
}
