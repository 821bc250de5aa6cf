package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Atelier-api/internal/application/costing"
	"github.com/jhoicas/Atelier-api/internal/application/ledger"
	"github.com/jhoicas/Atelier-api/internal/application/orders"
	"github.com/jhoicas/Atelier-api/internal/application/pricing"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC      *ledger.UseCase
	CreateOrderUC *orders.CreateUseCase
	OrderStatusUC *orders.StatusUseCase
	OrderRepo     repository.OrderRepository
	CostingUC     *costing.UseCase
	PricingUC     *pricing.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Toda la API va detrás de Bearer Token; solo /health queda público.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stock (protegido)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC)
	stock.Post("/receive", stockHandler.Receive)
	stock.Post("/consume", stockHandler.Consume)
	// El ajuste manual reescribe la existencia: solo admin
	stock.Post("/adjust", RequireRole("admin"), stockHandler.Adjust)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Get("/stats", stockHandler.Stats)

	// Orders (protegido)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CreateOrderUC, deps.OrderStatusUC, deps.OrderRepo)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/:id", orderHandler.Get)
	ordersGroup.Patch("/:id/status", orderHandler.SetStatus)

	// Pictures: costos y precios (protegido)
	pictures := protected.Group("/pictures")
	pictureHandler := NewPictureHandler(deps.CostingUC, deps.PricingUC)
	pictures.Post("/recalculate-costs", pictureHandler.RecalculateCosts)
	pictures.Post("/:id/cost", pictureHandler.CalculateCost)
	pictures.Get("/:id/recommended-price", pictureHandler.RecommendedPrice)
}
