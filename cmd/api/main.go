package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Atelier-api/internal/application/costing"
	"github.com/jhoicas/Atelier-api/internal/application/ledger"
	"github.com/jhoicas/Atelier-api/internal/application/orders"
	"github.com/jhoicas/Atelier-api/internal/application/pricing"
	dompricing "github.com/jhoicas/Atelier-api/internal/domain/pricing"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Atelier-api/internal/interfaces/http"
	"github.com/jhoicas/Atelier-api/pkg/config"
	"github.com/jhoicas/Atelier-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	materialRepo := postgres.NewMaterialRepository(pool)
	movementRepo := postgres.NewMaterialMovementRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	pictureRepo := postgres.NewPictureRepository(pool)
	bomRepo := postgres.NewPictureMaterialRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	consumptionRepo := postgres.NewOrderConsumptionRepository(pool)
	counterRepo := postgres.NewOrderCounterRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewUseCase(txRunner, movementRepo, statsRepo, log)

	numbering := orders.NewNumberingService(counterRepo, orderRepo)
	numbering.SetDefaultPrefix(cfg.Orders.NumberPrefix)
	createOrderUC := orders.NewCreateUseCase(txRunner, numbering, pictureRepo, bomRepo)
	orderStatusUC := orders.NewStatusUseCase(txRunner, orderRepo, pictureRepo, consumptionRepo, ledgerUC, log)

	costingUC := costing.NewUseCase(pictureRepo, bomRepo, materialRepo, log)
	pricingUC := pricing.NewUseCase(pictureRepo, costingUC, dompricing.Settings{
		MarkupPercentage:     decimal.NewFromFloat(cfg.Pricing.MarkupPercentage),
		MinPrice:             decimal.NewFromFloat(cfg.Pricing.MinPrice),
		MaxPrice:             decimal.NewFromFloat(cfg.Pricing.MaxPrice),
		ComplexityMultiplier: decimal.NewFromFloat(cfg.Pricing.ComplexityMultiplier),
		SizeMultiplier:       decimal.NewFromFloat(cfg.Pricing.SizeMultiplier),
		UrgencyMultiplier:    decimal.NewFromFloat(cfg.Pricing.UrgencyMultiplier),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Atelier API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:      ledgerUC,
		CreateOrderUC: createOrderUC,
		OrderStatusUC: orderStatusUC,
		OrderRepo:     orderRepo,
		CostingUC:     costingUC,
		PricingUC:     pricingUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
