package orders

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// OrderTxRunner ejecuta la creación de un pedido (cabecera, cuadros y BOM) en una
// sola transacción, con repositorios atados a esa tx.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		pictureRepo repository.PictureRepository,
		bomRepo repository.PictureMaterialRepository,
	) error) error
}

// ConsumptionTxRunner ejecuta el consumo (o la devolución) de materiales de UN cuadro
// como sub-transacción propia: el fallo de un cuadro no revierte el cambio de estado
// ni el consumo de los demás cuadros del pedido.
type ConsumptionTxRunner interface {
	RunConsumption(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.MaterialMovementRepository,
		materialRepo repository.MaterialRepository,
		bomRepo repository.PictureMaterialRepository,
		templateRepo repository.BOMTemplateRepository,
		consumptionRepo repository.OrderConsumptionRepository,
	) error) error
}
