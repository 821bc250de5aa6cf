package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/costing"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/jhoicas/Atelier-api/pkg/logger"
)

// statsWindow ventana de la métrica de movimientos recientes.
const statsWindow = 7 * 24 * time.Hour

// UseCase implementa el libro de movimientos de inventario: entradas, consumos y
// ajustes, cada uno como una unidad atómica (una fila de movimiento nueva y una
// existencia actualizada, o nada).
type UseCase struct {
	txRunner  TxRunner
	movRepo   repository.MaterialMovementRepository
	statsRepo repository.StatsRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso. movRepo y statsRepo van sobre el pool
// (solo lectura); las mutaciones pasan siempre por txRunner.
func NewUseCase(txRunner TxRunner, movRepo repository.MaterialMovementRepository, statsRepo repository.StatsRepository, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, movRepo: movRepo, statsRepo: statsRepo, log: log}
}

// ReceiveInput entrada de material al inventario (compra o devolución).
// UnitCost opcional: si viene, actualiza el costo promedio ponderado del material.
type ReceiveInput struct {
	MaterialID string
	Quantity   decimal.Decimal
	UnitCost   *decimal.Decimal
	Reason     string
	RefID      string
	RefKind    string
	Notes      string
}

// ReceiveResult resultado de una entrada.
type ReceiveResult struct {
	NewQuantity decimal.Decimal
}

// Receive incrementa la existencia del material (creándola en cero si no existe),
// anexa un movimiento IN y, si la entrada trae costo unitario, recalcula el costo
// promedio ponderado del material. Quantity <= 0 es ErrInvalidInput.
func (uc *UseCase) Receive(ctx context.Context, in ReceiveInput) (*ReceiveResult, error) {
	if in.MaterialID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var result ReceiveResult
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MaterialMovementRepository,
		materialRepo repository.MaterialRepository,
	) error {
		material, err := materialRepo.GetByID(in.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		// Bloquea la fila de existencias (SELECT FOR UPDATE)
		stock, err := stockRepo.GetForUpdate(in.MaterialID)
		if err != nil {
			return err
		}
		if in.UnitCost != nil {
			newCost := costing.WeightedAverage(stock.Quantity, material.Cost, in.Quantity, *in.UnitCost)
			if err := materialRepo.UpdateCost(in.MaterialID, newCost); err != nil {
				return err
			}
		}
		stock.Quantity = stock.Quantity.Add(in.Quantity)
		stock.UpdatedAt = time.Now()
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		result.NewQuantity = stock.Quantity
		return movRepo.Create(&entity.MaterialMovement{
			ID:         uuid.New().String(),
			MaterialID: in.MaterialID,
			Type:       entity.MovementTypeIN,
			Quantity:   in.Quantity,
			Delta:      in.Quantity,
			Reason:     in.Reason,
			RefID:      in.RefID,
			RefKind:    in.RefKind,
			Notes:      in.Notes,
			CreatedAt:  time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ConsumeInput salida de material del inventario (consumo de producción).
type ConsumeInput struct {
	MaterialID string
	Quantity   decimal.Decimal
	Reason     string
	RefID      string
	RefKind    string
	Notes      string
}

// ConsumeResult resultado de un consumo. WentNegative señala backorder: la
// existencia quedó por debajo de cero, condición permitida que el caller puede
// alertar pero que nunca hace fallar la operación.
type ConsumeResult struct {
	NewQuantity  decimal.Decimal
	WentNegative bool
}

// Consume decrementa la existencia del material incluso por debajo de cero y anexa
// un movimiento OUT. Quantity <= 0 es ErrInvalidInput; stock insuficiente no es error.
func (uc *UseCase) Consume(ctx context.Context, in ConsumeInput) (*ConsumeResult, error) {
	if in.MaterialID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var result *ConsumeResult
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MaterialMovementRepository,
		materialRepo repository.MaterialRepository,
	) error {
		var err error
		result, err = uc.ConsumeInTx(stockRepo, movRepo, materialRepo, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	if result.WentNegative {
		uc.log.Warn().
			Str("material_id", in.MaterialID).
			Str("quantity", in.Quantity.String()).
			Str("new_quantity", result.NewQuantity.String()).
			Str("reason", in.Reason).
			Msg("existencia en negativo (backorder)")
	}
	return result, nil
}

// ConsumeInTx ejecuta el consumo con los repositorios proporcionados (misma
// transacción del caller). Lo usa la máquina de estados de pedidos para descontar
// el BOM de cada cuadro en su propia sub-transacción.
func (uc *UseCase) ConsumeInTx(
	stockRepo repository.StockRepository,
	movRepo repository.MaterialMovementRepository,
	materialRepo repository.MaterialRepository,
	in ConsumeInput,
) (*ConsumeResult, error) {
	material, err := materialRepo.GetByID(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := stockRepo.GetForUpdate(in.MaterialID)
	if err != nil {
		return nil, err
	}
	stock.Quantity = stock.Quantity.Sub(in.Quantity)
	stock.UpdatedAt = time.Now()
	if err := stockRepo.Upsert(stock); err != nil {
		return nil, err
	}
	if err := movRepo.Create(&entity.MaterialMovement{
		ID:         uuid.New().String(),
		MaterialID: in.MaterialID,
		Type:       entity.MovementTypeOUT,
		Quantity:   in.Quantity,
		Delta:      in.Quantity.Neg(),
		Reason:     in.Reason,
		RefID:      in.RefID,
		RefKind:    in.RefKind,
		Notes:      in.Notes,
		CreatedAt:  time.Now(),
	}); err != nil {
		return nil, err
	}
	return &ConsumeResult{
		NewQuantity:  stock.Quantity,
		WentNegative: stock.Quantity.IsNegative(),
	}, nil
}

// ReceiveInTx ejecuta una entrada con los repositorios del caller (misma transacción).
// Lo usa la cancelación de pedidos para devolver al inventario lo consumido.
func (uc *UseCase) ReceiveInTx(
	stockRepo repository.StockRepository,
	movRepo repository.MaterialMovementRepository,
	materialRepo repository.MaterialRepository,
	in ReceiveInput,
) (*ReceiveResult, error) {
	material, err := materialRepo.GetByID(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := stockRepo.GetForUpdate(in.MaterialID)
	if err != nil {
		return nil, err
	}
	stock.Quantity = stock.Quantity.Add(in.Quantity)
	stock.UpdatedAt = time.Now()
	if err := stockRepo.Upsert(stock); err != nil {
		return nil, err
	}
	if err := movRepo.Create(&entity.MaterialMovement{
		ID:         uuid.New().String(),
		MaterialID: in.MaterialID,
		Type:       entity.MovementTypeIN,
		Quantity:   in.Quantity,
		Delta:      in.Quantity,
		Reason:     in.Reason,
		RefID:      in.RefID,
		RefKind:    in.RefKind,
		Notes:      in.Notes,
		CreatedAt:  time.Now(),
	}); err != nil {
		return nil, err
	}
	return &ReceiveResult{NewQuantity: stock.Quantity}, nil
}

// AdjustInput ajuste manual a una cantidad objetivo (conteo físico).
type AdjustInput struct {
	MaterialID  string
	NewQuantity decimal.Decimal
	Reason      string
	Notes       string
}

// AdjustResult resultado del ajuste: cantidades antes y después, y el delta aplicado.
type AdjustResult struct {
	OldQuantity decimal.Decimal
	NewQuantity decimal.Decimal
	Delta       decimal.Decimal
}

// Adjust fija la existencia exactamente en NewQuantity (creando la fila si no existe)
// y anexa un movimiento ADJUSTMENT cuya magnitud registrada es |delta|.
func (uc *UseCase) Adjust(ctx context.Context, in AdjustInput) (*AdjustResult, error) {
	if in.MaterialID == "" {
		return nil, domain.ErrInvalidInput
	}
	var result AdjustResult
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MaterialMovementRepository,
		materialRepo repository.MaterialRepository,
	) error {
		material, err := materialRepo.GetByID(in.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		stock, err := stockRepo.GetForUpdate(in.MaterialID)
		if err != nil {
			return err
		}
		delta := in.NewQuantity.Sub(stock.Quantity)
		result = AdjustResult{OldQuantity: stock.Quantity, NewQuantity: in.NewQuantity, Delta: delta}
		stock.Quantity = in.NewQuantity
		stock.UpdatedAt = time.Now()
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		return movRepo.Create(&entity.MaterialMovement{
			ID:         uuid.New().String(),
			MaterialID: in.MaterialID,
			Type:       entity.MovementTypeADJUSTMENT,
			Quantity:   delta.Abs(),
			Delta:      delta,
			Reason:     in.Reason,
			Notes:      in.Notes,
			CreatedAt:  time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListMovements lista movimientos del más reciente al más antiguo, paginado.
// materialID vacío lista todos los materiales.
func (uc *UseCase) ListMovements(ctx context.Context, materialID string, limit, offset int) ([]*entity.MaterialMovement, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movRepo.List(materialID, limit, offset)
}

// Stats devuelve los agregados del inventario con la ventana de movimientos por defecto.
func (uc *UseCase) Stats(ctx context.Context) (*repository.LedgerStats, error) {
	return uc.statsRepo.LedgerStats(statsWindow)
}
