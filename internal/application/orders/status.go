package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Atelier-api/internal/application/ledger"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	domorder "github.com/jhoicas/Atelier-api/internal/domain/order"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/jhoicas/Atelier-api/pkg/logger"
)

// StatusUseCase es la máquina de estados de pedidos y la única vía sancionada para
// cambiar Order.Status. Al entrar a estados de producción descuenta el BOM de cada
// cuadro del inventario exactamente una vez por pedido; al cancelar devuelve
// exactamente lo consumido. Los fallos por cuadro no bloquean la persistencia del
// estado: se recogen como advertencias.
type StatusUseCase struct {
	txRunner        ConsumptionTxRunner
	orderRepo       repository.OrderRepository
	pictureRepo     repository.PictureRepository
	consumptionRepo repository.OrderConsumptionRepository
	ledgerUC        *ledger.UseCase
	log             *logger.Logger
}

// NewStatusUseCase construye la máquina de estados.
func NewStatusUseCase(
	txRunner ConsumptionTxRunner,
	orderRepo repository.OrderRepository,
	pictureRepo repository.PictureRepository,
	consumptionRepo repository.OrderConsumptionRepository,
	ledgerUC *ledger.UseCase,
	log *logger.Logger,
) *StatusUseCase {
	return &StatusUseCase{
		txRunner:        txRunner,
		orderRepo:       orderRepo,
		pictureRepo:     pictureRepo,
		consumptionRepo: consumptionRepo,
		ledgerUC:        ledgerUC,
		log:             log,
	}
}

// SetStatusResult pedido actualizado más las advertencias no fatales de los efectos
// sobre inventario.
type SetStatusResult struct {
	Order    *entity.Order
	Warnings []domain.CascadeWarning
}

// SetStatus valida la transición contra la tabla, persiste el nuevo estado y dispara
// los efectos sobre el inventario. El cambio de estado se persiste aunque falle el
// consumo o la devolución de algún cuadro.
func (uc *StatusUseCase) SetStatus(ctx context.Context, orderID, newStatus string) (*SetStatusResult, error) {
	if !domorder.IsValidStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !domorder.CanTransition(order.Status, newStatus) {
		return nil, domain.ErrInvalidTransition
	}

	// El estado se persiste primero: nunca falla por un efecto colateral de stock
	if err := uc.orderRepo.UpdateStatus(orderID, newStatus, order.MaterialsConsumedAt); err != nil {
		return nil, err
	}

	var warnings []domain.CascadeWarning
	switch {
	case domorder.ConsumesMaterials(newStatus) && order.MaterialsConsumedAt == nil:
		warnings = uc.consumeOrderMaterials(ctx, order)
		// El marcador se fija solo cuando ningún cuadro falló: una transición de
		// producción posterior reintenta los cuadros pendientes y la guarda por
		// cuadro evita el doble descuento de los ya consumidos.
		if len(warnings) == 0 {
			now := time.Now()
			if err := uc.orderRepo.UpdateStatus(orderID, newStatus, &now); err != nil {
				return nil, err
			}
		}
	case newStatus == entity.OrderStatusCANCELLED:
		// La devolución se guía por las filas de consumo registradas, no por el
		// marcador: un consumo parcial (con advertencias) también debe devolverse.
		warnings = uc.returnOrderMaterials(ctx, order)
	}

	for _, w := range warnings {
		uc.log.Warn().
			Str("order_id", w.OrderID).
			Str("picture_id", w.PictureID).
			Str("material_id", w.MaterialID).
			Str("quantity", w.Quantity.String()).
			Str("status", newStatus).
			Msg(w.Message)
	}

	updated, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	return &SetStatusResult{Order: updated, Warnings: warnings}, nil
}

// consumeOrderMaterials descuenta el BOM de cada cuadro del pedido, cada cuadro en su
// propia sub-transacción. Cuadros sin BOM reciben primero uno materializado desde la
// plantilla estándar de su variante y tamaño. Lo descontado queda registrado en
// order_consumptions para permitir la devolución exacta.
func (uc *StatusUseCase) consumeOrderMaterials(ctx context.Context, order *entity.Order) []domain.CascadeWarning {
	pictures, err := uc.pictureRepo.ListByOrder(order.ID)
	if err != nil {
		return []domain.CascadeWarning{{
			OrderID: order.ID,
			Message: fmt.Sprintf("no se pudieron listar los cuadros del pedido: %v", err),
		}}
	}

	var warnings []domain.CascadeWarning
	for _, pic := range pictures {
		pic := pic
		var failedLine *entity.PictureMaterial
		err := uc.txRunner.RunConsumption(ctx, func(
			stockRepo repository.StockRepository,
			movRepo repository.MaterialMovementRepository,
			materialRepo repository.MaterialRepository,
			bomRepo repository.PictureMaterialRepository,
			templateRepo repository.BOMTemplateRepository,
			consumptionRepo repository.OrderConsumptionRepository,
		) error {
			// Guarda de idempotencia por cuadro: protege reintentos tras fallo parcial
			exists, err := consumptionRepo.ExistsForPicture(order.ID, pic.ID)
			if err != nil {
				return err
			}
			if exists {
				return nil
			}
			lines, err := bomRepo.ListByPicture(pic.ID)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				lines, err = uc.materializeStandardBOM(bomRepo, templateRepo, pic)
				if err != nil {
					return err
				}
			}
			for _, line := range lines {
				res, err := uc.ledgerUC.ConsumeInTx(stockRepo, movRepo, materialRepo, ledger.ConsumeInput{
					MaterialID: line.MaterialID,
					Quantity:   line.Quantity,
					Reason:     fmt.Sprintf("consumo pedido %s", order.Number),
					RefID:      order.ID,
					RefKind:    entity.RefKindOrder,
				})
				if err != nil {
					failedLine = line
					return fmt.Errorf("consumir material %s: %w", line.MaterialID, err)
				}
				if res.WentNegative {
					uc.log.Warn().
						Str("order_id", order.ID).
						Str("picture_id", pic.ID).
						Str("material_id", line.MaterialID).
						Str("new_quantity", res.NewQuantity.String()).
						Msg("existencia en negativo al consumir pedido (backorder)")
				}
				if err := consumptionRepo.Create(&entity.OrderConsumption{
					ID:         uuid.New().String(),
					OrderID:    order.ID,
					PictureID:  pic.ID,
					MaterialID: line.MaterialID,
					Quantity:   line.Quantity,
					CreatedAt:  time.Now(),
				}); err != nil {
					failedLine = line
					return err
				}
			}
			return nil
		})
		if err != nil {
			// Otra transición concurrente ya registró el consumo del cuadro; la
			// sub-transacción se revirtió completa y no queda nada por reintentar.
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			w := domain.CascadeWarning{
				OrderID:   order.ID,
				PictureID: pic.ID,
				Message:   fmt.Sprintf("fallo consumiendo materiales del cuadro: %v", err),
			}
			if failedLine != nil {
				w.MaterialID = failedLine.MaterialID
				w.Quantity = failedLine.Quantity
			}
			warnings = append(warnings, w)
		}
	}
	return warnings
}

// materializeStandardBOM crea las líneas de BOM del cuadro a partir de la plantilla
// estándar de su variante/tamaño y las devuelve.
func (uc *StatusUseCase) materializeStandardBOM(
	bomRepo repository.PictureMaterialRepository,
	templateRepo repository.BOMTemplateRepository,
	pic *entity.Picture,
) ([]*entity.PictureMaterial, error) {
	templates, err := templateRepo.ListFor(pic.Kind, pic.Size)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("sin BOM ni plantilla estándar para %s %s", pic.Kind, pic.Size)
	}
	lines := make([]*entity.PictureMaterial, 0, len(templates))
	for _, t := range templates {
		line := &entity.PictureMaterial{
			PictureID:  pic.ID,
			MaterialID: t.MaterialID,
			Quantity:   t.Quantity,
		}
		if err := bomRepo.Create(line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// returnOrderMaterials devuelve al inventario exactamente lo registrado en
// order_consumptions (no el BOM vigente, que pudo cambiar después del consumo).
// Cada cuadro va en su propia sub-transacción; filas ya revertidas se ignoran.
func (uc *StatusUseCase) returnOrderMaterials(ctx context.Context, order *entity.Order) []domain.CascadeWarning {
	rows, err := uc.consumptionRepo.ListByOrder(order.ID)
	if err != nil {
		return []domain.CascadeWarning{{
			OrderID: order.ID,
			Message: fmt.Sprintf("no se pudo leer el consumo registrado del pedido: %v", err),
		}}
	}
	byPicture := make(map[string][]*entity.OrderConsumption)
	var pictureIDs []string
	for _, row := range rows {
		if row.ReversedAt != nil {
			continue
		}
		if _, ok := byPicture[row.PictureID]; !ok {
			pictureIDs = append(pictureIDs, row.PictureID)
		}
		byPicture[row.PictureID] = append(byPicture[row.PictureID], row)
	}

	var warnings []domain.CascadeWarning
	for _, picID := range pictureIDs {
		picRows := byPicture[picID]
		var failedRow *entity.OrderConsumption
		err := uc.txRunner.RunConsumption(ctx, func(
			stockRepo repository.StockRepository,
			movRepo repository.MaterialMovementRepository,
			materialRepo repository.MaterialRepository,
			_ repository.PictureMaterialRepository,
			_ repository.BOMTemplateRepository,
			consumptionRepo repository.OrderConsumptionRepository,
		) error {
			for _, row := range picRows {
				_, err := uc.ledgerUC.ReceiveInTx(stockRepo, movRepo, materialRepo, ledger.ReceiveInput{
					MaterialID: row.MaterialID,
					Quantity:   row.Quantity,
					Reason:     fmt.Sprintf("devolución por cancelación pedido %s", order.Number),
					RefID:      order.ID,
					RefKind:    entity.RefKindOrder,
				})
				if err != nil {
					failedRow = row
					return fmt.Errorf("devolver material %s: %w", row.MaterialID, err)
				}
				if err := consumptionRepo.MarkReversed(row.ID, time.Now()); err != nil {
					failedRow = row
					return err
				}
			}
			return nil
		})
		if err != nil {
			w := domain.CascadeWarning{
				OrderID:   order.ID,
				PictureID: picID,
				Message:   fmt.Sprintf("fallo devolviendo materiales del cuadro: %v", err),
			}
			if failedRow != nil {
				w.MaterialID = failedRow.MaterialID
				w.Quantity = failedRow.Quantity
			}
			warnings = append(warnings, w)
		}
	}
	return warnings
}
