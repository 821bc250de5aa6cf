package costing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/pricing"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/jhoicas/Atelier-api/pkg/logger"
)

// UseCase es el motor de costos: deriva el costo unitario de un cuadro de su BOM y
// del costo promedio ponderado de adquisición de cada material, y lo escribe en
// Picture.CostPrice. Solo lee Material/PictureMaterial; nunca toca stock ni movimientos.
type UseCase struct {
	pictureRepo  repository.PictureRepository
	bomRepo      repository.PictureMaterialRepository
	materialRepo repository.MaterialRepository
	log          *logger.Logger
}

// NewUseCase construye el motor de costos.
func NewUseCase(
	pictureRepo repository.PictureRepository,
	bomRepo repository.PictureMaterialRepository,
	materialRepo repository.MaterialRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{pictureRepo: pictureRepo, bomRepo: bomRepo, materialRepo: materialRepo, log: log}
}

// CalculateCost calcula y persiste el costo unitario del cuadro:
// suma de (cantidad por unidad × costo unitario del material) sobre cada línea del BOM.
func (uc *UseCase) CalculateCost(ctx context.Context, pictureID string) (decimal.Decimal, error) {
	picture, err := uc.pictureRepo.GetByID(pictureID)
	if err != nil {
		return decimal.Zero, err
	}
	if picture == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	lines, err := uc.bomRepo.ListByPicture(pictureID)
	if err != nil {
		return decimal.Zero, err
	}
	cost := decimal.Zero
	for _, line := range lines {
		material, err := uc.materialRepo.GetByID(line.MaterialID)
		if err != nil {
			return decimal.Zero, err
		}
		if material == nil {
			return decimal.Zero, fmt.Errorf("material %s del BOM: %w", line.MaterialID, domain.ErrNotFound)
		}
		cost = cost.Add(line.Quantity.Mul(material.Cost))
	}
	cost = cost.Round(2)
	if err := uc.pictureRepo.UpdateCostPrice(pictureID, cost); err != nil {
		return decimal.Zero, err
	}
	return cost, nil
}

// RecalculateInput recálculo masivo. UpdatePrices mueve también el precio de venta
// con la configuración de pricing dada; es estrictamente opt-in, nunca se infiere.
type RecalculateInput struct {
	Filter          repository.PictureFilter
	UpdatePrices    bool
	PricingSettings pricing.Settings
}

// RecalculateItem resultado por cuadro del recálculo masivo.
type RecalculateItem struct {
	PictureID string          `json:"picture_id"`
	OldCost   decimal.Decimal `json:"old_cost"`
	NewCost   decimal.Decimal `json:"new_cost"`
	NewPrice  decimal.Decimal `json:"new_price,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// RecalculateResult resumen del recálculo masivo.
type RecalculateResult struct {
	Total   int               `json:"total"`
	Updated int               `json:"updated"`
	Items   []RecalculateItem `json:"items"`
	Errors  []RecalculateItem `json:"errors"`
}

// RecalculateAll recalcula el costo de cada cuadro que pase el filtro. Cada cuadro se
// procesa de forma independiente: un fallo no aborta el lote, queda reportado por ítem.
// Respeta la cancelación del request entre ítems.
func (uc *UseCase) RecalculateAll(ctx context.Context, in RecalculateInput) (*RecalculateResult, error) {
	const pageSize = 200
	result := &RecalculateResult{}
	for offset := 0; ; offset += pageSize {
		pictures, err := uc.pictureRepo.List(in.Filter, pageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(pictures) == 0 {
			break
		}
		for _, pic := range pictures {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			result.Total++
			item := RecalculateItem{PictureID: pic.ID, OldCost: pic.CostPrice}
			newCost, err := uc.CalculateCost(ctx, pic.ID)
			if err != nil {
				item.Error = err.Error()
				result.Errors = append(result.Errors, item)
				uc.log.Warn().
					Str("picture_id", pic.ID).
					Err(err).
					Msg("fallo recalculando costo del cuadro")
				continue
			}
			item.NewCost = newCost
			if in.UpdatePrices {
				rec, err := pricing.Recommend(newCost, in.PricingSettings)
				if err != nil {
					item.Error = err.Error()
					result.Errors = append(result.Errors, item)
					continue
				}
				if err := uc.pictureRepo.UpdatePrice(pic.ID, rec.Price); err != nil {
					item.Error = err.Error()
					result.Errors = append(result.Errors, item)
					continue
				}
				item.NewPrice = rec.Price
			}
			result.Updated++
			result.Items = append(result.Items, item)
		}
		if len(pictures) < pageSize {
			break
		}
	}
	return result, nil
}
