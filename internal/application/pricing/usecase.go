package pricing

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/application/costing"
	"github.com/jhoicas/Atelier-api/internal/domain"
	dompricing "github.com/jhoicas/Atelier-api/internal/domain/pricing"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// UseCase es el motor de recomendación de precios: parte del costo calculado por el
// motor de costos y aplica margen y multiplicadores configurables con tope inferior
// y superior. Nunca muta stock ni movimientos.
type UseCase struct {
	pictureRepo repository.PictureRepository
	costUC      *costing.UseCase
	defaults    dompricing.Settings
}

// NewUseCase construye el motor. defaults sale de la configuración de la app y se
// usa para las opciones que el request no especifique.
func NewUseCase(pictureRepo repository.PictureRepository, costUC *costing.UseCase, defaults dompricing.Settings) *UseCase {
	return &UseCase{pictureRepo: pictureRepo, costUC: costUC, defaults: defaults}
}

// Defaults devuelve la configuración por defecto del motor.
func (uc *UseCase) Defaults() dompricing.Settings {
	return uc.defaults
}

// RecommendPrice calcula el precio sugerido para el cuadro con la configuración dada.
// Si el cuadro no tiene costo calculado aún, lo calcula primero.
func (uc *UseCase) RecommendPrice(ctx context.Context, pictureID string, settings dompricing.Settings) (*dompricing.Result, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	picture, err := uc.pictureRepo.GetByID(pictureID)
	if err != nil {
		return nil, err
	}
	if picture == nil {
		return nil, domain.ErrNotFound
	}
	cost := picture.CostPrice
	if cost.IsZero() {
		cost, err = uc.costUC.CalculateCost(ctx, pictureID)
		if err != nil {
			return nil, err
		}
	}
	result, err := dompricing.Recommend(cost, settings)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
