package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Atelier-api/internal/application/costing"
	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/application/pricing"
	"github.com/jhoicas/Atelier-api/internal/domain"
	dompricing "github.com/jhoicas/Atelier-api/internal/domain/pricing"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// PictureHandler maneja costos y precios de cuadros (protegido).
type PictureHandler struct {
	costUC    *costing.UseCase
	pricingUC *pricing.UseCase
}

// NewPictureHandler construye el handler.
func NewPictureHandler(costUC *costing.UseCase, pricingUC *pricing.UseCase) *PictureHandler {
	return &PictureHandler{costUC: costUC, pricingUC: pricingUC}
}

// CalculateCost godoc
// @Summary      Calcular y persistir el costo de un cuadro
// @Description  Suma cantidad x costo promedio de cada línea del BOM del cuadro.
// @Tags         pictures
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cuadro"
// @Success      200  {object}  dto.CostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pictures/{id}/cost [post]
func (h *PictureHandler) CalculateCost(c *fiber.Ctx) error {
	pictureID := c.Params("id")
	cost, err := h.costUC.CalculateCost(c.Context(), pictureID)
	if err != nil {
		return pictureError(c, err)
	}
	return c.JSON(dto.CostResponse{PictureID: pictureID, CostPrice: cost})
}

// RecalculateCosts godoc
// @Summary      Recalcular costos en lote
// @Description  Recalcula el costo de cada cuadro que pase el filtro; cada ítem se
// @Description  procesa aislado y los fallos quedan reportados por ítem. Solo con
// @Description  update_prices=true el recálculo mueve además los precios de venta.
// @Tags         pictures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecalculateCostsRequest  false  "filtro y opciones"
// @Success      200   {object}  costing.RecalculateResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pictures/recalculate-costs [post]
func (h *PictureHandler) RecalculateCosts(c *fiber.Ctx) error {
	var in dto.RecalculateCostsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	settings := applySettings(h.pricingUC.Defaults(), in.Pricing)
	if err := settings.Validate(); err != nil {
		return pictureError(c, err)
	}
	res, err := h.costUC.RecalculateAll(c.Context(), costing.RecalculateInput{
		Filter: repository.PictureFilter{
			OrderID:     in.OrderID,
			Kind:        in.Kind,
			OnlyCatalog: in.OnlyCatalog,
		},
		UpdatePrices:    in.UpdatePrices,
		PricingSettings: settings,
	})
	if err != nil {
		return pictureError(c, err)
	}
	return c.JSON(res)
}

// RecommendedPrice godoc
// @Summary      Precio de venta sugerido para un cuadro
// @Description  precio = clamp(costo x (1 + markup/100) x multiplicadores, min, max).
// @Description  Los parámetros de query sobreescriben la configuración por defecto.
// @Tags         pictures
// @Security     Bearer
// @Produce      json
// @Param        id                     path   string  true   "ID del cuadro"
// @Param        markup_percentage      query  number  false  "Margen porcentual"
// @Param        min_price              query  number  false  "Precio mínimo"
// @Param        max_price              query  number  false  "Precio máximo (0 = sin tope)"
// @Param        complexity_multiplier  query  number  false  "Multiplicador de complejidad"
// @Param        size_multiplier        query  number  false  "Multiplicador de tamaño"
// @Param        urgency_multiplier     query  number  false  "Multiplicador de urgencia"
// @Success      200  {object}  dompricing.Result
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pictures/{id}/recommended-price [get]
func (h *PictureHandler) RecommendedPrice(c *fiber.Ctx) error {
	settings, err := settingsFromQuery(c, h.pricingUC.Defaults())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetro de precio inválido"})
	}
	res, err := h.pricingUC.RecommendPrice(c.Context(), c.Params("id"), settings)
	if err != nil {
		return pictureError(c, err)
	}
	return c.JSON(res)
}

// applySettings combina la configuración por defecto con los sobreescritos del request.
func applySettings(base dompricing.Settings, in *dto.PricingSettings) dompricing.Settings {
	if in == nil {
		return base
	}
	if in.MarkupPercentage != nil {
		base.MarkupPercentage = *in.MarkupPercentage
	}
	if in.MinPrice != nil {
		base.MinPrice = *in.MinPrice
	}
	if in.MaxPrice != nil {
		base.MaxPrice = *in.MaxPrice
	}
	if in.ComplexityMultiplier != nil {
		base.ComplexityMultiplier = *in.ComplexityMultiplier
	}
	if in.SizeMultiplier != nil {
		base.SizeMultiplier = *in.SizeMultiplier
	}
	if in.UrgencyMultiplier != nil {
		base.UrgencyMultiplier = *in.UrgencyMultiplier
	}
	return base
}

func settingsFromQuery(c *fiber.Ctx, base dompricing.Settings) (dompricing.Settings, error) {
	override := func(name string, dst *decimal.Decimal) error {
		raw := c.Query(name)
		if raw == "" {
			return nil
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return err
		}
		*dst = value
		return nil
	}
	for name, dst := range map[string]*decimal.Decimal{
		"markup_percentage":     &base.MarkupPercentage,
		"min_price":             &base.MinPrice,
		"max_price":             &base.MaxPrice,
		"complexity_multiplier": &base.ComplexityMultiplier,
		"size_multiplier":       &base.SizeMultiplier,
		"urgency_multiplier":    &base.UrgencyMultiplier,
	} {
		if err := override(name, dst); err != nil {
			return base, err
		}
	}
	return base, nil
}

func pictureError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cuadro no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
