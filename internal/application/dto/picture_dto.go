package dto

import "github.com/shopspring/decimal"

// RecalculateCostsRequest body para POST /api/pictures/recalculate-costs.
// update_prices es opt-in explícito: solo entonces el recálculo mueve precios de venta.
type RecalculateCostsRequest struct {
	OrderID      string           `json:"order_id,omitempty"`
	Kind         string           `json:"kind,omitempty"`
	OnlyCatalog  bool             `json:"only_catalog,omitempty"`
	UpdatePrices bool             `json:"update_prices,omitempty"`
	Pricing      *PricingSettings `json:"pricing,omitempty"`
}

// PricingSettings opciones reconocidas para la recomendación de precio.
// Los campos en nil toman el valor por defecto de la configuración.
type PricingSettings struct {
	MarkupPercentage     *decimal.Decimal `json:"markup_percentage,omitempty"`
	MinPrice             *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice             *decimal.Decimal `json:"max_price,omitempty"`
	ComplexityMultiplier *decimal.Decimal `json:"complexity_multiplier,omitempty"`
	SizeMultiplier       *decimal.Decimal `json:"size_multiplier,omitempty"`
	UrgencyMultiplier    *decimal.Decimal `json:"urgency_multiplier,omitempty"`
}

// CostResponse resultado del cálculo de costo de un cuadro.
type CostResponse struct {
	PictureID string          `json:"picture_id"`
	CostPrice decimal.Decimal `json:"cost_price"`
}
