package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Atelier-api/internal/domain"
)

// Settings opciones reconocidas para la recomendación de precio.
// MaxPrice en cero significa sin tope superior.
type Settings struct {
	MarkupPercentage     decimal.Decimal
	MinPrice             decimal.Decimal
	MaxPrice             decimal.Decimal
	ComplexityMultiplier decimal.Decimal
	SizeMultiplier       decimal.Decimal
	UrgencyMultiplier    decimal.Decimal
}

// Validate rechaza configuraciones malformadas: multiplicadores no positivos,
// markup menor a -100% o tope inferior mayor al superior.
func (s Settings) Validate() error {
	hundred := decimal.NewFromInt(100)
	if s.MarkupPercentage.LessThan(hundred.Neg()) {
		return domain.ErrInvalidInput
	}
	if s.ComplexityMultiplier.LessThanOrEqual(decimal.Zero) ||
		s.SizeMultiplier.LessThanOrEqual(decimal.Zero) ||
		s.UrgencyMultiplier.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if s.MinPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	if s.MaxPrice.IsPositive() && s.MaxPrice.LessThan(s.MinPrice) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Breakdown expone cada factor intermedio del cálculo para auditoría.
type Breakdown struct {
	BaseCost             decimal.Decimal `json:"base_cost"`
	MarkupPercentage     decimal.Decimal `json:"markup_percentage"`
	ComplexityMultiplier decimal.Decimal `json:"complexity_multiplier"`
	SizeMultiplier       decimal.Decimal `json:"size_multiplier"`
	UrgencyMultiplier    decimal.Decimal `json:"urgency_multiplier"`
	RawPrice             decimal.Decimal `json:"raw_price"`
	MinPrice             decimal.Decimal `json:"min_price"`
	MaxPrice             decimal.Decimal `json:"max_price"`
	Clamped              bool            `json:"clamped"`
}

// Result precio recomendado con su desglose.
type Result struct {
	Price     decimal.Decimal `json:"price"`
	Breakdown Breakdown       `json:"breakdown"`
}

// Recommend calcula el precio sugerido:
// precio = clamp(costo * (1 + markup/100) * complejidad * tamaño * urgencia, min, max)
// redondeado a la unidad monetaria mínima (2 decimales).
func Recommend(cost decimal.Decimal, s Settings) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	hundred := decimal.NewFromInt(100)
	factor := decimal.NewFromInt(1).Add(s.MarkupPercentage.Div(hundred))
	raw := cost.Mul(factor).
		Mul(s.ComplexityMultiplier).
		Mul(s.SizeMultiplier).
		Mul(s.UrgencyMultiplier)

	// Redondear antes de acotar: redondear después podría empujar el precio por
	// encima del tope (max 99.999 -> 100.00).
	price := raw.Round(2)
	clamped := false
	if price.LessThan(s.MinPrice) {
		price = s.MinPrice
		clamped = true
	}
	if s.MaxPrice.IsPositive() && price.GreaterThan(s.MaxPrice) {
		price = s.MaxPrice
		clamped = true
	}

	return Result{
		Price: price,
		Breakdown: Breakdown{
			BaseCost:             cost,
			MarkupPercentage:     s.MarkupPercentage,
			ComplexityMultiplier: s.ComplexityMultiplier,
			SizeMultiplier:       s.SizeMultiplier,
			UrgencyMultiplier:    s.UrgencyMultiplier,
			RawPrice:             raw.Round(2),
			MinPrice:             s.MinPrice,
			MaxPrice:             s.MaxPrice,
			Clamped:              clamped,
		},
	}, nil
}
