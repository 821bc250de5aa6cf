package pricing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Atelier-api/internal/application/costing"
	"github.com/jhoicas/Atelier-api/internal/application/pricing"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	dompricing "github.com/jhoicas/Atelier-api/internal/domain/pricing"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/memory"
	"github.com/jhoicas/Atelier-api/pkg/logger"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type pricingFixture struct {
	uc           *pricing.UseCase
	materialRepo *memory.MaterialRepo
	pictureRepo  *memory.PictureRepo
	bomRepo      *memory.PictureMaterialRepo
}

func defaults() dompricing.Settings {
	return dompricing.Settings{
		MarkupPercentage:     d("30"),
		ComplexityMultiplier: d("1"),
		SizeMultiplier:       d("1"),
		UrgencyMultiplier:    d("1"),
	}
}

func newPricingFixture(t *testing.T) *pricingFixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	f := &pricingFixture{
		materialRepo: memory.NewMaterialRepository(store),
		pictureRepo:  memory.NewPictureRepository(store),
		bomRepo:      memory.NewPictureMaterialRepository(store),
	}
	costUC := costing.NewUseCase(f.pictureRepo, f.bomRepo, f.materialRepo, log)
	f.uc = pricing.NewUseCase(f.pictureRepo, costUC, defaults())
	return f
}

func (f *pricingFixture) seedPicture(t *testing.T, costPrice decimal.Decimal) string {
	t.Helper()
	p := &entity.Picture{
		Name: "Cuadro", Kind: entity.PictureKindReadyMade, TemplateID: "tpl", Size: "30x40",
		CostPrice: costPrice, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, f.pictureRepo.Create(p))
	return p.ID
}

func TestRecommendPrice_UsaCostoPersistido(t *testing.T) {
	f := newPricingFixture(t)
	picID := f.seedPicture(t, d("100"))

	res, err := f.uc.RecommendPrice(context.Background(), picID, f.uc.Defaults())
	require.NoError(t, err)
	assert.True(t, res.Price.Equal(d("130")), "obtenido %s", res.Price)
	assert.True(t, res.Breakdown.BaseCost.Equal(d("100")))
}

// Un cuadro sin costo calculado lo calcula primero desde su BOM.
func TestRecommendPrice_CalculaCostoSiFalta(t *testing.T) {
	f := newPricingFixture(t)
	require.NoError(t, f.materialRepo.Create(&entity.Material{
		ID: "mat-lienzo", Name: "Lienzo", Unit: "unidad", Cost: d("50"), Active: true,
	}))
	picID := f.seedPicture(t, decimal.Zero)
	require.NoError(t, f.bomRepo.Create(&entity.PictureMaterial{
		PictureID: picID, MaterialID: "mat-lienzo", Quantity: d("2"),
	}))

	res, err := f.uc.RecommendPrice(context.Background(), picID, f.uc.Defaults())
	require.NoError(t, err)
	// costo 100, markup 30% -> 130
	assert.True(t, res.Price.Equal(d("130")), "obtenido %s", res.Price)

	pic, err := f.pictureRepo.GetByID(picID)
	require.NoError(t, err)
	assert.True(t, pic.CostPrice.Equal(d("100")), "el costo calculado queda persistido")
}

func TestRecommendPrice_ConfiguracionPorRequest(t *testing.T) {
	f := newPricingFixture(t)
	picID := f.seedPicture(t, d("100"))

	s := defaults()
	s.UrgencyMultiplier = d("2")
	s.MaxPrice = d("200")
	res, err := f.uc.RecommendPrice(context.Background(), picID, s)
	require.NoError(t, err)
	// 100 * 1.3 * 2 = 260 -> tope 200
	assert.True(t, res.Price.Equal(d("200")), "obtenido %s", res.Price)
	assert.True(t, res.Breakdown.Clamped)
}

func TestRecommendPrice_CuadroInexistente(t *testing.T) {
	f := newPricingFixture(t)
	_, err := f.uc.RecommendPrice(context.Background(), "no-existe", f.uc.Defaults())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecommendPrice_ConfiguracionInvalida(t *testing.T) {
	f := newPricingFixture(t)
	picID := f.seedPicture(t, d("100"))

	s := defaults()
	s.ComplexityMultiplier = decimal.Zero
	_, err := f.uc.RecommendPrice(context.Background(), picID, s)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
