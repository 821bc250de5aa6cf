package costing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Atelier-api/internal/application/costing"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/pricing"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/memory"
	"github.com/jhoicas/Atelier-api/pkg/logger"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type costingFixture struct {
	uc           *costing.UseCase
	materialRepo *memory.MaterialRepo
	pictureRepo  *memory.PictureRepo
	bomRepo      *memory.PictureMaterialRepo
}

func newCostingFixture(t *testing.T) *costingFixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	f := &costingFixture{
		materialRepo: memory.NewMaterialRepository(store),
		pictureRepo:  memory.NewPictureRepository(store),
		bomRepo:      memory.NewPictureMaterialRepository(store),
	}
	f.uc = costing.NewUseCase(f.pictureRepo, f.bomRepo, f.materialRepo, log)
	return f
}

func (f *costingFixture) seedMaterial(t *testing.T, id string, cost decimal.Decimal) {
	t.Helper()
	require.NoError(t, f.materialRepo.Create(&entity.Material{
		ID: id, Name: id, Unit: "unidad", Cost: cost, Active: true,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
}

func (f *costingFixture) seedPicture(t *testing.T, name string, bom map[string]string) string {
	t.Helper()
	p := &entity.Picture{
		Name: name, Kind: entity.PictureKindReadyMade, TemplateID: "tpl", Size: "30x40",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, f.pictureRepo.Create(p))
	for materialID, qty := range bom {
		require.NoError(t, f.bomRepo.Create(&entity.PictureMaterial{
			PictureID: p.ID, MaterialID: materialID, Quantity: d(qty),
		}))
	}
	return p.ID
}

// El costo es la suma de cantidad x costo promedio del material, redondeado a 2
// decimales, y queda persistido en el cuadro.
func TestCalculateCost_SumaYPersiste(t *testing.T) {
	f := newCostingFixture(t)
	f.seedMaterial(t, "mat-lienzo", d("25.50"))
	f.seedMaterial(t, "mat-pintura", d("8"))
	picID := f.seedPicture(t, "Paisaje", map[string]string{
		"mat-lienzo": "1", "mat-pintura": "0.75",
	})

	cost, err := f.uc.CalculateCost(context.Background(), picID)
	require.NoError(t, err)
	// 1*25.50 + 0.75*8 = 31.50
	assert.True(t, cost.Equal(d("31.50")), "obtenido %s", cost)

	pic, err := f.pictureRepo.GetByID(picID)
	require.NoError(t, err)
	assert.True(t, pic.CostPrice.Equal(d("31.50")))
}

func TestCalculateCost_Redondeo(t *testing.T) {
	f := newCostingFixture(t)
	f.seedMaterial(t, "mat-hilo", d("0.333"))
	picID := f.seedPicture(t, "Bordado", map[string]string{"mat-hilo": "10"})

	cost, err := f.uc.CalculateCost(context.Background(), picID)
	require.NoError(t, err)
	assert.True(t, cost.Equal(d("3.33")), "obtenido %s", cost)
}

func TestCalculateCost_SinBOMEsCero(t *testing.T) {
	f := newCostingFixture(t)
	picID := f.seedPicture(t, "Vacío", nil)

	cost, err := f.uc.CalculateCost(context.Background(), picID)
	require.NoError(t, err)
	assert.True(t, cost.Equal(decimal.Zero))
}

func TestCalculateCost_CuadroInexistente(t *testing.T) {
	f := newCostingFixture(t)
	_, err := f.uc.CalculateCost(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCalculateCost_MaterialFaltante(t *testing.T) {
	f := newCostingFixture(t)
	picID := f.seedPicture(t, "Roto", map[string]string{"mat-fantasma": "1"})

	_, err := f.uc.CalculateCost(context.Background(), picID)
	assert.Error(t, err)
}

// El recálculo masivo procesa cada cuadro aislado: los fallos quedan por ítem y
// el resto del lote sigue.
func TestRecalculateAll_AislamientoPorItem(t *testing.T) {
	f := newCostingFixture(t)
	f.seedMaterial(t, "mat-lienzo", d("10"))
	good := f.seedPicture(t, "Bueno", map[string]string{"mat-lienzo": "2"})
	bad := f.seedPicture(t, "Roto", map[string]string{"mat-fantasma": "1"})

	res, err := f.uc.RecalculateAll(context.Background(), costing.RecalculateInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, res.Items, 1)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, good, res.Items[0].PictureID)
	assert.Equal(t, bad, res.Errors[0].PictureID)

	pic, err := f.pictureRepo.GetByID(good)
	require.NoError(t, err)
	assert.True(t, pic.CostPrice.Equal(d("20")))
}

// Sin update_prices el recálculo nunca toca el precio de venta.
func TestRecalculateAll_NoMuevePreciosPorDefecto(t *testing.T) {
	f := newCostingFixture(t)
	f.seedMaterial(t, "mat-lienzo", d("10"))
	picID := f.seedPicture(t, "Catálogo", map[string]string{"mat-lienzo": "1"})
	require.NoError(t, f.pictureRepo.UpdatePrice(picID, d("80")))

	_, err := f.uc.RecalculateAll(context.Background(), costing.RecalculateInput{})
	require.NoError(t, err)

	pic, err := f.pictureRepo.GetByID(picID)
	require.NoError(t, err)
	assert.True(t, pic.Price.Equal(d("80")), "el precio no debe moverse sin opt-in")
}

func TestRecalculateAll_UpdatePricesOptIn(t *testing.T) {
	f := newCostingFixture(t)
	f.seedMaterial(t, "mat-lienzo", d("100"))
	picID := f.seedPicture(t, "Catálogo", map[string]string{"mat-lienzo": "1"})

	res, err := f.uc.RecalculateAll(context.Background(), costing.RecalculateInput{
		UpdatePrices: true,
		PricingSettings: pricing.Settings{
			MarkupPercentage:     d("30"),
			ComplexityMultiplier: d("1"),
			SizeMultiplier:       d("1"),
			UrgencyMultiplier:    d("1"),
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.True(t, res.Items[0].NewPrice.Equal(d("130")))

	pic, err := f.pictureRepo.GetByID(picID)
	require.NoError(t, err)
	assert.True(t, pic.Price.Equal(d("130")))
}

func TestRecalculateAll_FiltroPorPedido(t *testing.T) {
	f := newCostingFixture(t)
	f.seedMaterial(t, "mat-lienzo", d("10"))

	inOrder := &entity.Picture{
		Name: "Del pedido", Kind: entity.PictureKindReadyMade, TemplateID: "tpl",
		Size: "30x40", OrderID: "order-1", CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, f.pictureRepo.Create(inOrder))
	f.seedPicture(t, "De catálogo", map[string]string{"mat-lienzo": "1"})

	res, err := f.uc.RecalculateAll(context.Background(), costing.RecalculateInput{
		Filter: repository.PictureFilter{OrderID: "order-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, inOrder.ID, res.Items[0].PictureID)
}

func TestRecalculateAll_RespetaCancelacion(t *testing.T) {
	f := newCostingFixture(t)
	f.seedMaterial(t, "mat-lienzo", d("10"))
	f.seedPicture(t, "Uno", map[string]string{"mat-lienzo": "1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.uc.RecalculateAll(ctx, costing.RecalculateInput{})
	assert.ErrorIs(t, err, context.Canceled)
}
