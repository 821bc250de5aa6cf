package orders_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Atelier-api/internal/application/orders"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type createFixture struct {
	uc          *orders.CreateUseCase
	store       *memory.Store
	orderRepo   *memory.OrderRepo
	pictureRepo *memory.PictureRepo
	bomRepo     *memory.PictureMaterialRepo
}

func newCreateFixture(t *testing.T) *createFixture {
	t.Helper()
	store := memory.NewStore()
	f := &createFixture{
		store:       store,
		orderRepo:   memory.NewOrderRepository(store),
		pictureRepo: memory.NewPictureRepository(store),
		bomRepo:     memory.NewPictureMaterialRepository(store),
	}
	f.uc = orders.NewCreateUseCase(
		memory.NewTxRunner(store),
		newNumbering(store),
		f.pictureRepo,
		f.bomRepo,
	)
	return f
}

// seedCatalogPicture crea un cuadro de catálogo (sin pedido) con su BOM.
func (f *createFixture) seedCatalogPicture(t *testing.T, name string, bom map[string]string) string {
	t.Helper()
	p := &entity.Picture{
		Name:       name,
		Kind:       entity.PictureKindReadyMade,
		TemplateID: "tpl-clasico",
		Size:       "30x40",
		CostPrice:  d("40"),
		Price:      d("90"),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, f.pictureRepo.Create(p))
	for materialID, qty := range bom {
		require.NoError(t, f.bomRepo.Create(&entity.PictureMaterial{
			PictureID:  p.ID,
			MaterialID: materialID,
			Quantity:   d(qty),
		}))
	}
	return p.ID
}

func TestCreate_PedidoVacio(t *testing.T) {
	f := newCreateFixture(t)

	order, err := f.uc.Create(context.Background(), orders.CreateInput{CustomerName: "Galería Asturias"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPENDING, order.Status)
	assert.NotEmpty(t, order.Number)
	assert.Nil(t, order.MaterialsConsumedAt)

	stored, err := f.orderRepo.GetByNumber(order.Number)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, order.ID, stored.ID)
}

func TestCreate_SinClienteEsInvalido(t *testing.T) {
	f := newCreateFixture(t)
	_, err := f.uc.Create(context.Background(), orders.CreateInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Copiar del catálogo duplica cuadro y BOM; el original queda intacto y sin pedido.
func TestCreate_CopiaCuadroDeCatalogo(t *testing.T) {
	f := newCreateFixture(t)
	catalogID := f.seedCatalogPicture(t, "Paisaje clásico", map[string]string{
		"mat-lienzo": "1", "mat-pintura": "0.5",
	})

	order, err := f.uc.Create(context.Background(), orders.CreateInput{
		CustomerName: "Cliente",
		Pictures:     []orders.PictureInput{{FromCatalogID: catalogID}},
	})
	require.NoError(t, err)

	pictures, err := f.pictureRepo.ListByOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, pictures, 1)
	copied := pictures[0]
	assert.NotEqual(t, catalogID, copied.ID, "la copia es un cuadro nuevo")
	assert.Equal(t, "Paisaje clásico", copied.Name)
	assert.True(t, copied.Price.Equal(d("90")))

	lines, err := f.bomRepo.ListByPicture(copied.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	original, err := f.pictureRepo.GetByID(catalogID)
	require.NoError(t, err)
	assert.Empty(t, original.OrderID, "el cuadro de catálogo no queda atado al pedido")
}

func TestCreate_CatalogoInexistente(t *testing.T) {
	f := newCreateFixture(t)
	_, err := f.uc.Create(context.Background(), orders.CreateInput{
		CustomerName: "Cliente",
		Pictures:     []orders.PictureInput{{FromCatalogID: "no-existe"}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_CuadroAdHocConBOM(t *testing.T) {
	f := newCreateFixture(t)

	order, err := f.uc.Create(context.Background(), orders.CreateInput{
		CustomerName: "Cliente",
		Pictures: []orders.PictureInput{{
			Name:     "Retrato familiar",
			Kind:     entity.PictureKindCustomPhoto,
			PhotoURL: "https://fotos.example/retrato.jpg",
			Size:     "50x70",
			Materials: []orders.MaterialLine{
				{MaterialID: "mat-lienzo", Quantity: d("1")},
			},
		}},
	})
	require.NoError(t, err)

	pictures, err := f.pictureRepo.ListByOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, pictures, 1)

	lines, err := f.bomRepo.ListByPicture(pictures[0].ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Quantity.Equal(d("1")))
}

// La unión discriminada exige campos por variante: READY_MADE sin plantilla y
// CUSTOM_PHOTO sin foto son inválidos, igual que un Kind desconocido.
func TestCreate_VariantesInvalidas(t *testing.T) {
	f := newCreateFixture(t)
	cases := []struct {
		name string
		pic  orders.PictureInput
	}{
		{"ready made sin plantilla", orders.PictureInput{
			Name: "X", Kind: entity.PictureKindReadyMade, Size: "30x40",
		}},
		{"foto custom sin url", orders.PictureInput{
			Name: "X", Kind: entity.PictureKindCustomPhoto, Size: "30x40",
		}},
		{"kind desconocido", orders.PictureInput{
			Name: "X", Kind: "MURAL", Size: "30x40",
		}},
		{"sin nombre", orders.PictureInput{
			Kind: entity.PictureKindReadyMade, TemplateID: "tpl", Size: "30x40",
		}},
		{"línea de BOM sin cantidad", orders.PictureInput{
			Name: "X", Kind: entity.PictureKindReadyMade, TemplateID: "tpl", Size: "30x40",
			Materials: []orders.MaterialLine{{MaterialID: "mat", Quantity: decimal.Zero}},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.uc.Create(context.Background(), orders.CreateInput{
				CustomerName: "Cliente",
				Pictures:     []orders.PictureInput{c.pic},
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Si el número calculado ya existe (insert concurrente), se recalcula y reintenta.
func TestCreate_ReintentaAnteColisionDeNumero(t *testing.T) {
	f := newCreateFixture(t)
	today := time.Now().Format("2006-01-02")

	// Ocupar el primer consecutivo del día sin pasar por el contador
	require.NoError(t, f.orderRepo.Create(&entity.Order{
		Number:       fmt.Sprintf("ART-%s-001", today),
		Status:       entity.OrderStatusPENDING,
		CustomerName: "Otro proceso",
	}))

	order, err := f.uc.Create(context.Background(), orders.CreateInput{CustomerName: "Cliente"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ART-%s-002", today), order.Number)
}

// Agotados los reintentos, el conflicto se reporta como tal, no como error genérico.
func TestCreate_AgotaReintentos(t *testing.T) {
	f := newCreateFixture(t)
	today := time.Now().Format("2006-01-02")

	for seq := 1; seq <= 3; seq++ {
		require.NoError(t, f.orderRepo.Create(&entity.Order{
			Number:       fmt.Sprintf("ART-%s-%03d", today, seq),
			Status:       entity.OrderStatusPENDING,
			CustomerName: "Otro proceso",
		}))
	}

	_, err := f.uc.Create(context.Background(), orders.CreateInput{CustomerName: "Cliente"})
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
}

// La validación corre antes de abrir transacción y de pedir número: un intento
// inválido no quema consecutivo.
func TestCreate_IntentoInvalidoNoQuemaNumero(t *testing.T) {
	f := newCreateFixture(t)
	today := time.Now().Format("2006-01-02")

	_, err := f.uc.Create(context.Background(), orders.CreateInput{
		CustomerName: "Cliente",
		Pictures: []orders.PictureInput{{
			Name: "Inválido", Kind: entity.PictureKindReadyMade, TemplateID: "tpl", Size: "30x40",
			Materials: []orders.MaterialLine{{MaterialID: "", Quantity: d("1")}},
		}},
	})
	require.Error(t, err)

	order, err := f.uc.Create(context.Background(), orders.CreateInput{CustomerName: "Cliente"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ART-%s-001", today), order.Number)
}
