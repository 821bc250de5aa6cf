package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// maxNumberRetries reintentos ante colisión de número (respaldo del único en BD).
const maxNumberRetries = 3

// CreateUseCase crea pedidos: asigna número, inserta cabecera y cuadros (copiados
// del catálogo o creados ad hoc) en una sola transacción. Ante violación del único
// de Number reintenta con un número recalculado, acotado por maxNumberRetries.
type CreateUseCase struct {
	txRunner    OrderTxRunner
	numbering   *NumberingService
	pictureRepo repository.PictureRepository
	bomRepo     repository.PictureMaterialRepository
}

// NewCreateUseCase construye el caso de uso. pictureRepo y bomRepo van sobre el
// pool y solo se usan para leer el cuadro de catálogo a copiar.
func NewCreateUseCase(
	txRunner OrderTxRunner,
	numbering *NumberingService,
	pictureRepo repository.PictureRepository,
	bomRepo repository.PictureMaterialRepository,
) *CreateUseCase {
	return &CreateUseCase{txRunner: txRunner, numbering: numbering, pictureRepo: pictureRepo, bomRepo: bomRepo}
}

// MaterialLine línea de BOM aportada al crear un cuadro ad hoc.
type MaterialLine struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// PictureInput cuadro a adjuntar al pedido. Con FromCatalogID se copia el cuadro de
// catálogo y su BOM; si no, se crea ad hoc (el BOM puede venir vacío y se
// materializará desde la plantilla estándar al consumir).
type PictureInput struct {
	FromCatalogID string
	Name          string
	Kind          string
	TemplateID    string
	PhotoURL      string
	Size          string
	Materials     []MaterialLine
}

// CreateInput datos para crear un pedido.
type CreateInput struct {
	Prefix       string
	CustomerName string
	Notes        string
	Pictures     []PictureInput
}

// Create crea el pedido en estado PENDING con sus cuadros.
func (uc *CreateUseCase) Create(ctx context.Context, in CreateInput) (*entity.Order, error) {
	if in.CustomerName == "" {
		return nil, domain.ErrInvalidInput
	}
	// Resolver cuadros de catálogo y validar variantes antes de abrir la transacción
	pictures, boms, err := uc.resolvePictures(in.Pictures)
	if err != nil {
		return nil, err
	}

	var created *entity.Order
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		number, err := uc.numbering.NextNumber(ctx, in.Prefix)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		order := &entity.Order{
			ID:           uuid.New().String(),
			Number:       number,
			Status:       entity.OrderStatusPENDING,
			CustomerName: in.CustomerName,
			Notes:        in.Notes,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		err = uc.txRunner.RunOrder(ctx, func(
			orderRepo repository.OrderRepository,
			pictureRepo repository.PictureRepository,
			bomRepo repository.PictureMaterialRepository,
		) error {
			if err := orderRepo.Create(order); err != nil {
				return err
			}
			for i, pic := range pictures {
				p := *pic
				p.ID = uuid.New().String()
				p.OrderID = order.ID
				p.CreatedAt = now
				p.UpdatedAt = now
				if err := pictureRepo.Create(&p); err != nil {
					return err
				}
				for _, line := range boms[i] {
					if err := bomRepo.Create(&entity.PictureMaterial{
						PictureID:  p.ID,
						MaterialID: line.MaterialID,
						Quantity:   line.Quantity,
					}); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err == nil {
			created = order
			break
		}
		// Colisión de número con un insert concurrente: recalcular y reintentar
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		return nil, err
	}
	if created == nil {
		return nil, domain.ErrConcurrencyConflict
	}
	return created, nil
}

// resolvePictures convierte las entradas en entidades listas para insertar, copiando
// del catálogo (cuadro + BOM) cuando aplica.
func (uc *CreateUseCase) resolvePictures(inputs []PictureInput) ([]*entity.Picture, [][]MaterialLine, error) {
	pictures := make([]*entity.Picture, 0, len(inputs))
	boms := make([][]MaterialLine, 0, len(inputs))
	for _, in := range inputs {
		if in.FromCatalogID != "" {
			catalog, err := uc.pictureRepo.GetByID(in.FromCatalogID)
			if err != nil {
				return nil, nil, err
			}
			if catalog == nil {
				return nil, nil, domain.ErrNotFound
			}
			lines, err := uc.bomRepo.ListByPicture(catalog.ID)
			if err != nil {
				return nil, nil, err
			}
			bom := make([]MaterialLine, 0, len(lines))
			for _, l := range lines {
				bom = append(bom, MaterialLine{MaterialID: l.MaterialID, Quantity: l.Quantity})
			}
			clone := &entity.Picture{
				Name:       catalog.Name,
				Kind:       catalog.Kind,
				TemplateID: catalog.TemplateID,
				PhotoURL:   catalog.PhotoURL,
				Size:       catalog.Size,
				CostPrice:  catalog.CostPrice,
				Price:      catalog.Price,
			}
			pictures = append(pictures, clone)
			boms = append(boms, bom)
			continue
		}
		p := &entity.Picture{
			Name:       in.Name,
			Kind:       in.Kind,
			TemplateID: in.TemplateID,
			PhotoURL:   in.PhotoURL,
			Size:       in.Size,
		}
		if err := p.Validate(); err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		for _, l := range in.Materials {
			if l.MaterialID == "" || !l.Quantity.GreaterThan(decimal.Zero) {
				return nil, nil, domain.ErrInvalidInput
			}
		}
		pictures = append(pictures, p)
		boms = append(boms, in.Materials)
	}
	return pictures, boms, nil
}
