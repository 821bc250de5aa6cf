package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// PictureFilter filtro para listados y recálculo masivo de cuadros.
// Campos vacíos no filtran.
type PictureFilter struct {
	OrderID     string
	Kind        string
	OnlyCatalog bool // solo cuadros sin pedido
}

// PictureRepository define el puerto de persistencia para cuadros.
type PictureRepository interface {
	Create(picture *entity.Picture) error
	GetByID(id string) (*entity.Picture, error)
	ListByOrder(orderID string) ([]*entity.Picture, error)
	List(filter PictureFilter, limit, offset int) ([]*entity.Picture, error)
	UpdateCostPrice(pictureID string, costPrice decimal.Decimal) error
	UpdatePrice(pictureID string, price decimal.Decimal) error
}

// PictureMaterialRepository persiste las líneas del BOM de un cuadro.
// El mantenimiento del BOM es de colaboradores; el núcleo lo lee para consumir
// y lo materializa desde plantilla cuando falta.
type PictureMaterialRepository interface {
	Create(line *entity.PictureMaterial) error
	ListByPicture(pictureID string) ([]*entity.PictureMaterial, error)
}

// BOMTemplateRepository lee las líneas estándar de materiales por variante y tamaño.
type BOMTemplateRepository interface {
	ListFor(kind, size string) ([]*entity.BOMTemplate, error)
}
