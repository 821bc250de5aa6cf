package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material (DIP).
// El CRUD completo del catálogo vive en un colaborador; el núcleo solo necesita
// resolver identidad, actualizar el costo promedio y listar para agregados.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	UpdateCost(materialID string, cost decimal.Decimal) error
	List(limit, offset int) ([]*entity.Material, error)
}
