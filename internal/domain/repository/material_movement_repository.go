package repository

import (
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// MaterialMovementRepository define el puerto de persistencia para el libro de
// movimientos (append-only: sin Update ni Delete).
type MaterialMovementRepository interface {
	Create(movement *entity.MaterialMovement) error
	// List devuelve movimientos del más reciente al más antiguo.
	// materialID vacío = todos los materiales.
	List(materialID string, limit, offset int) ([]*entity.MaterialMovement, error)
}
