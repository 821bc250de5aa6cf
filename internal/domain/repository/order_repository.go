package repository

import (
	"time"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos.
// Create debe devolver domain.ErrDuplicate ante violación del único de Number.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	GetByNumber(number string) (*entity.Order, error)
	UpdateStatus(orderID, status string, materialsConsumedAt *time.Time) error
}

// OrderConsumptionRepository registra lo realmente descontado por pedido y cuadro.
// La cancelación lee estas filas para devolver cantidades exactas.
type OrderConsumptionRepository interface {
	Create(c *entity.OrderConsumption) error
	ListByOrder(orderID string) ([]*entity.OrderConsumption, error)
	ExistsForPicture(orderID, pictureID string) (bool, error)
	MarkReversed(id string, at time.Time) error
}

// OrderCounterRepository asigna consecutivos por prefijo y día de forma atómica
// (UPSERT con incremento en una sola sentencia), a prueba de llamadas concurrentes.
type OrderCounterRepository interface {
	Next(prefix, day string) (int, error)
}
