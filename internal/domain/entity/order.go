package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido.
const (
	OrderStatusPENDING    = "PENDING"
	OrderStatusINPROGRESS = "IN_PROGRESS"
	OrderStatusCOMPLETED  = "COMPLETED"
	OrderStatusDELIVERED  = "DELIVERED"
	OrderStatusCANCELLED  = "CANCELLED"
)

// Order representa un pedido del taller. Number es único y legible (ART-2026-09-01-001).
// MaterialsConsumedAt marca que los materiales de sus cuadros ya fueron consumidos
// del inventario; es la guarda de idempotencia de la máquina de estados, no se
// infiere del estado destino.
type Order struct {
	ID                  string
	Number              string
	Status              string
	CustomerName        string
	Notes               string
	MaterialsConsumedAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OrderConsumption registra lo realmente descontado del inventario para un cuadro de
// un pedido. La cancelación devuelve exactamente estas cantidades, no el BOM vigente
// (el BOM pudo cambiar después del consumo). ReversedAt marca la devolución hecha.
type OrderConsumption struct {
	ID         string
	OrderID    string
	PictureID  string
	MaterialID string
	Quantity   decimal.Decimal
	CreatedAt  time.Time
	ReversedAt *time.Time
}
