package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la existencia actual de un material (una fila por material).
// Puede ser negativo: señala una condición de backorder, no un error.
// Solo se muta a través de las operaciones del libro de movimientos.
type Stock struct {
	MaterialID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
