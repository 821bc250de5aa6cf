package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada (compra, devolución)
	MovementTypeOUT        = "OUT"        // salida (consumo de producción)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste a una cantidad objetivo (conteo físico)
)

// Tipos de entidad referenciada por un movimiento.
const (
	RefKindOrder   = "order"
	RefKindPicture = "picture"
)

// MaterialMovement es una entrada inmutable del libro de movimientos: nunca se edita
// ni se borra. Quantity es siempre la magnitud (>= 0); Delta es el efecto neto con
// signo sobre el stock (+q en IN, -q en OUT, delta firmado en ADJUSTMENT), de modo que
// la existencia actual de un material es exactamente la suma de sus Delta.
type MaterialMovement struct {
	ID         string
	MaterialID string
	Type       string          // IN, OUT, ADJUSTMENT
	Quantity   decimal.Decimal // magnitud, >= 0
	Delta      decimal.Decimal // efecto neto con signo
	Reason     string
	RefID      string // opcional: id de la entidad que originó el movimiento
	RefKind    string // opcional: order, picture
	Notes      string
	CreatedAt  time.Time
}
