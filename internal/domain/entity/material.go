package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa un insumo consumible del taller (lienzo, pintura, marco, etc.).
// Una vez referenciado por movimientos históricos no se elimina físicamente.
type Material struct {
	ID           string
	Name         string
	Unit         string // unidad de medida: und, ml, g, m
	Category     string
	Cost         decimal.Decimal // costo promedio ponderado de adquisición
	MinThreshold decimal.Decimal // umbral mínimo opcional (cero = sin umbral)
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
