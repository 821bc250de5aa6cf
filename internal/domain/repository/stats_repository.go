package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerStats agregados del inventario para el tablero del operador.
type LedgerStats struct {
	MaterialCount   int             // materiales activos
	LowStockCount   int             // existencias por debajo de su umbral mínimo
	TotalQuantity   decimal.Decimal // suma de existencias actuales
	RecentMovements int             // movimientos dentro de la ventana consultada
}

// StatsRepository consultas de agregación del inventario (solo lectura).
type StatsRepository interface {
	LedgerStats(window time.Duration) (*LedgerStats, error)
}
