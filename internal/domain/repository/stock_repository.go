package repository

import "github.com/jhoicas/Atelier-api/internal/domain/entity"

// StockRepository define el puerto de persistencia para las existencias.
// Get/GetForUpdate devuelven una fila en cero si el material aún no tiene stock.
type StockRepository interface {
	Get(materialID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de la transacción actual.
	GetForUpdate(materialID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
}
