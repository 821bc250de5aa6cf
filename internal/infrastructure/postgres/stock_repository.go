package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la existencia actual de un material. Fila en cero si aún no existe.
func (r *StockRepo) Get(materialID string) (*entity.Stock, error) {
	query := `SELECT material_id, quantity, updated_at FROM stock WHERE material_id = $1`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, materialID).Scan(&s.MaterialID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{MaterialID: materialID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la existencia y bloquea la fila (SELECT FOR UPDATE) para que
// "leer, calcular, escribir, anexar movimiento" sea atómico frente a concurrentes.
// Si el material aún no tiene fila, la siembra en cero y la vuelve a bloquear dentro
// de la misma transacción: dos primeros movimientos concurrentes quedan serializados
// por la fila (el segundo SELECT espera al INSERT no confirmado del otro).
func (r *StockRepo) GetForUpdate(materialID string) (*entity.Stock, error) {
	query := `SELECT material_id, quantity, updated_at FROM stock WHERE material_id = $1 FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, materialID).Scan(&s.MaterialID, &s.Quantity, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		seed := `
			INSERT INTO stock (material_id, quantity, updated_at)
			VALUES ($1, 0, now())
			ON CONFLICT (material_id) DO NOTHING`
		if _, err := r.q.Exec(context.Background(), seed, materialID); err != nil {
			return nil, fmt.Errorf("seed stock row: %w", err)
		}
		err = r.q.QueryRow(context.Background(), query, materialID).Scan(&s.MaterialID, &s.Quantity, &s.UpdatedAt)
	}
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la existencia del material.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (material_id, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (material_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.MaterialID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
