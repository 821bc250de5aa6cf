package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var _ repository.OrderCounterRepository = (*OrderCounterRepo)(nil)

// OrderCounterRepo asigna consecutivos por prefijo y día con un UPSERT de
// incremento atómico en una sola sentencia: dos llamadas concurrentes nunca
// reciben el mismo consecutivo (la fila queda bloqueada durante el UPDATE).
type OrderCounterRepo struct {
	q Querier
}

// NewOrderCounterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderCounterRepository(q Querier) *OrderCounterRepo {
	return &OrderCounterRepo{q: q}
}

// Next devuelve el siguiente consecutivo para el prefijo y día.
func (r *OrderCounterRepo) Next(prefix, day string) (int, error) {
	query := `
		INSERT INTO order_counters (prefix, day, last_seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, day)
		DO UPDATE SET last_seq = order_counters.last_seq + 1
		RETURNING last_seq`
	var seq int
	err := r.q.QueryRow(context.Background(), query, prefix, day).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next order counter: %w", err)
	}
	return seq, nil
}
