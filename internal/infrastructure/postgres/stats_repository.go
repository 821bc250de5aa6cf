package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de agregación del inventario (solo lectura, sobre el pool).
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// LedgerStats agrega materiales activos, existencias bajo umbral, suma de existencias
// y movimientos dentro de la ventana.
func (r *StatsRepo) LedgerStats(window time.Duration) (*repository.LedgerStats, error) {
	query := `
		SELECT
			(SELECT count(*) FROM materials WHERE active),
			(SELECT count(*) FROM stock s
				JOIN materials m ON m.id = s.material_id
				WHERE m.min_threshold > 0 AND s.quantity < m.min_threshold),
			(SELECT coalesce(sum(quantity), 0) FROM stock),
			(SELECT count(*) FROM material_movements WHERE created_at >= $1)`
	var stats repository.LedgerStats
	since := time.Now().Add(-window)
	err := r.q.QueryRow(context.Background(), query, since).Scan(
		&stats.MaterialCount, &stats.LowStockCount, &stats.TotalQuantity, &stats.RecentMovements,
	)
	if err != nil {
		return nil, fmt.Errorf("ledger stats: %w", err)
	}
	return &stats, nil
}
