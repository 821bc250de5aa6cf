package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var _ repository.MaterialMovementRepository = (*MaterialMovementRepo)(nil)

// MaterialMovementRepo implementación del libro de movimientos sobre PostgreSQL.
// Solo INSERT y SELECT: las filas nunca se editan ni se borran.
type MaterialMovementRepo struct {
	q Querier
}

// NewMaterialMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialMovementRepository(q Querier) *MaterialMovementRepo {
	return &MaterialMovementRepo{q: q}
}

// Create anexa un movimiento al libro.
func (r *MaterialMovementRepo) Create(m *entity.MaterialMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO material_movements (id, material_id, type, quantity, delta, reason, ref_id, ref_kind, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	refID := (*string)(nil)
	refKind := (*string)(nil)
	if m.RefID != "" {
		refID = &m.RefID
		refKind = &m.RefKind
	}
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.MaterialID, m.Type, m.Quantity, m.Delta, m.Reason, refID, refKind, m.Notes, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create material movement: %w", err)
	}
	return nil
}

// List lista movimientos del más reciente al más antiguo, opcionalmente por material.
func (r *MaterialMovementRepo) List(materialID string, limit, offset int) ([]*entity.MaterialMovement, error) {
	query := `
		SELECT id, material_id, type, quantity, delta, reason, ref_id, ref_kind, notes, created_at
		FROM material_movements`
	args := []any{}
	pos := 1
	if materialID != "" {
		query += fmt.Sprintf(" WHERE material_id = $%d", pos)
		args = append(args, materialID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaterialMovement
	for rows.Next() {
		var m entity.MaterialMovement
		var refID, refKind *string
		if err := rows.Scan(&m.ID, &m.MaterialID, &m.Type, &m.Quantity, &m.Delta,
			&m.Reason, &refID, &refKind, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if refID != nil {
			m.RefID = *refID
		}
		if refKind != nil {
			m.RefKind = *refKind
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
