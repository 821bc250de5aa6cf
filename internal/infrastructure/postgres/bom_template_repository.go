package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var _ repository.BOMTemplateRepository = (*BOMTemplateRepo)(nil)

// BOMTemplateRepo lee las líneas estándar de materiales por variante y tamaño.
type BOMTemplateRepo struct {
	q Querier
}

// NewBOMTemplateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBOMTemplateRepository(q Querier) *BOMTemplateRepo {
	return &BOMTemplateRepo{q: q}
}

// ListFor lista la plantilla estándar de una variante y tamaño de cuadro.
func (r *BOMTemplateRepo) ListFor(kind, size string) ([]*entity.BOMTemplate, error) {
	query := `
		SELECT id, kind, size, material_id, quantity
		FROM bom_templates WHERE kind = $1 AND size = $2`
	rows, err := r.q.Query(context.Background(), query, kind, size)
	if err != nil {
		return nil, fmt.Errorf("list bom templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.BOMTemplate
	for rows.Next() {
		var t entity.BOMTemplate
		if err := rows.Scan(&t.ID, &t.Kind, &t.Size, &t.MaterialID, &t.Quantity); err != nil {
			return nil, fmt.Errorf("scan bom template: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
