package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var _ repository.PictureMaterialRepository = (*PictureMaterialRepo)(nil)

// PictureMaterialRepo persiste las líneas de BOM de los cuadros.
type PictureMaterialRepo struct {
	q Querier
}

// NewPictureMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPictureMaterialRepository(q Querier) *PictureMaterialRepo {
	return &PictureMaterialRepo{q: q}
}

// Create persiste una línea de BOM.
func (r *PictureMaterialRepo) Create(line *entity.PictureMaterial) error {
	query := `
		INSERT INTO picture_materials (picture_id, material_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (picture_id, material_id) DO UPDATE SET quantity = EXCLUDED.quantity`
	_, err := r.q.Exec(context.Background(), query, line.PictureID, line.MaterialID, line.Quantity)
	if err != nil {
		return fmt.Errorf("create picture material: %w", err)
	}
	return nil
}

// ListByPicture lista el BOM de un cuadro.
func (r *PictureMaterialRepo) ListByPicture(pictureID string) ([]*entity.PictureMaterial, error) {
	query := `SELECT picture_id, material_id, quantity FROM picture_materials WHERE picture_id = $1`
	rows, err := r.q.Query(context.Background(), query, pictureID)
	if err != nil {
		return nil, fmt.Errorf("list picture materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.PictureMaterial
	for rows.Next() {
		var l entity.PictureMaterial
		if err := rows.Scan(&l.PictureID, &l.MaterialID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan picture material: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
