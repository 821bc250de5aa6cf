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

var _ repository.PictureRepository = (*PictureRepo)(nil)

// PictureRepo implementación de PictureRepository sobre PostgreSQL (usable con pool o tx).
type PictureRepo struct {
	q Querier
}

// NewPictureRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPictureRepository(q Querier) *PictureRepo {
	return &PictureRepo{q: q}
}

const pictureColumns = `id, order_id, name, kind, template_id, photo_url, size, cost_price, price, created_at, updated_at`

// Create persiste un cuadro (de catálogo o adjunto a un pedido).
func (r *PictureRepo) Create(p *entity.Picture) error {
	query := `
		INSERT INTO pictures (id, order_id, name, kind, template_id, photo_url, size, cost_price, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	orderID := (*string)(nil)
	if p.OrderID != "" {
		orderID = &p.OrderID
	}
	_, err := r.q.Exec(context.Background(), query,
		p.ID, orderID, p.Name, p.Kind, p.TemplateID, p.PhotoURL, p.Size,
		p.CostPrice, p.Price, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create picture: %w", err)
	}
	return nil
}

func scanPicture(row pgx.Row) (*entity.Picture, error) {
	var p entity.Picture
	var orderID *string
	err := row.Scan(&p.ID, &orderID, &p.Name, &p.Kind, &p.TemplateID, &p.PhotoURL,
		&p.Size, &p.CostPrice, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if orderID != nil {
		p.OrderID = *orderID
	}
	return &p, nil
}

// GetByID obtiene un cuadro por ID. Devuelve nil si no existe.
func (r *PictureRepo) GetByID(id string) (*entity.Picture, error) {
	query := `SELECT ` + pictureColumns + ` FROM pictures WHERE id = $1`
	p, err := scanPicture(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get picture: %w", err)
	}
	return p, nil
}

// ListByOrder lista los cuadros de un pedido.
func (r *PictureRepo) ListByOrder(orderID string) ([]*entity.Picture, error) {
	query := `SELECT ` + pictureColumns + ` FROM pictures WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list pictures by order: %w", err)
	}
	defer rows.Close()
	return collectPictures(rows)
}

// List lista cuadros según filtro (para recálculo masivo y catálogo).
func (r *PictureRepo) List(filter repository.PictureFilter, limit, offset int) ([]*entity.Picture, error) {
	query := `SELECT ` + pictureColumns + ` FROM pictures WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.OrderID != "" {
		query += fmt.Sprintf(" AND order_id = $%d", pos)
		args = append(args, filter.OrderID)
		pos++
	}
	if filter.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, filter.Kind)
		pos++
	}
	if filter.OnlyCatalog {
		query += " AND order_id IS NULL"
	}
	query += fmt.Sprintf(" ORDER BY created_at LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pictures: %w", err)
	}
	defer rows.Close()
	return collectPictures(rows)
}

func collectPictures(rows pgx.Rows) ([]*entity.Picture, error) {
	var list []*entity.Picture
	for rows.Next() {
		p, err := scanPicture(rows)
		if err != nil {
			return nil, fmt.Errorf("scan picture: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateCostPrice escribe el costo calculado por el motor de costos.
func (r *PictureRepo) UpdateCostPrice(pictureID string, costPrice decimal.Decimal) error {
	query := `UPDATE pictures SET cost_price = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, pictureID, costPrice)
	if err != nil {
		return fmt.Errorf("update picture cost price: %w", err)
	}
	return nil
}

// UpdatePrice escribe el precio de venta recomendado.
func (r *PictureRepo) UpdatePrice(pictureID string, price decimal.Decimal) error {
	query := `UPDATE pictures SET price = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, pictureID, price)
	if err != nil {
		return fmt.Errorf("update picture price: %w", err)
	}
	return nil
}
