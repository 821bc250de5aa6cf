package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var _ repository.OrderConsumptionRepository = (*OrderConsumptionRepo)(nil)

// OrderConsumptionRepo registra lo realmente descontado por pedido y cuadro.
type OrderConsumptionRepo struct {
	q Querier
}

// NewOrderConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderConsumptionRepository(q Querier) *OrderConsumptionRepo {
	return &OrderConsumptionRepo{q: q}
}

// Create persiste una fila de consumo. Violación del índice único sobre
// (order_id, picture_id, material_id) -> domain.ErrDuplicate, que cierra la
// ventana entre la verificación de idempotencia y el insert bajo concurrencia.
func (r *OrderConsumptionRepo) Create(c *entity.OrderConsumption) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_consumptions (id, order_id, picture_id, material_id, quantity, created_at, reversed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.OrderID, c.PictureID, c.MaterialID, c.Quantity, c.CreatedAt, c.ReversedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create order consumption: %w", err)
	}
	return nil
}

// ListByOrder lista el consumo registrado de un pedido.
func (r *OrderConsumptionRepo) ListByOrder(orderID string) ([]*entity.OrderConsumption, error) {
	query := `
		SELECT id, order_id, picture_id, material_id, quantity, created_at, reversed_at
		FROM order_consumptions WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order consumptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderConsumption
	for rows.Next() {
		var c entity.OrderConsumption
		if err := rows.Scan(&c.ID, &c.OrderID, &c.PictureID, &c.MaterialID,
			&c.Quantity, &c.CreatedAt, &c.ReversedAt); err != nil {
			return nil, fmt.Errorf("scan order consumption: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ExistsForPicture indica si ya hay consumo registrado para el cuadro del pedido
// (guarda de idempotencia de la máquina de estados).
func (r *OrderConsumptionRepo) ExistsForPicture(orderID, pictureID string) (bool, error) {
	query := `SELECT exists(SELECT 1 FROM order_consumptions WHERE order_id = $1 AND picture_id = $2)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, orderID, pictureID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists order consumption: %w", err)
	}
	return exists, nil
}

// MarkReversed marca la fila como devuelta al inventario.
func (r *OrderConsumptionRepo) MarkReversed(id string, at time.Time) error {
	query := `UPDATE order_consumptions SET reversed_at = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("mark consumption reversed: %w", err)
	}
	return nil
}
