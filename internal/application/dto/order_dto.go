package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Atelier-api/internal/domain"
)

// OrderPictureRequest cuadro a adjuntar al crear un pedido. Con from_catalog_id se
// copia el cuadro del catálogo con su BOM; si no, se crea ad hoc.
type OrderPictureRequest struct {
	FromCatalogID string                `json:"from_catalog_id,omitempty"`
	Name          string                `json:"name,omitempty"`
	Kind          string                `json:"kind,omitempty"`
	TemplateID    string                `json:"template_id,omitempty"`
	PhotoURL      string                `json:"photo_url,omitempty"`
	Size          string                `json:"size,omitempty"`
	Materials     []BOMLineRequest      `json:"materials,omitempty"`
}

// BOMLineRequest línea de BOM aportada al crear un cuadro ad hoc.
type BOMLineRequest struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Prefix       string                `json:"prefix,omitempty"`
	CustomerName string                `json:"customer_name"`
	Notes        string                `json:"notes,omitempty"`
	Pictures     []OrderPictureRequest `json:"pictures,omitempty"`
}

// SetOrderStatusRequest body para PATCH /api/orders/:id/status.
type SetOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse pedido serializado.
type OrderResponse struct {
	ID                  string     `json:"id"`
	Number              string     `json:"number"`
	Status              string     `json:"status"`
	CustomerName        string     `json:"customer_name"`
	Notes               string     `json:"notes,omitempty"`
	MaterialsConsumedAt *time.Time `json:"materials_consumed_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// SetOrderStatusResponse pedido actualizado más advertencias no fatales de los
// efectos sobre inventario (para que la UI alerte al operador).
type SetOrderStatusResponse struct {
	Order    OrderResponse           `json:"order"`
	Warnings []domain.CascadeWarning `json:"warnings"`
}
