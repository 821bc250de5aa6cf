package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrInvalidTransition   = errors.New("transición de estado no permitida")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia")
)

// CascadeWarning advertencia no fatal al consumir o devolver materiales de un cuadro
// durante un cambio de estado (o al recalcular costos en lote). La operación principal
// se persiste igualmente; la advertencia se devuelve al caller y se loguea con detalle
// para reconciliación manual.
type CascadeWarning struct {
	OrderID    string          `json:"order_id,omitempty"`
	PictureID  string          `json:"picture_id,omitempty"`
	MaterialID string          `json:"material_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	Message    string          `json:"message"`
}

// Error implementa error para poder envolver la advertencia cuando haga falta.
func (w CascadeWarning) Error() string {
	return fmt.Sprintf("advertencia en cascada: %s (order=%s picture=%s material=%s qty=%s)",
		w.Message, w.OrderID, w.PictureID, w.MaterialID, w.Quantity)
}
