package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/application/orders"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// OrderHandler maneja las peticiones HTTP de pedidos (protegido).
type OrderHandler struct {
	createUC  *orders.CreateUseCase
	statusUC  *orders.StatusUseCase
	orderRepo repository.OrderRepository
}

// NewOrderHandler construye el handler.
func NewOrderHandler(createUC *orders.CreateUseCase, statusUC *orders.StatusUseCase, orderRepo repository.OrderRepository) *OrderHandler {
	return &OrderHandler{createUC: createUC, statusUC: statusUC, orderRepo: orderRepo}
}

// Create godoc
// @Summary      Crear pedido con sus cuadros
// @Description  El pedido nace PENDING con número secuencial del día (ej. ART-2026-01-15-001).
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "cliente y cuadros (de catálogo o ad hoc)"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pictures := make([]orders.PictureInput, 0, len(in.Pictures))
	for _, p := range in.Pictures {
		lines := make([]orders.MaterialLine, 0, len(p.Materials))
		for _, l := range p.Materials {
			lines = append(lines, orders.MaterialLine{MaterialID: l.MaterialID, Quantity: l.Quantity})
		}
		pictures = append(pictures, orders.PictureInput{
			FromCatalogID: p.FromCatalogID,
			Name:          p.Name,
			Kind:          p.Kind,
			TemplateID:    p.TemplateID,
			PhotoURL:      p.PhotoURL,
			Size:          p.Size,
			Materials:     lines,
		})
	}
	order, err := h.createUC.Create(c.Context(), orders.CreateInput{
		Prefix:       in.Prefix,
		CustomerName: in.CustomerName,
		Notes:        in.Notes,
		Pictures:     pictures,
	})
	if err != nil {
		return orderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(orderResponse(order))
}

// Get godoc
// @Summary      Consultar un pedido por ID
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.orderRepo.GetByID(c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
	}
	return c.JSON(orderResponse(order))
}

// SetStatus godoc
// @Summary      Cambiar el estado de un pedido
// @Description  Persiste la transición y dispara los efectos sobre inventario. Los
// @Description  fallos por cuadro llegan como warnings, nunca bloquean el cambio.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del pedido"
// @Param        body  body  dto.SetOrderStatusRequest  true  "nuevo estado"
// @Success      200   {object}  dto.SetOrderStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.statusUC.SetStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return orderError(c, err)
	}
	warnings := res.Warnings
	if warnings == nil {
		warnings = []domain.CascadeWarning{}
	}
	return c.JSON(dto.SetOrderStatusResponse{
		Order:    orderResponse(res.Order),
		Warnings: warnings,
	})
}

func orderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:                  o.ID,
		Number:              o.Number,
		Status:              o.Status,
		CustomerName:        o.CustomerName,
		Notes:               o.Notes,
		MaterialsConsumedAt: o.MaterialsConsumedAt,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func orderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, entity.ErrInvalidPicture):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY", Message: "conflicto de concurrencia, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
