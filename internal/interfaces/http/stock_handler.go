package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/application/ledger"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type StockHandler struct {
	uc *ledger.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Receive godoc
// @Summary      Registrar entrada de material
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "material_id, quantity > 0, reason, unit_cost opcional"
// @Success      201   {object}  dto.StockOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/receive [post]
func (h *StockHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Receive(c.Context(), ledger.ReceiveInput{
		MaterialID: in.MaterialID,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		Reason:     in.Reason,
		RefID:      in.RefID,
		RefKind:    in.RefKind,
		Notes:      in.Notes,
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockOperationResponse{
		MaterialID:  in.MaterialID,
		NewQuantity: res.NewQuantity,
	})
}

// Consume godoc
// @Summary      Registrar consumo de material
// @Description  Descuenta existencia incluso por debajo de cero (backorder permitido).
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeStockRequest  true  "material_id, quantity > 0, reason"
// @Success      201   {object}  dto.StockOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/consume [post]
func (h *StockHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Consume(c.Context(), ledger.ConsumeInput{
		MaterialID: in.MaterialID,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		RefID:      in.RefID,
		RefKind:    in.RefKind,
		Notes:      in.Notes,
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockOperationResponse{
		MaterialID:   in.MaterialID,
		NewQuantity:  res.NewQuantity,
		WentNegative: res.WentNegative,
	})
}

// Adjust godoc
// @Summary      Ajuste manual a cantidad objetivo (conteo físico)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "material_id, new_quantity, reason"
// @Success      201   {object}  dto.StockOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Adjust(c.Context(), ledger.AdjustInput{
		MaterialID:  in.MaterialID,
		NewQuantity: in.NewQuantity,
		Reason:      in.Reason,
		Notes:       in.Notes,
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockOperationResponse{
		MaterialID:  in.MaterialID,
		NewQuantity: res.NewQuantity,
		OldQuantity: &res.OldQuantity,
		Delta:       &res.Delta,
	})
}

// ListMovements godoc
// @Summary      Listar movimientos del libro (más recientes primero)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        material_id  query  string  false  "Filtrar por material"
// @Param        limit        query  int     false  "Tamaño de página (defecto 20)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	movements, err := h.uc.ListMovements(c.Context(), c.Query("material_id"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	list := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		list = append(list, movementDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": list})
}

// Stats godoc
// @Summary      Agregados del inventario
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LedgerStatsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock/stats [get]
func (h *StockHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.LedgerStatsResponse{
		MaterialCount:   stats.MaterialCount,
		LowStockCount:   stats.LowStockCount,
		TotalQuantity:   stats.TotalQuantity,
		RecentMovements: stats.RecentMovements,
	})
}

func movementDTO(m *entity.MaterialMovement) dto.MovementDTO {
	return dto.MovementDTO{
		ID:         m.ID,
		MaterialID: m.MaterialID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		Delta:      m.Delta,
		Reason:     m.Reason,
		RefID:      m.RefID,
		RefKind:    m.RefKind,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
	}
}

func stockError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
