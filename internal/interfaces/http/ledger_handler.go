package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/kardex-api/internal/application/dto"
	"github.com/tu-usuario/kardex-api/internal/application/ledger"
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// LedgerHandler maneja las peticiones HTTP del kardex (protegido).
type LedgerHandler struct {
	record  *ledger.RecordMovementUseCase
	queries *ledger.QueryUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(record *ledger.RecordMovementUseCase, queries *ledger.QueryUseCase) *LedgerHandler {
	return &LedgerHandler{record: record, queries: queries}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "item_id, direction (in|out), quantity; supplier en entradas, destination en salidas"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK incluye available"
// @Router       /api/movements [post]
func (h *LedgerHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.record.RecordMovementFromRequest(c.Context(), GetActorID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token sin actor"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "direction debe ser in u out y quantity positiva"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem no encontrado"})
		}
		var insufficient *domain.InsufficientStockError
		if errors.As(err, &insufficient) {
			available := insufficient.Available
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:      "INSUFFICIENT_STOCK",
				Message:   insufficient.Error(),
				Available: &available,
			})
		}
		if errors.Is(err, domain.ErrInvariantViolation) {
			// Condición de defecto, no error de usuario; el caso de uso ya la logueó.
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INVARIANT_VIOLATION", Message: "inconsistencia de stock detectada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(movement))
}

// ListMovements godoc
// @Summary      Listar movimientos del kardex
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        item_id    query  string  false  "filtro por ítem"
// @Param        direction  query  string  false  "in | out"
// @Param        actor_id   query  string  false  "filtro por actor"
// @Param        from       query  string  false  "RFC3339, occurred_at >= from"
// @Param        to         query  string  false  "RFC3339, occurred_at <= to"
// @Param        limit      query  int     false  "default 50"
// @Param        offset     query  int     false  "default 0"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		ItemID:    c.Query("item_id"),
		Direction: c.Query("direction"),
		ActorID:   c.Query("actor_id"),
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		filter.To = &t
	}

	list, err := h.queries.ListMovements(filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "direction debe ser in u out"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	movements := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		movements = append(movements, *dto.NewMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Movements: movements,
		Page:      dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	})
}

// GetMovement godoc
// @Summary      Detalle de un movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *LedgerHandler) GetMovement(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	movement, err := h.queries.GetMovement(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewMovementResponse(movement))
}

// ListItemMovements godoc
// @Summary      Kardex de un ítem
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        limit   query  int     false  "default 50"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/items/{id}/movements [get]
func (h *LedgerHandler) ListItemMovements(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		ItemID: c.Params("id"),
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	list, err := h.queries.ListMovements(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	movements := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		movements = append(movements, *dto.NewMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Movements: movements,
		Page:      dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	})
}

// Reconcile godoc
// @Summary      Verificar cantidad cacheada contra el kardex
// @Description  Repliega todos los movimientos del ítem y compara con stock_quantity.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del ítem"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/reconcile [get]
func (h *LedgerHandler) Reconcile(c *fiber.Ctx) error {
	result, err := h.queries.Reconcile(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ReconcileResponse{
		ItemID:     result.ItemID,
		Cached:     result.Cached,
		Recomputed: result.Recomputed,
		Drift:      result.Drift,
	})
}
