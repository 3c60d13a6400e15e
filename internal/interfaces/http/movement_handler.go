package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
	"github.com/jhoicas/Ganaderia-api/internal/application/livestock"
)

// MovementHandler registros de movimiento y su reparto de salidas.
type MovementHandler struct {
	movements *livestock.MovementUseCase
	exits     *livestock.ExitReasonsUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(movements *livestock.MovementUseCase, exits *livestock.ExitReasonsUseCase) *MovementHandler {
	return &MovementHandler{movements: movements, exits: exits}
}

// Create godoc
// @Summary      Crear registro de movimiento (solo admin)
// @Tags         movements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateMovementRequest  true  "registro diario"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar registros (fecha descendente)
// @Tags         movements
// @Produce      json
// @Security     BearerAuth
// @Param        member  query  string  false  "socio"
// @Param        limit   query  int     false  "límite"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	member, ok := scopeMember(c, c.Query("member"))
	if !ok {
		return forbiddenMember(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.movements.List(c.Context(), member, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Members godoc
// @Summary      Socios con registros
// @Tags         movements
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MembersResponse
// @Router       /api/movements/members [get]
func (h *MovementHandler) Members(c *fiber.Ctx) error {
	if member, _ := scopeMember(c, ""); member != "" {
		return c.JSON(dto.MembersResponse{Members: []string{member}})
	}
	out, err := h.movements.Members(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener registro
// @Tags         movements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.movements.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if _, ok := scopeMember(c, out.Member); !ok {
		return forbiddenMember(c)
	}
	return c.JSON(out)
}

// RegisterExitReasons godoc
// @Summary      Asignar causas de salida a un registro (solo admin)
// @Tags         movements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                          true  "ID del registro"
// @Param        body  body  dto.RegisterExitReasonsRequest  true  "causas"
// @Success      201   {array}   dto.ExitDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/exit-reasons [post]
func (h *MovementHandler) RegisterExitReasons(c *fiber.Ctx) error {
	var in dto.RegisterExitReasonsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.exits.Register(c.Context(), c.Params("id"), in.Reasons)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListExitReasons godoc
// @Summary      Causas de salida de un registro
// @Tags         movements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {array}  dto.ExitDetailResponse
// @Router       /api/movements/{id}/exit-reasons [get]
func (h *MovementHandler) ListExitReasons(c *fiber.Ctx) error {
	rec, err := h.movements.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if _, ok := scopeMember(c, rec.Member); !ok {
		return forbiddenMember(c)
	}
	out, err := h.exits.ListByRecord(c.Context(), rec.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
