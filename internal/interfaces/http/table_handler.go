package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/application/tables"
)

// TableHandler maneja zonas, mesas, pedidos y reservas.
type TableHandler struct {
	uc *tables.UseCase
}

// NewTableHandler construye el handler.
func NewTableHandler(uc *tables.UseCase) *TableHandler {
	return &TableHandler{uc: uc}
}

func actor(c *fiber.Ctx) tables.Actor {
	return tables.Actor{ID: GetUserID(c), Role: GetRole(c)}
}

// CreateZone POST /api/zones
func (h *TableHandler) CreateZone(c *fiber.Ctx) error {
	var in dto.CreateZoneRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateZone(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListZones GET /api/zones
func (h *TableHandler) ListZones(c *fiber.Ctx) error {
	out, err := h.uc.ListZones(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateTable POST /api/tables
func (h *TableHandler) CreateTable(c *fiber.Ctx) error {
	var in dto.CreateTableRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateTable(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTables GET /api/tables?zone=TERRAZA
func (h *TableHandler) ListTables(c *fiber.Ctx) error {
	out, err := h.uc.ListTables(c.UserContext(), c.Query("zone"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetTable GET /api/tables/:code
func (h *TableHandler) GetTable(c *fiber.Ctx) error {
	out, err := h.uc.GetTable(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Claim POST /api/tables/:code/claim
// Asigna la mesa al mesero del token. Falla con 409 si otro mesero la tiene.
func (h *TableHandler) Claim(c *fiber.Ctx) error {
	out, err := h.uc.Claim(c.UserContext(), actor(c), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddLine POST /api/tables/:code/lines
func (h *TableHandler) AddLine(c *fiber.Ctx) error {
	var in dto.OrderLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddLine(c.UserContext(), actor(c), c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Send POST /api/tables/:code/send
// Marca como enviadas las líneas pendientes y las devuelve.
func (h *TableHandler) Send(c *fiber.Ctx) error {
	out, err := h.uc.Send(c.UserContext(), actor(c), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetStatus PUT /api/tables/:code/status
func (h *TableHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.TableStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetStatus(c.UserContext(), actor(c), c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Release POST /api/tables/:code/release
func (h *TableHandler) Release(c *fiber.Ctx) error {
	out, err := h.uc.Release(c.UserContext(), actor(c), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reserve POST /api/tables/:code/reservations
func (h *TableHandler) Reserve(c *fiber.Ctx) error {
	var in dto.CreateReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Reserve(c.UserContext(), actor(c), c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListReservations GET /api/tables/:code/reservations
func (h *TableHandler) ListReservations(c *fiber.Ctx) error {
	out, err := h.uc.ListReservations(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CancelReservation DELETE /api/reservations/:id
func (h *TableHandler) CancelReservation(c *fiber.Ctx) error {
	out, err := h.uc.CancelReservation(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
