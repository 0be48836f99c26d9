package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/restobar-api/internal/application/cashregister"
	"github.com/jhoicas/restobar-api/internal/application/dto"
)

// CashRegisterHandler maneja cajas, apertura y cierre de sesiones.
type CashRegisterHandler struct {
	uc *cashregister.UseCase
}

// NewCashRegisterHandler construye el handler.
func NewCashRegisterHandler(uc *cashregister.UseCase) *CashRegisterHandler {
	return &CashRegisterHandler{uc: uc}
}

// Create godoc
// @Summary      Crear caja
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCashRegisterRequest  true  "Código y nombre"
// @Success      201   {object}  dto.CashRegisterResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash-registers [post]
func (h *CashRegisterHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCashRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateRegister(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cajas
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CashRegisterResponse
// @Router       /api/cash-registers [get]
func (h *CashRegisterHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListRegisters(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Open godoc
// @Summary      Abrir sesión de caja
// @Description  Un usuario tiene a lo sumo una sesión abierta y una caja a lo sumo una sesión abierta.
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenSessionRequest  true  "Caja y base de apertura"
// @Success      201   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash-registers/sessions/open [post]
func (h *CashRegisterHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Open(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close godoc
// @Summary      Cerrar sesión de caja
// @Description  Concilia lo contado por medio de pago contra lo facturado en la sesión.
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseSessionRequest  true  "Montos contados"
// @Success      200   {object}  dto.ClosureResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/cash-registers/sessions/close [post]
func (h *CashRegisterHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Close(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Current godoc
// @Summary      Sesión abierta del usuario
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/cash-registers/sessions/current [get]
func (h *CashRegisterHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.CurrentSession(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSession godoc
// @Summary      Obtener sesión de caja
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash-registers/sessions/{id} [get]
func (h *CashRegisterHandler) GetSession(c *fiber.Ctx) error {
	out, err := h.uc.GetSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ClosureReport godoc
// @Summary      Reporte PDF del cierre
// @Tags         cash-registers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la sesión cerrada"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cash-registers/sessions/{id}/report.pdf [get]
func (h *CashRegisterHandler) ClosureReport(c *fiber.Ctx) error {
	body, err := h.uc.ClosurePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="cierre-`+c.Params("id")+`.pdf"`)
	return c.Send(body)
}
