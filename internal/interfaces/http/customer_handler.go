package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/restobar-api/internal/application/billing"
	"github.com/jhoicas/restobar-api/internal/application/dto"
)

// CustomerHandler maneja clientes, condiciones de pago y cuentas por cobrar.
type CustomerHandler struct {
	customers   *billing.CustomerUseCase
	receivables *billing.ReceivableUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(customers *billing.CustomerUseCase, receivables *billing.ReceivableUseCase) *CustomerHandler {
	return &CustomerHandler{customers: customers, receivables: receivables}
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer, err := h.customers.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List GET /api/customers?limit=20&offset=0
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	p := pageParams(c)
	list, err := h.customers.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"items": list,
		"page":  dto.PageResponse{Limit: p.Limit, Offset: p.Offset},
	})
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.customers.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// Statement GET /api/customers/:id/statement
func (h *CustomerHandler) Statement(c *fiber.Ctx) error {
	out, err := h.receivables.Statement(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateTerm POST /api/payment-terms
func (h *CustomerHandler) CreateTerm(c *fiber.Ctx) error {
	var in dto.PaymentTermRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.customers.CreateTerm(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTerms GET /api/payment-terms
func (h *CustomerHandler) ListTerms(c *fiber.Ctx) error {
	out, err := h.customers.ListTerms(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateReceivable POST /api/receivables
// Documento manual (saldo inicial, nota débito); respeta el cupo del cliente.
func (h *CustomerHandler) CreateReceivable(c *fiber.Ctx) error {
	var in dto.CreateReceivableRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.receivables.CreateDocument(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ApplyPayment POST /api/receivables/:id/payments
func (h *CustomerHandler) ApplyPayment(c *fiber.Ctx) error {
	var in dto.ReceivablePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.receivables.ApplyPayment(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
