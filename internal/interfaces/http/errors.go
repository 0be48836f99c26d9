package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/rs/zerolog"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: los errores específicos van antes que los genéricos.
var errorMappings = []errorMapping{
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrSessionOwner, fiber.StatusForbidden, "SESSION_OWNER"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrSessionAlreadyOpen, fiber.StatusConflict, "SESSION_ALREADY_OPEN"},
	{domain.ErrTableTaken, fiber.StatusConflict, "TABLE_TAKEN"},
	{domain.ErrTableReserved, fiber.StatusConflict, "TABLE_RESERVED"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInsufficientStock, fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
	{domain.ErrSessionNotOpen, fiber.StatusUnprocessableEntity, "SESSION_NOT_OPEN"},
	{domain.ErrPaymentMismatch, fiber.StatusUnprocessableEntity, "PAYMENT_MISMATCH"},
	{domain.ErrTableNotClaimed, fiber.StatusUnprocessableEntity, "TABLE_NOT_CLAIMED"},
	{domain.ErrExceedsBalance, fiber.StatusUnprocessableEntity, "EXCEEDS_BALANCE"},
	{domain.ErrCreditLimitExceeded, fiber.StatusUnprocessableEntity, "CREDIT_LIMIT_EXCEEDED"},
	{domain.ErrBackdated, fiber.StatusUnprocessableEntity, "BACKDATED"},
	{domain.ErrReportUnavailable, fiber.StatusNotImplemented, "FORMAT_UNAVAILABLE"},
	{domain.ErrNestedKit, fiber.StatusBadRequest, "NESTED_KIT"},
	{domain.ErrInvalidUnit, fiber.StatusBadRequest, "INVALID_UNIT"},
	{domain.ErrInvalidConversion, fiber.StatusBadRequest, "INVALID_CONVERSION"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
}

// classify devuelve el status HTTP y el código de error para err.
func classify(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// respondError escribe el error como dto.ErrorResponse. Los 500 no exponen el detalle.
func respondError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		zerolog.Ctx(c.UserContext()).Error().Err(err).
			Str("path", c.Path()).
			Msg("error interno")
		msg = "error interno del servidor"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler handler de errores de Fiber: rutas inexistentes, panics recuperados, etc.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest:
			code = "BAD_REQUEST"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return respondError(c, err)
}
