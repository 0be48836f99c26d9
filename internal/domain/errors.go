package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrReportUnavailable  = errors.New("formato de reporte no disponible")

	// Inventario
	ErrNestedKit         = errors.New("un kit no puede contener otro kit")
	ErrInvalidUnit       = errors.New("unidad inválida: use STORAGE o RETAIL")
	ErrInvalidConversion = errors.New("el factor de conversión debe ser mayor que cero")
	ErrBrokenChain       = errors.New("el saldo del kardex no coincide con la cadena de movimientos")
	ErrBackdated         = errors.New("la fecha es anterior al último movimiento del artículo en la bodega")

	// Caja
	ErrSessionNotOpen     = errors.New("no hay una sesión de caja abierta")
	ErrSessionOwner       = errors.New("la sesión de caja pertenece a otro usuario")
	ErrSessionAlreadyOpen = errors.New("ya existe una sesión de caja abierta")
	ErrPaymentMismatch    = errors.New("los pagos no coinciden con el total de la factura")

	// Mesas
	ErrTableTaken      = errors.New("la mesa está asignada a otro mesero")
	ErrTableReserved   = errors.New("la mesa ya está reservada en ese horario")
	ErrTableNotClaimed = errors.New("la mesa no tiene mesero asignado")

	// Cuentas por cobrar
	ErrExceedsBalance      = errors.New("el abono excede el saldo del documento")
	ErrCreditLimitExceeded = errors.New("el documento excede el cupo de crédito del cliente")
)
