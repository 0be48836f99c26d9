package repository

import (
	"context"

	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PaymentTotal total cobrado por medio de pago y número de transacciones.
type PaymentTotal struct {
	Method string
	Amount decimal.Decimal
	Count  int
}

// InvoiceRepository define el puerto de persistencia para facturas de venta.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.SalesInvoice) error
	GetByID(ctx context.Context, id string) (*entity.SalesInvoice, error)
	NextNumber(ctx context.Context) (int64, error)
	// PaymentTotalsBySession agrega los pagos de las facturas de la sesión por medio.
	PaymentTotalsBySession(ctx context.Context, sessionID string) ([]PaymentTotal, error)
}
