package repository

import (
	"context"

	"github.com/jhoicas/restobar-api/internal/domain/entity"
)

// ReceivableRepository puerto de documentos por cobrar y sus abonos.
type ReceivableRepository interface {
	CreateDocument(ctx context.Context, doc *entity.ReceivableDocument) error
	GetDocument(ctx context.Context, id string) (*entity.ReceivableDocument, error)
	GetDocumentForUpdate(ctx context.Context, id string) (*entity.ReceivableDocument, error)
	UpdateDocument(ctx context.Context, doc *entity.ReceivableDocument) error
	ListByCustomer(ctx context.Context, customerID string, onlyOpen bool) ([]*entity.ReceivableDocument, error)

	CreatePayment(ctx context.Context, payment *entity.DocumentPayment) error
	ListPayments(ctx context.Context, documentID string) ([]entity.DocumentPayment, error)
}
