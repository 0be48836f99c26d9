package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/cashregister"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/receivable"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ReceivableUseCase cuentas por cobrar: documentos, abonos y estado de cuenta.
type ReceivableUseCase struct {
	txRunner TxRunner
	repo     repository.ReceivableRepository
	customer repository.CustomerRepository
	log      zerolog.Logger
}

// NewReceivableUseCase construye el caso de uso.
func NewReceivableUseCase(
	txRunner TxRunner,
	repo repository.ReceivableRepository,
	customer repository.CustomerRepository,
	log zerolog.Logger,
) *ReceivableUseCase {
	return &ReceivableUseCase{txRunner: txRunner, repo: repo, customer: customer, log: log}
}

// CreateDocument registra un documento por cobrar manual (nota débito, saldo inicial).
// Falla con ErrCreditLimitExceeded si supera el cupo disponible del cliente.
func (uc *ReceivableUseCase) CreateDocument(ctx context.Context, in dto.CreateReceivableRequest) (*dto.ReceivableResponse, error) {
	number := strings.TrimSpace(in.Number)
	if in.CustomerID == "" || number == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	issuedAt := now
	if in.IssuedAt != nil {
		issuedAt = in.IssuedAt.UTC()
	}
	var doc *entity.ReceivableDocument
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		customer, err := uow.Customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
		}
		open, err := uow.Receivables.ListByCustomer(ctx, customer.ID, true)
		if err != nil {
			return err
		}
		if err := receivable.CheckCreditLimit(customer, receivable.Outstanding(open), in.Amount); err != nil {
			return err
		}
		var term *entity.PaymentTerm
		if customer.PaymentTermCode != "" {
			if term, err = uow.Customers.GetTerm(ctx, customer.PaymentTermCode); err != nil {
				return err
			}
		}
		doc = &entity.ReceivableDocument{
			ID:         uuid.New().String(),
			CustomerID: customer.ID,
			Number:     number,
			IssuedAt:   issuedAt,
			DueAt:      receivable.DueDate(issuedAt, term),
			Amount:     in.Amount,
			Balance:    in.Amount,
			Status:     entity.DocumentStatusOpen,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return uow.Receivables.CreateDocument(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return toReceivableResponse(doc, now), nil
}

// ApplyPayment registra un abono; un abono mayor al saldo falla con ErrExceedsBalance.
func (uc *ReceivableUseCase) ApplyPayment(ctx context.Context, userID, documentID string, in dto.ReceivablePaymentRequest) (*dto.ReceivableResponse, error) {
	method := cashregister.NormalizeMethod(in.Method)
	if method == "" {
		method = entity.PaymentMethodCash
	}
	if method == entity.PaymentMethodCredit {
		return nil, fmt.Errorf("un abono no puede pagarse a crédito: %w", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	var doc *entity.ReceivableDocument
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		doc, err = uow.Receivables.GetDocumentForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if err := receivable.ApplyPayment(doc, in.Amount, now); err != nil {
			return err
		}
		if err := uow.Receivables.UpdateDocument(ctx, doc); err != nil {
			return err
		}
		return uow.Receivables.CreatePayment(ctx, &entity.DocumentPayment{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Amount:     in.Amount,
			Method:     method,
			PaidAt:     now,
			CreatedBy:  userID,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("document", doc.Number).
		Str("amount", in.Amount.String()).
		Str("balance", doc.Balance.String()).
		Msg("abono registrado")
	return toReceivableResponse(doc, now), nil
}

// Statement estado de cuenta del cliente: documentos con saldo, total pendiente, vencido y cupo disponible.
func (uc *ReceivableUseCase) Statement(ctx context.Context, customerID string) (*dto.StatementResponse, error) {
	customer, err := uc.customer.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	docs, err := uc.repo.ListByCustomer(ctx, customerID, true)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := &dto.StatementResponse{
		Customer:    *toCustomerResponse(customer),
		Documents:   make([]dto.ReceivableResponse, 0, len(docs)),
		Outstanding: receivable.Outstanding(docs),
		Overdue:     decimal.Zero,
	}
	for _, d := range docs {
		if receivable.Overdue(d, now) {
			out.Overdue = out.Overdue.Add(d.Balance)
		}
		out.Documents = append(out.Documents, *toReceivableResponse(d, now))
	}
	out.Available = decimal.Max(decimal.Zero, customer.CreditLimit.Sub(out.Outstanding))
	return out, nil
}

func toReceivableResponse(d *entity.ReceivableDocument, now time.Time) *dto.ReceivableResponse {
	return &dto.ReceivableResponse{
		ID:         d.ID,
		CustomerID: d.CustomerID,
		Number:     d.Number,
		InvoiceID:  d.InvoiceID,
		IssuedAt:   d.IssuedAt,
		DueAt:      d.DueAt,
		Amount:     d.Amount,
		Balance:    d.Balance,
		Status:     d.Status,
		Overdue:    receivable.Overdue(d, now),
	}
}
