package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/restobar-api/internal/application/dto"
	appinventory "github.com/jhoicas/restobar-api/internal/application/inventory"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/cashregister"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/receivable"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/jhoicas/restobar-api/internal/domain/tables"
	"github.com/jhoicas/restobar-api/pkg/codes"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// InvoicePrefix prefijo del consecutivo de facturas de venta.
const InvoicePrefix = "FV"

// CreateInvoiceUseCase registra una factura contra la sesión de caja abierta del usuario y
// descuenta el inventario en una sola transacción.
type CreateInvoiceUseCase struct {
	txRunner    TxRunner
	inventoryUC InventoryUseCase
	invoiceRepo repository.InvoiceRepository
	log         zerolog.Logger
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner TxRunner,
	inventoryUC InventoryUseCase,
	invoiceRepo repository.InvoiceRepository,
	log zerolog.Logger,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:    txRunner,
		inventoryUC: inventoryUC,
		invoiceRepo: invoiceRepo,
		log:         log,
	}
}

// CreateInvoice crea la factura, registra el consumo de inventario (con expansión de kits) y
// guarda cabecera, detalle y pagos. Los pagos deben sumar exactamente el total; el medio
// "credito" exige cliente y genera un documento por cobrar dentro del cupo.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	warehouse := codes.Normalize(in.WarehouseCode)
	if userID == "" || warehouse == "" || len(in.Items) == 0 || len(in.Payments) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if codes.Normalize(item.ArticleCode) == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice != nil && item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	payments := make([]entity.InvoicePayment, 0, len(in.Payments))
	creditAmount := decimal.Zero
	for _, p := range in.Payments {
		method := cashregister.NormalizeMethod(p.Method)
		if method == "" || !p.Amount.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("pago %q: %w", p.Method, domain.ErrInvalidInput)
		}
		if method == entity.PaymentMethodCredit {
			creditAmount = creditAmount.Add(p.Amount)
		}
		payments = append(payments, entity.InvoicePayment{Method: method, Amount: p.Amount})
	}
	if creditAmount.GreaterThan(decimal.Zero) && in.CustomerID == "" {
		return nil, fmt.Errorf("el pago a crédito requiere cliente: %w", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	inv := &entity.SalesInvoice{
		ID:            uuid.New().String(),
		WarehouseCode: warehouse,
		TableCode:     codes.Normalize(in.TableCode),
		CustomerID:    in.CustomerID,
		CreatedBy:     userID,
		CreatedAt:     now,
		Payments:      payments,
	}
	var doc *entity.ReceivableDocument

	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		session, err := uow.CashRegisters.FindOpenByAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.ErrSessionNotOpen
		}
		inv.SessionID = session.ID

		// 1) Precios y total
		total := decimal.Zero
		lines := make([]appinventory.LineInput, 0, len(in.Items))
		for _, item := range in.Items {
			code := codes.Normalize(item.ArticleCode)
			article, err := uow.Articles.GetByCode(ctx, code)
			if err != nil {
				return err
			}
			if article == nil {
				return fmt.Errorf("artículo %s: %w", code, domain.ErrNotFound)
			}
			price := article.Price
			if item.UnitPrice != nil {
				price = *item.UnitPrice
			}
			cost, err := unitCost(ctx, uow, article)
			if err != nil {
				return err
			}
			subtotal := item.Quantity.Mul(price)
			total = total.Add(subtotal)
			inv.Lines = append(inv.Lines, entity.SalesInvoiceLine{
				ArticleCode: code,
				Quantity:    item.Quantity,
				UnitPrice:   price,
				UnitCost:    cost,
				Subtotal:    subtotal,
			})
			lines = append(lines, appinventory.LineInput{ArticleCode: code, Quantity: item.Quantity, Unit: entity.UnitRetail})
		}
		inv.Total = total

		// 2) Los pagos deben cubrir exactamente el total
		paid := decimal.Zero
		for _, p := range payments {
			paid = paid.Add(p.Amount)
		}
		if !paid.Equal(total) {
			return fmt.Errorf("pagos %s, total %s: %w", paid.String(), total.String(), domain.ErrPaymentMismatch)
		}

		// 3) Consecutivo
		n, err := uow.Invoices.NextNumber(ctx)
		if err != nil {
			return err
		}
		inv.Number = fmt.Sprintf("%s-%06d", InvoicePrefix, n)

		// 4) Crédito: cupo del cliente y documento por cobrar
		if in.CustomerID != "" {
			customer, err := uow.Customers.GetByID(ctx, in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
			}
			if creditAmount.GreaterThan(decimal.Zero) {
				doc, err = newCreditDocument(ctx, uow, customer, inv, creditAmount, now)
				if err != nil {
					return err
				}
			}
		}

		// 5) Inventario: si no hay stock se hace rollback de todo. La fecha del consumo la
		// fija el kardex al bloquear cada par.
		if _, err := uc.inventoryUC.ConsumeInTx(ctx, uow, appinventory.MovementInput{
			UserID:        userID,
			WarehouseCode: warehouse,
			Reference:     inv.Number,
			Lines:         lines,
		}); err != nil {
			return err
		}

		if err := uow.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		if doc != nil {
			if err := uow.Receivables.CreateDocument(ctx, doc); err != nil {
				return err
			}
		}

		// 6) Mesa facturada: se reinicia su estado
		if inv.TableCode != "" {
			return markTableBilled(ctx, uow, inv.TableCode, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice", inv.Number).
		Str("session_id", inv.SessionID).
		Str("total", inv.Total.String()).
		Msg("factura registrada")
	resp := toInvoiceResponse(inv)
	if doc != nil {
		resp.ReceivableID = doc.ID
	}
	return resp, nil
}

// unitCost costo por unidad de detalle; el de un kit es la suma de sus componentes.
func unitCost(ctx context.Context, uow repository.UnitOfWork, article *entity.Article) (decimal.Decimal, error) {
	if !article.IsKit() {
		return article.Cost, nil
	}
	components, err := uow.KitComponents.ListByKit(ctx, article.Code)
	if err != nil {
		return decimal.Zero, err
	}
	cost := decimal.Zero
	for _, c := range components {
		comp, err := uow.Articles.GetByCode(ctx, c.ComponentCode)
		if err != nil {
			return decimal.Zero, err
		}
		if comp != nil {
			cost = cost.Add(c.Quantity.Mul(comp.Cost))
		}
	}
	return cost, nil
}

func newCreditDocument(
	ctx context.Context,
	uow repository.UnitOfWork,
	customer *entity.Customer,
	inv *entity.SalesInvoice,
	amount decimal.Decimal,
	now time.Time,
) (*entity.ReceivableDocument, error) {
	open, err := uow.Receivables.ListByCustomer(ctx, customer.ID, true)
	if err != nil {
		return nil, err
	}
	if err := receivable.CheckCreditLimit(customer, receivable.Outstanding(open), amount); err != nil {
		return nil, err
	}
	var term *entity.PaymentTerm
	if customer.PaymentTermCode != "" {
		if term, err = uow.Customers.GetTerm(ctx, customer.PaymentTermCode); err != nil {
			return nil, err
		}
	}
	return &entity.ReceivableDocument{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		Number:     inv.Number,
		InvoiceID:  inv.ID,
		IssuedAt:   now,
		DueAt:      receivable.DueDate(now, term),
		Amount:     amount,
		Balance:    amount,
		Status:     entity.DocumentStatusOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func markTableBilled(ctx context.Context, uow repository.UnitOfWork, tableCode string, now time.Time) error {
	table, err := uow.Tables.GetTable(ctx, tableCode)
	if err != nil {
		return err
	}
	if table == nil {
		return fmt.Errorf("mesa %s: %w", tableCode, domain.ErrNotFound)
	}
	state, err := uow.Tables.GetStateForUpdate(ctx, tableCode)
	if err != nil {
		return err
	}
	if err := tables.SetStatus(state, entity.TableStatusFacturado, now); err != nil {
		return err
	}
	return uow.Tables.SaveState(ctx, state)
}

// GetByID obtiene una factura con detalle y pagos.
func (uc *CreateInvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv), nil
}

func toInvoiceResponse(inv *entity.SalesInvoice) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		SessionID:     inv.SessionID,
		WarehouseCode: inv.WarehouseCode,
		TableCode:     inv.TableCode,
		CustomerID:    inv.CustomerID,
		Total:         inv.Total,
		CreatedAt:     inv.CreatedAt,
		Items:         make([]dto.InvoiceDetailResponse, 0, len(inv.Lines)),
		Payments:      make([]dto.InvoicePaymentResponse, 0, len(inv.Payments)),
	}
	for _, l := range inv.Lines {
		out.Items = append(out.Items, dto.InvoiceDetailResponse{
			ArticleCode: l.ArticleCode,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	for _, p := range inv.Payments {
		out.Payments = append(out.Payments, dto.InvoicePaymentResponse{Method: p.Method, Amount: p.Amount})
	}
	return out
}
