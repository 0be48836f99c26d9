package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/inventory"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/jhoicas/restobar-api/pkg/codes"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Options ajustes del motor de inventario.
type Options struct {
	// AllowNegativeStock permite que una salida deje saldo negativo.
	AllowNegativeStock bool
}

// RegisterMovementUseCase registra transacciones de inventario (compras, consumos, ajustes y
// traslados) de forma transaccional: por cada línea bloquea la última fila del kardex del par
// (artículo, bodega), calcula el nuevo saldo y agrega la fila.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	log      zerolog.Logger
	opts     Options
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, log zerolog.Logger, opts Options) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, log: log, opts: opts}
}

// LineInput línea de una transacción.
type LineInput struct {
	ArticleCode string
	Quantity    decimal.Decimal
	Unit        string
	UnitCost    *decimal.Decimal
	Notes       string
}

// MovementInput entrada para registrar una transacción de inventario.
// Para TRANSFER: WarehouseCode es la bodega origen y ToWarehouseCode la destino.
type MovementInput struct {
	UserID          string
	Type            string
	OccurredAt      time.Time
	WarehouseCode   string
	ToWarehouseCode string
	Reference       string
	Reason          string
	AuthorizedBy    string
	Lines           []LineInput
}

// Register valida la entrada y registra la transacción completa en una sola transacción de BD.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, in MovementInput) (*entity.InventoryTransaction, []entity.KardexRow, error) {
	header, err := uc.prepare(in)
	if err != nil {
		return nil, nil, err
	}
	var rows []entity.KardexRow
	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		rows, err = uc.post(ctx, uow, header)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	uc.log.Info().
		Str("transaction_code", header.Code).
		Str("type", header.Type).
		Str("warehouse", header.WarehouseCode).
		Int("rows", len(rows)).
		Msg("transacción de inventario registrada")
	return header, rows, nil
}

// ConsumeInTx registra un consumo usando los repositorios del caller (misma transacción).
// Lo usa facturación para descontar inventario; si retorna error el caller debe hacer rollback.
func (uc *RegisterMovementUseCase) ConsumeInTx(ctx context.Context, uow repository.UnitOfWork, in MovementInput) ([]entity.KardexRow, error) {
	in.Type = entity.TransactionTypeConsumption
	header, err := uc.prepare(in)
	if err != nil {
		return nil, err
	}
	return uc.post(ctx, uow, header)
}

// prepare valida la entrada y construye la cabecera con códigos normalizados.
func (uc *RegisterMovementUseCase) prepare(in MovementInput) (*entity.InventoryTransaction, error) {
	if !inventory.ValidTransactionType(in.Type) {
		return nil, fmt.Errorf("tipo de transacción %q: %w", in.Type, domain.ErrInvalidInput)
	}
	from := codes.Normalize(in.WarehouseCode)
	to := codes.Normalize(in.ToWarehouseCode)
	if from == "" {
		return nil, fmt.Errorf("bodega requerida: %w", domain.ErrInvalidInput)
	}
	if in.Type == entity.TransactionTypeTransfer && (to == "" || to == from) {
		return nil, fmt.Errorf("traslado requiere bodega destino distinta: %w", domain.ErrInvalidInput)
	}
	if in.Type != entity.TransactionTypeTransfer {
		to = ""
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("la transacción no tiene líneas: %w", domain.ErrInvalidInput)
	}

	// Sin fecha de ocurrencia la fija post, ya dentro de la transacción.
	header := &entity.InventoryTransaction{
		ID:              uuid.New().String(),
		Code:            uuid.New().String(),
		Type:            in.Type,
		WarehouseCode:   from,
		ToWarehouseCode: to,
		OccurredAt:      in.OccurredAt.UTC(),
		Reference:       in.Reference,
		Reason:          in.Reason,
		AuthorizedBy:    in.AuthorizedBy,
		CreatedBy:       in.UserID,
		Lines:           make([]entity.InventoryTransactionLine, 0, len(in.Lines)),
	}
	for i, l := range in.Lines {
		code := codes.Normalize(l.ArticleCode)
		if code == "" {
			return nil, fmt.Errorf("línea %d: artículo requerido: %w", i+1, domain.ErrInvalidInput)
		}
		if !inventory.ValidUnit(l.Unit) {
			return nil, fmt.Errorf("línea %d: %w", i+1, domain.ErrInvalidUnit)
		}
		if in.Type == entity.TransactionTypeAdjustment {
			if l.Quantity.IsZero() {
				return nil, fmt.Errorf("línea %d: el ajuste no puede ser cero: %w", i+1, domain.ErrInvalidInput)
			}
		} else if !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("línea %d: la cantidad debe ser mayor que cero: %w", i+1, domain.ErrInvalidInput)
		}
		if l.UnitCost != nil && l.UnitCost.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("línea %d: costo negativo: %w", i+1, domain.ErrInvalidInput)
		}
		header.Lines = append(header.Lines, entity.InventoryTransactionLine{
			ArticleCode: code,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			UnitCost:    l.UnitCost,
			Notes:       l.Notes,
		})
	}
	return header, nil
}

// posting estado de una transacción en curso: reloj de registro y filas generadas.
type posting struct {
	uow    repository.UnitOfWork
	header *entity.InventoryTransaction
	// defaultOccurred indica que la fecha de ocurrencia no vino en la entrada.
	defaultOccurred bool
	stamp           time.Time
	rows            []entity.KardexRow
}

// clock devuelve la hora actual con la precisión que guarda la BD (microsegundos).
func clock() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

// createdAt se llama con el par ya bloqueado: queda después de la última fila del par y de
// las filas previas de la misma transacción.
func (p *posting) createdAt(last *entity.KardexRow) time.Time {
	t := clock()
	if last != nil && !t.After(last.CreatedAt) {
		t = last.CreatedAt.Add(time.Microsecond)
	}
	if !p.stamp.IsZero() && !t.After(p.stamp) {
		t = p.stamp.Add(time.Microsecond)
	}
	p.stamp = t
	return t
}

// occurredAt fecha de ocurrencia de la fila. Una fecha por defecto nunca queda antes de la
// última fila del par, así una transacción que esperó el bloqueo no resulta retroactiva.
func (p *posting) occurredAt(last *entity.KardexRow) time.Time {
	t := p.header.OccurredAt
	if p.defaultOccurred && last != nil && t.Before(last.OccurredAt) {
		t = last.OccurredAt
	}
	return t
}

func (uc *RegisterMovementUseCase) post(ctx context.Context, uow repository.UnitOfWork, header *entity.InventoryTransaction) ([]entity.KardexRow, error) {
	if err := uc.requireWarehouse(ctx, uow, header.WarehouseCode); err != nil {
		return nil, err
	}
	if header.ToWarehouseCode != "" {
		if err := uc.requireWarehouse(ctx, uow, header.ToWarehouseCode); err != nil {
			return nil, err
		}
	}

	p := &posting{uow: uow, header: header}
	if header.OccurredAt.IsZero() {
		header.OccurredAt = clock()
		p.defaultOccurred = true
	}
	for i, line := range header.Lines {
		if err := uc.postLine(ctx, p, line); err != nil {
			return nil, fmt.Errorf("línea %d (%s): %w", i+1, line.ArticleCode, err)
		}
	}
	header.CreatedAt = p.stamp
	if header.CreatedAt.IsZero() {
		header.CreatedAt = clock()
	}
	if err := uow.Transactions.Create(ctx, header); err != nil {
		return nil, err
	}
	return p.rows, nil
}

func (uc *RegisterMovementUseCase) requireWarehouse(ctx context.Context, uow repository.UnitOfWork, code string) error {
	wh, err := uow.Warehouses.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if wh == nil {
		return fmt.Errorf("bodega %s: %w", code, domain.ErrNotFound)
	}
	return nil
}

// postLine calcula el movimiento de la línea y escribe sus filas. Los traslados escriben la
// salida en la bodega origen y la entrada en la destino con el mismo código de transacción.
func (uc *RegisterMovementUseCase) postLine(ctx context.Context, p *posting, line entity.InventoryTransactionLine) error {
	article, err := p.uow.Articles.GetByCode(ctx, line.ArticleCode)
	if err != nil {
		return err
	}
	if article == nil {
		return domain.ErrNotFound
	}
	var components []entity.KitComponent
	if article.IsKit() {
		if components, err = p.uow.KitComponents.ListByKit(ctx, article.Code); err != nil {
			return err
		}
	}
	lookup := func(code string) (*entity.Article, error) {
		return p.uow.Articles.GetByCode(ctx, code)
	}

	h := p.header
	qty := line.Quantity
	if h.Type == entity.TransactionTypeTransfer {
		qty = qty.Neg()
	}
	m, err := inventory.ComputeMovement(article, h.Type, qty, line.Unit, components, lookup)
	if err != nil {
		return err
	}
	uc.warnFallbacks(h, m)

	for _, target := range m.Targets() {
		if h.Type == entity.TransactionTypeTransfer {
			if err := uc.appendRow(ctx, p, target, h.WarehouseCode, entity.DirectionOut, h.ToWarehouseCode, line); err != nil {
				return err
			}
			if err := uc.appendRow(ctx, p, target, h.ToWarehouseCode, entity.DirectionIn, h.WarehouseCode, line); err != nil {
				return err
			}
			continue
		}
		if err := uc.appendRow(ctx, p, target, h.WarehouseCode, m.Direction, "", line); err != nil {
			return err
		}
	}
	return nil
}

func (uc *RegisterMovementUseCase) warnFallbacks(h *entity.InventoryTransaction, m *inventory.MovementComputation) {
	if m.FactorFallback {
		uc.log.Warn().
			Str("article", m.Article.Code).
			Str("transaction_code", h.Code).
			Str("factor", m.Article.ConversionFactor.String()).
			Msg("factor de conversión inválido, se usa 1")
	}
	for _, c := range m.Components {
		if _, fallback := inventory.NormalizeFactor(c.Article.ConversionFactor); fallback {
			uc.log.Warn().
				Str("article", c.Article.Code).
				Str("kit", m.Article.Code).
				Str("transaction_code", h.Code).
				Msg("factor de conversión inválido, se usa 1")
		}
	}
}

// appendRow bloquea el último saldo del par (artículo, bodega), valida fecha y stock, actualiza
// el costo promedio en compras y agrega la fila al kardex.
func (uc *RegisterMovementUseCase) appendRow(
	ctx context.Context,
	p *posting,
	target inventory.Target,
	warehouseCode, direction, counterparty string,
	line entity.InventoryTransactionLine,
) error {
	h := p.header
	article := target.Article
	last, err := p.uow.Kardex.LastForUpdate(ctx, article.Code, warehouseCode)
	if err != nil {
		return err
	}
	occurredAt := p.occurredAt(last)
	if last != nil && occurredAt.Before(last.OccurredAt) {
		return fmt.Errorf("%s en %s (último %s): %w",
			article.Code, warehouseCode, last.OccurredAt.Format(time.RFC3339), domain.ErrBackdated)
	}

	delta := inventory.SignedDelta(direction, target.Quantities)
	balance := inventory.NextBalance(last, delta)
	if direction == entity.DirectionOut && balance.Retail.LessThan(decimal.Zero) && !uc.opts.AllowNegativeStock {
		return fmt.Errorf("%s en %s: %w", article.Code, warehouseCode, domain.ErrInsufficientStock)
	}

	unitCost := article.Cost
	if h.Type == entity.TransactionTypePurchase && line.UnitCost != nil && target.SourceKitCode == "" {
		unitCost = retailUnitCost(*line.UnitCost, line.Unit, article.ConversionFactor)
		stock := decimal.Zero
		if last != nil {
			stock = last.BalanceRetail
		}
		newCost := inventory.CostCalculator(stock, article.Cost, target.Quantities.Retail, unitCost)
		if err := p.uow.Articles.UpdateCost(ctx, article.Code, newCost); err != nil {
			return err
		}
		article.Cost = newCost
	}

	row := entity.KardexRow{
		ID:              uuid.New().String(),
		TransactionType: h.Type,
		TransactionCode: h.Code,
		ArticleCode:     article.Code,
		WarehouseCode:   warehouseCode,
		Direction:       direction,
		QuantityRetail:  target.Quantities.Retail,
		QuantityStorage: target.Quantities.Storage,
		BalanceRetail:   balance.Retail,
		BalanceStorage:  balance.Storage,
		UnitCost:        unitCost,
		OccurredAt:      occurredAt,
		CreatedAt:       p.createdAt(last),
		Reference:       h.Reference,
		Counterparty:    counterparty,
		SourceKitCode:   target.SourceKitCode,
		CreatedBy:       h.CreatedBy,
	}
	if err := p.uow.Kardex.Append(ctx, &row); err != nil {
		return err
	}
	p.rows = append(p.rows, row)
	return nil
}

// retailUnitCost lleva el costo capturado a costo por unidad de detalle.
func retailUnitCost(cost decimal.Decimal, unit string, factor decimal.Decimal) decimal.Decimal {
	if unit != entity.UnitStorage {
		return cost
	}
	f, _ := inventory.NormalizeFactor(factor)
	return cost.Div(f)
}
