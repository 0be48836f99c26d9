package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	appinventory "github.com/jhoicas/restobar-api/internal/application/inventory"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/jhoicas/restobar-api/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seed crea bodegas BARRA y BODEGA, RON (caja de 12 botellas), COLA (factor 1)
// y el kit CUBALIBRE = 0.25 botella de RON + 1 COLA.
func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	for _, code := range []string{"BARRA", "BODEGA"} {
		require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{Code: code, Name: code}))
	}
	articles := []entity.Article{
		{Code: "RON", Name: "Ron añejo", Type: entity.ArticleTypeSimple, StorageUnit: "caja", RetailUnit: "botella", ConversionFactor: d("12")},
		{Code: "COLA", Name: "Cola", Type: entity.ArticleTypeSimple, StorageUnit: "und", RetailUnit: "und", ConversionFactor: d("1")},
		{Code: "CUBALIBRE", Name: "Cuba libre", Type: entity.ArticleTypeKit, StorageUnit: "und", RetailUnit: "und", ConversionFactor: d("1")},
	}
	for i := range articles {
		require.NoError(t, repos.Articles.Create(ctx, &articles[i]))
	}
	require.NoError(t, repos.KitComponents.ReplaceForKit(ctx, "CUBALIBRE", []entity.KitComponent{
		{ID: "k1", KitCode: "CUBALIBRE", ComponentCode: "RON", Quantity: d("0.25")},
		{ID: "k2", KitCode: "CUBALIBRE", ComponentCode: "COLA", Quantity: d("1")},
	}))
	return store
}

func newRegister(store *memory.Store) *appinventory.RegisterMovementUseCase {
	return appinventory.NewRegisterMovementUseCase(store, zerolog.Nop(), appinventory.Options{})
}

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func purchase(at time.Time, wh, code, qty, unit string, cost *decimal.Decimal) appinventory.MovementInput {
	return appinventory.MovementInput{
		UserID:        "u1",
		Type:          entity.TransactionTypePurchase,
		OccurredAt:    at,
		WarehouseCode: wh,
		Lines:         []appinventory.LineInput{{ArticleCode: code, Quantity: d(qty), Unit: unit, UnitCost: cost}},
	}
}

func TestRegister_PurchaseInStorageUnits(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	uc := newRegister(store)
	cost := d("120")

	header, rows, err := uc.Register(ctx, purchase(t0, "barra", "ron", "2", entity.UnitStorage, &cost))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, header.Code, r.TransactionCode)
	assert.Equal(t, "BARRA", r.WarehouseCode)
	assert.Equal(t, entity.DirectionIn, r.Direction)
	assert.True(t, d("24").Equal(r.QuantityRetail))
	assert.True(t, d("2").Equal(r.QuantityStorage))
	assert.True(t, d("24").Equal(r.BalanceRetail))
	assert.True(t, d("10").Equal(r.UnitCost))

	a, err := store.Repositories().Articles.GetByCode(ctx, "RON")
	require.NoError(t, err)
	assert.True(t, d("10").Equal(a.Cost), "costo por botella = 120 / 12")

	tx, err := store.Repositories().Transactions.GetByCode(ctx, header.Code)
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Len(t, tx.Lines, 1)
}

func TestRegister_WeightedAverageCost(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	uc := newRegister(store)

	c1, c2 := d("10"), d("16")
	_, _, err := uc.Register(ctx, purchase(t0, "BARRA", "RON", "12", entity.UnitRetail, &c1))
	require.NoError(t, err)
	_, _, err = uc.Register(ctx, purchase(t0.Add(time.Hour), "BARRA", "RON", "6", entity.UnitRetail, &c2))
	require.NoError(t, err)

	a, err := store.Repositories().Articles.GetByCode(ctx, "RON")
	require.NoError(t, err)
	// (12*10 + 6*16) / 18 = 12
	assert.True(t, d("12").Equal(a.Cost), a.Cost.String())
}

func TestRegister_ConsumptionKitExpandsComponents(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	uc := newRegister(store)

	_, _, err := uc.Register(ctx, appinventory.MovementInput{
		Type: entity.TransactionTypePurchase, OccurredAt: t0, WarehouseCode: "BARRA",
		Lines: []appinventory.LineInput{
			{ArticleCode: "RON", Quantity: d("1"), Unit: entity.UnitStorage},
			{ArticleCode: "COLA", Quantity: d("10"), Unit: entity.UnitRetail},
		},
	})
	require.NoError(t, err)

	_, rows, err := uc.Register(ctx, appinventory.MovementInput{
		Type: entity.TransactionTypeConsumption, OccurredAt: t0.Add(time.Hour), WarehouseCode: "BARRA",
		Lines: []appinventory.LineInput{{ArticleCode: "CUBALIBRE", Quantity: d("4"), Unit: entity.UnitRetail}},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	ron, cola := rows[0], rows[1]
	assert.Equal(t, "RON", ron.ArticleCode)
	assert.Equal(t, "CUBALIBRE", ron.SourceKitCode)
	assert.Equal(t, entity.DirectionOut, ron.Direction)
	assert.True(t, d("1").Equal(ron.QuantityRetail))
	assert.True(t, d("11").Equal(ron.BalanceRetail))
	assert.Equal(t, "COLA", cola.ArticleCode)
	assert.True(t, d("6").Equal(cola.BalanceRetail))
	assert.True(t, ron.CreatedAt.Before(cola.CreatedAt))

	// el kit no tiene saldo propio
	last, err := store.Repositories().Kardex.LastForUpdate(ctx, "CUBALIBRE", "BARRA")
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestRegister_InsufficientStockRollsBack(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	uc := newRegister(store)

	_, _, err := uc.Register(ctx, purchase(t0, "BARRA", "COLA", "5", entity.UnitRetail, nil))
	require.NoError(t, err)

	_, _, err = uc.Register(ctx, appinventory.MovementInput{
		Type: entity.TransactionTypeConsumption, OccurredAt: t0.Add(time.Hour), WarehouseCode: "BARRA",
		Lines: []appinventory.LineInput{
			{ArticleCode: "COLA", Quantity: d("3"), Unit: entity.UnitRetail},
			{ArticleCode: "COLA", Quantity: d("3"), Unit: entity.UnitRetail},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	last, err := store.Repositories().Kardex.LastForUpdate(ctx, "COLA", "BARRA")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, d("5").Equal(last.BalanceRetail), "la primera línea no debe quedar registrada")
}

func TestRegister_AllowNegativeStock(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	uc := appinventory.NewRegisterMovementUseCase(store, zerolog.Nop(), appinventory.Options{AllowNegativeStock: true})

	_, rows, err := uc.Register(ctx, appinventory.MovementInput{
		Type: entity.TransactionTypeConsumption, OccurredAt: t0, WarehouseCode: "BARRA",
		Lines: []appinventory.LineInput{{ArticleCode: "COLA", Quantity: d("2"), Unit: entity.UnitRetail}},
	})
	require.NoError(t, err)
	assert.True(t, d("-2").Equal(rows[0].BalanceRetail))
}

func TestRegister_Transfer(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	uc := newRegister(store)

	_, _, err := uc.Register(ctx, purchase(t0, "BODEGA", "RON", "2", entity.UnitStorage, nil))
	require.NoError(t, err)

	header, rows, err := uc.Register(ctx, appinventory.MovementInput{
		Type: entity.TransactionTypeTransfer, OccurredAt: t0.Add(time.Hour),
		WarehouseCode: "BODEGA", ToWarehouseCode: "BARRA",
		Lines: []appinventory.LineInput{{ArticleCode: "RON", Quantity: d("6"), Unit: entity.UnitRetail}},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	out, in := rows[0], rows[1]
	assert.Equal(t, "BODEGA", out.WarehouseCode)
	assert.Equal(t, entity.DirectionOut, out.Direction)
	assert.Equal(t, "BARRA", out.Counterparty)
	assert.True(t, d("18").Equal(out.BalanceRetail))
	assert.True(t, d("1.5").Equal(out.BalanceStorage))

	assert.Equal(t, "BARRA", in.WarehouseCode)
	assert.Equal(t, entity.DirectionIn, in.Direction)
	assert.Equal(t, "BODEGA", in.Counterparty)
	assert.True(t, d("6").Equal(in.BalanceRetail))
	assert.Equal(t, header.Code, out.TransactionCode)
	assert.Equal(t, header.Code, in.TransactionCode)
}

func TestRegister_AdjustmentBySign(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	uc := newRegister(store)

	_, _, err := uc.Register(ctx, purchase(t0, "BARRA", "COLA", "10", entity.UnitRetail, nil))
	require.NoError(t, err)

	_, rows, err := uc.Register(ctx, appinventory.MovementInput{
		Type: entity.TransactionTypeAdjustment, OccurredAt: t0.Add(time.Hour), WarehouseCode: "BARRA",
		Reason: "conteo físico", AuthorizedBy: "gerente",
		Lines: []appinventory.LineInput{{ArticleCode: "COLA", Quantity: d("-3"), Unit: entity.UnitRetail}},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.DirectionOut, rows[0].Direction)
	assert.True(t, d("3").Equal(rows[0].QuantityRetail))
	assert.True(t, d("7").Equal(rows[0].BalanceRetail))
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	uc := newRegister(store)

	tests := []struct {
		name string
		in   appinventory.MovementInput
		want error
	}{
		{
			name: "tipo desconocido",
			in:   appinventory.MovementInput{Type: "GIFT", WarehouseCode: "BARRA", Lines: []appinventory.LineInput{{ArticleCode: "RON", Quantity: d("1"), Unit: entity.UnitRetail}}},
			want: domain.ErrInvalidInput,
		},
		{
			name: "sin líneas",
			in:   appinventory.MovementInput{Type: entity.TransactionTypePurchase, WarehouseCode: "BARRA"},
			want: domain.ErrInvalidInput,
		},
		{
			name: "unidad inválida",
			in:   appinventory.MovementInput{Type: entity.TransactionTypePurchase, WarehouseCode: "BARRA", Lines: []appinventory.LineInput{{ArticleCode: "RON", Quantity: d("1"), Unit: "CAJA"}}},
			want: domain.ErrInvalidUnit,
		},
		{
			name: "cantidad cero",
			in:   appinventory.MovementInput{Type: entity.TransactionTypeConsumption, WarehouseCode: "BARRA", Lines: []appinventory.LineInput{{ArticleCode: "RON", Quantity: d("0"), Unit: entity.UnitRetail}}},
			want: domain.ErrInvalidInput,
		},
		{
			name: "traslado a la misma bodega",
			in:   appinventory.MovementInput{Type: entity.TransactionTypeTransfer, WarehouseCode: "BARRA", ToWarehouseCode: "barra", Lines: []appinventory.LineInput{{ArticleCode: "RON", Quantity: d("1"), Unit: entity.UnitRetail}}},
			want: domain.ErrInvalidInput,
		},
		{
			name: "bodega desconocida",
			in:   appinventory.MovementInput{Type: entity.TransactionTypePurchase, WarehouseCode: "COCINA", Lines: []appinventory.LineInput{{ArticleCode: "RON", Quantity: d("1"), Unit: entity.UnitRetail}}},
			want: domain.ErrNotFound,
		},
		{
			name: "artículo desconocido",
			in:   appinventory.MovementInput{Type: entity.TransactionTypePurchase, WarehouseCode: "BARRA", Lines: []appinventory.LineInput{{ArticleCode: "GIN", Quantity: d("1"), Unit: entity.UnitRetail}}},
			want: domain.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := uc.Register(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegister_RejectsBackdated(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	uc := newRegister(store)

	_, _, err := uc.Register(ctx, purchase(t0, "BARRA", "COLA", "5", entity.UnitRetail, nil))
	require.NoError(t, err)

	_, _, err = uc.Register(ctx, purchase(t0.Add(-time.Minute), "BARRA", "COLA", "5", entity.UnitRetail, nil))
	assert.ErrorIs(t, err, domain.ErrBackdated)

	// misma fecha de ocurrencia se permite y queda después por fecha de registro
	_, rows, err := uc.Register(ctx, purchase(t0, "BARRA", "COLA", "1", entity.UnitRetail, nil))
	require.NoError(t, err)
	assert.True(t, d("6").Equal(rows[0].BalanceRetail))
}

func TestConsumeInTx_ForcesConsumption(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	uc := newRegister(store)

	_, _, err := uc.Register(ctx, purchase(t0, "BARRA", "COLA", "5", entity.UnitRetail, nil))
	require.NoError(t, err)

	in := purchase(t0.Add(time.Hour), "BARRA", "COLA", "2", entity.UnitRetail, nil)
	var rows []entity.KardexRow
	err = store.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		rows, err = uc.ConsumeInTx(ctx, uow, in)
		return err
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.TransactionTypeConsumption, rows[0].TransactionType)
	assert.True(t, d("3").Equal(rows[0].BalanceRetail))
}

// laggyRunner demora cada transacción antes de abrirla, como la ida y vuelta a la BD, de modo
// que el orden de llegada al bloqueo no coincide con el orden de las llamadas.
type laggyRunner struct {
	store *memory.Store
	n     int
	mu    sync.Mutex
}

func (r *laggyRunner) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	r.mu.Lock()
	lag := time.Duration(3-r.n%4) * time.Millisecond
	r.n++
	r.mu.Unlock()
	time.Sleep(lag)
	return r.store.Run(ctx, fn)
}

func postConcurrently(t *testing.T, uc *appinventory.RegisterMovementUseCase, n int, in appinventory.MovementInput) {
	t.Helper()
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := uc.Register(context.Background(), in)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestRegister_ConcurrentSameOccurredAtKeepsChain(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	_, _, err := newRegister(store).Register(ctx, purchase(t0, "BARRA", "COLA", "1000", entity.UnitRetail, nil))
	require.NoError(t, err)

	uc := appinventory.NewRegisterMovementUseCase(&laggyRunner{store: store}, zerolog.Nop(), appinventory.Options{})
	postConcurrently(t, uc, 50, purchase(t0.Add(time.Hour), "BARRA", "COLA", "1", entity.UnitRetail, nil))

	last, err := store.Repositories().Kardex.LastForUpdate(ctx, "COLA", "BARRA")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, d("1050").Equal(last.BalanceRetail), "saldo final %s", last.BalanceRetail)

	kardex := appinventory.NewKardexUseCase(store.Repositories().Kardex, time.UTC, zerolog.Nop())
	report, err := kardex.Query(ctx, appinventory.KardexQuery{From: "2026-03-01", To: "2026-03-01"})
	require.NoError(t, err)
	require.Len(t, report.Groups, 1)
	g := report.Groups[0]
	assert.NoError(t, g.ChainErr)
	assert.Len(t, g.Rows, 51)
	assert.True(t, d("1050").Equal(g.Final().Retail))
}

func TestRegister_ConcurrentDefaultOccurredAtIsNeverBackdated(t *testing.T) {
	ctx := context.Background()
	store := seed(t)

	uc := appinventory.NewRegisterMovementUseCase(&laggyRunner{store: store}, zerolog.Nop(), appinventory.Options{})
	postConcurrently(t, uc, 30, purchase(time.Time{}, "BARRA", "COLA", "1", entity.UnitRetail, nil))

	kardex := appinventory.NewKardexUseCase(store.Repositories().Kardex, time.UTC, zerolog.Nop())
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	report, err := kardex.Query(ctx, appinventory.KardexQuery{From: "2000-01-01", To: tomorrow})
	require.NoError(t, err)
	require.Len(t, report.Groups, 1)
	assert.NoError(t, report.Groups[0].ChainErr)
	assert.True(t, d("30").Equal(report.Groups[0].Final().Retail))
}
