package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/runlock"
	appsales "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/sales"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/cmd/config"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	balancemocks "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/mocks/repository/balance"
	ledgermocks "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/mocks/repository/ledger"
	lotmocks "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/mocks/repository/lot"
	redismocks "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/mocks/repository/redis"
	salesmocks "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/mocks/repository/sales"
	txmocks "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/mocks/repository/tx"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/memory"
	cerr "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/errors"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	sku = model.SkuKey{CardmarketID: 501, Condition: "NM", Language: "EN"}
	t0  = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
)

func day(n int) *time.Time {
	d := t0.AddDate(0, 0, n)
	return &d
}

func testConfig() *config.Config {
	return &config.Config{Inventory: config.InventoryConfig{ApplySalesLimit: 100}}
}

func newMemoryApp(store *memory.Store) appsales.SalesApp {
	return appsales.NewSalesApp(testConfig(), store, store.LotRepository(), store.BalanceRepository(), store.SalesRepository(), store.LedgerRepository(), nil, nil)
}

// seedFIFO adds the newer lot first so insertion order cannot stand in for
// receipt order.
func seedFIFO(store *memory.Store) (older, newer uint64) {
	newer = store.AddLot(model.Lot{SkuKey: sku, QtyIn: 5, QtyRemaining: 5, SourceCode: "S2", SourceDate: day(2), CreatedAt: t0})
	older = store.AddLot(model.Lot{SkuKey: sku, QtyIn: 5, QtyRemaining: 5, SourceCode: "S1", SourceDate: day(1), CreatedAt: t0.Add(time.Hour)})
	store.SetBalance(model.Balance{SkuKey: sku, QtyOnHand: 10, AvgUnitCostEur: decimal.NewFromInt(1)})
	return older, newer
}

func remaining(t *testing.T, store *memory.Store, id uint64) int64 {
	t.Helper()
	l, ok := store.Lot(id)
	require.True(t, ok, "lot %d", id)
	return l.QtyRemaining
}

func assertLotInvariant(t *testing.T, store *memory.Store) {
	t.Helper()
	for _, l := range store.Lots() {
		if l.QtyRemaining < 0 || l.QtyRemaining > l.QtyIn {
			t.Fatalf("lot %d: qty_remaining %d outside [0, %d]", l.ID, l.QtyRemaining, l.QtyIn)
		}
	}
}

func TestApplySales_FIFO(t *testing.T) {
	tests := []struct {
		name      string
		qty       int64
		wantOlder int64
		wantNewer int64
	}{
		{name: "qty 3 only touches the oldest lot", qty: 3, wantOlder: 2, wantNewer: 5},
		{name: "qty 7 drains the oldest lot first", qty: 7, wantOlder: 0, wantNewer: 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			older, newer := seedFIFO(store)
			saleID := store.AddSale(model.SalesLog{Source: "cardmarket", ExternalID: "o-1", SkuKey: sku, Qty: tt.qty, CreatedAt: t0})

			got, err := newMemoryApp(store).ApplySales(context.Background(), &model.ApplySalesRequest{})
			require.NoError(t, err)
			assert.Equal(t, 1, got.Found)
			assert.Equal(t, 1, got.Processed)
			assert.Empty(t, got.Errors)

			assert.Equal(t, tt.wantOlder, remaining(t, store, older))
			assert.Equal(t, tt.wantNewer, remaining(t, store, newer))
			assertLotInvariant(t, store)

			bal, ok := store.Balance(sku)
			require.True(t, ok)
			assert.Equal(t, 10-tt.qty, bal.QtyOnHand)

			sale, _ := store.Sale(saleID)
			assert.NotNil(t, sale.InventoryAppliedAt)

			var ledgerSum int64
			for _, txn := range store.Txns() {
				assert.Equal(t, constant.TxnKindSaleOut, txn.Kind)
				assert.Equal(t, saleID, txn.SalesLogID)
				assert.Less(t, txn.Qty, int64(0))
				ledgerSum += txn.Qty
			}
			assert.Equal(t, -tt.qty, ledgerSum)
		})
	}
}

func TestApplySales_MissingSourceDateSortsFirst(t *testing.T) {
	store := memory.NewStore()
	dated := store.AddLot(model.Lot{SkuKey: sku, QtyIn: 5, QtyRemaining: 5, SourceDate: day(1), CreatedAt: t0})
	undated := store.AddLot(model.Lot{SkuKey: sku, QtyIn: 5, QtyRemaining: 5, CreatedAt: t0.Add(time.Hour)})
	store.AddSale(model.SalesLog{SkuKey: sku, Qty: 2, CreatedAt: t0})

	_, err := newMemoryApp(store).ApplySales(context.Background(), &model.ApplySalesRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), remaining(t, store, undated))
	assert.Equal(t, int64(5), remaining(t, store, dated))
}

func TestApplySales_Idempotent(t *testing.T) {
	store := memory.NewStore()
	older, newer := seedFIFO(store)
	saleID := store.AddSale(model.SalesLog{SkuKey: sku, Qty: 3, CreatedAt: t0})
	app := newMemoryApp(store)

	first, err := app.ApplySales(context.Background(), &model.ApplySalesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Processed)

	second, err := app.ApplySales(context.Background(), &model.ApplySalesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Found)
	assert.Equal(t, 0, second.Processed)

	single, err := app.ApplySale(context.Background(), saleID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, single.Skipped)
	assert.Equal(t, 0, single.Processed)
	assert.Empty(t, single.Errors)

	assert.Equal(t, int64(2), remaining(t, store, older))
	assert.Equal(t, int64(5), remaining(t, store, newer))
	bal, _ := store.Balance(sku)
	assert.Equal(t, int64(7), bal.QtyOnHand)
	assert.Len(t, store.Txns(), 1)
}

func TestApplySales_Oversell(t *testing.T) {
	store := memory.NewStore()
	a := store.AddLot(model.Lot{SkuKey: sku, QtyIn: 3, QtyRemaining: 3, SourceDate: day(1)})
	b := store.AddLot(model.Lot{SkuKey: sku, QtyIn: 1, QtyRemaining: 1, SourceDate: day(2)})
	store.SetBalance(model.Balance{SkuKey: sku, QtyOnHand: 4})
	store.AddSale(model.SalesLog{SkuKey: sku, Qty: 10, Ts: t0, CreatedAt: t0})

	got, err := newMemoryApp(store).ApplySales(context.Background(), &model.ApplySalesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Processed)
	assert.Equal(t, 1, got.Oversold)
	require.Len(t, got.Consumptions, 1)
	assert.Equal(t, int64(6), got.Consumptions[0].Shortfall)
	assert.Empty(t, got.Errors)

	assert.Equal(t, int64(0), remaining(t, store, a))
	assert.Equal(t, int64(0), remaining(t, store, b))
	assertLotInvariant(t, store)

	bal, _ := store.Balance(sku)
	assert.Equal(t, int64(-6), bal.QtyOnHand)
	require.NotNil(t, bal.LastSaleAt)
	assert.True(t, bal.LastSaleAt.Equal(t0))
	assert.Len(t, store.Txns(), 2)
}

func TestApplySales_SaleWithoutBalanceCreatesNegativeRow(t *testing.T) {
	store := memory.NewStore()
	store.AddSale(model.SalesLog{SkuKey: sku, Qty: 2, CreatedAt: t0})

	got, err := newMemoryApp(store).ApplySales(context.Background(), &model.ApplySalesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Oversold)

	bal, ok := store.Balance(sku)
	require.True(t, ok)
	assert.Equal(t, int64(-2), bal.QtyOnHand)
	assert.Empty(t, store.Txns())
}

func TestApplySales_InvalidSaleIsReportedAndRejected(t *testing.T) {
	store := memory.NewStore()
	seedFIFO(store)
	bad := store.AddSale(model.SalesLog{SkuKey: sku, Qty: 0, CreatedAt: t0})
	good := store.AddSale(model.SalesLog{SkuKey: sku, Qty: 1, CreatedAt: t0.Add(time.Minute)})
	app := newMemoryApp(store)

	got, err := app.ApplySales(context.Background(), &model.ApplySalesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Found)
	assert.Equal(t, 1, got.Processed)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, bad, got.Errors[0].ID)
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrValidation], got.Errors[0].Code)

	badRow, _ := store.Sale(bad)
	assert.Nil(t, badRow.InventoryAppliedAt)
	require.NotNil(t, badRow.InventoryRejectedAt)
	require.NotNil(t, badRow.InventoryError)
	assert.Contains(t, *badRow.InventoryError, "Qty")
	goodRow, _ := store.Sale(good)
	assert.NotNil(t, goodRow.InventoryAppliedAt)

	again, err := app.ApplySales(context.Background(), &model.ApplySalesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Found)
	assert.Empty(t, again.Errors)

	single, err := app.ApplySale(context.Background(), bad, false)
	require.NoError(t, err)
	assert.Equal(t, 1, single.Skipped)
	assert.Empty(t, single.Errors)
}

func TestApplySales_InvalidRowsDoNotBlockTheQueue(t *testing.T) {
	store := memory.NewStore()
	older, newer := seedFIFO(store)
	store.AddSale(model.SalesLog{SkuKey: sku, Qty: 0, CreatedAt: t0})
	store.AddSale(model.SalesLog{SkuKey: sku, Qty: -1, CreatedAt: t0.Add(time.Minute)})
	valid := store.AddSale(model.SalesLog{SkuKey: sku, Qty: 3, CreatedAt: t0.Add(2 * time.Minute)})
	app := newMemoryApp(store)
	req := &model.ApplySalesRequest{Limit: 2}

	first, err := app.ApplySales(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Found)
	assert.Equal(t, 0, first.Processed)
	assert.Len(t, first.Errors, 2)

	second, err := app.ApplySales(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Found)
	assert.Equal(t, 1, second.Processed)
	require.Len(t, second.Consumptions, 1)
	assert.Equal(t, valid, second.Consumptions[0].SaleID)

	assert.Equal(t, int64(2), remaining(t, store, older))
	assert.Equal(t, int64(5), remaining(t, store, newer))
}

func TestApplySales_SimulateDoesNotRejectInvalidRows(t *testing.T) {
	store := memory.NewStore()
	seedFIFO(store)
	bad := store.AddSale(model.SalesLog{SkuKey: sku, Qty: 0, CreatedAt: t0})

	got, err := newMemoryApp(store).ApplySales(context.Background(), &model.ApplySalesRequest{Simulate: true})
	require.NoError(t, err)
	assert.Len(t, got.Errors, 1)

	row, _ := store.Sale(bad)
	assert.Nil(t, row.InventoryRejectedAt)
}

func TestApplySale_ReturnsLedgerRows(t *testing.T) {
	store := memory.NewStore()
	older, newer := seedFIFO(store)
	id := store.AddSale(model.SalesLog{SkuKey: sku, Qty: 7, CreatedAt: t0})
	app := newMemoryApp(store)

	got, err := app.ApplySale(context.Background(), id, false)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Processed)
	require.Len(t, got.Ledger, 2)
	assert.Equal(t, older, got.Ledger[0].LotID)
	assert.Equal(t, int64(-5), got.Ledger[0].Qty)
	assert.Equal(t, newer, got.Ledger[1].LotID)
	assert.Equal(t, int64(-2), got.Ledger[1].Qty)

	// an applied sale still shows what it consumed
	again, err := app.ApplySale(context.Background(), id, false)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Skipped)
	assert.Equal(t, got.Ledger, again.Ledger)

	sim, err := app.ApplySale(context.Background(), store.AddSale(model.SalesLog{SkuKey: sku, Qty: 1, CreatedAt: t0}), true)
	require.NoError(t, err)
	assert.Empty(t, sim.Ledger)
}

func TestApplySales_CancelledSalesAreReported(t *testing.T) {
	txRepo := txmocks.NewTxRepository(t)
	salesRepo := salesmocks.NewSalesRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	applied := t0
	rows := []model.SalesLog{
		{ID: 1, SkuKey: sku, Qty: 1, Ts: t0, CreatedAt: t0},
		{ID: 2, SkuKey: sku, Qty: 1, Ts: t0, CreatedAt: t0},
		{ID: 3, SkuKey: sku, Qty: 1, Ts: t0, CreatedAt: t0},
	}
	tx := &sqlx.Tx{}
	salesRepo.On("ListUnapplied", mock.Anything, time.Time{}, 100).Return(rows, nil).Once()
	txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	salesRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(1)).
		Run(func(mock.Arguments) { cancel() }).
		Return(&model.SalesLog{ID: 1, SkuKey: sku, Qty: 1, InventoryAppliedAt: &applied}, nil).Once()
	txRepo.On("RollbackTx", tx).Return(nil).Once()

	app := appsales.NewSalesApp(testConfig(), txRepo, lotmocks.NewLotRepository(t), balancemocks.NewBalanceRepository(t), salesRepo, ledgermocks.NewLedgerRepository(t), nil, nil)
	got, err := app.ApplySales(ctx, &model.ApplySalesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Found)
	assert.Equal(t, 1, got.Skipped)
	require.Len(t, got.Errors, 2)
	assert.Equal(t, 1, got.Errors[0].Index)
	assert.Equal(t, uint64(2), got.Errors[0].ID)
	assert.Equal(t, 2, got.Errors[1].Index)
	assert.Equal(t, uint64(3), got.Errors[1].ID)
	for _, e := range got.Errors {
		assert.Equal(t, constant.ErrorTypeCode[constant.ErrCancelled], e.Code)
	}
	assert.Equal(t, got.Found, got.Processed+got.Skipped+len(got.Errors))
}

func TestApplySales_FailedSaleRollsBackAndRunContinues(t *testing.T) {
	store := memory.NewStore()
	older, newer := seedFIFO(store)
	first := store.AddSale(model.SalesLog{SkuKey: sku, Qty: 4, CreatedAt: t0})
	second := store.AddSale(model.SalesLog{SkuKey: sku, Qty: 1, CreatedAt: t0.Add(time.Minute)})
	store.FailNext("balance.ApplySaleTx", errors.New("deadlock found"))

	got, err := newMemoryApp(store).ApplySales(context.Background(), &model.ApplySalesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Processed)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, first, got.Errors[0].ID)
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrTransactionFailure], got.Errors[0].Code)

	// only the second sale's single unit left the oldest lot
	assert.Equal(t, int64(4), remaining(t, store, older))
	assert.Equal(t, int64(5), remaining(t, store, newer))
	firstRow, _ := store.Sale(first)
	assert.Nil(t, firstRow.InventoryAppliedAt)
	secondRow, _ := store.Sale(second)
	assert.NotNil(t, secondRow.InventoryAppliedAt)
	assert.Len(t, store.Txns(), 1)
}

func TestApplySales_SimulateWritesNothing(t *testing.T) {
	store := memory.NewStore()
	older, newer := seedFIFO(store)
	s1 := store.AddSale(model.SalesLog{SkuKey: sku, Qty: 3, CreatedAt: t0})
	store.AddSale(model.SalesLog{SkuKey: sku, Qty: 4, CreatedAt: t0.Add(time.Minute)})

	got, err := newMemoryApp(store).ApplySales(context.Background(), &model.ApplySalesRequest{Simulate: true})
	require.NoError(t, err)
	assert.True(t, got.Simulate)
	assert.Equal(t, 2, got.Processed)
	require.Len(t, got.Consumptions, 2)
	assert.Equal(t, []model.LotTake{{LotID: older, Qty: 3}}, got.Consumptions[0].Takes)
	// the second simulated sale sees what the first one would have taken
	assert.Equal(t, []model.LotTake{{LotID: older, Qty: 2}, {LotID: newer, Qty: 2}}, got.Consumptions[1].Takes)

	assert.Equal(t, int64(5), remaining(t, store, older))
	assert.Equal(t, int64(5), remaining(t, store, newer))
	row, _ := store.Sale(s1)
	assert.Nil(t, row.InventoryAppliedAt)
	assert.Empty(t, store.Txns())
	bal, _ := store.Balance(sku)
	assert.Equal(t, int64(10), bal.QtyOnHand)
}

func TestApplySales_SinceAndLimit(t *testing.T) {
	store := memory.NewStore()
	seedFIFO(store)
	store.AddSale(model.SalesLog{SkuKey: sku, Qty: 1, CreatedAt: t0})
	store.AddSale(model.SalesLog{SkuKey: sku, Qty: 1, CreatedAt: t0.Add(2 * time.Hour)})
	store.AddSale(model.SalesLog{SkuKey: sku, Qty: 1, CreatedAt: t0.Add(3 * time.Hour)})

	got, err := newMemoryApp(store).ApplySales(context.Background(), &model.ApplySalesRequest{Since: t0.Add(time.Hour), Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Found)
	require.Len(t, got.Consumptions, 1)
	assert.Equal(t, uint64(2), got.Consumptions[0].SaleID)
}

func TestApplySales_Busy(t *testing.T) {
	redisRepo := redismocks.NewRepository(t)
	redisRepo.On("AcquireLock", mock.Anything, constant.WriterLockKey, mock.AnythingOfType("string"), time.Minute).Return(false, nil).Once()

	store := memory.NewStore()
	app := appsales.NewSalesApp(testConfig(), store, store.LotRepository(), store.BalanceRepository(), store.SalesRepository(), store.LedgerRepository(), runlock.New(redisRepo, time.Minute), nil)

	_, err := app.ApplySales(context.Background(), &model.ApplySalesRequest{})
	if !errors.Is(err, cerr.SetCustomError(constant.ErrBusy)) {
		t.Fatalf("ApplySales() error = %v, want busy", err)
	}
}

func TestSalesApp_ApplySale(t *testing.T) {
	type fields struct {
		txRepo      *txmocks.TxRepository
		lotRepo     *lotmocks.LotRepository
		balanceRepo *balancemocks.BalanceRepository
		salesRepo   *salesmocks.SalesRepository
		ledgerRepo  *ledgermocks.LedgerRepository
	}
	type args struct {
		ctx    context.Context
		saleID uint64
	}
	applied := t0
	sale := &model.SalesLog{ID: 9, SkuKey: sku, Qty: 2, Ts: t0, CreatedAt: t0}
	appliedSale := &model.SalesLog{ID: 9, SkuKey: sku, Qty: 2, Ts: t0, CreatedAt: t0, InventoryAppliedAt: &applied}
	reason := "Qty must be greater than 0"
	rejectedSale := &model.SalesLog{ID: 9, SkuKey: sku, Qty: 0, Ts: t0, CreatedAt: t0, InventoryRejectedAt: &applied, InventoryError: &reason}
	ledgerRows := []model.InventoryTxn{{ID: 1, LotID: 4, Kind: constant.TxnKindSaleOut, Qty: -2, SalesLogID: 9, CreatedAt: t0}}

	newFields := func() fields {
		return fields{
			txRepo:      txmocks.NewTxRepository(t),
			lotRepo:     lotmocks.NewLotRepository(t),
			balanceRepo: balancemocks.NewBalanceRepository(t),
			salesRepo:   salesmocks.NewSalesRepository(t),
			ledgerRepo:  ledgermocks.NewLedgerRepository(t),
		}
	}

	tests := []struct {
		name          string
		fields        fields
		args          args
		mockCall      func(f fields)
		wantProcessed int
		wantSkipped   int
		wantItemErrs  int
		wantLedger    int
		wantErr       bool
		errCode       constant.ErrorType
	}{
		{
			name:   "success: sale covered by one lot",
			fields: newFields(),
			args:   args{ctx: context.Background(), saleID: 9},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.salesRepo.On("GetByID", mock.Anything, uint64(9)).Return(sale, nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.salesRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(9)).Return(sale, nil).Once()
				f.lotRepo.On("ListOpenBySkuTx", mock.Anything, tx, sku).Return([]model.Lot{{ID: 4, SkuKey: sku, QtyIn: 5, QtyRemaining: 5}}, nil).Once()
				f.lotRepo.On("DecrementTx", mock.Anything, tx, uint64(4), int64(2)).Return(nil).Once()
				f.ledgerRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(txn *model.InventoryTxn) bool {
					return txn.LotID == 4 && txn.Qty == -2 && txn.Kind == constant.TxnKindSaleOut && txn.SalesLogID == 9
				})).Return(nil).Once()
				f.balanceRepo.On("ApplySaleTx", mock.Anything, tx, sku, int64(2), t0).Return(nil).Once()
				f.salesRepo.On("MarkAppliedTx", mock.Anything, tx, uint64(9), mock.AnythingOfType("time.Time")).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.ledgerRepo.On("ListBySale", mock.Anything, uint64(9)).Return(ledgerRows, nil).Once()
			},
			wantProcessed: 1,
			wantLedger:    1,
		},
		{
			name:   "skip: already applied before the run",
			fields: newFields(),
			args:   args{ctx: context.Background(), saleID: 9},
			mockCall: func(f fields) {
				f.salesRepo.On("GetByID", mock.Anything, uint64(9)).Return(appliedSale, nil).Once()
				f.ledgerRepo.On("ListBySale", mock.Anything, uint64(9)).Return(ledgerRows, nil).Once()
			},
			wantSkipped: 1,
			wantLedger:  1,
		},
		{
			name:   "skip: rejected earlier",
			fields: newFields(),
			args:   args{ctx: context.Background(), saleID: 9},
			mockCall: func(f fields) {
				f.salesRepo.On("GetByID", mock.Anything, uint64(9)).Return(rejectedSale, nil).Once()
			},
			wantSkipped: 1,
		},
		{
			name:   "failed: invalid sale is rejected",
			fields: newFields(),
			args:   args{ctx: context.Background(), saleID: 9},
			mockCall: func(f fields) {
				invalid := &model.SalesLog{ID: 9, SkuKey: sku, Qty: 0, Ts: t0, CreatedAt: t0}
				f.salesRepo.On("GetByID", mock.Anything, uint64(9)).Return(invalid, nil).Once()
				f.salesRepo.On("MarkRejected", mock.Anything, uint64(9), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
			},
			wantItemErrs: 1,
		},
		{
			name:   "skip: applied by another run before the row lock",
			fields: newFields(),
			args:   args{ctx: context.Background(), saleID: 9},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.salesRepo.On("GetByID", mock.Anything, uint64(9)).Return(sale, nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.salesRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(9)).Return(appliedSale, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.ledgerRepo.On("ListBySale", mock.Anything, uint64(9)).Return(nil, errors.New("read timeout")).Once()
			},
			wantSkipped: 1,
		},
		{
			name:   "failed: commit error is itemized and rolled back",
			fields: newFields(),
			args:   args{ctx: context.Background(), saleID: 9},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.salesRepo.On("GetByID", mock.Anything, uint64(9)).Return(sale, nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.salesRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(9)).Return(sale, nil).Once()
				f.lotRepo.On("ListOpenBySkuTx", mock.Anything, tx, sku).Return([]model.Lot{}, nil).Once()
				f.balanceRepo.On("ApplySaleTx", mock.Anything, tx, sku, int64(2), t0).Return(nil).Once()
				f.salesRepo.On("MarkAppliedTx", mock.Anything, tx, uint64(9), mock.AnythingOfType("time.Time")).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(errors.New("connection reset")).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantItemErrs: 1,
		},
		{
			name:   "failed: begin tx",
			fields: newFields(),
			args:   args{ctx: context.Background(), saleID: 9},
			mockCall: func(f fields) {
				f.salesRepo.On("GetByID", mock.Anything, uint64(9)).Return(sale, nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, errors.New("too many connections")).Once()
			},
			wantItemErrs: 1,
		},
		{
			name:   "error: sale not found",
			fields: newFields(),
			args:   args{ctx: context.Background(), saleID: 404},
			mockCall: func(f fields) {
				f.salesRepo.On("GetByID", mock.Anything, uint64(404)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name:   "error: lookup fails",
			fields: newFields(),
			args:   args{ctx: context.Background(), saleID: 9},
			mockCall: func(f fields) {
				f.salesRepo.On("GetByID", mock.Anything, uint64(9)).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name:    "error: zero id",
			fields:  newFields(),
			args:    args{ctx: context.Background(), saleID: 0},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appsales.NewSalesApp(testConfig(), tt.fields.txRepo, tt.fields.lotRepo, tt.fields.balanceRepo, tt.fields.salesRepo, tt.fields.ledgerRepo, nil, nil)

			got, err := app.ApplySale(tt.args.ctx, tt.args.saleID, false)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplySale() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.Processed != tt.wantProcessed || got.Skipped != tt.wantSkipped || len(got.Errors) != tt.wantItemErrs {
				t.Fatalf("ApplySale() processed=%d skipped=%d errors=%d, want %d/%d/%d",
					got.Processed, got.Skipped, len(got.Errors), tt.wantProcessed, tt.wantSkipped, tt.wantItemErrs)
			}
			if len(got.Ledger) != tt.wantLedger {
				t.Fatalf("ApplySale() ledger rows = %d, want %d", len(got.Ledger), tt.wantLedger)
			}
		})
	}
}
