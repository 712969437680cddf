package diagnostics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appdiagnostics "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/diagnostics"
	appsales "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/sales"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/cmd/config"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	balancemocks "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/mocks/repository/balance"
	lotmocks "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/mocks/repository/lot"
	salesmocks "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/mocks/repository/sales"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	skuA = model.SkuKey{CardmarketID: 1, Condition: "NM", Language: "EN"}
	skuB = model.SkuKey{CardmarketID: 2, Condition: "NM", Language: "EN"}
	skuC = model.SkuKey{CardmarketID: 3, IsFoil: true, Condition: "LP", Language: "FR"}
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		lots       []model.LotSum
		sales      []model.SaleSum
		balances   []model.Balance
		wantTheo   int64
		wantIssues []string
	}{
		{
			name:     "consistent",
			lots:     []model.LotSum{{SkuKey: skuA, QtyIn: 10, QtyRemaining: 7}},
			sales:    []model.SaleSum{{SkuKey: skuA, Qty: 3}},
			balances: []model.Balance{{SkuKey: skuA, QtyOnHand: 7}},
			wantTheo: 7,
		},
		{
			name:       "balance drifted",
			lots:       []model.LotSum{{SkuKey: skuA, QtyIn: 10, QtyRemaining: 7}},
			sales:      []model.SaleSum{{SkuKey: skuA, Qty: 3}},
			balances:   []model.Balance{{SkuKey: skuA, QtyOnHand: 9}},
			wantTheo:   7,
			wantIssues: []string{constant.IssueBalanceMismatch},
		},
		{
			name:       "oversell",
			lots:       []model.LotSum{{SkuKey: skuA, QtyIn: 4, QtyRemaining: 0}},
			sales:      []model.SaleSum{{SkuKey: skuA, Qty: 10}},
			balances:   []model.Balance{{SkuKey: skuA, QtyOnHand: -6}},
			wantTheo:   -6,
			wantIssues: []string{constant.IssueRemainingMismatch, constant.IssueNegativeBalance, constant.IssueNegativeTheoretical},
		},
		{
			name:       "lots without a balance row",
			lots:       []model.LotSum{{SkuKey: skuA, QtyIn: 5, QtyRemaining: 5}},
			wantTheo:   5,
			wantIssues: []string{constant.IssueMissingBalance},
		},
		{
			name:       "balance without lots",
			balances:   []model.Balance{{SkuKey: skuA, QtyOnHand: 2}},
			wantTheo:   0,
			wantIssues: []string{constant.IssueBalanceMismatch},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rows := appdiagnostics.Reconcile(tt.lots, tt.sales, tt.balances)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.wantTheo, rows[0].Theoretical)
			assert.Equal(t, tt.wantIssues, rows[0].Issues)
		})
	}
}

func TestReconcile_SortedBySku(t *testing.T) {
	rows := appdiagnostics.Reconcile(
		[]model.LotSum{{SkuKey: skuC}, {SkuKey: skuA}},
		nil,
		[]model.Balance{{SkuKey: skuB}},
	)
	require.Len(t, rows, 3)
	assert.Equal(t, []model.SkuKey{skuA, skuB, skuC}, []model.SkuKey{rows[0].Sku, rows[1].Sku, rows[2].Sku})
}

func TestConsistencyReport_FlagsOversell(t *testing.T) {
	store := memory.NewStore()
	store.AddLot(model.Lot{SkuKey: skuA, QtyIn: 3, QtyRemaining: 3})
	store.AddLot(model.Lot{SkuKey: skuA, QtyIn: 1, QtyRemaining: 1})
	store.SetBalance(model.Balance{SkuKey: skuA, QtyOnHand: 4})
	store.AddLot(model.Lot{SkuKey: skuB, QtyIn: 2, QtyRemaining: 2})
	store.SetBalance(model.Balance{SkuKey: skuB, QtyOnHand: 2})
	store.AddSale(model.SalesLog{SkuKey: skuA, Qty: 10, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})

	sales := appsales.NewSalesApp(&config.Config{}, store, store.LotRepository(), store.BalanceRepository(), store.SalesRepository(), store.LedgerRepository(), nil, nil)
	_, err := sales.ApplySales(context.Background(), &model.ApplySalesRequest{})
	require.NoError(t, err)

	app := appdiagnostics.NewDiagnosticsApp(store.LotRepository(), store.SalesRepository(), store.BalanceRepository())

	all, err := app.ConsistencyReport(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, all.SkuCount)
	assert.Equal(t, 1, all.IssueCount)
	require.Len(t, all.Rows, 2)

	only, err := app.ConsistencyReport(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, only.Rows, 1)
	row := only.Rows[0]
	assert.Equal(t, skuA, row.Sku)
	assert.Equal(t, int64(-6), row.Theoretical)
	assert.Equal(t, int64(0), row.LotQtyRemaining)
	assert.Equal(t, int64(-6), row.BalanceOnHand)
	assert.Contains(t, row.Issues, constant.IssueRemainingMismatch)
	assert.NotContains(t, row.Issues, constant.IssueBalanceMismatch)
}

func TestDiagnosticsApp_ConsistencyReport(t *testing.T) {
	type fields struct {
		lotRepo     *lotmocks.LotRepository
		salesRepo   *salesmocks.SalesRepository
		balanceRepo *balancemocks.BalanceRepository
	}
	newFields := func() fields {
		return fields{
			lotRepo:     lotmocks.NewLotRepository(t),
			salesRepo:   salesmocks.NewSalesRepository(t),
			balanceRepo: balancemocks.NewBalanceRepository(t),
		}
	}
	tests := []struct {
		name     string
		fields   fields
		mockCall func(f fields)
		wantErr  bool
	}{
		{
			name:   "error: lot sums",
			fields: newFields(),
			mockCall: func(f fields) {
				f.lotRepo.On("SumBySku", mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
		},
		{
			name:   "error: sale sums",
			fields: newFields(),
			mockCall: func(f fields) {
				f.lotRepo.On("SumBySku", mock.Anything).Return([]model.LotSum{}, nil).Once()
				f.salesRepo.On("SumAppliedBySku", mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
		},
		{
			name:   "error: balances",
			fields: newFields(),
			mockCall: func(f fields) {
				f.lotRepo.On("SumBySku", mock.Anything).Return([]model.LotSum{}, nil).Once()
				f.salesRepo.On("SumAppliedBySku", mock.Anything).Return([]model.SaleSum{}, nil).Once()
				f.balanceRepo.On("List", mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
		},
		{
			name:   "success: empty warehouse",
			fields: newFields(),
			mockCall: func(f fields) {
				f.lotRepo.On("SumBySku", mock.Anything).Return([]model.LotSum{}, nil).Once()
				f.salesRepo.On("SumAppliedBySku", mock.Anything).Return([]model.SaleSum{}, nil).Once()
				f.balanceRepo.On("List", mock.Anything).Return([]model.Balance{}, nil).Once()
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appdiagnostics.NewDiagnosticsApp(tt.fields.lotRepo, tt.fields.salesRepo, tt.fields.balanceRepo)

			got, err := app.ConsistencyReport(context.Background(), false)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ConsistencyReport() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.SkuCount != 0 {
				t.Fatalf("ConsistencyReport() SkuCount = %d, want 0", got.SkuCount)
			}
		})
	}
}
