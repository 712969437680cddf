package transport_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/backfill"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/diagnostics"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/sales"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/stockclass"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/stockin"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/worklist"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/cmd/config"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/memory"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKey = "secret"

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newHandler(store *memory.Store) http.Handler {
	cfg := &config.Config{Inventory: config.InventoryConfig{BackfillChunkSize: 50, BackfillLimit: 100, ApplySalesLimit: 100}}
	resolver := stockclass.NewResolver(store.StockClassRepository(), nil, 0)
	return transport.NewTransport(&transport.RestHandler{
		StockInApp:     stockin.NewStockInApp(cfg, store, store.LotRepository(), store.BalanceRepository(), resolver, nil),
		BackfillApp:    backfill.NewBackfillApp(cfg, store, store.LotRepository(), nil),
		SalesApp:       sales.NewSalesApp(cfg, store, store.LotRepository(), store.BalanceRepository(), store.SalesRepository(), store.LedgerRepository(), nil, nil),
		DiagnosticsApp: diagnostics.NewDiagnosticsApp(store.LotRepository(), store.SalesRepository(), store.BalanceRepository()),
		WorklistApp:    worklist.NewWorklistApp(store.LotRepository(), resolver, nil),
	}, apiKey)
}

func do(t *testing.T, h http.Handler, method, path, body string, auth bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if auth {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestInternalRoutes_RequireAPIKey(t *testing.T) {
	h := newHandler(memory.NewStore())

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header"},
		{name: "wrong key", header: "Bearer nope"},
		{name: "missing bearer prefix", header: apiKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/internal/v1/diagnostics/consistency", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			assert.Contains(t, rec.Body.String(), constant.ErrorTypeCode[constant.ErrUnauthorize])
		})
	}
}

func TestHealthIsPublic(t *testing.T) {
	rec, env := do(t, newHandler(memory.NewStore()), http.MethodGet, "/healthz", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constant.ErrorTypeCode[constant.Successful], env.Code)
}

func TestStockInThenSaleThenReport(t *testing.T) {
	store := memory.NewStore()
	h := newHandler(store)

	rec, env := do(t, h, http.MethodPost, "/internal/v1/stock-in", `{"rows":[
		{"cardmarket_id":42,"condition":"NM","language":"EN","qty":10,"unit_cost_eur":"0.50","source_code":"ABC123"}
	]}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var in model.StockInResult
	require.NoError(t, json.Unmarshal(env.Data, &in))
	assert.Equal(t, 1, in.Created)
	require.Len(t, in.Lots, 1)
	assert.Equal(t, "D01.01", in.Lots[0].Location)
	require.Len(t, in.Warnings, 1)
	assert.Equal(t, constant.ErrorTypeCode[constant.WarnStockClassDefaulted], in.Warnings[0].Code)

	sku := model.SkuKey{CardmarketID: 42, Condition: "NM", Language: "EN"}
	store.AddSale(model.SalesLog{Source: "cardmarket", ExternalID: "o-1", SkuKey: sku, Qty: 3})

	rec, env = do(t, h, http.MethodPost, "/internal/v1/sales/apply", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var applied model.ApplySalesResult
	require.NoError(t, json.Unmarshal(env.Data, &applied))
	assert.Equal(t, 1, applied.Processed)
	assert.Equal(t, 0, applied.Oversold)

	rec, env = do(t, h, http.MethodGet, "/internal/v1/diagnostics/consistency?only_issues=true", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report model.ConsistencyReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, 0, report.IssueCount)
	assert.Empty(t, report.Rows)

	rec, env = do(t, h, http.MethodGet, "/internal/v1/diagnostics/consistency", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &report))
	require.Len(t, report.Rows, 1)
	assert.Equal(t, int64(7), report.Rows[0].Theoretical)
	assert.Equal(t, int64(7), report.Rows[0].BalanceOnHand)
}

func TestRequestErrors(t *testing.T) {
	h := newHandler(memory.NewStore())

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   constant.ErrorType
	}{
		{name: "stock-in malformed json", method: http.MethodPost, path: "/internal/v1/stock-in", body: "{", wantStatus: http.StatusBadRequest, wantCode: constant.ErrInvalidRequest},
		{name: "stock-in without rows", method: http.MethodPost, path: "/internal/v1/stock-in", body: `{"rows":[]}`, wantStatus: http.StatusBadRequest, wantCode: constant.ErrInvalidRequest},
		{name: "backfill negative limit", method: http.MethodPost, path: "/internal/v1/lots/backfill", body: `{"limit":-1}`, wantStatus: http.StatusBadRequest, wantCode: constant.ErrInvalidRequest},
		{name: "unknown sale", method: http.MethodPost, path: "/internal/v1/sales/99/apply", wantStatus: http.StatusNotFound, wantCode: constant.ErrNotFound},
		{name: "bad simulate flag", method: http.MethodPost, path: "/internal/v1/sales/1/apply?simulate=maybe", wantStatus: http.StatusBadRequest, wantCode: constant.ErrInvalidRequest},
		{name: "bad only_issues flag", method: http.MethodGet, path: "/internal/v1/diagnostics/consistency?only_issues=2", wantStatus: http.StatusBadRequest, wantCode: constant.ErrInvalidRequest},
		{name: "move to unparseable location", method: http.MethodPost, path: "/internal/v1/worklist/moves/apply", body: `{"lot_ids":[1],"location":"X1"}`, wantStatus: http.StatusBadRequest, wantCode: constant.ErrInvalidRequest},
		{name: "move without lots", method: http.MethodPost, path: "/internal/v1/worklist/moves/apply", body: `{"lot_ids":[],"location":"C01.01"}`, wantStatus: http.StatusBadRequest, wantCode: constant.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, h, tt.method, tt.path, tt.body, true)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if env.Code != constant.ErrorTypeCode[tt.wantCode] {
				t.Fatalf("code = %s, want %s", env.Code, constant.ErrorTypeCode[tt.wantCode])
			}
		})
	}
}

func TestSimulateQueryLeavesSaleUnapplied(t *testing.T) {
	store := memory.NewStore()
	h := newHandler(store)
	sku := model.SkuKey{CardmarketID: 7, Condition: "EX", Language: "DE"}
	store.AddLot(model.Lot{SkuKey: sku, QtyIn: 4, QtyRemaining: 4, SourceCode: "S"})
	id := store.AddSale(model.SalesLog{Source: "cardmarket", ExternalID: "o-2", SkuKey: sku, Qty: 2})

	rec, env := do(t, h, http.MethodPost, "/internal/v1/sales/1/apply?simulate=true", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res model.ApplySalesResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, res.Simulate)
	require.Len(t, res.Consumptions, 1)
	assert.Equal(t, int64(2), res.Consumptions[0].Takes[0].Qty)

	sale, ok := store.Sale(id)
	require.True(t, ok)
	assert.Nil(t, sale.InventoryAppliedAt)
	lot, _ := store.Lot(1)
	assert.Equal(t, int64(4), lot.QtyRemaining)
}
