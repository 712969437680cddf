package transport

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	backfillapp "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/backfill"
	diagnosticsapp "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/diagnostics"
	salesapp "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/sales"
	stockinapp "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/stockin"
	worklistapp "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/worklist"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/errors"
	validatorx "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/validator"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	StockInApp     stockinapp.StockInApp
	BackfillApp    backfillapp.BackfillApp
	SalesApp       salesapp.SalesApp
	DiagnosticsApp diagnosticsapp.DiagnosticsApp
	WorklistApp    worklistapp.WorklistApp
}

func NewTransport(rh *RestHandler, apiKey string) http.Handler {
	mux := mux.NewRouter()

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	mux.HandleFunc("/healthz", rh.Health).Methods(http.MethodGet)

	// internal routes, static api key
	internal := mux.PathPrefix("/internal/v1").Subrouter()
	internal.HandleFunc("/stock-in", rh.StockIn).Methods(http.MethodPost)
	internal.HandleFunc("/lots/backfill", rh.Backfill).Methods(http.MethodPost)
	internal.HandleFunc("/sales/apply", rh.ApplySales).Methods(http.MethodPost)
	internal.HandleFunc("/sales/{id:[0-9]+}/apply", rh.ApplySale).Methods(http.MethodPost)
	internal.HandleFunc("/diagnostics/consistency", rh.Consistency).Methods(http.MethodGet)
	internal.HandleFunc("/worklist/moves", rh.Worklist).Methods(http.MethodGet)
	internal.HandleFunc("/worklist/moves/apply", rh.ApplyMove).Methods(http.MethodPost)
	internal.Use(InternalMiddleware(apiKey))

	// middleware
	mux.Use(LoggingMiddleware())

	return mux
}

// decodeOptional decodes a JSON body into dst; an empty body leaves dst as is.
func decodeOptional(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if stderrors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func queryBool(r *http.Request, key string) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

// Health handler
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} transport.Response
// @Router /healthz [get]
func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}

// StockIn handler
// @Summary Import stock-in rows
// @Description Creates one lot per row, allocates a storage location and updates the SKU balance. Rows fail independently.
// @Tags Inventory
// @Accept json
// @Produce json
// @Security InternalKey
// @Param request body model.StockInRequest true "Stock-in rows"
// @Success 200 {object} model.StockInResult
// @Failure 400 {object} transport.Response
// @Failure 409 {object} transport.Response
// @Router /internal/v1/stock-in [post]
func (s *RestHandler) StockIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.StockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if s.StockInApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	res, err := s.StockInApp.Import(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Backfill handler
// @Summary Backfill missing lot locations
// @Description Assigns single-row locations to open lots without one. An empty body runs with the configured limit.
// @Tags Inventory
// @Accept json
// @Produce json
// @Security InternalKey
// @Param request body model.BackfillRequest false "Backfill options"
// @Success 200 {object} model.BackfillResult
// @Failure 400 {object} transport.Response
// @Failure 409 {object} transport.Response
// @Router /internal/v1/lots/backfill [post]
func (s *RestHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.BackfillRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if s.BackfillApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	res, err := s.BackfillApp.Backfill(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ApplySales handler
// @Summary Apply pending sales
// @Description Consumes lots FIFO for every unapplied sale, one transaction per sale.
// @Tags Sales
// @Accept json
// @Produce json
// @Security InternalKey
// @Param request body model.ApplySalesRequest false "Run options"
// @Success 200 {object} model.ApplySalesResult
// @Failure 400 {object} transport.Response
// @Failure 409 {object} transport.Response
// @Router /internal/v1/sales/apply [post]
func (s *RestHandler) ApplySales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ApplySalesRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if s.SalesApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	res, err := s.SalesApp.ApplySales(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ApplySale handler
// @Summary Apply one sale
// @Tags Sales
// @Produce json
// @Security InternalKey
// @Param id path int true "sales_log id"
// @Param simulate query bool false "plan without writing"
// @Success 200 {object} model.ApplySalesResult
// @Failure 400 {object} transport.Response
// @Failure 404 {object} transport.Response
// @Router /internal/v1/sales/{id}/apply [post]
func (s *RestHandler) ApplySale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	simulate, err := queryBool(r, "simulate")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if s.SalesApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	res, err := s.SalesApp.ApplySale(ctx, id, simulate)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Consistency handler
// @Summary Consistency report
// @Description Compares lots, applied sales and balances per SKU.
// @Tags Diagnostics
// @Produce json
// @Security InternalKey
// @Param only_issues query bool false "only rows with issues"
// @Success 200 {object} model.ConsistencyReport
// @Failure 400 {object} transport.Response
// @Router /internal/v1/diagnostics/consistency [get]
func (s *RestHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	onlyIssues, err := queryBool(r, "only_issues")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if s.DiagnosticsApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	res, err := s.DiagnosticsApp.ConsistencyReport(ctx, onlyIssues)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Worklist handler
// @Summary Suggest moves into dedicated drawers
// @Tags Worklist
// @Produce json
// @Security InternalKey
// @Success 200 {object} model.WorklistResult
// @Router /internal/v1/worklist/moves [get]
func (s *RestHandler) Worklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.WorklistApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	res, err := s.WorklistApp.Suggest(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ApplyMove handler
// @Summary Move lots to a location
// @Description Sets the location of the given lots. Capacity is not checked.
// @Tags Worklist
// @Accept json
// @Produce json
// @Security InternalKey
// @Param request body model.MoveRequest true "Move"
// @Success 200 {object} model.MoveResult
// @Failure 400 {object} transport.Response
// @Failure 409 {object} transport.Response
// @Router /internal/v1/worklist/moves/apply [post]
func (s *RestHandler) ApplyMove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if s.WorklistApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	res, err := s.WorklistApp.ApplyMove(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
