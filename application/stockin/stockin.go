package stockin

import (
	"context"
	"fmt"
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/capacity"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/runlock"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/stockclass"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/cmd/config"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	balancerepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/balance"
	lotrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/lot"
	txrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/tx"
	utilsContext "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/context"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/errors"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/logger"
	validatorx "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/validator"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type StockInApp interface {
	// Import creates one located lot per row. The whole batch shares one
	// transaction and one occupancy snapshot; a failing row is rolled back
	// to its savepoint and reported without affecting the others.
	Import(ctx context.Context, req *model.StockInRequest) (*model.StockInResult, error)
}

type stockInAppImpl struct {
	config      *config.Config
	txRepo      txrepo.TxRepository
	lotRepo     lotrepo.LotRepository
	balanceRepo balancerepo.BalanceRepository
	resolver    stockclass.Resolver
	locker      *runlock.Locker
}

func NewStockInApp(config *config.Config, txRepo txrepo.TxRepository, lotRepo lotrepo.LotRepository, balanceRepo balancerepo.BalanceRepository, resolver stockclass.Resolver, locker *runlock.Locker) StockInApp {
	return &stockInAppImpl{
		config:      config,
		txRepo:      txRepo,
		lotRepo:     lotRepo,
		balanceRepo: balanceRepo,
		resolver:    resolver,
		locker:      locker,
	}
}

func (s *stockInAppImpl) Import(ctx context.Context, req *model.StockInRequest) (*model.StockInResult, error) {
	if req == nil || len(req.Rows) == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	ctx = utilsContext.WithRunID(ctx)
	log := logger.FromContext(ctx)

	release, err := s.locker.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		log.Error("[Import] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	// the locking read holds every located lot for the whole batch
	located, err := s.lotRepo.ListLocatedTx(ctx, tx)
	if err != nil {
		log.Error("[Import] load occupancy", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	occ := capacity.BuildOccupancy(located)
	if occ.Skipped() > 0 {
		log.Warn("[Import] lots with unparsable locations ignored", zap.Int("count", occ.Skipped()))
	}

	result := &model.StockInResult{
		Received: len(req.Rows),
		Lots:     make([]model.StockInLot, 0, len(req.Rows)),
		Warnings: make([]model.ItemError, 0),
		Errors:   make([]model.ItemError, 0),
	}
	for i := range req.Rows {
		if err := ctx.Err(); err != nil {
			log.Warn("[Import] stopped early", zap.Int("done", i), zap.String("error", err.Error()))
			for j := i; j < len(req.Rows); j++ {
				result.Errors = append(result.Errors, errors.Item(j, 0, constant.ErrCancelled, err.Error()))
			}
			break
		}
		if err := s.importRow(ctx, tx, occ, i, &req.Rows[i], result); err != nil {
			log.Error("[Import] savepoint rollback", zap.Int("index", i), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrTransactionFailure)
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		log.Error("[Import] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrTransactionFailure)
	}
	committed = true

	log.Info("[Import] done",
		zap.Int("received", result.Received),
		zap.Int("created", result.Created),
		zap.Int("warnings", len(result.Warnings)),
		zap.Int("failed", len(result.Errors)),
	)
	return result, nil
}

// importRow only returns an error when the transaction itself can no longer
// be trusted; row failures go into result.
func (s *stockInAppImpl) importRow(ctx context.Context, tx *sqlx.Tx, occ *capacity.Occupancy, index int, row *model.StockInRow, result *model.StockInResult) error {
	log := logger.FromContext(ctx)

	if err := validatorx.ValidateStruct(row); err != nil {
		result.Errors = append(result.Errors, errors.Item(index, 0, constant.ErrValidation, validatorx.Describe(err)))
		return nil
	}

	class, resolved, err := s.resolver.Resolve(ctx, row.CardmarketID)
	if err != nil {
		log.Error("[Import] resolve stock class", zap.Uint64("cardmarket_id", row.CardmarketID), zap.String("error", err.Error()))
		result.Errors = append(result.Errors, errors.Item(index, 0, constant.ErrInternal, err.Error()))
		return nil
	}
	if !resolved {
		result.Warnings = append(result.Warnings, errors.Item(index, 0, constant.WarnStockClassDefaulted, fmt.Sprintf("cardmarket_id=%d", row.CardmarketID)))
	}

	loc, err := capacity.Allocate(occ, class, row.SourceCode, row.Qty)
	if err != nil {
		result.Errors = append(result.Errors, errors.Item(index, 0, constant.ErrCapacityExhausted, fmt.Sprintf("class=%s qty=%d", class, row.Qty)))
		return nil
	}

	savepoint := fmt.Sprintf("stock_in_row_%d", index)
	if err := s.txRepo.SavepointTx(ctx, tx, savepoint); err != nil {
		return err
	}
	lotID, err := s.persistRow(ctx, tx, row, loc)
	if err != nil {
		log.Error("[Import] persist row", zap.Int("index", index), zap.String("error", err.Error()))
		if rbErr := s.txRepo.RollbackToSavepointTx(ctx, tx, savepoint); rbErr != nil {
			return rbErr
		}
		result.Errors = append(result.Errors, errors.Item(index, 0, constant.ErrTransactionFailure, err.Error()))
		return nil
	}

	occ.Place(loc, row.SourceCode, row.Qty)
	result.Created++
	result.Lots = append(result.Lots, model.StockInLot{Index: index, LotID: lotID, Location: loc.String(), StockClass: class})
	return nil
}

func (s *stockInAppImpl) persistRow(ctx context.Context, tx *sqlx.Tx, row *model.StockInRow, loc capacity.Location) (uint64, error) {
	location := loc.String()
	lot := &model.Lot{
		SkuKey:         row.SkuKey,
		QtyIn:          row.Qty,
		QtyRemaining:   row.Qty,
		AvgUnitCostEur: row.UnitCostEur,
		SourceCode:     row.SourceCode,
		SourceDate:     row.SourceDate,
		Location:       &location,
		CreatedAt:      time.Now().UTC(),
	}
	lotID, err := s.lotRepo.InsertTx(ctx, tx, lot)
	if err != nil {
		return 0, fmt.Errorf("insert lot: %w", err)
	}

	bal, err := s.balanceRepo.GetForUpdateTx(ctx, tx, row.SkuKey)
	if err != nil {
		return 0, fmt.Errorf("lock balance: %w", err)
	}
	if bal == nil {
		err = s.balanceRepo.InsertTx(ctx, tx, &model.Balance{
			SkuKey:         row.SkuKey,
			QtyOnHand:      row.Qty,
			AvgUnitCostEur: row.UnitCostEur.Round(costScale),
		})
		if err != nil {
			return 0, fmt.Errorf("insert balance: %w", err)
		}
		return lotID, nil
	}

	avg := MovingAverage(bal.QtyOnHand, bal.AvgUnitCostEur, row.Qty, row.UnitCostEur)
	if err := s.balanceRepo.UpdateStockInTx(ctx, tx, row.SkuKey, row.Qty, avg); err != nil {
		return 0, fmt.Errorf("update balance: %w", err)
	}
	return lotID, nil
}
