package sales

import (
	"context"
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/runlock"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/cmd/config"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	balancerepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/balance"
	ledgerrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/ledger"
	lotrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/lot"
	salesrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/sales"
	txrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/tx"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/thirdparty/rabbitmq"
	utilsContext "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/context"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/errors"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/logger"
	validatorx "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/validator"
	"go.uber.org/zap"
)

const defaultLimit = 500

type SalesApp interface {
	// ApplySales consumes lots for every unapplied sale created at or after
	// req.Since, oldest first, one transaction per sale.
	ApplySales(ctx context.Context, req *model.ApplySalesRequest) (*model.ApplySalesResult, error)
	// ApplySale runs a single sales_log row through the same path.
	ApplySale(ctx context.Context, saleID uint64, simulate bool) (*model.ApplySalesResult, error)
}

type salesAppImpl struct {
	config      *config.Config
	txRepo      txrepo.TxRepository
	lotRepo     lotrepo.LotRepository
	balanceRepo balancerepo.BalanceRepository
	salesRepo   salesrepo.SalesRepository
	ledgerRepo  ledgerrepo.LedgerRepository
	locker      *runlock.Locker
	publisher   *rabbitmq.Publisher
}

func NewSalesApp(config *config.Config, txRepo txrepo.TxRepository, lotRepo lotrepo.LotRepository, balanceRepo balancerepo.BalanceRepository, salesRepo salesrepo.SalesRepository, ledgerRepo ledgerrepo.LedgerRepository, locker *runlock.Locker, publisher *rabbitmq.Publisher) SalesApp {
	return &salesAppImpl{
		config:      config,
		txRepo:      txRepo,
		lotRepo:     lotRepo,
		balanceRepo: balanceRepo,
		salesRepo:   salesRepo,
		ledgerRepo:  ledgerRepo,
		locker:      locker,
		publisher:   publisher,
	}
}

func newResult(simulate bool) *model.ApplySalesResult {
	return &model.ApplySalesResult{
		Simulate:     simulate,
		Consumptions: make([]model.SaleConsumption, 0),
		Errors:       make([]model.ItemError, 0),
	}
}

func (s *salesAppImpl) ApplySales(ctx context.Context, req *model.ApplySalesRequest) (*model.ApplySalesResult, error) {
	if req == nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	ctx = utilsContext.WithRunID(ctx)
	log := logger.FromContext(ctx)

	limit := req.Limit
	if limit == 0 && s.config != nil {
		limit = s.config.Inventory.ApplySalesLimit
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	if !req.Simulate {
		release, err := s.locker.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	rows, err := s.salesRepo.ListUnapplied(ctx, req.Since, limit)
	if err != nil {
		log.Error("[ApplySales] list unapplied sales", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	result := newResult(req.Simulate)
	result.Found = len(rows)
	sim := newSimulation()
	for i := range rows {
		if err := ctx.Err(); err != nil {
			log.Warn("[ApplySales] stopped early", zap.Int("done", i), zap.String("error", err.Error()))
			for j := i; j < len(rows); j++ {
				result.Errors = append(result.Errors, errors.Item(j, rows[j].ID, constant.ErrCancelled, err.Error()))
			}
			break
		}
		s.process(ctx, i, &rows[i], sim, result)
	}

	log.Info("[ApplySales] done",
		zap.Bool("simulate", req.Simulate),
		zap.Int("found", result.Found),
		zap.Int("processed", result.Processed),
		zap.Int("skipped", result.Skipped),
		zap.Int("oversold", result.Oversold),
		zap.Int("failed", len(result.Errors)),
	)

	if !req.Simulate && result.Processed > 0 {
		runID, _ := utilsContext.GetRunID(ctx)
		msg := rabbitmq.SalesAppliedMessage{
			RunID:     runID,
			Found:     result.Found,
			Processed: result.Processed,
			Oversold:  result.Oversold,
			Failed:    len(result.Errors),
			At:        time.Now().UTC(),
		}
		if err := s.publisher.PublishSalesApplied(msg); err != nil {
			log.Error("[ApplySales] publish sales applied", zap.String("error", err.Error()))
		}
	}
	return result, nil
}

func (s *salesAppImpl) ApplySale(ctx context.Context, saleID uint64, simulate bool) (*model.ApplySalesResult, error) {
	if saleID == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	ctx = utilsContext.WithRunID(ctx)

	sale, err := s.salesRepo.GetByID(ctx, saleID)
	if err != nil {
		logger.FromContext(ctx).Error("[ApplySale] get sale", zap.Uint64("sale_id", saleID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if sale == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	result := newResult(simulate)
	result.Found = 1
	if sale.InventoryAppliedAt != nil {
		result.Skipped++
		s.attachLedger(ctx, result, saleID)
		return result, nil
	}
	if sale.InventoryRejectedAt != nil {
		result.Skipped++
		return result, nil
	}

	if !simulate {
		release, err := s.locker.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		defer release()
	}
	s.process(ctx, 0, sale, newSimulation(), result)
	if !simulate && len(result.Errors) == 0 {
		s.attachLedger(ctx, result, saleID)
	}
	return result, nil
}

// attachLedger reads back the inventory_txn rows written for a sale. A read
// failure leaves result.Ledger empty.
func (s *salesAppImpl) attachLedger(ctx context.Context, result *model.ApplySalesResult, saleID uint64) {
	txns, err := s.ledgerRepo.ListBySale(ctx, saleID)
	if err != nil {
		logger.FromContext(ctx).Error("[ApplySale] list ledger", zap.Uint64("sale_id", saleID), zap.String("error", err.Error()))
		return
	}
	result.Ledger = txns
}

// process applies (or simulates) one sale and folds the outcome into result.
// Nothing here fails the run.
func (s *salesAppImpl) process(ctx context.Context, index int, sale *model.SalesLog, sim *simulation, result *model.ApplySalesResult) {
	log := logger.FromContext(ctx)

	if err := validatorx.ValidateStruct(sale); err != nil {
		reason := validatorx.Describe(err)
		log.Warn("[ApplySales] invalid sale", zap.Uint64("sale_id", sale.ID), zap.String("error", reason))
		result.Errors = append(result.Errors, errors.Item(index, sale.ID, constant.ErrValidation, reason))
		if !result.Simulate {
			// a rejected row leaves the unapplied queue for good
			if err := s.salesRepo.MarkRejected(ctx, sale.ID, reason, time.Now().UTC()); err != nil {
				log.Error("[ApplySales] mark sale rejected", zap.Uint64("sale_id", sale.ID), zap.String("error", err.Error()))
			}
		}
		return
	}

	if result.Simulate {
		lots, err := s.lotRepo.ListOpenBySku(ctx, sale.SkuKey)
		if err != nil {
			log.Error("[ApplySales] list lots", zap.Uint64("sale_id", sale.ID), zap.String("error", err.Error()))
			result.Errors = append(result.Errors, errors.Item(index, sale.ID, constant.ErrTransactionFailure, err.Error()))
			return
		}
		takes, shortfall := sim.plan(lots, sale.Qty)
		s.record(result, sale, takes, shortfall)
		return
	}

	consumption, applied, err := s.applyOne(ctx, sale.ID)
	if err != nil {
		log.Error("[ApplySales] apply sale", zap.Uint64("sale_id", sale.ID), zap.String("error", err.Error()))
		result.Errors = append(result.Errors, errors.Item(index, sale.ID, constant.ErrTransactionFailure, err.Error()))
		return
	}
	if !applied {
		result.Skipped++
		return
	}
	s.record(result, consumption.SalesLog, consumption.takes, consumption.shortfall)

	if consumption.shortfall > 0 {
		log.Warn("[ApplySales] oversell", zap.Uint64("sale_id", sale.ID), zap.String("sku", sale.SkuKey.String()), zap.Int64("shortfall", consumption.shortfall))
		msg := rabbitmq.OversellMessage{
			SaleID:    consumption.ID,
			Sku:       consumption.SkuKey,
			Qty:       consumption.Qty,
			Shortfall: consumption.shortfall,
			At:        time.Now().UTC(),
		}
		if err := s.publisher.PublishOversell(msg); err != nil {
			log.Error("[ApplySales] publish oversell", zap.String("error", err.Error()))
		}
	}
}

func (s *salesAppImpl) record(result *model.ApplySalesResult, sale *model.SalesLog, takes []model.LotTake, shortfall int64) {
	result.Processed++
	if shortfall > 0 {
		result.Oversold++
	}
	result.Consumptions = append(result.Consumptions, model.SaleConsumption{
		SaleID:    sale.ID,
		Sku:       sale.SkuKey,
		Qty:       sale.Qty,
		Takes:     takes,
		Shortfall: shortfall,
	})
}

type appliedSale struct {
	*model.SalesLog
	takes     []model.LotTake
	shortfall int64
}

// applyOne is the per-sale transaction. applied is false when the row was
// already marked by someone else by the time it was locked.
func (s *salesAppImpl) applyOne(ctx context.Context, saleID uint64) (*appliedSale, bool, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		return nil, false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	sale, err := s.salesRepo.GetForUpdateTx(ctx, tx, saleID)
	if err != nil {
		return nil, false, err
	}
	if sale == nil || sale.InventoryAppliedAt != nil || sale.InventoryRejectedAt != nil {
		return nil, false, nil
	}

	lots, err := s.lotRepo.ListOpenBySkuTx(ctx, tx, sale.SkuKey)
	if err != nil {
		return nil, false, err
	}
	takes, shortfall := PlanConsumption(lots, sale.Qty)

	now := time.Now().UTC()
	for _, take := range takes {
		if err := s.lotRepo.DecrementTx(ctx, tx, take.LotID, take.Qty); err != nil {
			return nil, false, err
		}
		txn := &model.InventoryTxn{
			LotID:      take.LotID,
			Kind:       constant.TxnKindSaleOut,
			Qty:        -take.Qty,
			SalesLogID: sale.ID,
			CreatedAt:  now,
		}
		if err := s.ledgerRepo.InsertTx(ctx, tx, txn); err != nil {
			return nil, false, err
		}
	}

	// the balance always takes the full sale qty, even when lots fell short
	if err := s.balanceRepo.ApplySaleTx(ctx, tx, sale.SkuKey, sale.Qty, sale.Ts); err != nil {
		return nil, false, err
	}
	if err := s.salesRepo.MarkAppliedTx(ctx, tx, sale.ID, now); err != nil {
		return nil, false, err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		return nil, false, err
	}
	committed = true
	return &appliedSale{SalesLog: sale, takes: takes, shortfall: shortfall}, true, nil
}
