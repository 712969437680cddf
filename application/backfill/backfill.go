package backfill

import (
	"context"
	"fmt"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/capacity"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/runlock"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/cmd/config"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	lotrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/lot"
	txrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/tx"
	utilsContext "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/context"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/errors"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/logger"
	validatorx "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/validator"
	"go.uber.org/zap"
)

const (
	defaultChunkSize = 500
	defaultLimit     = 5000
)

type BackfillApp interface {
	// Backfill gives location-less lots a single-row location, oldest first.
	Backfill(ctx context.Context, req *model.BackfillRequest) (*model.BackfillResult, error)
}

type backfillAppImpl struct {
	config  *config.Config
	txRepo  txrepo.TxRepository
	lotRepo lotrepo.LotRepository
	locker  *runlock.Locker
}

func NewBackfillApp(config *config.Config, txRepo txrepo.TxRepository, lotRepo lotrepo.LotRepository, locker *runlock.Locker) BackfillApp {
	return &backfillAppImpl{config: config, txRepo: txRepo, lotRepo: lotRepo, locker: locker}
}

func (s *backfillAppImpl) Backfill(ctx context.Context, req *model.BackfillRequest) (*model.BackfillResult, error) {
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
		limit = s.config.Inventory.BackfillLimit
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	if !req.DryRun {
		release, err := s.locker.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	located, err := s.lotRepo.ListLocated(ctx)
	if err != nil {
		log.Error("[Backfill] load occupancy", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	occ := capacity.BuildOccupancy(located)

	pending, err := s.lotRepo.ListUnlocated(ctx, limit)
	if err != nil {
		log.Error("[Backfill] list unlocated lots", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	result := &model.BackfillResult{
		DryRun:  req.DryRun,
		Scanned: len(pending),
		Plan:    make([]model.BackfillAssignment, 0, len(pending)),
		Errors:  make([]model.ItemError, 0),
	}
	indexOf := make(map[uint64]int, len(pending))
	for i, lot := range pending {
		indexOf[lot.ID] = i
		// dedicated C rows are filled by hand later, so every class searches
		// the regular drawers here
		loc, err := capacity.AllocateSingleRow(occ, constant.StockClassRegular, lot.SourceCode, lot.QtyRemaining)
		if err != nil {
			result.Errors = append(result.Errors, errors.Item(i, lot.ID, constant.ErrCapacityExhausted, fmt.Sprintf("qty=%d", lot.QtyRemaining)))
			continue
		}
		occ.Place(loc, lot.SourceCode, lot.QtyRemaining)
		result.Plan = append(result.Plan, model.BackfillAssignment{LotID: lot.ID, Location: loc.String(), Qty: lot.QtyRemaining})
	}

	if req.DryRun {
		log.Info("[Backfill] dry run", zap.Int("scanned", result.Scanned), zap.Int("planned", len(result.Plan)))
		return result, nil
	}

	chunkSize := defaultChunkSize
	if s.config != nil && s.config.Inventory.BackfillChunkSize > 0 {
		chunkSize = s.config.Inventory.BackfillChunkSize
	}
	for start := 0; start < len(result.Plan); start += chunkSize {
		if err := ctx.Err(); err != nil {
			log.Warn("[Backfill] stopped early", zap.Int("updated", result.Updated), zap.String("error", err.Error()))
			for _, a := range result.Plan[start:] {
				result.Errors = append(result.Errors, errors.Item(indexOf[a.LotID], a.LotID, constant.ErrCancelled, err.Error()))
			}
			break
		}
		end := start + chunkSize
		if end > len(result.Plan) {
			end = len(result.Plan)
		}
		chunk := result.Plan[start:end]

		updated, err := s.persistChunk(ctx, chunk)
		if err != nil {
			log.Error("[Backfill] persist chunk", zap.Int("from", start), zap.Int("size", len(chunk)), zap.String("error", err.Error()))
			for _, a := range chunk {
				result.Errors = append(result.Errors, errors.Item(indexOf[a.LotID], a.LotID, constant.ErrTransactionFailure, err.Error()))
			}
			continue
		}
		result.Updated += updated
	}

	log.Info("[Backfill] done",
		zap.Int("scanned", result.Scanned),
		zap.Int("updated", result.Updated),
		zap.Int("failed", len(result.Errors)),
	)
	return result, nil
}

// persistChunk writes one chunk in one transaction. Lots that picked up a
// location since they were listed are left alone and not counted.
func (s *backfillAppImpl) persistChunk(ctx context.Context, chunk []model.BackfillAssignment) (int, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	updated := 0
	for _, a := range chunk {
		ok, err := s.lotRepo.SetLocationIfNullTx(ctx, tx, a.LotID, a.Location)
		if err != nil {
			return 0, err
		}
		if !ok {
			logger.FromContext(ctx).Debug("[Backfill] lot already located", zap.Uint64("lot_id", a.LotID))
			continue
		}
		updated++
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		return 0, err
	}
	committed = true
	return updated, nil
}
