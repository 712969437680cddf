package worklist

import (
	"context"
	"sort"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/capacity"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/runlock"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/stockclass"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	lotrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/lot"
	utilsContext "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/context"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/errors"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/logger"
	validatorx "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/validator"
	"go.uber.org/zap"
)

type WorklistApp interface {
	// Suggest proposes a dedicated C bin for CORE and COMMANDER stock that
	// still sits in the regular drawers.
	Suggest(ctx context.Context) (*model.WorklistResult, error)
	// ApplyMove overwrites the location of the given lots. Only the
	// location format is checked; capacity is not.
	ApplyMove(ctx context.Context, req *model.MoveRequest) (*model.MoveResult, error)
}

type worklistAppImpl struct {
	lotRepo  lotrepo.LotRepository
	resolver stockclass.Resolver
	locker   *runlock.Locker
}

func NewWorklistApp(lotRepo lotrepo.LotRepository, resolver stockclass.Resolver, locker *runlock.Locker) WorklistApp {
	return &worklistAppImpl{lotRepo: lotRepo, resolver: resolver, locker: locker}
}

func (s *worklistAppImpl) Suggest(ctx context.Context) (*model.WorklistResult, error) {
	ctx = utilsContext.WithRunID(ctx)
	log := logger.FromContext(ctx)

	located, err := s.lotRepo.ListLocated(ctx)
	if err != nil {
		log.Error("[Suggest] list located lots", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	occ := capacity.BuildOccupancy(located)

	sort.SliceStable(located, func(i, j int) bool {
		if !located[i].CreatedAt.Equal(located[j].CreatedAt) {
			return located[i].CreatedAt.Before(located[j].CreatedAt)
		}
		return located[i].ID < located[j].ID
	})

	result := &model.WorklistResult{
		Suggestions: make([]model.MoveSuggestion, 0),
		Unplaceable: make([]model.MoveSuggestion, 0),
	}
	classes := make(map[uint64]constant.StockClass)
	for _, lot := range located {
		if lot.QtyRemaining <= 0 {
			continue
		}
		current, err := capacity.ParseLocation(*lot.Location)
		if err != nil || current.Drawer == capacity.CoreDrawer {
			continue
		}

		class, ok := classes[lot.CardmarketID]
		if !ok {
			class, _, err = s.resolver.Resolve(ctx, lot.CardmarketID)
			if err != nil {
				log.Warn("[Suggest] resolve stock class", zap.Uint64("cardmarket_id", lot.CardmarketID), zap.String("error", err.Error()))
				continue
			}
			classes[lot.CardmarketID] = class
		}
		if !capacity.IsDedicated(class) {
			continue
		}

		item := model.MoveSuggestion{
			LotID:           lot.ID,
			Sku:             lot.SkuKey,
			StockClass:      class,
			Qty:             lot.QtyRemaining,
			CurrentLocation: current.String(),
		}
		target, err := capacity.AllocateSingleRow(occ, class, lot.SourceCode, lot.QtyRemaining)
		if err != nil {
			result.Unplaceable = append(result.Unplaceable, item)
			continue
		}
		occ.Release(current.Bin, lot.QtyRemaining)
		occ.Place(target, lot.SourceCode, lot.QtyRemaining)
		item.SuggestedLocation = target.String()
		result.Suggestions = append(result.Suggestions, item)
	}
	return result, nil
}

func (s *worklistAppImpl) ApplyMove(ctx context.Context, req *model.MoveRequest) (*model.MoveResult, error) {
	if req == nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	loc, err := capacity.ParseLocation(req.Location)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	ctx = utilsContext.WithRunID(ctx)
	log := logger.FromContext(ctx)

	release, err := s.locker.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	n, err := s.lotRepo.SetLocation(ctx, req.LotIDs, loc.String())
	if err != nil {
		log.Error("[ApplyMove] set location", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	log.Info("[ApplyMove] unchecked move", zap.String("location", loc.String()), zap.Uint64s("lot_ids", req.LotIDs), zap.Int64("updated", n))
	return &model.MoveResult{Location: loc.String(), Updated: n}, nil
}
