package stockclass

import (
	"context"
	"fmt"
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	redisrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/redis"
	stockclassrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/stockclass"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/logger"
	"go.uber.org/zap"
)

// Resolver maps a card to its stock class. resolved is false when no policy
// exists and the class fell back to REGULAR.
type Resolver interface {
	Resolve(ctx context.Context, cardmarketID uint64) (class constant.StockClass, resolved bool, err error)
}

// ResolverFunc lets a plain function act as a Resolver.
type ResolverFunc func(ctx context.Context, cardmarketID uint64) (constant.StockClass, bool, error)

func (f ResolverFunc) Resolve(ctx context.Context, cardmarketID uint64) (constant.StockClass, bool, error) {
	return f(ctx, cardmarketID)
}

// cached misses are stored under this marker so they are not re-queried
const missMarker = "-"

type resolverImpl struct {
	repo      stockclassrepo.StockClassRepository
	redisRepo redisrepo.Repository
	ttl       time.Duration
}

func NewResolver(repo stockclassrepo.StockClassRepository, redisRepo redisrepo.Repository, ttl time.Duration) Resolver {
	return &resolverImpl{repo: repo, redisRepo: redisRepo, ttl: ttl}
}

func cacheKey(cardmarketID uint64) string {
	return fmt.Sprintf("stockclass:%d", cardmarketID)
}

func (r *resolverImpl) Resolve(ctx context.Context, cardmarketID uint64) (constant.StockClass, bool, error) {
	if r.redisRepo != nil {
		val, found, err := r.redisRepo.Get(ctx, cacheKey(cardmarketID))
		if err != nil {
			logger.Warn("[Resolve] stock class cache read failed", zap.Uint64("cardmarket_id", cardmarketID), zap.String("error", err.Error()))
		} else if found {
			if val == missMarker {
				return constant.StockClassRegular, false, nil
			}
			class, ok := constant.ParseStockClass(val)
			return class, ok, nil
		}
	}

	raw, found, err := r.repo.GetByCardmarketID(ctx, cardmarketID)
	if err != nil {
		return constant.StockClassRegular, false, err
	}

	class, ok := constant.StockClassRegular, false
	if found {
		class, ok = constant.ParseStockClass(raw)
		if !ok {
			logger.Warn("[Resolve] unknown stock class in policy", zap.Uint64("cardmarket_id", cardmarketID), zap.String("stock_class", raw))
		}
	}

	if r.redisRepo != nil && r.ttl > 0 {
		val := missMarker
		if ok {
			val = string(class)
		}
		if err := r.redisRepo.SetWithTTL(ctx, cacheKey(cardmarketID), val, r.ttl); err != nil {
			logger.Warn("[Resolve] stock class cache write failed", zap.Uint64("cardmarket_id", cardmarketID), zap.String("error", err.Error()))
		}
	}
	return class, ok, nil
}
