package runlock

import (
	"context"
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	redisrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/redis"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/errors"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Locker serializes mutating inventory runs across processes. A nil redis
// repository makes it a no-op.
type Locker struct {
	redisRepo redisrepo.Repository
	ttl       time.Duration
}

func New(redisRepo redisrepo.Repository, ttl time.Duration) *Locker {
	return &Locker{redisRepo: redisRepo, ttl: ttl}
}

// Acquire takes the writer lock or returns ErrBusy. The returned func
// releases it and is safe to defer.
func (l *Locker) Acquire(ctx context.Context) (func(), error) {
	if l == nil || l.redisRepo == nil {
		return func() {}, nil
	}
	token := uuid.NewString()
	ok, err := l.redisRepo.AcquireLock(ctx, constant.WriterLockKey, token, l.ttl)
	if err != nil {
		logger.FromContext(ctx).Error("[Acquire] writer lock", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		return nil, errors.SetCustomError(constant.ErrBusy)
	}
	return func() {
		// release must outlive a cancelled request context
		if err := l.redisRepo.ReleaseLock(context.WithoutCancel(ctx), constant.WriterLockKey, token); err != nil {
			logger.FromContext(ctx).Warn("[Acquire] release writer lock", zap.String("error", err.Error()))
		}
	}, nil
}
