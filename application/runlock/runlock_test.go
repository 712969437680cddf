package runlock_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/runlock"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	redismocks "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/mocks/repository/redis"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/errors"
	"github.com/stretchr/testify/mock"
)

func TestLocker_Acquire(t *testing.T) {
	type fields struct {
		redisRepo *redismocks.Repository
	}
	tests := []struct {
		name     string
		fields   fields
		mockCall func(f fields)
		wantErr  bool
		wantCode string
	}{
		{
			name:   "acquired and released with the same token",
			fields: fields{redisRepo: redismocks.NewRepository(t)},
			mockCall: func(f fields) {
				var token string
				f.redisRepo.On("AcquireLock", mock.Anything, constant.WriterLockKey, mock.AnythingOfType("string"), time.Minute).
					Run(func(args mock.Arguments) { token = args.String(2) }).
					Return(true, nil).Once()
				f.redisRepo.On("ReleaseLock", mock.Anything, constant.WriterLockKey, mock.MatchedBy(func(got string) bool { return got == token })).
					Return(nil).Once()
			},
		},
		{
			name:   "held elsewhere",
			fields: fields{redisRepo: redismocks.NewRepository(t)},
			mockCall: func(f fields) {
				f.redisRepo.On("AcquireLock", mock.Anything, constant.WriterLockKey, mock.Anything, time.Minute).Return(false, nil).Once()
			},
			wantErr:  true,
			wantCode: constant.ErrorTypeCode[constant.ErrBusy],
		},
		{
			name:   "redis down",
			fields: fields{redisRepo: redismocks.NewRepository(t)},
			mockCall: func(f fields) {
				f.redisRepo.On("AcquireLock", mock.Anything, constant.WriterLockKey, mock.Anything, time.Minute).Return(false, stderrors.New("dial tcp")).Once()
			},
			wantErr:  true,
			wantCode: constant.ErrorTypeCode[constant.ErrInternal],
		},
		{
			name:   "release failure is only logged",
			fields: fields{redisRepo: redismocks.NewRepository(t)},
			mockCall: func(f fields) {
				f.redisRepo.On("AcquireLock", mock.Anything, constant.WriterLockKey, mock.Anything, time.Minute).Return(true, nil).Once()
				f.redisRepo.On("ReleaseLock", mock.Anything, constant.WriterLockKey, mock.Anything).Return(stderrors.New("timeout")).Once()
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockCall(tt.fields)
			l := runlock.New(tt.fields.redisRepo, time.Minute)

			release, err := l.Acquire(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Acquire() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce errors.CustomError
				if !stderrors.As(err, &ce) {
					t.Fatalf("expected CustomError, got %T", err)
				}
				if ce.ErrorCode() != tt.wantCode {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), tt.wantCode)
				}
				return
			}
			release()
		})
	}
}

func TestLocker_ReleaseSurvivesCancelledContext(t *testing.T) {
	redisRepo := redismocks.NewRepository(t)
	redisRepo.On("AcquireLock", mock.Anything, constant.WriterLockKey, mock.Anything, time.Minute).Return(true, nil).Once()
	redisRepo.On("ReleaseLock", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), constant.WriterLockKey, mock.Anything).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	release, err := runlock.New(redisRepo, time.Minute).Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	cancel()
	release()
}

func TestLocker_NoRedisIsNoop(t *testing.T) {
	var nilLocker *runlock.Locker
	for _, l := range []*runlock.Locker{nilLocker, runlock.New(nil, time.Minute)} {
		release, err := l.Acquire(context.Background())
		if err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		release()
	}
}
