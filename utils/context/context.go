package context

import (
	"context"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	"github.com/google/uuid"
)

// WithRunID tags ctx with a fresh run id unless it already carries one.
func WithRunID(ctx context.Context) context.Context {
	if _, ok := GetRunID(ctx); ok {
		return ctx
	}
	return context.WithValue(ctx, constant.RunIDKey, uuid.NewString())
}

func GetRunID(ctx context.Context) (string, bool) {
	v := ctx.Value(constant.RunIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
