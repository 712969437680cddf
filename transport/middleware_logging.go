package transport

import (
	"net/http"
	"time"

	utilsContext "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/context"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/logger"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// LoggingMiddleware tags each request with a run id and logs it once done
func LoggingMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := utilsContext.WithRunID(r.Context())

			// Wrap response writer to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r.WithContext(ctx))

			logger.FromContext(ctx).Info(
				"HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", wrapped.statusCode),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
