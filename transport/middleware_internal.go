package transport

import (
	"crypto/subtle"
	"net/http"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/errors"
	"github.com/gorilla/mux"
)

// InternalMiddleware checks for static API key in header. An empty key
// rejects every request.
func InternalMiddleware(apiKey string) mux.MiddlewareFunc {
	want := []byte("Bearer " + apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get("Authorization"))
			if apiKey == "" || subtle.ConstantTimeCompare(got, want) != 1 {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
