package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/iho/fxledger/internal/domain"
)

// RequestMeta stores the request ID and client address on the context for
// audit entries.
func RequestMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := domain.WithRequestMeta(r.Context(), domain.RequestMeta{
			RequestID: chimiddleware.GetReqID(r.Context()),
			IPAddress: clientIP(r),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
