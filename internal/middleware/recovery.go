package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/openbooks-dev/openbooks/internal/handler"
	"github.com/openbooks-dev/openbooks/internal/logging"
)

// Recovery turns a handler panic into a 500 instead of tearing down the
// connection. http.ErrAbortHandler passes through, it means the client is gone.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logging.FromContext(r.Context()).Error("panic recovered",
					"error", v,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				handler.RespondAppError(w, handler.ErrInternalError, nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
