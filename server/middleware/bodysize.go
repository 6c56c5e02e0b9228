package middleware

import (
	"net/http"

	"github.com/RichTeaMan/timer/util"
)

// DefaultMaxBodySize caps request bodies when no size is configured.
const DefaultMaxBodySize = 1 << 20

// BodySizeLimit caps request bodies at maxSize, e.g. "64KB" or "1MB". A
// declared Content-Length over the cap is refused with 413 before the
// handler runs; bodies without one are cut off while being read.
func BodySizeLimit(maxSize string) Middleware {
	limit := util.ParseSize(maxSize, DefaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
				return
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
