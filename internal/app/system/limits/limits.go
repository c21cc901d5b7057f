// internal/app/system/limits/limits.go
package limits

import "net/http"

// Request body size limits for form posts.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxFormSize bounds urlencoded forms such as login, register and the
	// single-record add forms.
	MaxFormSize = 64 << 10 // 64 KB

	// MaxBulkFormSize bounds the bulk teacher form when it is posted
	// without a file; each row is a handful of short fields.
	MaxBulkFormSize = 512 << 10 // 512 KB
)

// Body caps request bodies at n bytes. A handler that reads past the cap
// gets an error from ParseForm and answers 400.
func Body(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
